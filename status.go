package walletapp

import (
	"errors"
	"fmt"
)

// StatusWord is the two byte trailer (SW1 SW2) of every response APDU.
type StatusWord uint16

const (
	StatusOK                      StatusWord = 0x9000
	StatusWrongLength             StatusWord = 0x6700
	StatusLengthMismatch          StatusWord = 0x6A87
	StatusClassNotSupported       StatusWord = 0x6E00
	StatusInstructionNotSupported StatusWord = 0x6D00
	StatusInvalidP1P2             StatusWord = 0x6B00
	StatusDataInvalid             StatusWord = 0x6A80
	StatusConditionsNotSatisfied  StatusWord = 0x6985
	StatusNotEnoughMemory         StatusWord = 0x6A84
	StatusTransactionRejected     StatusWord = 0x6986
	StatusErrorDerivingKeys       StatusWord = 0x6802
	StatusSignVerifyError         StatusWord = 0x6F01
	StatusExecutionError          StatusWord = 0x6F00
)

var (
	ErrMalformedHeader          = errors.New("malformed apdu header")
	ErrLengthMismatch           = errors.New("apdu data length mismatch")
	ErrClassNotSupported        = errors.New("class not supported")
	ErrUnsupportedInstruction   = errors.New("instruction not supported")
	ErrInvalidParameters        = errors.New("invalid p1/p2")
	ErrInvalidDerivationPath    = errors.New("invalid derivation path")
	ErrUnexpectedPacketSequence = errors.New("unexpected packet sequence")
	ErrPayloadTooLarge          = errors.New("payload too large")
	ErrUserRejected             = errors.New("rejected by user")
	ErrKeyDerivation            = errors.New("key derivation failed")
	ErrSigningFailed            = errors.New("signing failed")
)

// statusTable is the documented, stable mapping of failures to status words.
var statusTable = []struct {
	err    error
	status StatusWord
}{
	{ErrMalformedHeader, StatusWrongLength},
	{ErrLengthMismatch, StatusLengthMismatch},
	{ErrClassNotSupported, StatusClassNotSupported},
	{ErrUnsupportedInstruction, StatusInstructionNotSupported},
	{ErrInvalidParameters, StatusInvalidP1P2},
	{ErrInvalidDerivationPath, StatusDataInvalid},
	{ErrUnexpectedPacketSequence, StatusConditionsNotSatisfied},
	{ErrPayloadTooLarge, StatusNotEnoughMemory},
	{ErrUserRejected, StatusTransactionRejected},
	{ErrKeyDerivation, StatusErrorDerivingKeys},
	{ErrSigningFailed, StatusSignVerifyError},
}

// StatusFor translates a handler outcome into its status word.
func StatusFor(err error) StatusWord {
	if err == nil {
		return StatusOK
	}
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return StatusExecutionError
}

// errorFor is the inverse of StatusFor, used on the host side.
func errorFor(status StatusWord) error {
	for _, entry := range statusTable {
		if entry.status == status {
			return entry.err
		}
	}
	return nil
}

func (sw StatusWord) SW1() byte { return byte(sw >> 8) }
func (sw StatusWord) SW2() byte { return byte(sw) }

func (sw StatusWord) String() string {
	return fmt.Sprintf("%04X", uint16(sw))
}

// StatusError is returned by the Client when the device answers with a
// status word other than 0x9000.
type StatusError struct {
	Status StatusWord
}

func (e *StatusError) Error() string {
	if err := errorFor(e.Status); err != nil {
		return fmt.Sprintf("device returned %s: %v", e.Status, err)
	}
	return fmt.Sprintf("device returned %s", e.Status)
}

func (e *StatusError) Unwrap() error {
	return errorFor(e.Status)
}
