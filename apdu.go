package walletapp

import (
	"fmt"

	"github.com/skythen/apdu"
)

const (
	headerLength = 5

	// MaxDataLength is the largest command body a short APDU can declare.
	MaxDataLength = 0xFF
)

// Command is a decoded command APDU. Data aliases the buffer it was parsed
// from and must not be retained past the current dispatch.
type Command struct {
	Class byte
	Ins   byte
	P1    byte
	P2    byte
	Data  []byte
}

// ParseCommand decodes the fixed five byte header CLA INS P1 P2 Lc and checks
// that exactly Lc bytes follow it.
func ParseCommand(raw []byte) (Command, error) {

	if len(raw) < headerLength {
		return Command{}, fmt.Errorf("%d bytes: %w", len(raw), ErrMalformedHeader)
	}

	declared := int(raw[4])
	actual := len(raw) - headerLength

	if declared != actual {
		return Command{}, fmt.Errorf("declared %d, received %d: %w", declared, actual, ErrLengthMismatch)
	}

	return Command{
		Class: raw[0],
		Ins:   raw[1],
		P1:    raw[2],
		P2:    raw[3],
		Data:  raw[headerLength:],
	}, nil

}

func (c Command) Instruction() Instruction {
	return ParseInstruction(c.Ins)
}

// Bytes encodes the command in short form. An empty body still carries an
// explicit Lc of zero.
func (c Command) Bytes() ([]byte, error) {

	if len(c.Data) > MaxDataLength {
		return nil, fmt.Errorf("%d data bytes: %w", len(c.Data), ErrPayloadTooLarge)
	}

	if len(c.Data) == 0 {
		return []byte{c.Class, c.Ins, c.P1, c.P2, 0x00}, nil
	}

	capdu := apdu.Capdu{Cla: c.Class, Ins: c.Ins, P1: c.P1, P2: c.P2, Data: c.Data}

	return capdu.Bytes()

}
