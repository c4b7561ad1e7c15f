package walletapp

import "fmt"

// Instruction is the decoded INS byte of a command.
type Instruction int

const (
	// InstructionUnknown is what every unsupported INS byte decodes to. It
	// does not correspond to any byte value.
	InstructionUnknown Instruction = -1

	InstructionGetVersion          Instruction = 0x00
	InstructionGetAddressSecp256k1 Instruction = 0x01
	InstructionSignSecp256k1       Instruction = 0x02
)

func ParseInstruction(ins byte) Instruction {
	switch Instruction(ins) {
	case InstructionGetVersion, InstructionGetAddressSecp256k1, InstructionSignSecp256k1:
		return Instruction(ins)
	default:
		return InstructionUnknown
	}
}

func (ins Instruction) String() string {
	switch ins {
	case InstructionGetVersion:
		return "GetVersion"
	case InstructionGetAddressSecp256k1:
		return "GetAddressSecp256k1"
	case InstructionSignSecp256k1:
		return "SignSecp256k1"
	default:
		return "Unknown"
	}
}

// PayloadType is carried in P1 of SignSecp256k1 and tells the signing
// session where a chunk sits in the stream.
type PayloadType uint8

const (
	PayloadInit PayloadType = 0x00
	PayloadAdd  PayloadType = 0x01
	PayloadLast PayloadType = 0x02
)

func ParsePayloadType(p1 byte) (PayloadType, error) {
	switch PayloadType(p1) {
	case PayloadInit, PayloadAdd, PayloadLast:
		return PayloadType(p1), nil
	default:
		return 0, fmt.Errorf("payload type %#02x: %w", p1, ErrInvalidParameters)
	}
}

func (pt PayloadType) String() string {
	switch pt {
	case PayloadInit:
		return "Init"
	case PayloadAdd:
		return "Add"
	case PayloadLast:
		return "Last"
	default:
		return fmt.Sprintf("PayloadType(%d)", uint8(pt))
	}
}

// P1 values of GetAddressSecp256k1. Any nonzero value asks for the address
// to be shown and confirmed on the device.
const (
	P1OnlyRetrieve        byte = 0x00
	P1ShowAddressInDevice byte = 0x01
)
