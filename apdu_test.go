package walletapp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand([]byte{0x00, 0x02, 0x01, 0x00, 0x03, 0xAA, 0xBB, 0xCC})
	require.NoError(t, err)

	assert.Equal(t, byte(0x00), cmd.Class)
	assert.Equal(t, InstructionSignSecp256k1, cmd.Instruction())
	assert.Equal(t, byte(0x01), cmd.P1)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, cmd.Data)
}

func TestParseCommandShortHeader(t *testing.T) {
	for n := 0; n < 5; n++ {
		_, err := ParseCommand(make([]byte, n))
		assert.ErrorIs(t, err, ErrMalformedHeader)
	}
}

func TestParseCommandLengthMismatch(t *testing.T) {
	_, err := ParseCommand([]byte{0x00, 0x00, 0x00, 0x00, 0x01})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ParseCommand([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestParseCommandMaxBody(t *testing.T) {
	raw := append([]byte{0x00, 0x02, 0x01, 0x00, 0xFF}, bytes.Repeat([]byte{0x5A}, 255)...)

	cmd, err := ParseCommand(raw)
	require.NoError(t, err)
	assert.Len(t, cmd.Data, 255)
}

func TestParseInstruction(t *testing.T) {
	assert.Equal(t, InstructionGetVersion, ParseInstruction(0x00))
	assert.Equal(t, InstructionGetAddressSecp256k1, ParseInstruction(0x01))
	assert.Equal(t, InstructionSignSecp256k1, ParseInstruction(0x02))

	for ins := 0x03; ins <= 0xFF; ins++ {
		assert.Equal(t, InstructionUnknown, ParseInstruction(byte(ins)))
	}
}

func TestParsePayloadType(t *testing.T) {
	for p1, want := range map[byte]PayloadType{0: PayloadInit, 1: PayloadAdd, 2: PayloadLast} {
		got, err := ParsePayloadType(p1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePayloadType(0x03)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCommandBytes(t *testing.T) {
	raw, err := Command{Class: 0x00, Ins: 0x00}.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00, 0x00}, raw)

	raw, err = Command{Class: 0x80, Ins: 0x02, P1: 0x01, Data: []byte{1, 2}}.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x02, 0x01, 0x00, 0x02, 1, 2}, raw)

	cmd, err := ParseCommand(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, cmd.Data)

	_, err = Command{Data: make([]byte, 256)}.Bytes()
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02, 0x90, 0x00}, NewResponse([]byte{1, 2}, nil).Bytes())
	assert.Equal(t, []byte{0x69, 0x86}, NewResponse([]byte{1, 2}, ErrUserRejected).Bytes())

	response, err := parseResponse([]byte{0x01, 0x02, 0x90, 0x00})
	require.NoError(t, err)
	assert.True(t, response.OK())
	assert.Equal(t, []byte{1, 2}, response.Data)

	response, err = parseResponse([]byte{0x6A, 0x84})
	require.NoError(t, err)
	assert.Equal(t, StatusNotEnoughMemory, response.Status)
	assert.Empty(t, response.Data)

	_, err = parseResponse([]byte{0x90})
	assert.Error(t, err)
}

func TestVersionInfo(t *testing.T) {
	info := VersionInfo{AppMode: 1, Major: 2, Minor: 3, Patch: 4, Locked: true, TargetID: 0x31100004}

	raw := info.Bytes()
	assert.Equal(t, []byte{1, 2, 3, 4, 1, 0x31, 0x10, 0x00, 0x04}, raw)
	assert.Equal(t, "2.3.4", info.String())

	parsed, err := ParseVersionInfo(raw)
	require.NoError(t, err)
	assert.Equal(t, info, parsed)

	_, err = ParseVersionInfo(raw[:8])
	assert.Error(t, err)
}
