package walletapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	session := NewSession(16)
	assert.Equal(t, StateIdle, session.State())
	assert.Equal(t, 16, session.Cap())

	require.NoError(t, session.Begin(testPath))
	assert.Equal(t, StateAccumulating, session.State())

	require.NoError(t, session.Append([]byte{1, 2, 3}))
	require.NoError(t, session.Append(nil))
	require.NoError(t, session.Append([]byte{4}))

	payload, path, err := session.Finalize()
	require.NoError(t, err)
	assert.Equal(t, StateReadyToSign, session.State())
	assert.Equal(t, []byte{1, 2, 3, 4}, payload)
	assert.Equal(t, testPath, path)

	session.Reset()
	assert.Equal(t, StateIdle, session.State())
	assert.Zero(t, session.Len())
	assert.Nil(t, session.Path())
	assert.Equal(t, 4, session.HighWaterMark())
}

func TestSessionDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultBufferCapacity, NewSession(0).Cap())
	assert.Equal(t, DefaultBufferCapacity, NewSession(-1).Cap())
}

func TestSessionAppendWhileIdle(t *testing.T) {
	session := NewSession(16)

	assert.ErrorIs(t, session.Append([]byte{1}), ErrUnexpectedPacketSequence)
	assert.Equal(t, StateIdle, session.State())

	_, _, err := session.Finalize()
	assert.ErrorIs(t, err, ErrUnexpectedPacketSequence)
}

func TestSessionBeginWhileAccumulating(t *testing.T) {
	session := NewSession(16)

	require.NoError(t, session.Begin(testPath))
	require.NoError(t, session.Append([]byte{1}))

	assert.ErrorIs(t, session.Begin(testPath), ErrUnexpectedPacketSequence)
	assert.Equal(t, StateIdle, session.State())
	assert.Zero(t, session.Len())
}

func TestSessionOverflow(t *testing.T) {
	session := NewSession(8)

	require.NoError(t, session.Begin(testPath))
	require.NoError(t, session.Append(make([]byte, 8)))
	assert.Equal(t, 8, session.Len())

	assert.ErrorIs(t, session.Append([]byte{1}), ErrPayloadTooLarge)
	assert.Equal(t, StateIdle, session.State())
	assert.Zero(t, session.Len())
	assert.Equal(t, 8, session.Cap())
}

func TestSessionResetWipesBuffer(t *testing.T) {
	session := NewSession(4)

	require.NoError(t, session.Begin(testPath))
	require.NoError(t, session.Append([]byte{0xDE, 0xAD, 0xBE, 0xEF}))

	session.Reset()

	assert.Equal(t, []byte{0, 0, 0, 0}, session.buffer[:4])
}
