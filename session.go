package walletapp

import (
	"fmt"
)

// DefaultBufferCapacity bounds the transaction a session can accumulate.
const DefaultBufferCapacity = 4096

// SessionState is the state of the multi-packet signing stream.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAccumulating
	StateReadyToSign
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAccumulating:
		return "Accumulating"
	case StateReadyToSign:
		return "ReadyToSign"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session accumulates a transaction across SignSecp256k1 packets. Its
// buffer is allocated once at construction and never grows.
type Session struct {
	state     SessionState
	path      DerivationPath
	buffer    []byte
	highWater int
}

func NewSession(capacity int) *Session {

	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	return &Session{buffer: make([]byte, 0, capacity)}

}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) Path() DerivationPath {
	return s.path
}

func (s *Session) Len() int {
	return len(s.buffer)
}

func (s *Session) Cap() int {
	return cap(s.buffer)
}

// HighWaterMark is the largest payload the session has held.
func (s *Session) HighWaterMark() int {
	return s.highWater
}

// Begin starts a new stream for path. It fails, and resets the session, if a
// stream is already open.
func (s *Session) Begin(path DerivationPath) error {

	if s.state != StateIdle {
		state := s.state
		s.Reset()
		return fmt.Errorf("init while %s: %w", state, ErrUnexpectedPacketSequence)
	}

	s.clear()
	s.path = path
	s.state = StateAccumulating

	return nil

}

// Append adds a chunk to the open stream. Overflowing the buffer resets the
// session.
func (s *Session) Append(data []byte) error {

	if s.state != StateAccumulating {
		return fmt.Errorf("chunk while %s: %w", s.state, ErrUnexpectedPacketSequence)
	}

	if len(s.buffer)+len(data) > cap(s.buffer) {
		size := len(s.buffer) + len(data)
		s.Reset()
		return fmt.Errorf("%d bytes exceeds %d: %w", size, cap(s.buffer), ErrPayloadTooLarge)
	}

	s.buffer = append(s.buffer, data...)

	if len(s.buffer) > s.highWater {
		s.highWater = len(s.buffer)
	}

	return nil

}

// Finalize closes the stream and hands out the completed payload. The
// returned slice aliases the session buffer and is only valid until Reset.
func (s *Session) Finalize() ([]byte, DerivationPath, error) {

	if s.state != StateAccumulating {
		return nil, nil, fmt.Errorf("finalize while %s: %w", s.state, ErrUnexpectedPacketSequence)
	}

	s.state = StateReadyToSign

	return s.buffer, s.path, nil

}

// Reset discards any buffered payload and returns to Idle.
func (s *Session) Reset() {
	s.clear()
	s.path = nil
	s.state = StateIdle
}

func (s *Session) clear() {
	clear(s.buffer[:cap(s.buffer)])
	s.buffer = s.buffer[:0]
}
