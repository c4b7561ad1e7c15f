package walletapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
)

// App is the device side of the protocol. It owns the signing session and
// processes one command at a time.
type App struct {
	mu sync.Mutex

	class     byte
	version   VersionInfo
	params    *chaincfg.Params
	session   *Session
	keyring   Keyring
	confirmer Confirmer
	log       *slog.Logger
}

// Option customises an App.
type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(app *App) {
		app.log = logger
	}
}

func New(config Config, keyring Keyring, confirmer Confirmer, opts ...Option) (*App, error) {

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if keyring == nil || confirmer == nil {
		return nil, errors.New("keyring and confirmer are required")
	}

	params, err := config.NetworkParams()

	if err != nil {
		return nil, err
	}

	app := &App{
		class:     config.Class,
		version:   config.Version,
		params:    params,
		session:   NewSession(config.BufferCapacity),
		keyring:   keyring,
		confirmer: confirmer,
		log:       slog.Default(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app, nil

}

// Session exposes the signing session for inspection.
func (app *App) Session() *Session {
	return app.session
}

// Dispatch decodes one raw command, routes it and returns the response.
// Failures never escape as errors, they are encoded in the status word.
func (app *App) Dispatch(ctx context.Context, raw []byte) Response {

	app.mu.Lock()
	defer app.mu.Unlock()

	data, err := app.dispatch(ctx, raw)

	response := NewResponse(data, err)

	if err != nil {
		app.log.Debug("APDU failed", "Status", response.Status, "Error", err, "State", app.session.State())
	} else {
		app.log.Debug("APDU done", "Status", response.Status, "Length", len(response.Data))
	}

	return response

}

// Exchange is Dispatch for transports that deal in raw bytes.
func (app *App) Exchange(ctx context.Context, raw []byte) []byte {
	return app.Dispatch(ctx, raw).Bytes()
}

func (app *App) dispatch(ctx context.Context, raw []byte) ([]byte, error) {

	cmd, err := ParseCommand(raw)

	if err != nil {
		return nil, err
	}

	app.log.Debug("APDU", "CLA", cmd.Class, "INS", cmd.Instruction(), "P1", cmd.P1, "P2", cmd.P2, "Data", fmt.Sprintf("%x", cmd.Data))

	if cmd.Class != app.class {
		return nil, fmt.Errorf("class %#02x: %w", cmd.Class, ErrClassNotSupported)
	}

	switch cmd.Instruction() {
	case InstructionGetVersion:
		return app.handleGetVersion(cmd)
	case InstructionGetAddressSecp256k1:
		return app.handleGetAddress(ctx, cmd)
	case InstructionSignSecp256k1:
		return app.handleSign(ctx, cmd)
	default:
		return nil, fmt.Errorf("ins %#02x: %w", cmd.Ins, ErrUnsupportedInstruction)
	}

}

// confirm blocks on the Confirmation Gate. Only an explicit approval lets
// the caller continue.
func (app *App) confirm(ctx context.Context, review Review) error {

	decision, err := app.confirmer.RequestApproval(ctx, review)

	if err != nil {
		app.log.Warn("Confirmation failed", "Title", review.Title, "Error", err)
		return fmt.Errorf("%v: %w", err, ErrUserRejected)
	}

	if decision != Approved {
		return ErrUserRejected
	}

	return nil

}
