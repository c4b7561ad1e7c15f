package walletapp

import (
	"context"
	"fmt"
)

// handleSign drives the signing session. Every failure leaves the session
// Idle, except a stray Add/Last which finds it Idle already.
func (app *App) handleSign(ctx context.Context, cmd Command) ([]byte, error) {

	payloadType, err := ParsePayloadType(cmd.P1)

	if err != nil {
		app.session.Reset()
		return nil, err
	}

	app.log.Debug("SIGN", "PayloadType", payloadType, "State", app.session.State(), "Chunk", len(cmd.Data))

	switch payloadType {

	case PayloadInit:

		if app.session.State() != StateIdle {
			return nil, app.session.Begin(nil)
		}

		path, err := ParseDerivationPath(cmd.Data)

		if err != nil {
			return nil, err
		}

		return nil, app.session.Begin(path)

	case PayloadAdd:

		return nil, app.session.Append(cmd.Data)

	default:

		return app.signLast(ctx, cmd.Data)

	}

}

func (app *App) signLast(ctx context.Context, chunk []byte) ([]byte, error) {

	if err := app.session.Append(chunk); err != nil {
		return nil, err
	}

	defer app.session.Reset()

	payload, path, err := app.session.Finalize()

	if err != nil {
		return nil, err
	}

	if err := app.confirm(ctx, signReview(path, payload)); err != nil {
		return nil, err
	}

	signature, err := app.keyring.Sign(path, payload)

	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrSigningFailed)
	}

	app.log.Debug("SIGN", "Path", path.String(), "Size", len(payload), "Signature", fmt.Sprintf("%x", signature))

	return signature, nil

}
