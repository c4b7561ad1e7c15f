package walletapp

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// paymentAddress encodes the pay-to-witness-pubkey-hash address of a public
// key for the given network.
func paymentAddress(publicKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {

	hash160 := btcutil.Hash160(publicKey.SerializeCompressed())

	address, err := btcutil.NewAddressWitnessPubKeyHash(hash160, params)

	if err != nil {
		return "", err
	}

	return address.EncodeAddress(), nil

}

// handleGetAddress answers GetAddressSecp256k1 with the compressed public
// key followed by the ASCII address.
func (app *App) handleGetAddress(ctx context.Context, cmd Command) ([]byte, error) {

	path, err := ParseDerivationPath(cmd.Data)

	if err != nil {
		return nil, err
	}

	publicKey, err := app.keyring.PublicKey(path)

	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrKeyDerivation)
	}

	address, err := paymentAddress(publicKey, app.params)

	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrKeyDerivation)
	}

	app.log.Debug("ADDRESS", "Path", path.String(), "Address", address)

	if cmd.P1 != P1OnlyRetrieve {

		if err := app.confirm(ctx, addressReview(path, address)); err != nil {
			return nil, err
		}

	}

	return append(publicKey.SerializeCompressed(), address...), nil

}
