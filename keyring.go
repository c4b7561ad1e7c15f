package walletapp

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// CompactSignatureLength is the size of the recoverable signature that
// starts every SignSecp256k1 response.
const CompactSignatureLength = 65

// Keyring holds the secret key material. It derives public keys and signs
// payloads, and is the only component that touches private keys.
type Keyring interface {
	PublicKey(path DerivationPath) (*btcec.PublicKey, error)
	Sign(path DerivationPath, payload []byte) ([]byte, error)
}

// HDKeyring derives secp256k1 keys from a BIP-32 master key.
type HDKeyring struct {
	master *hdkeychain.ExtendedKey
}

func NewHDKeyring(seed []byte) (*HDKeyring, error) {

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)

	if err != nil {
		return nil, err
	}

	return &HDKeyring{master: master}, nil

}

// NewHDKeyringFromMnemonic builds a keyring from a BIP-39 mnemonic and an
// optional passphrase.
func NewHDKeyringFromMnemonic(mnemonic, passphrase string) (*HDKeyring, error) {

	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}

	return NewHDKeyring(bip39.NewSeed(mnemonic, passphrase))

}

func (k *HDKeyring) derive(path DerivationPath) (*hdkeychain.ExtendedKey, error) {

	key := k.master

	for _, index := range path {

		child, err := key.Derive(index)

		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		key = child
	}

	return key, nil

}

func (k *HDKeyring) PublicKey(path DerivationPath) (*btcec.PublicKey, error) {

	key, err := k.derive(path)

	if err != nil {
		return nil, err
	}

	return key.ECPubKey()

}

// Sign signs sha256(payload) and returns the compact recoverable signature
// followed by the DER encoding of the same signature.
func (k *HDKeyring) Sign(path DerivationPath, payload []byte) ([]byte, error) {

	key, err := k.derive(path)

	if err != nil {
		return nil, err
	}

	privateKey, err := key.ECPrivKey()

	if err != nil {
		return nil, err
	}

	defer privateKey.Zero()

	digest := sha256.Sum256(payload)

	compact, err := ecdsa.SignCompact(privateKey, digest[:], true)

	if err != nil {
		return nil, err
	}

	der := ecdsa.Sign(privateKey, digest[:]).Serialize()

	return append(compact, der...), nil

}
