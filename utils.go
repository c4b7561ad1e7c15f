package walletapp

import (
	"crypto/sha256"
	"encoding/base32"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Identity converts a public key into a hash formatted for humans, e.g. for
// telling emulator instances apart.
func Identity(publicKey *btcec.PublicKey) string {
	// - sha256(compressed-pubkey)
	// - skip first 8 bytes of that
	// - base32 and take first 20 chars in 4 groups of five
	// - insert dashes

	checksum := sha256.Sum256(publicKey.SerializeCompressed())

	s := base32.StdEncoding.EncodeToString(checksum[8:])[:20]

	var groups []string
	for i := 0; i < len(s); i += 5 {
		groups = append(groups, s[i:i+5])
	}

	return strings.Join(groups, "-")

}

// RecoverSigner returns the public key that produced the compact part of a
// SignSecp256k1 response over payload.
func RecoverSigner(signature, payload []byte) (*btcec.PublicKey, error) {

	if len(signature) < CompactSignatureLength {
		return nil, errors.New("signature too short")
	}

	digest := sha256.Sum256(payload)

	publicKey, _, err := ecdsa.RecoverCompact(signature[:CompactSignatureLength], digest[:])

	return publicKey, err

}

// VerifySignature checks both encodings of a SignSecp256k1 response against
// the expected public key.
func VerifySignature(publicKey *btcec.PublicKey, signature, payload []byte) error {

	recovered, err := RecoverSigner(signature, payload)

	if err != nil {
		return err
	}

	if !recovered.IsEqual(publicKey) {
		return errors.New("signature was made by a different key")
	}

	der, err := ecdsa.ParseDERSignature(signature[CompactSignatureLength:])

	if err != nil {
		return err
	}

	digest := sha256.Sum256(payload)

	if !der.Verify(digest[:], publicKey) {
		return errors.New("invalid DER signature")
	}

	return nil

}
