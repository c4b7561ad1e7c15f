package walletapp

import (
	"errors"

	"github.com/fxamacker/cbor/v2"
)

// Transaction is the structured payload a host may stream for signing.
// Payloads that do not decode as a Transaction are still signed, but are
// reviewed blind.
type Transaction struct {
	To     string `cbor:"to"`
	Amount uint64 `cbor:"amount"`
	Fee    uint64 `cbor:"fee"`
	Nonce  uint64 `cbor:"nonce"`
	Memo   string `cbor:"memo,omitempty"`
}

var transactionDecMode, _ = cbor.DecOptions{ExtraReturnErrors: cbor.ExtraDecErrorUnknownField}.DecMode()

// EncodeTransaction serializes tx the way DecodeTransaction expects it.
func EncodeTransaction(tx Transaction) ([]byte, error) {
	return cbor.Marshal(tx)
}

// DecodeTransaction strictly decodes payload. Unknown fields, trailing bytes
// and a missing recipient are all errors.
func DecodeTransaction(payload []byte) (Transaction, error) {

	var tx Transaction

	if err := transactionDecMode.Unmarshal(payload, &tx); err != nil {
		return Transaction{}, err
	}

	if tx.To == "" {
		return Transaction{}, errors.New("transaction has no recipient")
	}

	return tx, nil

}
