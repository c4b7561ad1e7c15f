package walletapp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ChunkSize is how many payload bytes the Client puts in each Add/Last packet.
const ChunkSize = 250

// Exchanger sends one command APDU and returns the raw response APDU.
// *transport.Conn satisfies it. Wrap a PC/SC card with FromTransmitter.
type Exchanger interface {
	Exchange(command []byte) ([]byte, error)
}

// ExchangerFunc adapts a function to the Exchanger interface.
type ExchangerFunc func(command []byte) ([]byte, error)

func (f ExchangerFunc) Exchange(command []byte) ([]byte, error) {
	return f(command)
}

// Transmitter is the shape of a PC/SC card handle.
type Transmitter interface {
	Transmit(command []byte) ([]byte, error)
}

// FromTransmitter lets a PC/SC card handle act as an Exchanger.
func FromTransmitter(t Transmitter) Exchanger {
	return ExchangerFunc(t.Transmit)
}

// Client is the host side of the protocol.
type Client struct {
	device Exchanger
	class  byte
}

func NewClient(device Exchanger, class byte) *Client {
	return &Client{device: device, class: class}
}

func (c *Client) exchange(ins Instruction, p1, p2 byte, data []byte) ([]byte, error) {

	command, err := Command{Class: c.class, Ins: byte(ins), P1: p1, P2: p2, Data: data}.Bytes()

	if err != nil {
		return nil, err
	}

	slog.Debug("Transmit", "C-APDU", fmt.Sprintf("%x", command))

	raw, err := c.device.Exchange(command)

	if err != nil {
		return nil, err
	}

	slog.Debug("Receive", "R-APDU", fmt.Sprintf("%x", raw))

	response, err := parseResponse(raw)

	if err != nil {
		return nil, err
	}

	if !response.OK() {
		return nil, &StatusError{Status: response.Status}
	}

	return response.Data, nil

}

func (c *Client) Version() (VersionInfo, error) {

	data, err := c.exchange(InstructionGetVersion, 0, 0, nil)

	if err != nil {
		return VersionInfo{}, err
	}

	return ParseVersionInfo(data)

}

// Address retrieves the public key and address for path. With show set the
// device asks the user to confirm the address first.
func (c *Client) Address(path DerivationPath, show bool) (*secp256k1.PublicKey, string, error) {

	p1 := P1OnlyRetrieve

	if show {
		p1 = P1ShowAddressInDevice
	}

	data, err := c.exchange(InstructionGetAddressSecp256k1, p1, 0, path.Bytes())

	if err != nil {
		return nil, "", err
	}

	if len(data) <= 33 {
		return nil, "", errors.New("address response too short")
	}

	publicKey, err := secp256k1.ParsePubKey(data[:33])

	if err != nil {
		return nil, "", err
	}

	return publicKey, string(data[33:]), nil

}

// Sign streams payload to the device as Init, Add... and Last packets and
// returns the signature once the user has approved it.
func (c *Client) Sign(path DerivationPath, payload []byte) ([]byte, error) {

	if _, err := c.exchange(InstructionSignSecp256k1, byte(PayloadInit), 0, path.Bytes()); err != nil {
		return nil, err
	}

	for len(payload) > ChunkSize {

		if _, err := c.exchange(InstructionSignSecp256k1, byte(PayloadAdd), 0, payload[:ChunkSize]); err != nil {
			return nil, err
		}

		payload = payload[ChunkSize:]
	}

	signature, err := c.exchange(InstructionSignSecp256k1, byte(PayloadLast), 0, payload)

	if err != nil {
		return nil, err
	}

	if len(signature) <= CompactSignatureLength {
		return nil, errors.New("signature response too short")
	}

	return signature, nil

}
