// Command scard drives the wallet application on a card in a PC/SC reader.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ebfe/scard"

	"github.com/schjonhaug/walletapp"
)

func die(err error) {
	fmt.Println(err)
	os.Exit(1)
}

func waitUntilCardPresent(ctx *scard.Context, readers []string) (int, error) {
	rs := make([]scard.ReaderState, len(readers))
	for i := range rs {
		rs[i].Reader = readers[i]
		rs[i].CurrentState = scard.StateUnaware
	}

	for {
		for i := range rs {
			if rs[i].EventState&scard.StatePresent != 0 {
				return i, nil
			}
			rs[i].CurrentState = rs[i].EventState
		}
		err := ctx.GetStatusChange(rs, -1)
		if err != nil {
			return -1, err
		}
	}
}

func main() {

	if len(os.Args) < 2 {
		die(errors.New("usage: scard version | address <path> [show] | sign <path> <file>"))
	}

	if os.Getenv("DEBUG") != "" {
		walletapp.EnableDebugLogging()
	}

	// Establish a context
	ctx, err := scard.EstablishContext()
	if err != nil {
		die(err)
	}
	defer ctx.Release()

	// List available readers
	readers, err := ctx.ListReaders()
	if err != nil {
		die(err)
	}

	fmt.Printf("Found %d readers:\n", len(readers))
	for i, reader := range readers {
		fmt.Printf("[%d] %s\n", i, reader)
	}

	if len(readers) == 0 {
		die(errors.New("no readers"))
	}

	fmt.Println("Waiting for a Card")
	index, err := waitUntilCardPresent(ctx, readers)
	if err != nil {
		die(err)
	}

	fmt.Println("Connecting to card in ", readers[index])
	card, err := ctx.Connect(readers[index], scard.ShareExclusive, scard.ProtocolAny)
	if err != nil {
		die(err)
	}
	defer card.Disconnect(scard.ResetCard)

	client := walletapp.NewClient(walletapp.FromTransmitter(card), 0x00)

	if err := run(client, os.Args[1:]); err != nil {
		die(err)
	}

}

func run(client *walletapp.Client, args []string) error {

	switch args[0] {

	case "version":

		info, err := client.Version()
		if err != nil {
			return err
		}

		fmt.Println("Version:", info)

	case "address":

		if len(args) < 2 {
			return errors.New("missing path")
		}

		path, err := walletapp.ParsePathString(args[1])
		if err != nil {
			return err
		}

		publicKey, address, err := client.Address(path, len(args) > 2 && args[2] == "show")
		if err != nil {
			return err
		}

		fmt.Printf("Public Key: %x\n", publicKey.SerializeCompressed())
		fmt.Println("Address:   ", address)

	case "sign":

		if len(args) < 3 {
			return errors.New("missing path or file")
		}

		path, err := walletapp.ParsePathString(args[1])
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(args[2])
		if err != nil {
			return err
		}

		signature, err := client.Sign(path, payload)
		if err != nil {
			return err
		}

		fmt.Printf("Signature: %x\n", signature)

	default:
		return errors.New("unknown command")

	}

	return nil

}
