// Command cli talks to a running emulator over its websocket endpoint.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/schjonhaug/walletapp"
	"github.com/schjonhaug/walletapp/transport"
)

const defaultPath = "m/84'/0'/0'/0/0"

var (
	urlFlag = &cli.StringFlag{
		Name:  "url",
		Usage: "Emulator websocket URL",
		Value: "ws://127.0.0.1:9998",
	}
	classFlag = &cli.UintFlag{
		Name:  "cla",
		Usage: "APDU class byte",
		Value: 0x00,
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Log every APDU exchanged",
	}
	pathFlag = &cli.StringFlag{
		Name:  "path",
		Usage: "BIP-32 derivation path",
		Value: defaultPath,
	}
	showFlag = &cli.BoolFlag{
		Name:  "show",
		Usage: "Show the address on the device and wait for confirmation",
	}
	fileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "Sign the raw contents of this file",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Recipient of the transaction",
	}
	amountFlag = &cli.Uint64Flag{
		Name:  "amount",
		Usage: "Amount to send",
	}
	feeFlag = &cli.Uint64Flag{
		Name:  "fee",
		Usage: "Fee to pay",
	}
	nonceFlag = &cli.Uint64Flag{
		Name:  "nonce",
		Usage: "Transaction nonce",
	}
	memoFlag = &cli.StringFlag{
		Name:  "memo",
		Usage: "Optional memo",
	}
)

var (
	versionCommand = &cli.Command{
		Name:   "version",
		Usage:  "Print the application version",
		Action: version,
	}
	addressCommand = &cli.Command{
		Name:   "address",
		Usage:  "Derive the address for a path",
		Flags:  []cli.Flag{pathFlag, showFlag},
		Action: address,
	}
	signCommand = &cli.Command{
		Name:   "sign",
		Usage:  "Sign a transaction or a raw payload",
		Flags:  []cli.Flag{pathFlag, fileFlag, toFlag, amountFlag, feeFlag, nonceFlag, memoFlag},
		Action: sign,
	}
)

func main() {

	app := &cli.App{
		Name:     "cli",
		Usage:    "Host side client for the wallet application",
		Flags:    []cli.Flag{urlFlag, classFlag, debugFlag},
		Commands: []*cli.Command{versionCommand, addressCommand, signCommand},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool(debugFlag.Name) {
				walletapp.EnableDebugLogging()
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

func withClient(ctx *cli.Context, fn func(*walletapp.Client) error) error {

	conn, err := transport.Dial(ctx.Context, ctx.String(urlFlag.Name))

	if err != nil {
		return err
	}

	defer conn.Close()

	return fn(walletapp.NewClient(conn, byte(ctx.Uint(classFlag.Name))))

}

func version(ctx *cli.Context) error {

	return withClient(ctx, func(client *walletapp.Client) error {

		info, err := client.Version()

		if err != nil {
			return err
		}

		fmt.Println("Version: ", info)
		fmt.Println("Mode:    ", info.AppMode)
		fmt.Println("Locked:  ", info.Locked)
		fmt.Printf("Target:   %08x\n", info.TargetID)

		return nil
	})

}

func address(ctx *cli.Context) error {

	path, err := walletapp.ParsePathString(ctx.String(pathFlag.Name))

	if err != nil {
		return err
	}

	return withClient(ctx, func(client *walletapp.Client) error {

		publicKey, addr, err := client.Address(path, ctx.Bool(showFlag.Name))

		if err != nil {
			return err
		}

		fmt.Println("Path:      ", path)
		fmt.Printf("Public Key: %x\n", publicKey.SerializeCompressed())
		fmt.Println("Address:   ", addr)

		return nil
	})

}

func payload(ctx *cli.Context) ([]byte, error) {

	if file := ctx.String(fileFlag.Name); file != "" {
		return os.ReadFile(file)
	}

	if !ctx.IsSet(toFlag.Name) {
		return nil, errors.New("either --file or --to is required")
	}

	return walletapp.EncodeTransaction(walletapp.Transaction{
		To:     ctx.String(toFlag.Name),
		Amount: ctx.Uint64(amountFlag.Name),
		Fee:    ctx.Uint64(feeFlag.Name),
		Nonce:  ctx.Uint64(nonceFlag.Name),
		Memo:   ctx.String(memoFlag.Name),
	})

}

func sign(ctx *cli.Context) error {

	path, err := walletapp.ParsePathString(ctx.String(pathFlag.Name))

	if err != nil {
		return err
	}

	data, err := payload(ctx)

	if err != nil {
		return err
	}

	return withClient(ctx, func(client *walletapp.Client) error {

		publicKey, _, err := client.Address(path, false)

		if err != nil {
			return err
		}

		signature, err := client.Sign(path, data)

		if err != nil {
			return err
		}

		if err := walletapp.VerifySignature(publicKey, signature, data); err != nil {
			return err
		}

		fmt.Println("Compact:", hex.EncodeToString(signature[:walletapp.CompactSignatureLength]))
		fmt.Println("DER:    ", hex.EncodeToString(signature[walletapp.CompactSignatureLength:]))

		return nil
	})

}
