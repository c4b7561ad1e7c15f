// Command emulator runs the wallet application and serves its APDU
// interface over a websocket, asking for confirmations on the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/schjonhaug/walletapp"
	"github.com/schjonhaug/walletapp/transport"
)

// The well known BIP-39 test vector mnemonic. Never use it for real funds.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Usage: "Websocket listen address (overrides config)",
	}
	confirmFlag = &cli.StringFlag{
		Name:  "confirm",
		Usage: "Confirmation mode: console, approve or reject (overrides config)",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func main() {

	app := &cli.App{
		Name:   "emulator",
		Usage:  "Run the wallet application behind a websocket APDU endpoint",
		Flags:  []cli.Flag{configFlag, listenFlag, confirmFlag, debugFlag},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

func loadConfig(ctx *cli.Context) (walletapp.Config, error) {

	config := walletapp.DefaultConfig()

	if path := ctx.String(configFlag.Name); path != "" {

		loaded, err := walletapp.LoadConfig(path)

		if err != nil {
			return config, err
		}

		config = loaded
	}

	if ctx.IsSet(listenFlag.Name) {
		config.Listen = ctx.String(listenFlag.Name)
	}

	if ctx.IsSet(confirmFlag.Name) {
		config.Confirm = ctx.String(confirmFlag.Name)
	}

	if ctx.Bool(debugFlag.Name) {
		config.Debug = true
	}

	return config, config.Validate()

}

func newConfirmer(mode string) (walletapp.Confirmer, func(), error) {

	switch mode {
	case walletapp.ConfirmApprove:
		return walletapp.PolicyConfirmer{Decision: walletapp.Approved}, func() {}, nil
	case walletapp.ConfirmReject:
		return walletapp.PolicyConfirmer{Decision: walletapp.Denied}, func() {}, nil
	}

	rl, err := readline.New("")

	if err != nil {
		return nil, nil, err
	}

	return &walletapp.ConsoleConfirmer{In: rl, Out: rl.Stdout()}, func() { rl.Close() }, nil

}

func run(ctx *cli.Context) error {

	config, err := loadConfig(ctx)

	if err != nil {
		return err
	}

	if config.Debug {
		walletapp.EnableDebugLogging()
	}

	mnemonic := config.Mnemonic

	if mnemonic == "" {
		slog.Warn("No mnemonic configured, using the public test mnemonic")
		mnemonic = testMnemonic
	}

	keyring, err := walletapp.NewHDKeyringFromMnemonic(mnemonic, config.Passphrase)

	if err != nil {
		return err
	}

	root, err := keyring.PublicKey(walletapp.DerivationPath{})

	if err != nil {
		return err
	}

	confirmer, closeConfirmer, err := newConfirmer(config.Confirm)

	if err != nil {
		return err
	}

	defer closeConfirmer()

	device, err := walletapp.New(config, keyring, confirmer)

	if err != nil {
		return err
	}

	slog.Info("Wallet application ready",
		"Identity", walletapp.Identity(root),
		"Version", config.Version.String(),
		"Network", config.Network,
		"Listen", config.Listen,
		"Confirm", config.Confirm)

	runCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return transport.ListenAndServe(runCtx, config.Listen, transport.NewServer(device, slog.Default()))

}
