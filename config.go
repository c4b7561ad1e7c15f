package walletapp

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"gopkg.in/yaml.v3"
)

// Confirmation modes of the emulator.
const (
	ConfirmConsole = "console"
	ConfirmApprove = "approve"
	ConfirmReject  = "reject"
)

// Config holds the device settings. The emulator loads it from yaml.
type Config struct {
	Class          byte        `yaml:"class"`
	Network        string      `yaml:"network"`
	BufferCapacity int         `yaml:"buffer_capacity"`
	Version        VersionInfo `yaml:"version"`

	Listen     string `yaml:"listen"`
	Mnemonic   string `yaml:"mnemonic"`
	Passphrase string `yaml:"passphrase"`
	Confirm    string `yaml:"confirm"`
	Debug      bool   `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Class:          0x00,
		Network:        "mainnet",
		BufferCapacity: DefaultBufferCapacity,
		Version:        VersionInfo{Major: 1, Minor: 0, Patch: 0},
		Listen:         "127.0.0.1:9998",
		Confirm:        ConfirmConsole,
	}
}

// LoadConfig reads path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {

	config := DefaultConfig()

	data, err := os.ReadFile(path)

	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, config.Validate()

}

func (c Config) Validate() error {

	if c.BufferCapacity <= 0 {
		return errors.New("buffer_capacity must be positive")
	}

	if _, err := c.NetworkParams(); err != nil {
		return err
	}

	switch c.Confirm {
	case "", ConfirmConsole, ConfirmApprove, ConfirmReject:
	default:
		return fmt.Errorf("unknown confirm mode %q", c.Confirm)
	}

	return nil

}

func (c Config) NetworkParams() (*chaincfg.Params, error) {

	switch c.Network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", c.Network)
	}

}
