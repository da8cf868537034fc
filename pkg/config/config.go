// Package config defines the runtime configuration for the SDK, including
// the target Solana cluster, RPC endpoint, payment-engine program id, funding
// mint, debug mode, and operation timeouts. It also provides validation and
// defaulting helpers, plus an optional file/env loader.
package config

import (
	"errors"
	"time"
)

// Config holds all SDK settings required to initialize the ledger client.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// Network selects the target Solana cluster (endpoints and program id).
	Network Network `json:"network" yaml:"network" mapstructure:"network"`
	// RPCAddr overrides the cluster's default HTTP RPC endpoint when set.
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr" mapstructure:"rpc_addr"`
	// ProgramID overrides the payment-engine program id when set (base58).
	ProgramID string `json:"program_id" yaml:"program_id" mapstructure:"program_id"`
	// USDCMint is the base58 address of the funding token mint.
	// Default: the payment-engine test USDC mint.
	USDCMint string `json:"usdc_mint" yaml:"usdc_mint" mapstructure:"usdc_mint"`
	// PrivateKey is the base58-encoded ed25519 private key used to sign
	// escrow submissions (optional if you only do read-only operations).
	PrivateKey string `json:"private_key" yaml:"private_key" mapstructure:"private_key"`
	// KeygenFile is the path to a Solana keygen JSON file, used instead of
	// PrivateKey when set.
	KeygenFile string `json:"keygen_file" yaml:"keygen_file" mapstructure:"keygen_file"`
	// Commitment is the confirmation level used for reads and submissions
	// ("processed", "confirmed" or "finalized"). Default: "processed".
	Commitment string `json:"commitment" yaml:"commitment" mapstructure:"commitment"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" mapstructure:"timeouts"`
}

// Network describes a Solana cluster: its default endpoints and the address
// the payment-engine program is deployed at.
type Network struct {
	Name      string `json:"network_name" mapstructure:"network_name"`
	HTTPURL   string `json:"http_url" mapstructure:"http_url"`
	WSURL     string `json:"ws_url" mapstructure:"ws_url"`
	ProgramID string `json:"program_id" mapstructure:"program_id"`
}

// paymentEngineProgramID is the deployed payment-engine program (declare_id).
const paymentEngineProgramID = "9qSchFvHkadxQkSpY8T5sX4iTJRT9go21jFgAWiGLsue"

// testUSDCMint is the funding mint the program accepts. Must match the
// TEST_USDC_MINT constant baked into the on-chain program.
const testUSDCMint = "9ThGirbgEtRrjwtg1DVZ4fD5BkPAWtseYpgrsLH3NFu8"

// Localnet is a predefined Network for a local test validator.
var Localnet = Network{
	Name:      "localnet",
	HTTPURL:   "http://127.0.0.1:8899",
	WSURL:     "ws://127.0.0.1:8900",
	ProgramID: paymentEngineProgramID,
}

// Devnet is a predefined Network for Solana devnet.
var Devnet = Network{
	Name:      "devnet",
	HTTPURL:   "https://api.devnet.solana.com",
	WSURL:     "wss://api.devnet.solana.com",
	ProgramID: paymentEngineProgramID,
}

// MainnetBeta is a predefined Network for Solana mainnet-beta.
var MainnetBeta = Network{
	Name:      "mainnet-beta",
	HTTPURL:   "https://api.mainnet-beta.solana.com",
	WSURL:     "wss://api.mainnet-beta.solana.com",
	ProgramID: paymentEngineProgramID,
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	ChainRead   time.Duration `mapstructure:"chain_read"`   // balance and account reads
	ChainSubmit time.Duration `mapstructure:"chain_submit"` // send transaction
	Reconcile   time.Duration `mapstructure:"reconcile"`    // post-submission state re-read
}

// Validate normalizes the configuration by applying implicit defaults for
// Network (defaults to Devnet), RPCAddr, ProgramID, USDCMint and Commitment,
// and verifies that an RPC endpoint and program id can be resolved. Returns
// an error when neither an explicit value nor a network default is available.
func (c *Config) Validate() error {

	if c.Network.HTTPURL == "" && c.Network.Name == "" {
		c.Network = Devnet
	}

	if c.RPCAddr == "" {
		c.RPCAddr = c.Network.HTTPURL
	}

	if c.ProgramID == "" {
		c.ProgramID = c.Network.ProgramID
	}

	if c.USDCMint == "" {
		c.USDCMint = testUSDCMint
	}

	if c.Commitment == "" {
		c.Commitment = "processed"
	}

	if c.RPCAddr == "" {
		return errors.New("RPC address is required")
	}

	if c.ProgramID == "" {
		return errors.New("program id is required")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	ChainRead:   12s
//	ChainSubmit: 25s
//	Reconcile:   12s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.Reconcile == 0 {
		tt.Reconcile = 12 * time.Second
	}
	return tt
}
