// Package blockchain provides the Solana client used by the SDK to talk to
// the payment-engine program. It initializes an RPC client, derives the
// program's deterministic account addresses, reads escrow and subscription
// accounts, checks funding balances, and builds and submits the
// escrow-creation transaction.
package blockchain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/config"
)

// Client holds a connected RPC client together with the fixed identifiers of
// the payment-engine deployment: the program id and the funding mint. These
// are injected from configuration so several network environments can coexist
// in one process.
type Client struct {
	RPC        *rpc.Client
	ProgramID  solana.PublicKey
	USDCMint   solana.PublicKey
	commitment rpc.CommitmentType
}

// Init dials a Solana RPC endpoint and resolves the program id and funding
// mint from the validated configuration.
func Init(cfg *config.Config) (*Client, error) {
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		zap.L().Error("Failed to parse program id", zap.Error(err))
		return nil, fmt.Errorf("parse program id: %w", err)
	}

	mint, err := solana.PublicKeyFromBase58(cfg.USDCMint)
	if err != nil {
		zap.L().Error("Failed to parse USDC mint", zap.Error(err))
		return nil, fmt.Errorf("parse usdc mint: %w", err)
	}

	return &Client{
		RPC:        rpc.New(cfg.RPCAddr),
		ProgramID:  programID,
		USDCMint:   mint,
		commitment: Commitment(cfg.Commitment),
	}, nil
}

// Commitment maps a configuration string onto an RPC commitment level,
// defaulting to processed.
func Commitment(s string) rpc.CommitmentType {
	switch s {
	case "confirmed":
		return rpc.CommitmentConfirmed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentProcessed
	}
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	if err := c.RPC.Close(); err != nil {
		zap.L().Warn("Failed to close RPC client", zap.Error(err))
	}
}
