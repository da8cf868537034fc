package blockchain

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/model"
)

// MakeEscrowDiscriminator returns the 8-byte Anchor instruction
// discriminator for make_escrow: sha256("global:make_escrow")[:8].
func MakeEscrowDiscriminator() []byte {
	sum := sha256.Sum256([]byte("global:make_escrow"))
	return sum[:8]
}

// BuildMakeEscrowInstruction assembles the escrow-creation instruction. The
// data layout is discriminator ++ seed u64 LE ++ plan_id u64 LE, and the
// account order matches the program's MakeEscrow context exactly: user,
// escrow, user_account, usdc_mint, swquery, user_token_account,
// swquery_token_account, system_program, token_program,
// associated_token_program.
func (c *Client) BuildMakeEscrowInstruction(owner solana.PublicKey, req model.EscrowRequest, escrow, userAccount solana.PublicKey) solana.Instruction {
	data := make([]byte, 0, 8+8+8)
	data = append(data, MakeEscrowDiscriminator()...)
	data = append(data, seedToBytes(req.Seed)...)
	data = append(data, seedToBytes(req.PlanID)...)

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(owner, true, true),
		solana.NewAccountMeta(escrow, true, false),
		solana.NewAccountMeta(userAccount, true, false),
		solana.NewAccountMeta(c.USDCMint, false, false),
		solana.NewAccountMeta(req.ServiceAccount, false, false),
		solana.NewAccountMeta(req.FundingAccount, true, false),
		solana.NewAccountMeta(req.ServiceFundingAccount, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
	}

	return solana.NewInstruction(c.ProgramID, accounts, data)
}

// SubmitMakeEscrow signs and submits the escrow-creation operation as a
// single atomic call. The returned outcome is tri-state:
//
//   - OutcomeCommitted: the node accepted the transaction; the returned
//     signature is the transaction reference.
//   - OutcomeRejected: the node confirmed it rejected the transaction (a
//     typed RPC error, e.g. the derived escrow address is already occupied).
//     Do not retry with the same seed.
//   - OutcomeUnknown: the transaction was sent but the response never
//     arrived (timeout, cancellation, transport failure). Its fate must be
//     reconciled by re-reading the escrow account before any retry.
//
// Failures before the send (blockhash read, signing) report
// OutcomeNotSubmitted; nothing reached the ledger and retrying is safe.
func (c *Client) SubmitMakeEscrow(ctx context.Context, signer Signer, req model.EscrowRequest, escrow, userAccount solana.PublicKey) (string, model.SubmitOutcome, error) {
	owner := signer.PublicKey()

	blockhash, err := c.RPC.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return "", model.OutcomeNotSubmitted, fmt.Errorf("%w: latest blockhash: %w", model.ErrTransientRead, err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{c.BuildMakeEscrowInstruction(owner, req, escrow, userAccount)},
		blockhash.Value.Blockhash,
		solana.TransactionPayer(owner),
	)
	if err != nil {
		return "", model.OutcomeNotSubmitted, fmt.Errorf("build transaction: %w", err)
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return "", model.OutcomeNotSubmitted, fmt.Errorf("serialize message: %w", err)
	}
	signature, err := signer.Sign(message)
	if err != nil {
		return "", model.OutcomeNotSubmitted, fmt.Errorf("sign transaction: %w", err)
	}
	tx.Signatures = []solana.Signature{signature}

	// Preflight simulation is skipped; the program re-validates everything
	// authoritatively at execution.
	sig, err := c.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		var rpcErr *jsonrpc.RPCError
		if errors.As(err, &rpcErr) {
			zap.L().Debug("Escrow submission rejected",
				zap.Int("code", rpcErr.Code),
				zap.String("message", rpcErr.Message))
			return "", model.OutcomeRejected, fmt.Errorf("%w: %w", model.ErrSubmissionRejected, err)
		}
		zap.L().Warn("Escrow submission outcome unknown", zap.Error(err))
		return "", model.OutcomeUnknown, fmt.Errorf("%w: %w", model.ErrSubmissionUnknown, err)
	}

	return sig.String(), model.OutcomeCommitted, nil
}
