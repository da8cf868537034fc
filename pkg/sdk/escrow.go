package sdk

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/model"
)

// MakeEscrow runs the purchase state machine: validate plan, check funding,
// derive addresses, submit the escrow-creation operation. Each step is a
// potential terminal failure converted into the typed result; the method
// never returns a raw error to its caller.
//
// The plan and balance checks exist to avoid spending transaction fees on an
// operation the program would reject anyway; the program re-validates both
// authoritatively at execution time. A failed attempt is not retried here;
// retrying with a fresh, never-before-used seed is the caller's job.
func (c *Core) MakeEscrow(ctx context.Context, req model.EscrowRequest) model.EscrowResult {
	// Step 1: plan validation.
	plan, err := c.catalog.Validate(req.PlanID)
	if err != nil {
		return failure(err)
	}

	// Step 2: advisory funding check. The balance may change between this
	// read and execution; the program's own balance assertion decides.
	readCtx, cancelRead := context.WithTimeout(ctx, c.Timeouts.ChainRead)
	balance := c.ledger.GetUsdcBalance(readCtx, req.FundingAccount)
	cancelRead()
	if balance.LessThan(plan.Price) {
		return failure(fmt.Errorf("%w: required %s USDC, available %s USDC",
			model.ErrInsufficientFunds, plan.Price, balance))
	}

	// Step 3: address derivation. Pure computation, no failure mode beyond
	// a misconfigured program id.
	if c.signer == nil {
		return failure(model.ErrNoSigner)
	}
	escrowAddress, err := c.ledger.EscrowAddress(c.owner, req.Seed)
	if err != nil {
		return failure(fmt.Errorf("derive escrow address: %w", err))
	}
	userAccountAddress, err := c.ledger.UserAccountAddress(c.owner)
	if err != nil {
		return failure(fmt.Errorf("derive user account address: %w", err))
	}

	// Step 4: single atomic submission. Once sent it cannot be cancelled.
	submitCtx, cancelSubmit := context.WithTimeout(ctx, c.Timeouts.ChainSubmit)
	defer cancelSubmit()
	transactionRef, outcome, err := c.ledger.SubmitMakeEscrow(submitCtx, c.signer, req, escrowAddress, userAccountAddress)
	if err != nil {
		return model.EscrowResult{
			Outcome:       outcome,
			EscrowAddress: escrowAddress,
			Err:           err,
		}
	}

	zap.L().Info("Escrow committed",
		zap.String("tx", transactionRef),
		zap.Stringer("escrow", escrowAddress),
		zap.Uint64("plan", plan.ID))

	return model.EscrowResult{
		Outcome:        model.OutcomeCommitted,
		TransactionRef: transactionRef,
		EscrowAddress:  escrowAddress,
	}
}

// ReconcileEscrow re-reads the escrow record for (owner, seed). A non-nil
// record means the submission committed even though its outcome was reported
// unknown; a nil record with a nil error means it never landed and the seed
// may be retired safely.
func (c *Core) ReconcileEscrow(ctx context.Context, owner solana.PublicKey, seed uint64) (*model.EscrowRecord, error) {
	address, err := c.ledger.EscrowAddress(owner, seed)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.Reconcile)
	defer cancel()
	return c.ledger.GetEscrow(ctx, address)
}

func failure(err error) model.EscrowResult {
	return model.EscrowResult{
		Outcome: model.OutcomeNotSubmitted,
		Err:     err,
	}
}
