// Package model defines data structures for the payment-engine SDK: plans,
// escrow records, user subscription accounts, purchase requests and results.
// The on-chain structs mirror the Borsh-encoded account layouts owned by the
// payment-engine program and must never diverge from them.
package model

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// USDCDecimals is the decimal exponent of the funding token. Raw account
// amounts are scaled by 10^USDCDecimals to obtain human-readable units.
const USDCDecimals = 9

// Plan describes a purchasable subscription tier. Plans are defined by the
// on-chain program and mirrored client-side; ID, Price and Requests must
// match the program's values exactly.
type Plan struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Requests    uint32          `json:"requests"`
	Description string          `json:"description"`
}

// EscrowRecord mirrors the on-chain SwqueryEscrow account: one record per
// purchase, holding the amount paid and the plan selected. The ledger is
// authoritative; this client only reads it.
type EscrowRecord struct {
	// Address is the derived account address the record was read from.
	// It is filled by the reader and is not part of the account data.
	Address solana.PublicKey `json:"address"`

	Seed           uint64           `json:"seed"`
	Bump           uint8            `json:"bump"`
	ServiceAccount solana.PublicKey `json:"swquery"`
	USDCMint       solana.PublicKey `json:"usdc_mint"`
	Amount         uint64           `json:"usdc_amount"`
	SelectedPlan   *Plan            `json:"selected_plan,omitempty"`
}

// AmountTokens returns the escrowed amount in human-readable token units.
func (e *EscrowRecord) AmountTokens() decimal.Decimal {
	return decimal.NewFromUint64(e.Amount)
}

// UserAccount mirrors the on-chain per-owner subscription account: the total
// request allowance granted and the ordered purchase history.
type UserAccount struct {
	Owner           solana.PublicKey `json:"user"`
	TotalRequests   uint64           `json:"total_requests"`
	SubscribedPlans []Plan           `json:"subscribed_plans"`
}

// ActivePlan returns the most recently purchased plan, or nil when the owner
// has never subscribed. The active plan is the LAST element of
// SubscribedPlans; downstream display logic depends on this exact rule, so
// it must stay "last appended wins", not "highest price wins".
func (u *UserAccount) ActivePlan() *Plan {
	if len(u.SubscribedPlans) == 0 {
		return nil
	}
	return &u.SubscribedPlans[len(u.SubscribedPlans)-1]
}

// RemainingRequests returns the request allowance currently available to
// the owner. The program credits it on every purchase and debits it as
// requests are served, so the stored total is already the remainder.
func (u *UserAccount) RemainingRequests() uint64 {
	return u.TotalRequests
}

// EscrowRequest is the caller-supplied input for a purchase. Seed must be
// unique per owner across time (a monotonic high-resolution timestamp works);
// reusing a seed makes the derived escrow address collide with an existing
// account and the submission fail.
type EscrowRequest struct {
	Seed                  uint64
	PlanID                uint64
	FundingAccount        solana.PublicKey // owner's USDC token account, debited
	ServiceFundingAccount solana.PublicKey // service USDC token account, credited
	ServiceAccount        solana.PublicKey // service main account
}

// SubmitOutcome classifies the terminal state of an escrow submission.
type SubmitOutcome int

const (
	// OutcomeNotSubmitted means a pre-submission check failed and no
	// operation reached the ledger. Safe to retry with corrected inputs.
	OutcomeNotSubmitted SubmitOutcome = iota
	// OutcomeCommitted means the ledger accepted the operation.
	OutcomeCommitted
	// OutcomeRejected means the ledger confirmed it rejected the operation.
	// Retry requires a fresh seed or corrected inputs.
	OutcomeRejected
	// OutcomeUnknown means the operation was sent but its fate could not be
	// confirmed. Callers must reconcile by re-reading account state before
	// any retry, to avoid double payment.
	OutcomeUnknown
)

// String implements fmt.Stringer.
func (o SubmitOutcome) String() string {
	switch o {
	case OutcomeNotSubmitted:
		return "not-submitted"
	case OutcomeCommitted:
		return "committed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// EscrowResult reports the outcome of MakeEscrow. Exactly one of the success
// fields (TransactionRef, EscrowAddress) or Err is meaningful.
type EscrowResult struct {
	Outcome        SubmitOutcome
	TransactionRef string
	EscrowAddress  solana.PublicKey
	Err            error
}

// Success reports whether the escrow creation committed.
func (r EscrowResult) Success() bool {
	return r.Outcome == OutcomeCommitted && r.Err == nil
}
