package model

import "errors"

// Error taxonomy for escrow orchestration. MakeEscrow never lets a raw
// external error escape; every failure path wraps one of these sentinels so
// callers can branch with errors.Is.
var (
	// ErrPlanNotFound is returned when the requested plan id is absent from
	// the catalog. Recoverable by choosing a valid plan; never retried
	// automatically.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrInsufficientFunds is the advisory pre-check failure: the funding
	// account balance is below the plan price. The authoritative balance
	// check happens on-chain at execution time.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransientRead marks a network/availability failure on a read.
	// Reads are idempotent, so retrying is safe.
	ErrTransientRead = errors.New("transient read failure")

	// ErrSubmissionRejected means the program rejected the operation
	// (wrong mint, seed collision, overflow...). Do not retry with the
	// same seed.
	ErrSubmissionRejected = errors.New("submission rejected")

	// ErrSubmissionUnknown means the fate of a sent operation could not be
	// confirmed. Reconcile by re-reading account state before retrying.
	ErrSubmissionUnknown = errors.New("submission outcome unknown")

	// ErrNoSigner is returned when a signing operation is attempted but no
	// private key was configured.
	ErrNoSigner = errors.New("no signing key configured")
)
