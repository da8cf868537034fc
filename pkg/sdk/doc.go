// Package sdk provides the high-level entry point for purchasing prepaid
// metering plans through the on-chain payment-engine program.
//
// The SDK validates a purchase against the mirrored plan catalog, checks the
// funding token balance, derives the deterministic escrow and subscription
// account addresses, submits the atomic escrow-creation operation, and reads
// back the resulting ledger state.
//
// # Quick Start
//
// Create an SDK instance with configuration, then purchase a plan:
//
//	import (
//		"context"
//		"time"
//
//		"github.com/gagliardetto/solana-go"
//		"github.com/swquery/payment-sdk-go/pkg/config"
//		"github.com/swquery/payment-sdk-go/pkg/model"
//		"github.com/swquery/payment-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		cfg := &config.Config{
//			Network:    config.Devnet,
//			PrivateKey: "YOUR_BASE58_PRIVATE_KEY",
//		}
//
//		client := sdk.NewSDK(cfg)
//		defer client.Close()
//
//		result := client.MakeEscrow(context.Background(), model.EscrowRequest{
//			Seed:                  uint64(time.Now().UnixNano()),
//			PlanID:                1,
//			FundingAccount:        solana.MustPublicKeyFromBase58("..."),
//			ServiceFundingAccount: solana.MustPublicKeyFromBase58("..."),
//			ServiceAccount:        solana.MustPublicKeyFromBase58("..."),
//		})
//		if !result.Success() {
//			// result.Err explains; result.Outcome says whether anything
//			// reached the ledger.
//		}
//	}
//
// # Seeds and retries
//
// The escrow address is derived from (owner, seed), so the seed must be
// unique per owner across time; a monotonic high-resolution timestamp is
// the usual choice. A rejected submission must not be retried with the same
// seed. A submission whose outcome is unknown must be reconciled first:
//
//	record, err := client.ReconcileEscrow(ctx, owner, seed)
//	// record != nil: the purchase committed after all; do not resubmit.
//
// # Read-only use
//
// Without a configured signing key the SDK still serves catalog reads,
// address derivation, and account reads, enough for dashboard display.
package sdk
