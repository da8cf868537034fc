package blockchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/model"
)

// escrowOwnerFilterOffset is the byte offset of the owner-match field inside
// the escrow account layout: discriminator(8) + seed(8) + bump(1). This is a
// binary contract with the deployed program and must not change.
const escrowOwnerFilterOffset = 8 + 8 + 1

// GetUsdcBalance reads the current balance of a funding token account,
// scaled from raw units to USDC. Any retrieval error (missing account,
// transient outage) yields zero: callers treat zero as insufficient, which
// is the conservative choice for a payment precondition. The distinction
// between a confirmed zero and an unreadable balance is logged so operators
// can tell the two apart.
func (c *Client) GetUsdcBalance(ctx context.Context, tokenAccount solana.PublicKey) decimal.Decimal {
	res, err := c.RPC.GetTokenAccountBalance(ctx, tokenAccount, c.commitment)
	if err != nil || res == nil || res.Value == nil {
		zap.L().Warn("Funding balance unreadable, treating as zero",
			zap.Stringer("account", tokenAccount),
			zap.Error(err))
		return decimal.Zero
	}
	return BaseToUsdc(res.Value.Amount)
}

// GetEscrow fetches the escrow record stored at the given derived address.
// It returns (nil, nil) when the account does not exist; a nil record is the
// expected state before a purchase and is distinct from a read failure,
// which is returned as an error wrapping model.ErrTransientRead.
func (c *Client) GetEscrow(ctx context.Context, address solana.PublicKey) (*model.EscrowRecord, error) {
	data, err := c.fetchAccountData(ctx, address)
	if err != nil || data == nil {
		return nil, err
	}

	record, err := model.DecodeEscrowRecord(data)
	if err != nil {
		return nil, fmt.Errorf("decode escrow %s: %w", address, err)
	}
	record.Address = address
	return record, nil
}

// GetUserAccount fetches the subscription account for the given owner,
// deriving its address first. It returns (nil, nil) when the owner has never
// purchased a plan.
func (c *Client) GetUserAccount(ctx context.Context, owner solana.PublicKey) (*model.UserAccount, error) {
	address, err := c.UserAccountAddress(owner)
	if err != nil {
		return nil, err
	}

	data, err := c.fetchAccountData(ctx, address)
	if err != nil || data == nil {
		return nil, err
	}

	account, err := model.DecodeUserAccount(data)
	if err != nil {
		return nil, fmt.Errorf("decode user account %s: %w", address, err)
	}
	return account, nil
}

// ListEscrowsByOwner returns every escrow record whose owner-match field
// equals the given key, filtered server-side. Result ordering is not
// guaranteed.
func (c *Client) ListEscrowsByOwner(ctx context.Context, owner solana.PublicKey) ([]*model.EscrowRecord, error) {
	res, err := c.RPC.GetProgramAccountsWithOpts(ctx, c.ProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  solana.Base58(model.EscrowDiscriminator[:]),
				},
			},
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: escrowOwnerFilterOffset,
					Bytes:  solana.Base58(owner.Bytes()),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransientRead, err)
	}

	records := make([]*model.EscrowRecord, 0, len(res))
	for _, keyed := range res {
		record, err := model.DecodeEscrowRecord(keyed.Account.Data.GetBinary())
		if err != nil {
			zap.L().Warn("Skipping undecodable escrow account",
				zap.Stringer("address", keyed.Pubkey),
				zap.Error(err))
			continue
		}
		record.Address = keyed.Pubkey
		records = append(records, record)
	}
	return records, nil
}

// fetchAccountData reads raw account data at the given address. It returns
// (nil, nil) when the ledger reports the account does not exist.
func (c *Client) fetchAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.RPC.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", model.ErrTransientRead, address, err)
	}
	if res == nil || res.Value == nil {
		return nil, nil
	}
	return res.Value.Data.GetBinary(), nil
}
