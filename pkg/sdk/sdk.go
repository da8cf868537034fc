// Package sdk exposes the high-level payment-engine SDK entry points. It
// wires together ledger access, the plan catalog cache, and the escrow
// purchase orchestration.
package sdk

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/blockchain"
	"github.com/swquery/payment-sdk-go/pkg/catalog"
	"github.com/swquery/payment-sdk-go/pkg/config"
	"github.com/swquery/payment-sdk-go/pkg/model"
)

// PaymentSDK is the public interface of the escrow payment client.
type PaymentSDK interface {
	// GetAvailablePlans returns the purchasable plan set. It never fails.
	GetAvailablePlans() []model.Plan

	// MakeEscrow validates the purchase request, checks funding, derives
	// the escrow and subscription addresses, and submits the
	// escrow-creation operation. Every failure is reported through the
	// typed result; no raw error escapes.
	MakeEscrow(ctx context.Context, req model.EscrowRequest) model.EscrowResult

	// GetEscrow fetches the escrow record at the given derived address,
	// or nil when it does not exist.
	GetEscrow(ctx context.Context, address solana.PublicKey) (*model.EscrowRecord, error)

	// GetUserAccount fetches the subscription account for an owner, or nil
	// when the owner has never purchased.
	GetUserAccount(ctx context.Context, owner solana.PublicKey) (*model.UserAccount, error)

	// GetUserAccountAddress derives the per-owner subscription account
	// address.
	GetUserAccountAddress(owner solana.PublicKey) (solana.PublicKey, error)

	// GetEscrowAddress derives the per-purchase escrow account address for
	// (seed, owner).
	GetEscrowAddress(seed uint64, owner solana.PublicKey) (solana.PublicKey, error)

	// ListEscrowsByOwner returns all escrow records owned by the given key.
	// Result ordering is not guaranteed.
	ListEscrowsByOwner(ctx context.Context, owner solana.PublicKey) ([]*model.EscrowRecord, error)

	// Owner returns the wallet address purchases are made from. It is the
	// zero key when no signing key is configured.
	Owner() solana.PublicKey

	// ReconcileEscrow re-reads the escrow account for (owner, seed). Use it
	// to resolve an OutcomeUnknown submission before retrying, to avoid
	// paying twice.
	ReconcileEscrow(ctx context.Context, owner solana.PublicKey, seed uint64) (*model.EscrowRecord, error)

	// Close releases resources associated with the SDK instance.
	Close()
}

// Ledger is the subset of the blockchain client the orchestrator consumes.
type Ledger interface {
	GetUsdcBalance(ctx context.Context, tokenAccount solana.PublicKey) decimal.Decimal
	GetEscrow(ctx context.Context, address solana.PublicKey) (*model.EscrowRecord, error)
	GetUserAccount(ctx context.Context, owner solana.PublicKey) (*model.UserAccount, error)
	ListEscrowsByOwner(ctx context.Context, owner solana.PublicKey) ([]*model.EscrowRecord, error)
	UserAccountAddress(owner solana.PublicKey) (solana.PublicKey, error)
	EscrowAddress(owner solana.PublicKey, seed uint64) (solana.PublicKey, error)
	SubmitMakeEscrow(ctx context.Context, signer blockchain.Signer, req model.EscrowRequest, escrow, userAccount solana.PublicKey) (string, model.SubmitOutcome, error)
	Close()
}

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation. It owns the plan catalog cache
// and embeds the runtime configuration.
type Core struct {
	ledger  Ledger
	catalog *catalog.Catalog
	signer  blockchain.Signer
	owner   solana.PublicKey
	*config.Config
}

// NewSDK initializes the SDK Core with validated configuration and a
// connected ledger client. It applies default timeout values and aborts the
// process if the configuration is invalid or the client cannot be
// initialized. Without a signing key the SDK is read-only: account reads and
// address derivation work, MakeEscrow does not.
func NewSDK(cfg *config.Config) PaymentSDK {
	err := cfg.Validate()
	if err != nil {
		zap.L().Fatal("Invalid config", zap.Error(err))
	}

	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	client, err := blockchain.Init(cfg)
	if err != nil {
		zap.L().Fatal("Init ledger client failed", zap.Error(err))
	}

	owner, signer, err := loadSigner(cfg)
	if err != nil {
		zap.L().Warn("MakeEscrow disabled: signing key unavailable", zap.Error(err))
	}

	if cfg.Debug {
		zap.L().Debug("signer address", zap.Stringer("addr", owner))
	}

	return &Core{
		ledger:  client,
		catalog: catalog.New(catalog.DefaultTTL),
		signer:  signer,
		owner:   owner,
		Config:  cfg,
	}
}

// loadSigner resolves the wallet key from configuration: an explicit base58
// key wins, then a Solana keygen file. Both absent leaves the SDK read-only.
func loadSigner(cfg *config.Config) (solana.PublicKey, blockchain.Signer, error) {
	if cfg.PrivateKey != "" {
		owner, key, err := blockchain.ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return solana.PublicKey{}, nil, err
		}
		return owner, key, nil
	}
	if cfg.KeygenFile != "" {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(cfg.KeygenFile)
		if err != nil {
			return solana.PublicKey{}, nil, err
		}
		return key.PublicKey(), key, nil
	}
	return solana.PublicKey{}, nil, model.ErrNoSigner
}

// Owner returns the wallet address purchases are made from. It is the zero
// key when no signing key is configured.
func (c *Core) Owner() solana.PublicKey {
	return c.owner
}

// GetAvailablePlans returns the purchasable plan set from the catalog cache.
func (c *Core) GetAvailablePlans() []model.Plan {
	return c.catalog.Plans()
}

// GetEscrow fetches the escrow record at the given derived address, or nil
// when the account does not exist yet.
func (c *Core) GetEscrow(ctx context.Context, address solana.PublicKey) (*model.EscrowRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.ChainRead)
	defer cancel()
	return c.ledger.GetEscrow(ctx, address)
}

// GetUserAccount fetches the subscription account for an owner, or nil when
// the owner has never purchased a plan.
func (c *Core) GetUserAccount(ctx context.Context, owner solana.PublicKey) (*model.UserAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.ChainRead)
	defer cancel()
	return c.ledger.GetUserAccount(ctx, owner)
}

// GetUserAccountAddress derives the per-owner subscription account address.
func (c *Core) GetUserAccountAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	return c.ledger.UserAccountAddress(owner)
}

// GetEscrowAddress derives the per-purchase escrow account address.
func (c *Core) GetEscrowAddress(seed uint64, owner solana.PublicKey) (solana.PublicKey, error) {
	return c.ledger.EscrowAddress(owner, seed)
}

// ListEscrowsByOwner returns all escrow records owned by the given key.
func (c *Core) ListEscrowsByOwner(ctx context.Context, owner solana.PublicKey) ([]*model.EscrowRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.ChainRead)
	defer cancel()
	return c.ledger.ListEscrowsByOwner(ctx, owner)
}

// Close releases the ledger connection.
func (c *Core) Close() {
	c.ledger.Close()
}
