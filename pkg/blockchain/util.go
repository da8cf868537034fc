package blockchain

import (
	"encoding/binary"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/swquery/payment-sdk-go/pkg/model"
)

// Signer abstracts the wallet capability this client needs: expose the owner
// address and sign a serialized transaction message. solana.PrivateKey
// satisfies it; a wallet-adapter bridge can implement it as well.
type Signer interface {
	PublicKey() solana.PublicKey
	Sign(message []byte) (solana.Signature, error)
}

// ParsePrivateKey parses a base58-encoded ed25519 private key and returns the
// corresponding public key together with the private key object.
func ParsePrivateKey(privateKey string) (solana.PublicKey, solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	return key.PublicKey(), key, nil
}

// UsdcToBase converts a USDC amount to its smallest unit (9 decimals).
//
// Supported input types for iamount: string, float64, int64, decimal.Decimal,
// *decimal.Decimal. Any other type results in an error.
//
// The returned value is a *big.Int representing amount * 10^9.
func UsdcToBase(iamount any) (base *big.Int, err error) {
	amount := decimal.NewFromFloat(0)
	switch v := iamount.(type) {
	case string:
		amount, err = decimal.NewFromString(v)
		if err != nil {
			zap.L().Error("Failed to convert string to decimal", zap.Error(err))
			return nil, err
		}
	case float64:
		amount = decimal.NewFromFloat(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		amount = *v
	default:
		zap.L().Error("Unsupported type")
	}
	result := amount.Shift(model.USDCDecimals)

	base = new(big.Int)
	base.SetString(result.Truncate(0).String(), 10)

	return
}

// BaseToUsdc converts a raw token amount (smallest unit, 9 decimals) into
// USDC as a decimal.Decimal.
//
// Supported input types for ivalue: string, uint64, *big.Int, int.
// Any other type results in decimal.Zero and logs an error.
func BaseToUsdc(ivalue any) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		value.SetString(v, 10)
	case uint64:
		value.SetUint64(v)
	case *big.Int:
		value = v
	case int:
		value.SetInt64(int64(v))
	default:
		zap.L().Error("Unsupported type")
		return decimal.Zero
	}
	num, err := decimal.NewFromString(value.String())
	if err != nil {
		zap.L().Error("Failed to convert string to decimal", zap.Error(err))
		return decimal.Zero
	}
	return num.Shift(-model.USDCDecimals)
}

// seedToBytes encodes an escrow seed as an 8-byte little-endian slice, the
// encoding the program uses in its PDA seeds and instruction data.
func seedToBytes(seed uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, seed)
	return buf
}
