package model

import (
	"crypto/sha256"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Anchor prefixes every account with an 8-byte discriminator derived from the
// account's Rust type name: sha256("account:<Name>")[:8].
var (
	EscrowDiscriminator      = anchorAccountDiscriminator("SwqueryEscrow")
	UserAccountDiscriminator = anchorAccountDiscriminator("UserAccount")
)

func anchorAccountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// ErrDiscriminatorMismatch is returned when account data does not start with
// the expected Anchor discriminator, i.e. the address holds some other
// account type.
var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

func expectDiscriminator(decoder *bin.Decoder, want [8]byte) error {
	got, err := decoder.ReadNBytes(8)
	if err != nil {
		return fmt.Errorf("read discriminator: %w", err)
	}
	for i := range want {
		if got[i] != want[i] {
			return ErrDiscriminatorMismatch
		}
	}
	return nil
}

func readPublicKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	b, err := decoder.ReadNBytes(32)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func readBorshString(decoder *bin.Decoder) (string, error) {
	length, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return "", err
	}
	b, err := decoder.ReadNBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UnmarshalWithDecoder decodes a Borsh-encoded Plan (no discriminator; plans
// are embedded in escrow and user accounts, not stored standalone here).
func (p *Plan) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if p.ID, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if p.Name, err = readBorshString(decoder); err != nil {
		return err
	}
	price, err := decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	p.Price = decimal.NewFromUint64(price)
	if p.Requests, err = decoder.ReadUint32(bin.LE); err != nil {
		return err
	}
	if p.Description, err = readBorshString(decoder); err != nil {
		return err
	}
	return nil
}

// UnmarshalWithDecoder decodes the SwqueryEscrow account layout:
// discriminator(8) ++ seed u64 ++ bump u8 ++ swquery(32) ++ usdc_mint(32) ++
// usdc_amount u64 ++ Option<Plan>.
func (e *EscrowRecord) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = expectDiscriminator(decoder, EscrowDiscriminator); err != nil {
		return err
	}
	if e.Seed, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if e.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if e.ServiceAccount, err = readPublicKey(decoder); err != nil {
		return err
	}
	if e.USDCMint, err = readPublicKey(decoder); err != nil {
		return err
	}
	if e.Amount, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if tag != 0 {
		plan := new(Plan)
		if err = plan.UnmarshalWithDecoder(decoder); err != nil {
			return err
		}
		e.SelectedPlan = plan
	}
	return nil
}

// UnmarshalWithDecoder decodes the UserAccount layout:
// discriminator(8) ++ user(32) ++ total_requests u64 ++ Vec<Plan>.
func (u *UserAccount) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = expectDiscriminator(decoder, UserAccountDiscriminator); err != nil {
		return err
	}
	if u.Owner, err = readPublicKey(decoder); err != nil {
		return err
	}
	if u.TotalRequests, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	count, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	u.SubscribedPlans = make([]Plan, 0, count)
	for i := uint32(0); i < count; i++ {
		var plan Plan
		if err = plan.UnmarshalWithDecoder(decoder); err != nil {
			return err
		}
		u.SubscribedPlans = append(u.SubscribedPlans, plan)
	}
	return nil
}

// DecodeEscrowRecord decodes raw account data fetched from the ledger into an
// EscrowRecord.
func DecodeEscrowRecord(data []byte) (*EscrowRecord, error) {
	record := new(EscrowRecord)
	if err := record.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return record, nil
}

// DecodeUserAccount decodes raw account data fetched from the ledger into a
// UserAccount.
func DecodeUserAccount(data []byte) (*UserAccount, error) {
	account := new(UserAccount)
	if err := account.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, err
	}
	return account, nil
}
