package blockchain

import (
	"github.com/gagliardetto/solana-go"
)

// PDA seed tags fixed by the on-chain program.
var (
	escrowSeedTag      = []byte("escrow")
	userAccountSeedTag = []byte("user")
)

// DeriveUserAccountAddress computes the per-owner subscription account
// address: PDA of ("user", owner) under the program. The derivation is pure
// and deterministic; one address per owner, stable across purchases.
func DeriveUserAccountAddress(owner, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{userAccountSeedTag, owner.Bytes()},
		programID,
	)
}

// DeriveEscrowAddress computes the per-purchase escrow account address: PDA
// of ("escrow", owner, seed as u64 little-endian) under the program. Distinct
// seeds yield distinct addresses; reusing a seed for the same owner collides
// with the existing escrow account.
func DeriveEscrowAddress(owner solana.PublicKey, seed uint64, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{escrowSeedTag, owner.Bytes(), seedToBytes(seed)},
		programID,
	)
}

// UserAccountAddress derives the subscription account address for owner
// under this client's program.
func (c *Client) UserAccountAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := DeriveUserAccountAddress(owner, c.ProgramID)
	return addr, err
}

// EscrowAddress derives the escrow account address for (owner, seed) under
// this client's program.
func (c *Client) EscrowAddress(owner solana.PublicKey, seed uint64) (solana.PublicKey, error) {
	addr, _, err := DeriveEscrowAddress(owner, seed, c.ProgramID)
	return addr, err
}
