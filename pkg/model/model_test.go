package model

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

func appendU64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendBorshString(b []byte, s string) []byte {
	b = appendU32(b, uint32(len(s)))
	return append(b, s...)
}

func appendPlan(b []byte, id uint64, name string, price uint64, requests uint32, description string) []byte {
	b = appendU64(b, id)
	b = appendBorshString(b, name)
	b = appendU64(b, price)
	b = appendU32(b, requests)
	return appendBorshString(b, description)
}

func TestAccountDiscriminators(t *testing.T) {
	escrow := sha256.Sum256([]byte("account:SwqueryEscrow"))
	if EscrowDiscriminator != [8]byte(escrow[:8]) {
		t.Fatalf("unexpected escrow discriminator: %x", EscrowDiscriminator)
	}
	user := sha256.Sum256([]byte("account:UserAccount"))
	if UserAccountDiscriminator != [8]byte(user[:8]) {
		t.Fatalf("unexpected user account discriminator: %x", UserAccountDiscriminator)
	}
}

func TestDecodeEscrowRecord(t *testing.T) {
	service := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	data := append([]byte{}, EscrowDiscriminator[:]...)
	data = appendU64(data, 1000)
	data = append(data, 254) // bump
	data = append(data, service.Bytes()...)
	data = append(data, mint.Bytes()...)
	data = appendU64(data, 10)
	data = append(data, 1) // Option tag: Some
	data = appendPlan(data, 1, "Basic", 10, 20, "Basic plan with 20 requests")

	record, err := DecodeEscrowRecord(data)
	if err != nil {
		t.Fatalf("DecodeEscrowRecord: %v", err)
	}
	if record.Seed != 1000 {
		t.Fatalf("unexpected seed: %d", record.Seed)
	}
	if record.Bump != 254 {
		t.Fatalf("unexpected bump: %d", record.Bump)
	}
	if record.ServiceAccount != service {
		t.Fatalf("unexpected service account: %s", record.ServiceAccount)
	}
	if record.USDCMint != mint {
		t.Fatalf("unexpected mint: %s", record.USDCMint)
	}
	if record.Amount != 10 {
		t.Fatalf("unexpected amount: %d", record.Amount)
	}
	if record.SelectedPlan == nil {
		t.Fatal("expected a selected plan")
	}
	if record.SelectedPlan.Name != "Basic" || record.SelectedPlan.Requests != 20 {
		t.Fatalf("unexpected plan: %+v", record.SelectedPlan)
	}
	if !record.SelectedPlan.Price.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected price: %s", record.SelectedPlan.Price)
	}
}

func TestDecodeEscrowRecordNoPlan(t *testing.T) {
	service := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	data := append([]byte{}, EscrowDiscriminator[:]...)
	data = appendU64(data, 7)
	data = append(data, 255)
	data = append(data, service.Bytes()...)
	data = append(data, mint.Bytes()...)
	data = appendU64(data, 0)
	data = append(data, 0) // Option tag: None

	record, err := DecodeEscrowRecord(data)
	if err != nil {
		t.Fatalf("DecodeEscrowRecord: %v", err)
	}
	if record.SelectedPlan != nil {
		t.Fatalf("expected nil plan, got %+v", record.SelectedPlan)
	}
}

func TestDecodeEscrowRecordWrongDiscriminator(t *testing.T) {
	data := append([]byte{}, UserAccountDiscriminator[:]...)
	data = appendU64(data, 1)

	if _, err := DecodeEscrowRecord(data); !errors.Is(err, ErrDiscriminatorMismatch) {
		t.Fatalf("expected discriminator mismatch, got %v", err)
	}
}

func TestDecodeUserAccount(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	data := append([]byte{}, UserAccountDiscriminator[:]...)
	data = append(data, owner.Bytes()...)
	data = appendU64(data, 170)
	data = appendU32(data, 3)
	data = appendPlan(data, 1, "Basic", 10, 20, "Basic plan with 20 requests")
	data = appendPlan(data, 3, "Premium", 50, 100, "Premium plan with 100 requests")
	data = appendPlan(data, 2, "Standard", 20, 50, "Standard plan with 50 requests")

	account, err := DecodeUserAccount(data)
	if err != nil {
		t.Fatalf("DecodeUserAccount: %v", err)
	}
	if account.Owner != owner {
		t.Fatalf("unexpected owner: %s", account.Owner)
	}
	if account.TotalRequests != 170 {
		t.Fatalf("unexpected total requests: %d", account.TotalRequests)
	}
	if account.RemainingRequests() != 170 {
		t.Fatalf("unexpected remaining requests: %d", account.RemainingRequests())
	}
	if len(account.SubscribedPlans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(account.SubscribedPlans))
	}
}

// TestActivePlanIsLastAppended pins the "last appended wins" rule: with
// history [Basic, Premium, Standard] the active plan is Standard, even
// though Premium has the highest price. A highest-price implementation
// would fail this test.
func TestActivePlanIsLastAppended(t *testing.T) {
	account := &UserAccount{
		SubscribedPlans: []Plan{
			{ID: 1, Name: "Basic", Price: decimal.NewFromInt(10)},
			{ID: 3, Name: "Premium", Price: decimal.NewFromInt(50)},
			{ID: 2, Name: "Standard", Price: decimal.NewFromInt(20)},
		},
	}

	active := account.ActivePlan()
	if active == nil {
		t.Fatal("expected an active plan")
	}
	if active.Name != "Standard" {
		t.Fatalf("active plan must be the last appended, got %s", active.Name)
	}
}

func TestActivePlanEmpty(t *testing.T) {
	account := &UserAccount{}
	if account.ActivePlan() != nil {
		t.Fatal("expected nil active plan for empty history")
	}
}

func TestAvailablePlansMirror(t *testing.T) {
	plans := AvailablePlans()
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}

	tests := []struct {
		id       uint64
		name     string
		price    int64
		requests uint32
	}{
		{1, "Basic", 10, 20},
		{2, "Standard", 20, 50},
		{3, "Premium", 50, 100},
	}
	for i, tc := range tests {
		p := plans[i]
		if p.ID != tc.id || p.Name != tc.name || p.Requests != tc.requests {
			t.Fatalf("plan %d mismatch: %+v", tc.id, p)
		}
		if !p.Price.Equal(decimal.NewFromInt(tc.price)) {
			t.Fatalf("plan %d price mismatch: %s", tc.id, p.Price)
		}
	}
}

func TestSubmitOutcomeString(t *testing.T) {
	tests := []struct {
		outcome SubmitOutcome
		want    string
	}{
		{OutcomeNotSubmitted, "not-submitted"},
		{OutcomeCommitted, "committed"},
		{OutcomeRejected, "rejected"},
		{OutcomeUnknown, "unknown"},
	}
	for _, tc := range tests {
		if got := tc.outcome.String(); got != tc.want {
			t.Fatalf("String(%d) = %q, want %q", int(tc.outcome), got, tc.want)
		}
	}
}

func TestEscrowResultSuccess(t *testing.T) {
	ok := EscrowResult{Outcome: OutcomeCommitted, TransactionRef: "sig"}
	if !ok.Success() {
		t.Fatal("expected success")
	}

	rejected := EscrowResult{Outcome: OutcomeRejected, Err: ErrSubmissionRejected}
	if rejected.Success() {
		t.Fatal("rejected result must not be a success")
	}

	unknown := EscrowResult{Outcome: OutcomeUnknown, Err: ErrSubmissionUnknown}
	if unknown.Success() {
		t.Fatal("unknown result must not be a success")
	}
}
