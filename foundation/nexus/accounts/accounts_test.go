package accounts_test

import (
	"errors"
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestRegister(t *testing.T) {
	t.Log("Given the need to register accounts with the initial credit grant.")
	{
		gen := genesis.Default()

		accts, err := accounts.New(gen)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the ledger.", success)

		admin, err := accts.Query(gen.AdminUser)
		if err != nil {
			t.Fatalf("\t%s\tShould have the admin account provisioned: %v", failed, err)
		}
		t.Logf("\t%s\tShould have the admin account provisioned.", success)

		if !admin.Role.IsAdmin() {
			t.Fatalf("\t%s\tShould have the administrator role: got %q", failed, admin.Role)
		}
		t.Logf("\t%s\tShould have the administrator role.", success)

		info, err := accts.Register("alice")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to register a new account: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to register a new account.", success)

		if info.Balance != gen.InitialCredit {
			t.Fatalf("\t%s\tShould grant the initial credit: got %d, exp %d", failed, info.Balance, gen.InitialCredit)
		}
		t.Logf("\t%s\tShould grant the initial credit.", success)

		if info.Identity == "" {
			t.Fatalf("\t%s\tShould derive a ledger identity.", failed)
		}
		t.Logf("\t%s\tShould derive a ledger identity.", success)

		if _, err := accts.Register("alice"); !errors.Is(err, accounts.ErrExists) {
			t.Fatalf("\t%s\tShould reject a duplicate username: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a duplicate username.", success)

		if _, err := accts.Register("   "); !errors.Is(err, accounts.ErrInvalidUsername) {
			t.Fatalf("\t%s\tShould reject a blank username: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a blank username.", success)
	}
}

func TestCreditDebit(t *testing.T) {
	t.Log("Given the need to apply credits and debits during settlement.")
	{
		accts, err := accounts.New(genesis.Default())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		if _, err := accts.Register("alice"); err != nil {
			t.Fatalf("\t%s\tShould be able to register alice: %v", failed, err)
		}

		if err := accts.ApplyCredit("alice", 500); err != nil {
			t.Fatalf("\t%s\tShould be able to apply a credit: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to apply a credit.", success)

		if err := accts.ApplyDebit("alice", 10400); err != nil {
			t.Fatalf("\t%s\tShould be able to apply a covered debit: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to apply a covered debit.", success)

		info, _ := accts.Query("alice")
		if info.Balance != 100 {
			t.Fatalf("\t%s\tShould have the expected balance: got %d, exp %d", failed, info.Balance, 100)
		}
		t.Logf("\t%s\tShould have the expected balance.", success)

		if err := accts.ApplyDebit("alice", 101); !errors.Is(err, accounts.ErrInsufficientFunds) {
			t.Fatalf("\t%s\tShould reject an uncovered debit: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an uncovered debit.", success)

		info, _ = accts.Query("alice")
		if info.Balance != 100 {
			t.Fatalf("\t%s\tShould leave the balance untouched on a failed debit: got %d", failed, info.Balance)
		}
		t.Logf("\t%s\tShould leave the balance untouched on a failed debit.", success)

		if err := accts.ApplyCredit("nobody", 10); !errors.Is(err, accounts.ErrNotFound) {
			t.Fatalf("\t%s\tShould reject a credit to an unknown account: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a credit to an unknown account.", success)
	}
}

func TestPendingBookkeeping(t *testing.T) {
	t.Log("Given the need to track pending transactions per account.")
	{
		accts, err := accounts.New(genesis.Default())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		if _, err := accts.Register("alice"); err != nil {
			t.Fatalf("\t%s\tShould be able to register alice: %v", failed, err)
		}

		accts.AddPending("alice")
		accts.AddPending("alice")

		info, _ := accts.Query("alice")
		if info.PendingTxs != 2 {
			t.Fatalf("\t%s\tShould count pending transactions: got %d, exp 2", failed, info.PendingTxs)
		}
		t.Logf("\t%s\tShould count pending transactions.", success)

		accts.SettlePending("alice")
		accts.SettlePending("alice")
		accts.SettlePending("alice")

		info, _ = accts.Query("alice")
		if info.PendingTxs != 0 {
			t.Fatalf("\t%s\tShould never go below zero: got %d", failed, info.PendingTxs)
		}
		t.Logf("\t%s\tShould never go below zero.", success)
	}
}
