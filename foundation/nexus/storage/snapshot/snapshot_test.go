package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/genesis"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/nexus/storage/snapshot"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestWriteLoad(t *testing.T) {
	t.Log("Given the need to persist and reload the stores.")
	{
		path := filepath.Join(t.TempDir(), "ledger.db")

		store, err := snapshot.New(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to open the store.", success)

		if _, exists, err := store.Load(); err != nil || exists {
			t.Fatalf("\t%s\tShould report no snapshot in a fresh database: exists %v err %v", failed, exists, err)
		}
		t.Logf("\t%s\tShould report no snapshot in a fresh database.", success)

		snap := snapshot.Snapshot{
			Accounts: map[string]accounts.Info{
				"alice": {Identity: "0xabc", Role: accounts.RoleMember, Balance: 14000},
			},
			Files: []catalogue.File{
				{ID: 1, Name: "ubuntu.iso", BaseName: "ubuntu", SizeGB: decimal.RequireFromString("2"),
					Uploader: "alice", Status: catalogue.StatusActive, FileHash: "hash-1",
					Downloads: map[string]int{"bob": 1}},
			},
		}

		if err := store.Write(snap); err != nil {
			t.Fatalf("\t%s\tShould be able to write a snapshot: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to write a snapshot.", success)

		loaded, exists, err := store.Load()
		if err != nil || !exists {
			t.Fatalf("\t%s\tShould be able to load the snapshot back: exists %v err %v", failed, exists, err)
		}
		t.Logf("\t%s\tShould be able to load the snapshot back.", success)

		if loaded.Accounts["alice"].Balance != 14000 {
			t.Fatalf("\t%s\tShould keep the account balances: got %d", failed, loaded.Accounts["alice"].Balance)
		}
		if len(loaded.Files) != 1 || loaded.Files[0].Downloads["bob"] != 1 {
			t.Fatalf("\t%s\tShould keep the files with their download counters.", failed)
		}
		t.Logf("\t%s\tShould keep the stores intact.", success)

		if err := store.Close(); err != nil {
			t.Fatalf("\t%s\tShould be able to close the store: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to close the store.", success)
	}
}

func TestStateRestart(t *testing.T) {
	t.Log("Given the need to survive a node restart.")
	{
		path := filepath.Join(t.TempDir(), "ledger.db")
		gen := genesis.Default()

		// First life: run a full declare/download/mine cycle and snapshot.
		store, err := snapshot.New(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
		}

		st, err := state.New(state.Config{Genesis: gen, Snapshotter: store})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
		}

		if _, err := st.RegisterAccount("alice"); err != nil {
			t.Fatalf("\t%s\tShould be able to register alice: %v", failed, err)
		}
		if _, err := st.RegisterAccount("bob"); err != nil {
			t.Fatalf("\t%s\tShould be able to register bob: %v", failed, err)
		}

		nf := catalogue.NewFile{
			Name:     "ubuntu.iso",
			SizeGB:   decimal.RequireFromString("2"),
			Category: catalogue.CategoryOther,
			FileHash: "hash-1",
		}
		file, _, err := st.SubmitDeclare("alice", nf)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to declare a file: %v", failed, err)
		}
		if _, _, err := st.SubmitDownload("bob", file.ID); err != nil {
			t.Fatalf("\t%s\tShould be able to enqueue a download: %v", failed, err)
		}
		if _, _, err := st.MineNewBlock("admin"); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}

		if err := st.SnapshotNow(); err != nil {
			t.Fatalf("\t%s\tShould be able to snapshot the state: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to snapshot the state.", success)

		if err := st.Shutdown(); err != nil {
			t.Fatalf("\t%s\tShould be able to shut the state down: %v", failed, err)
		}

		// Second life: a new state restores from the same database.
		store, err = snapshot.New(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to reopen the store: %v", failed, err)
		}

		st, err = state.New(state.Config{Genesis: gen, Snapshotter: store})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to restore the state: %v", failed, err)
		}
		defer st.Shutdown()
		t.Logf("\t%s\tShould be able to restore the state.", success)

		alice, err := st.QueryAccount("alice")
		if err != nil || alice.Balance != 14000 {
			t.Fatalf("\t%s\tShould restore the balances: got %d, exp 14000", failed, alice.Balance)
		}
		t.Logf("\t%s\tShould restore the balances.", success)

		got, err := st.QueryFile(file.ID)
		if err != nil || got.Status != catalogue.StatusActive {
			t.Fatalf("\t%s\tShould restore the catalogue: %v", failed, err)
		}
		t.Logf("\t%s\tShould restore the catalogue.", success)

		stats := st.QueryStats()
		if stats.ChainHeight != 1 || !stats.ChainValid {
			t.Fatalf("\t%s\tShould restore a valid chain: height %d", failed, stats.ChainHeight)
		}
		t.Logf("\t%s\tShould restore a valid chain.", success)

		// The duplicate indices are rebuilt on restore.
		if _, _, err := st.SubmitDeclare("bob", nf); err == nil {
			t.Fatalf("\t%s\tShould rebuild the duplicate indices on restore.", failed)
		}
		t.Logf("\t%s\tShould rebuild the duplicate indices on restore.", success)
	}
}
