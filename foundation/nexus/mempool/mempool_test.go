package mempool_test

import (
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestFIFO(t *testing.T) {
	t.Log("Given the need to drain transactions in enqueue order.")
	{
		mp := mempool.New()

		if drained := mp.DrainAll(); drained != nil {
			t.Fatalf("\t%s\tShould drain nil from an empty pool: got %d", failed, len(drained))
		}
		t.Logf("\t%s\tShould drain nil from an empty pool.", success)

		mp.Append(chain.NewTx(chain.KindDeclare, "alice", "", 1, 2000, 0))
		mp.Append(chain.NewTx(chain.KindDownload, "bob", "alice", 1, 2000, 2))
		mp.Append(chain.NewTx(chain.KindDownload, "carol", "alice", 1, 2000, 2))

		if mp.Count() != 3 {
			t.Fatalf("\t%s\tShould count pending transactions: got %d, exp 3", failed, mp.Count())
		}
		t.Logf("\t%s\tShould count pending transactions.", success)

		cpy := mp.Copy()
		if len(cpy) != 3 || mp.Count() != 3 {
			t.Fatalf("\t%s\tShould copy without draining.", failed)
		}
		t.Logf("\t%s\tShould copy without draining.", success)

		drained := mp.DrainAll()
		if len(drained) != 3 {
			t.Fatalf("\t%s\tShould drain every transaction: got %d, exp 3", failed, len(drained))
		}
		t.Logf("\t%s\tShould drain every transaction.", success)

		order := []string{"alice", "bob", "carol"}
		for i, tx := range drained {
			if tx.Initiator != order[i] {
				t.Fatalf("\t%s\tShould preserve enqueue order: got %q at %d, exp %q", failed, tx.Initiator, i, order[i])
			}
		}
		t.Logf("\t%s\tShould preserve enqueue order.", success)

		if mp.Count() != 0 {
			t.Fatalf("\t%s\tShould leave the pool empty after draining: got %d", failed, mp.Count())
		}
		t.Logf("\t%s\tShould leave the pool empty after draining.", success)
	}
}

func TestReplace(t *testing.T) {
	t.Log("Given the need to restore the pool from a snapshot.")
	{
		mp := mempool.New()
		mp.Append(chain.NewTx(chain.KindDeclare, "alice", "", 1, 2000, 0))

		restored := []chain.Tx{
			chain.NewTx(chain.KindDownload, "bob", "alice", 1, 2000, 2),
			chain.NewTx(chain.KindDownload, "carol", "alice", 1, 2000, 2),
		}
		mp.Replace(restored)

		drained := mp.DrainAll()
		if len(drained) != 2 || drained[0].Initiator != "bob" {
			t.Fatalf("\t%s\tShould replace the queue contents: got %d", failed, len(drained))
		}
		t.Logf("\t%s\tShould replace the queue contents.", success)
	}
}
