package chain_test

import (
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestAppendAndValidate(t *testing.T) {
	t.Log("Given the need to keep the chain links intact.")
	{
		c := chain.New()

		if _, exists := c.Latest(); exists {
			t.Fatalf("\t%s\tShould report no latest block on an empty chain.", failed)
		}
		t.Logf("\t%s\tShould report no latest block on an empty chain.", success)

		txs := []chain.Tx{chain.NewTx(chain.KindDeclare, "alice", "", 1, 2000, 0)}

		b0 := chain.NewBlock("admin", 50, 1, 0, signature.ZeroHash, txs)
		if err := c.Append(b0); err != nil {
			t.Fatalf("\t%s\tShould append the first block: %v", failed, err)
		}
		t.Logf("\t%s\tShould append the first block.", success)

		b1 := chain.NewBlock("admin", 52, 1, 1, b0.Hash(), nil)
		if err := c.Append(b1); err != nil {
			t.Fatalf("\t%s\tShould append a properly linked block: %v", failed, err)
		}
		t.Logf("\t%s\tShould append a properly linked block.", success)

		if c.Height() != 2 {
			t.Fatalf("\t%s\tShould report the chain height: got %d, exp 2", failed, c.Height())
		}
		t.Logf("\t%s\tShould report the chain height.", success)

		// Wrong number.
		bad := chain.NewBlock("admin", 50, 1, 5, b1.Hash(), nil)
		if err := c.Append(bad); err == nil {
			t.Fatalf("\t%s\tShould reject a block with the wrong number.", failed)
		}
		t.Logf("\t%s\tShould reject a block with the wrong number.", success)

		// Wrong previous hash.
		bad = chain.NewBlock("admin", 50, 1, 2, signature.ZeroHash, nil)
		if err := c.Append(bad); err == nil {
			t.Fatalf("\t%s\tShould reject a block with a broken hash link.", failed)
		}
		t.Logf("\t%s\tShould reject a block with a broken hash link.", success)

		if err := c.Validate(); err != nil {
			t.Fatalf("\t%s\tShould validate the whole chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate the whole chain.", success)
	}
}

func TestReplace(t *testing.T) {
	t.Log("Given the need to restore a chain from a snapshot.")
	{
		b0 := chain.NewBlock("admin", 50, 1, 0, signature.ZeroHash, nil)
		b1 := chain.NewBlock("admin", 50, 1, 1, b0.Hash(), nil)

		c := chain.New()
		if err := c.Replace([]chain.Block{b0, b1}); err != nil {
			t.Fatalf("\t%s\tShould restore a valid chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould restore a valid chain.", success)

		if c.Height() != 2 {
			t.Fatalf("\t%s\tShould restore every block: got %d, exp 2", failed, c.Height())
		}
		t.Logf("\t%s\tShould restore every block.", success)

		// A tampered restore must fail.
		broken := chain.NewBlock("admin", 50, 1, 1, signature.ZeroHash, nil)
		if err := c.Replace([]chain.Block{b0, broken}); err == nil {
			t.Fatalf("\t%s\tShould reject a restore with broken links.", failed)
		}
		t.Logf("\t%s\tShould reject a restore with broken links.", success)
	}
}

func TestBlockDataRoundTrip(t *testing.T) {
	t.Log("Given the need to carry blocks across the wire with their hash.")
	{
		b := chain.NewBlock("admin", 52, 1, 0, signature.ZeroHash,
			[]chain.Tx{chain.NewTx(chain.KindDownload, "bob", "alice", 1, 2000, 2)})

		blockData := chain.NewBlockData(b)
		if blockData.Hash != b.Hash() {
			t.Fatalf("\t%s\tShould record the block hash.", failed)
		}
		t.Logf("\t%s\tShould record the block hash.", success)

		back := chain.ToBlock(blockData)
		if back.Hash() != b.Hash() {
			t.Fatalf("\t%s\tShould reconstruct an identical block.", failed)
		}
		t.Logf("\t%s\tShould reconstruct an identical block.", success)
	}
}
