package chain

import (
	"fmt"
	"sync"

	"github.com/nexusbt/nexus/foundation/nexus/signature"
)

// Chain is the append-only ordered history of mined blocks.
type Chain struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs an empty chain.
func New() *Chain {
	return &Chain{}
}

// Height returns the number of blocks in the chain.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return uint64(len(c.blocks))
}

// Latest returns the most recently appended block. The second return is
// false when the chain is empty.
func (c *Chain) Latest() (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.blocks) == 0 {
		return Block{}, false
	}

	return c.blocks[len(c.blocks)-1], true
}

// Append validates the block links against the current tail and appends
// the block to the chain.
func (c *Chain) Append(block Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validateLink(c.blocks, block); err != nil {
		return err
	}

	c.blocks = append(c.blocks, block)

	return nil
}

// Copy makes a copy of the current blocks in chain order.
func (c *Chain) Copy() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Validate walks the chain re-checking every link. It reports the first
// broken link found.
func (c *Chain) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, block := range c.blocks {
		if err := validateLink(c.blocks[:i], block); err != nil {
			return err
		}
	}

	return nil
}

// Replace swaps the current blocks with the specified set, validating
// every link. It is used when restoring from a snapshot.
func (c *Chain) Replace(blocks []Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, block := range blocks {
		if err := validateLink(blocks[:i], block); err != nil {
			return err
		}
	}

	c.blocks = make([]Block, len(blocks))
	copy(c.blocks, blocks)

	return nil
}

// =============================================================================

// validateLink checks a block is the proper next block for the specified
// prefix of the chain.
func validateLink(blocks []Block, block Block) error {
	nextNumber := uint64(len(blocks))
	if block.Header.Number != nextNumber {
		return fmt.Errorf("block number is not the next number, got %d, exp %d", block.Header.Number, nextNumber)
	}

	prevHash := signature.ZeroHash
	if len(blocks) > 0 {
		prevHash = blocks[len(blocks)-1].Hash()
	}

	if block.Header.PrevBlockHash != prevHash {
		return fmt.Errorf("prev block hash doesn't match, got %s, exp %s", block.Header.PrevBlockHash, prevHash)
	}

	return nil
}
