// Package mempool maintains the pool of transactions waiting to be
// settled into a block. The pool is strictly FIFO: drain order is enqueue
// order, which is the tie-break for settlement when multiple transactions
// touch the same account.
package mempool

import (
	"sync"

	"github.com/nexusbt/nexus/foundation/nexus/chain"
)

// Mempool represents the queue of not-yet-settled transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool []chain.Tx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the back of the queue.
func (mp *Mempool) Append(tx chain.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
}

// DrainAll atomically removes and returns every pending transaction in
// enqueue order. It returns nil when the pool is empty, which the mining
// engine surfaces as a non-fatal nothing-to-mine condition.
func (mp *Mempool) DrainAll() []chain.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if len(mp.pool) == 0 {
		return nil
	}

	drained := mp.pool
	mp.pool = nil

	return drained
}

// Copy makes a copy of the pending transactions in enqueue order.
func (mp *Mempool) Copy() []chain.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	pool := make([]chain.Tx, len(mp.pool))
	copy(pool, mp.pool)

	return pool
}

// Replace swaps the current queue with the specified transactions. It is
// used when restoring from a snapshot.
func (mp *Mempool) Replace(txs []chain.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make([]chain.Tx, len(txs))
	copy(mp.pool, txs)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
