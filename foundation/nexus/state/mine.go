package state

import (
	"errors"
	"fmt"

	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/signature"
)

// ErrNoPendingTransactions is returned when a block is requested to be
// created and the pool is empty. It is a non-fatal condition and no state
// is mutated.
var ErrNoPendingTransactions = errors.New("no pending transactions to mine")

// =============================================================================

// MineNewBlock drains the transaction pool, settles every transaction in
// enqueue order, pays the miner, and appends the new block to the chain.
// Mining is non-preemptible: a second concurrent call blocks until the
// first completes. A transaction that fails to apply at settlement time
// is dropped from the block and reported back while the rest of the
// batch still settles.
func (s *State) MineNewBlock(miner string) (chain.Block, chain.SettleErrors, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accounts.Query(miner); err != nil {
		return chain.Block{}, nil, fmt.Errorf("miner %q: %w", miner, err)
	}

	drained := s.mempool.DrainAll()
	if drained == nil {
		return chain.Block{}, nil, ErrNoPendingTransactions
	}

	s.evHandler("state: MineNewBlock: MINING: settling %d transactions", len(drained))

	var settled []chain.Tx
	var settleErrs chain.SettleErrors
	var fees uint64

	for _, tx := range drained {
		s.accounts.SettlePending(tx.Initiator)

		if err := s.settle(tx, &fees); err != nil {
			s.evHandler("state: MineNewBlock: WARNING: dropping tx[%s]: %s", tx, err)
			settleErrs = append(settleErrs, chain.SettleError{Tx: tx, Err: err})
			continue
		}

		settled = append(settled, tx)
	}

	// The miner is paid the base reward plus the fees collected from the
	// downloads settled into this block.
	minerReward := s.genesis.MiningReward + fees
	if err := s.accounts.ApplyCredit(miner, minerReward); err != nil {
		return chain.Block{}, settleErrs, err
	}

	prevBlockHash := signature.ZeroHash
	if latest, exists := s.chain.Latest(); exists {
		prevBlockHash = latest.Hash()
	}

	block := chain.NewBlock(miner, minerReward, s.genesis.Difficulty, s.chain.Height(), prevBlockHash, settled)
	if err := s.chain.Append(block); err != nil {
		return chain.Block{}, settleErrs, err
	}

	s.evHandler("state: MineNewBlock: MINING: completed: blk[%d] miner[%s] reward[%d] settled[%d] dropped[%d]",
		block.Header.Number, miner, minerReward, len(settled), len(settleErrs))

	s.signalSnapshot()

	return block, settleErrs, nil
}

// =============================================================================

// settle applies a single drained transaction to the ledger and the
// catalogue. Callers must hold the state lock.
func (s *State) settle(tx chain.Tx, fees *uint64) error {
	switch tx.Kind {
	case chain.KindDeclare:
		if err := s.catalogue.Activate(tx.FileID); err != nil {
			return err
		}
		return s.accounts.ApplyCredit(tx.Initiator, tx.Amount)

	case chain.KindDownload:

		// The file must still be active: its declare settled earlier in
		// this batch or in a previous block, and it was not removed since.
		file, err := s.catalogue.QueryByID(tx.FileID)
		if err != nil {
			return err
		}
		if file.Status != catalogue.StatusActive {
			return fmt.Errorf("file %d is %s: %w", tx.FileID, file.Status, catalogue.ErrNotActive)
		}

		if err := s.accounts.ApplyDebit(tx.Initiator, tx.Amount+tx.Fee); err != nil {
			return err
		}

		if err := s.accounts.ApplyCredit(tx.Counterparty, tx.Amount); err != nil {

			// The owner account vanished; undo the debit so no credit is
			// destroyed.
			s.accounts.ApplyCredit(tx.Initiator, tx.Amount+tx.Fee)
			return err
		}

		*fees += tx.Fee
		return nil
	}

	return fmt.Errorf("unknown transaction kind %q", tx.Kind)
}
