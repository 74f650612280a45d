// Package state is the core API for the credit ledger simulation and
// implements all the business rules and processing. Every mutating
// operation is serialized behind a single mutex so settlement never
// interleaves with an enqueue and reads never observe a partially
// applied block.
package state

import (
	"sync"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/genesis"
	"github.com/nexusbt/nexus/foundation/nexus/mempool"
	"github.com/nexusbt/nexus/foundation/nexus/storage/snapshot"
)

// EventHandler defines a function that is called when events occur in
// the processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing background support for the state.
type Worker interface {
	Shutdown()
	SignalSnapshot()
}

// Snapshotter interface represents the behavior required to be
// implemented by any package providing persistence for the stores.
type Snapshotter interface {
	Write(snap snapshot.Snapshot) error
	Load() (snapshot.Snapshot, bool, error)
	Close() error
}

// =============================================================================

// Config represents the configuration required to start the state.
type Config struct {
	Genesis     genesis.Genesis
	Snapshotter Snapshotter
	EvHandler   EventHandler
}

// State manages the ledger, catalogue, transaction pool, and chain.
type State struct {
	mu        sync.Mutex
	genesis   genesis.Genesis
	evHandler EventHandler

	accounts    *accounts.Accounts
	catalogue   *catalogue.Catalogue
	mempool     *mempool.Mempool
	chain       *chain.Chain
	snapshotter Snapshotter

	// The Worker is not set here. The call to worker.Run will assign
	// itself and start everything up and running for the node.
	Worker Worker
}

// New constructs a new state for ledger management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	accts, err := accounts.New(cfg.Genesis)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:     cfg.Genesis,
		evHandler:   ev,
		accounts:    accts,
		catalogue:   catalogue.New(cfg.Genesis),
		mempool:     mempool.New(),
		chain:       chain.New(),
		snapshotter: cfg.Snapshotter,
	}

	// Restore the stores from the last snapshot if one exists.
	if cfg.Snapshotter != nil {
		snap, exists, err := cfg.Snapshotter.Load()
		if err != nil {
			return nil, err
		}
		if exists {
			if err := state.restore(snap); err != nil {
				return nil, err
			}
			ev("state: restored snapshot: accounts[%d] files[%d] pool[%d] blocks[%d]",
				len(snap.Accounts), len(snap.Files), len(snap.Pool), len(snap.Blocks))
		}
	}

	return &state, nil
}

// Shutdown cleanly brings the state down.
func (s *State) Shutdown() error {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	if s.snapshotter != nil {
		return s.snapshotter.Close()
	}

	return nil
}

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// SnapshotNow captures a consistent copy of the four stores and persists
// it. It is a no-op when no snapshotter is configured.
func (s *State) SnapshotNow() error {
	if s.snapshotter == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blocks := s.chain.Copy()
	blockData := make([]chain.BlockData, len(blocks))
	for i, block := range blocks {
		blockData[i] = chain.NewBlockData(block)
	}

	snap := snapshot.Snapshot{
		Accounts: s.accounts.Copy(),
		Files:    s.catalogue.Copy(),
		Pool:     s.mempool.Copy(),
		Blocks:   blockData,
	}

	return s.snapshotter.Write(snap)
}

// =============================================================================

// restore replaces the stores with the snapshot contents, re-validating
// the chain links.
func (s *State) restore(snap snapshot.Snapshot) error {
	if snap.Accounts != nil {
		s.accounts.Replace(snap.Accounts)
	}
	s.catalogue.Replace(snap.Files)
	s.mempool.Replace(snap.Pool)

	blocks := make([]chain.Block, len(snap.Blocks))
	for i, blockData := range snap.Blocks {
		blocks[i] = chain.ToBlock(blockData)
	}

	return s.chain.Replace(blocks)
}

// signalSnapshot asks the worker to persist the stores in the
// background.
func (s *State) signalSnapshot() {
	if s.Worker != nil {
		s.Worker.SignalSnapshot()
	}
}
