// Package worker implements the background support for the state. The
// only workflow in this single-authority node is persisting snapshots of
// the stores after a block is mined.
package worker

import (
	"sync"

	"github.com/nexusbt/nexus/foundation/nexus/state"
)

// Worker manages the background goroutines for the node.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	shut         chan struct{}
	snapshotting chan bool
	evHandler    state.EventHandler
}

// Run creates a worker, registers it with the state, and starts the
// snapshot workflow.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:        st,
		shut:         make(chan struct{}),
		snapshotting: make(chan bool, 1),
		evHandler:    evHandler,
	}

	// Register this worker with the state so the core can signal it.
	st.Worker = &w

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.snapshotOperations()
	}()
}

// Shutdown brings the worker down in an orderly fashion.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	close(w.shut)
	w.wg.Wait()
}

// SignalSnapshot queues a snapshot of the stores. The signal is dropped
// when one is already queued; the queued run captures the latest state
// anyway.
func (w *Worker) SignalSnapshot() {
	select {
	case w.snapshotting <- true:
	default:
	}
}

// =============================================================================

// snapshotOperations waits for snapshot signals and persists the stores.
func (w *Worker) snapshotOperations() {
	w.evHandler("worker: snapshotOperations: G started")
	defer w.evHandler("worker: snapshotOperations: G completed")

	for {
		select {
		case <-w.snapshotting:
			if err := w.state.SnapshotNow(); err != nil {
				w.evHandler("worker: snapshotOperations: ERROR: %s", err)
			}

		case <-w.shut:
			return
		}
	}
}
