// Package chaingrp maintains the group of handlers for chain access.
package chaingrp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/nexusbt/nexus/business/web/v1"
	"github.com/nexusbt/nexus/business/web/v1/mid"
	"github.com/nexusbt/nexus/foundation/events"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, wd := <-ch:
			if !wd {
				return nil
			}

			data, err := json.Marshal(event)
			if err != nil {
				return err
			}

			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Mine settles the pending transaction pool into a new block, crediting the
// caller with the mining reward plus the collected fees.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	block, settleErrs, err := h.State.MineNewBlock(c.Username)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("block mined", "traceid", v.TraceID, "miner", c.Username, "number", block.Header.Number,
		"trans", len(block.Trans), "failures", len(settleErrs))

	failures := make([]string, len(settleErrs))
	for i, se := range settleErrs {
		failures[i] = se.Error()
	}

	resp := AppMined{
		Block:    chain.NewBlockData(block),
		Failures: failures,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Blocks returns the blocks visible to the caller. Admins see every block
// and can filter by number, hash fragment, or miner; members only ever see
// the blocks they mined.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	values := r.URL.Query()

	var filter state.BlockFilter
	if raw := values.Get("number"); raw != "" {
		number, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return v1.NewRequestError(fmt.Errorf("invalid number: %w", err), http.StatusBadRequest)
		}
		filter.Number = &number
	}
	filter.HashFragment = values.Get("hash")
	filter.Miner = values.Get("miner")

	blocks, err := h.State.QueryBlocks(c.Username, filter)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Mempool returns the set of pending transactions awaiting settlement.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.QueryMempool(), http.StatusOK)
}

// Genesis returns the genesis parameters the ledger was booted with.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Genesis(), http.StatusOK)
}

// Stats returns a summary of the running system.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.QueryStats(), http.StatusOK)
}
