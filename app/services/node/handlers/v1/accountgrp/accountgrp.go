// Package accountgrp maintains the group of handlers for account access.
package accountgrp

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	v1 "github.com/nexusbt/nexus/business/web/v1"
	"github.com/nexusbt/nexus/business/web/v1/mid"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of account endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Register creates a new account funded with the genesis initial credit and
// returns the bearer token the client will authenticate with.
func (h Handlers) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app AppNewAccount
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	acct, err := h.State.RegisterAccount(app.Username)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("account registered", "traceid", v.TraceID, "username", app.Username, "identity", acct.Identity)

	resp := AppAccount{
		Username: strings.TrimSpace(app.Username),
		Identity: acct.Identity,
		Role:     string(acct.Role),
		Balance:  acct.Balance,
		Token:    mid.Token(strings.TrimSpace(app.Username)),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Balances returns the caller's balance. An admin caller may pass a
// comma separated accounts query parameter to inspect other accounts, or
// nothing to see every account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	var targets []string
	if raw := r.URL.Query().Get("accounts"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				targets = append(targets, t)
			}
		}
	}

	infos, err := h.State.QueryBalances(c.Username, targets)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	balances := make([]AppBalance, 0, len(infos))
	for username, info := range infos {
		balances = append(balances, AppBalance{
			Username:   username,
			Role:       string(info.Role),
			Balance:    info.Balance,
			PendingTxs: info.PendingTxs,
		})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Username < balances[j].Username })

	return web.Respond(ctx, w, balances, http.StatusOK)
}

// Wealth returns every account ordered by balance. Admin only.
func (h Handlers) Wealth(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	infos, err := h.State.QueryWealthBoard(c.Username)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	board := make([]AppBalance, 0, len(infos))
	for username, info := range infos {
		board = append(board, AppBalance{
			Username:   username,
			Role:       string(info.Role),
			Balance:    info.Balance,
			PendingTxs: info.PendingTxs,
		})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Balance != board[j].Balance {
			return board[i].Balance > board[j].Balance
		}
		return board[i].Username < board[j].Username
	})

	return web.Respond(ctx, w, board, http.StatusOK)
}
