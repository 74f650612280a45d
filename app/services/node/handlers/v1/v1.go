// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/nexusbt/nexus/app/services/node/handlers/v1/accountgrp"
	"github.com/nexusbt/nexus/app/services/node/handlers/v1/cataloggrp"
	"github.com/nexusbt/nexus/app/services/node/handlers/v1/chaingrp"
	"github.com/nexusbt/nexus/business/web/v1/mid"
	"github.com/nexusbt/nexus/foundation/events"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 routes.
func PublicRoutes(app *web.App, cfg Config) {
	athn := mid.Authenticate(cfg.State)
	admn := mid.AuthenticateAdmin(cfg.State)

	agh := accountgrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}
	app.Handle(http.MethodPost, version, "/accounts", agh.Register)
	app.Handle(http.MethodGet, version, "/accounts/balance", agh.Balances, athn)
	app.Handle(http.MethodGet, version, "/accounts/wealth", agh.Wealth, athn, admn)

	cgh := cataloggrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}
	app.Handle(http.MethodPost, version, "/catalogue/declare", cgh.Declare, athn)
	app.Handle(http.MethodGet, version, "/catalogue/name-check", cgh.NameCheck, athn)
	app.Handle(http.MethodPost, version, "/catalogue/download/:id", cgh.Download, athn)
	app.Handle(http.MethodGet, version, "/catalogue", cgh.Search, athn)
	app.Handle(http.MethodGet, version, "/catalogue/search", cgh.Search, athn)
	app.Handle(http.MethodGet, version, "/catalogue/my-files", cgh.MyFiles, athn)
	app.Handle(http.MethodGet, version, "/catalogue/:id", cgh.QueryByID, athn)
	app.Handle(http.MethodPost, version, "/catalogue/report/:id", cgh.Report, athn)
	app.Handle(http.MethodDelete, version, "/catalogue/:id", cgh.Remove, athn)

	bgh := chaingrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}
	app.Handle(http.MethodGet, version, "/events", bgh.Events)
	app.Handle(http.MethodPost, version, "/mine", bgh.Mine, athn)
	app.Handle(http.MethodGet, version, "/blocks", bgh.Blocks, athn)
	app.Handle(http.MethodGet, version, "/tx/uncommitted", bgh.Mempool, athn)
	app.Handle(http.MethodGet, version, "/genesis", bgh.Genesis, athn)
	app.Handle(http.MethodGet, version, "/stats", bgh.Stats, athn)
}
