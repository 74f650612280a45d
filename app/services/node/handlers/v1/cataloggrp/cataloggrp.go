// Package cataloggrp maintains the group of handlers for catalogue access.
package cataloggrp

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	v1 "github.com/nexusbt/nexus/business/web/v1"
	"github.com/nexusbt/nexus/business/web/v1/mid"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/state"
	"github.com/nexusbt/nexus/foundation/web"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handlers manages the set of catalogue endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Declare queues a new shared file declaration. The file enters the
// catalogue as pending and the upload credit settles when a block is mined.
func (h Handlers) Declare(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	var app AppNewFile
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	sizeGB, err := decimal.NewFromString(app.SizeGB)
	if err != nil {
		return v1.NewRequestError(fmt.Errorf("invalid size_gb: %w", err), http.StatusBadRequest)
	}

	category, err := catalogue.ParseCategory(app.Category)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	nf := catalogue.NewFile{
		Name:          app.Name,
		SizeGB:        sizeGB,
		Uploader:      c.Username,
		OwnerIdentity: c.Account.Identity,
		Description:   app.Description,
		Category:      category,
		FileHash:      app.FileHash,
	}

	file, credit, err := h.State.SubmitDeclare(c.Username, nf)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("file declared", "traceid", v.TraceID, "username", c.Username, "fileid", file.ID, "name", file.Name)

	resp := AppDeclared{
		File:               file,
		CreditOnActivation: credit,
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// NameCheck reports whether a file name is free to declare, and if not,
// which active file blocks it.
func (h Handlers) NameCheck(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		return v1.NewRequestError(fmt.Errorf("missing name query parameter"), http.StatusBadRequest)
	}

	available, conflict := h.State.CheckName(c.Username, name)

	resp := AppNameCheck{
		Name:      name,
		Available: available,
		Conflict:  conflict,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Download charges the caller for a download and queues the payment to the
// uploader. Owners download their own files for free.
func (h Handlers) Download(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	fileID, err := fileIDParam(r)
	if err != nil {
		return err
	}

	cost, fee, err := h.State.SubmitDownload(c.Username, fileID)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("download queued", "traceid", v.TraceID, "username", c.Username, "fileid", fileID, "cost", cost, "fee", fee)

	resp := AppDownload{
		FileID: fileID,
		Cost:   cost,
		Fee:    fee,
		Total:  cost + fee,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Search returns the active files matching the conjunctive filters taken
// from the query string.
func (h Handlers) Search(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	filter, err := parseFilter(r)
	if err != nil {
		return err
	}

	files := h.State.SearchFiles(filter)
	return web.Respond(ctx, w, files, http.StatusOK)
}

// MyFiles returns every file the caller has declared, whatever its status.
func (h Handlers) MyFiles(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	files := h.State.ListFilesByOwner(c.Username)
	return web.Respond(ctx, w, files, http.StatusOK)
}

// QueryByID returns a single file by its catalogue id.
func (h Handlers) QueryByID(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fileID, err := fileIDParam(r)
	if err != nil {
		return err
	}

	file, err := h.State.QueryFile(fileID)
	if err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	return web.Respond(ctx, w, file, http.StatusOK)
}

// Report flags an active file for review and takes it out of circulation.
func (h Handlers) Report(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	fileID, err := fileIDParam(r)
	if err != nil {
		return err
	}

	if err := h.State.ReportFile(fileID, c.Username); err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("file reported", "traceid", v.TraceID, "username", c.Username, "fileid", fileID)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "file flagged for review",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Remove takes a file out of the catalogue. Only the owner or an admin
// may remove a file.
func (h Handlers) Remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := mid.GetCaller(ctx)
	if err != nil {
		return web.NewShutdownError("caller value missing from context")
	}

	fileID, err := fileIDParam(r)
	if err != nil {
		return err
	}

	if err := h.State.RemoveFile(fileID, c.Username); err != nil {
		return v1.NewRequestError(err, v1.Status(err))
	}

	h.Log.Infow("file removed", "traceid", v.TraceID, "username", c.Username, "fileid", fileID)

	return web.Respond(ctx, w, nil, http.StatusNoContent)
}

// =============================================================================

func fileIDParam(r *http.Request) (uint64, error) {
	fileID, err := strconv.ParseUint(web.Param(r, "id"), 10, 64)
	if err != nil {
		return 0, v1.NewRequestError(fmt.Errorf("invalid file id: %w", err), http.StatusBadRequest)
	}
	return fileID, nil
}

func parseFilter(r *http.Request) (catalogue.QueryFilter, error) {
	values := r.URL.Query()

	var filter catalogue.QueryFilter
	filter.Keyword = values.Get("keyword")

	if raw := values.Get("category"); raw != "" {
		category, err := catalogue.ParseCategory(raw)
		if err != nil {
			return catalogue.QueryFilter{}, v1.NewRequestError(err, http.StatusBadRequest)
		}
		filter.Category = category
	}

	if raw := values.Get("min_size_gb"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return catalogue.QueryFilter{}, v1.NewRequestError(fmt.Errorf("invalid min_size_gb: %w", err), http.StatusBadRequest)
		}
		filter.MinSizeGB = &d
	}

	if raw := values.Get("max_size_gb"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return catalogue.QueryFilter{}, v1.NewRequestError(fmt.Errorf("invalid max_size_gb: %w", err), http.StatusBadRequest)
		}
		filter.MaxSizeGB = &d
	}

	if raw := values.Get("min_seeds"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return catalogue.QueryFilter{}, v1.NewRequestError(fmt.Errorf("invalid min_seeds: %w", err), http.StatusBadRequest)
		}
		filter.MinSeeds = &n
	}

	return filter, nil
}
