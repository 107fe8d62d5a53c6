// Package http provides http transport for demos
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"demovault/internal/modkit/httpkit"
	perr "demovault/internal/platform/errors"
	ptime "demovault/internal/platform/time"
	"demovault/internal/services/demos/domain"
	svc "demovault/internal/services/demos/service"
)

// Register mounts demos endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.IngestInput](r, "/", h.ingest)
	httpkit.PostJSON[domain.SyncInput](r, "/sync", h.sync)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /demos Demos demosIngest
// @Summary Ingest one demo by share code
// @Tags Demos
// @Accept json
// @Produce json
// @Param payload body domain.IngestInput true "Share code and optional URL override"
// @Success 200 type domain.IngestResult ok
// @Router /demos [post]
func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestInput) (any, error) {
	accountID, err := httpkit.Account(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Ingest(r.Context(), accountID, in)
}

// swagger:route POST /demos/sync Demos demosSync
// @Summary Walk match history and ingest new demos
// @Tags Demos
// @Accept json
// @Produce json
// @Param payload body domain.SyncInput true "Optional resume point and step cap"
// @Success 200 type domain.SyncOutcome ok
// @Router /demos/sync [post]
func (h *handlers) sync(r *stdhttp.Request, in domain.SyncInput) (any, error) {
	accountID, err := httpkit.Account(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Sync(r.Context(), accountID, in)
}

// swagger:route GET /demos Demos demosList
// @Summary List the calling account's demo records
// @Tags Demos
// @Produce json
// @Param status query string false "Filter by record status"
// @Param since query string false "Only records created at or after this RFC3339 time"
// @Param limit query int false "Page size, default 50"
// @Param offset query int false "Page offset"
// @Success 200 {array} domain.Record "ok"
// @Router /demos [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	accountID, err := httpkit.Account(r)
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	p := domain.ListParams{Status: q.Get("status")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.InvalidArgf("limit must be an integer")
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.InvalidArgf("offset must be an integer")
		}
		p.Offset = n
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, perr.InvalidArgf("since must be RFC3339")
		}
		p.Since = ptime.Ptr(ts)
	}

	recs, err := h.svc.List(r.Context(), accountID, p)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return recs, nil
}

// swagger:route GET /demos/{id} Demos demosGet
// @Summary Fetch one demo record by id
// @Tags Demos
// @Produce json
// @Param id path string true "Record id"
// @Success 200 type domain.Record ok
// @Router /demos/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	accountID, err := httpkit.Account(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), accountID, chi.URLParam(r, "id"))
}
