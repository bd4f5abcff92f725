// Package groupapi exposes homogeneous group computation over HTTP.
package groupapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/pairgroups/internal/grouping"
	"github.com/linnemanlabs/pairgroups/internal/homgroups"
)

// GroupService defines the business operations groupapi needs.
type GroupService interface {
	Compute(ctx context.Context, req *grouping.Request) (*grouping.Result, error)
	ComputeBatch(ctx context.Context, reqs []*grouping.Request) ([]grouping.BatchEntry, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    GroupService
}

// New creates a new API handler.
func New(logger log.Logger, svc GroupService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("group service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes attaches API endpoints to the router. Extra middleware, such
// as bearer auth, wraps only these routes.
func (a *API) RegisterRoutes(r chi.Router, mw ...func(http.Handler) http.Handler) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw...)
		r.Post("/groups", a.handleCompute)
		r.Post("/groups/batch", a.handleComputeBatch)
	})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, grouping.ErrTooManyItems), errors.Is(err, grouping.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, homgroups.ErrInconsistentRelation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, homgroups.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// nothing to do with errors here, headers are already sent
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		a.logger.Error(r.Context(), err, "grouping failed")
		writeJSON(w, code, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, code, errorBody{Error: err.Error(), Code: string(grouping.OutcomeOf(err))})
}
