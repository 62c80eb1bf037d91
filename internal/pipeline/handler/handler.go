package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cleanroom/internal/domain"
	"cleanroom/internal/pipeline"
	"cleanroom/internal/results"
	dErrors "cleanroom/pkg/domain-errors"
	"cleanroom/pkg/platform/httputil"
)

// Runner runs one batch end to end.
type Runner interface {
	Run(ctx context.Context, columns []string, batch []domain.Record) (*pipeline.RunReport, error)
}

// Handler wires pipeline endpoints to the runner and results store.
type Handler struct {
	runner Runner
	store  results.Store
	logger *slog.Logger
}

func New(runner Runner, store results.Store, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, store: store, logger: logger}
}

// Register mounts pipeline endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/runs", h.HandleRun)
	r.Get("/runs/latest", h.HandleLatest)
}

// HandleRun handles POST /runs: ingest a batch and process it.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, err := httputil.Decode[RunRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(req.Rows) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "rows must not be empty"))
		return
	}

	report, err := h.runner.Run(ctx, req.ResolvedColumns(), req.Records())
	if err != nil {
		h.logger.ErrorContext(ctx, "pipeline run failed",
			"rows", len(req.Rows),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "pipeline run accepted",
		"run_id", report.RunID,
		"rows", len(req.Rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

// latestResponse summarizes the current-results view.
type latestResponse struct {
	RunID       string    `json:"run_id"`
	Timestamp   time.Time `json:"timestamp"`
	Cleaned     int       `json:"cleaned"`
	Quarantined int       `json:"quarantined"`
	Archived    int       `json:"archived"`
}

// HandleLatest handles GET /runs/latest.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, err := h.store.Current(ctx)
	if err != nil {
		if err == results.ErrNoResults {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no runs yet"))
			return
		}
		h.logger.ErrorContext(ctx, "load current results failed", "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, latestResponse{
		RunID:       current.RunID,
		Timestamp:   current.Timestamp,
		Cleaned:     len(current.Cleaned),
		Quarantined: len(current.Quarantined),
		Archived:    len(current.Archived),
	})
}
