package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cleanroom/internal/review"
	"cleanroom/pkg/platform/httputil"
)

// Service defines the review operations the handler needs.
type Service interface {
	Queue(ctx context.Context) ([]review.QueueItem, error)
	Apply(ctx context.Context, req review.DecisionRequest) (*review.Applied, error)
}

// Handler wires review endpoints to the review service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts review endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/review/queue", h.HandleQueue)
	r.Post("/review/decision", h.HandleDecision)
}

// HandleQueue handles GET /review/queue.
func (h *Handler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queue, err := h.service.Queue(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "review queue failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, queue)
}

// HandleDecision handles POST /review/decision.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := httputil.Decode[review.DecisionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	applied, err := h.service.Apply(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "review decision failed",
			"employee_id", req.EmployeeID,
			"decision", req.Decision,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "review decision applied",
		"employee_id", applied.EmployeeID,
		"outcome", applied.Outcome,
	)
	httputil.WriteJSON(w, http.StatusOK, applied)
}
