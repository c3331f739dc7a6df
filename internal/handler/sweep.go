package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/centavo/internal/push"
)

type SweepHandler struct {
	dispatcher *push.Dispatcher
	logger     *slog.Logger
}

// NewSweepHandler creates the sweep trigger endpoint. dispatcher may
// be nil when push is not configured; the route then answers 503.
func NewSweepHandler(d *push.Dispatcher, logger *slog.Logger) *SweepHandler {
	return &SweepHandler{dispatcher: d, logger: logger}
}

// Run handles POST /api/sweep. External cron services call this, so
// the route is unauthenticated and CORS-open.
func (h *SweepHandler) Run(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)

	if h.dispatcher == nil {
		writeError(w, http.StatusServiceUnavailable, "push notifications are not configured")
		return
	}

	res, err := h.dispatcher.Run(r.Context())
	switch {
	case errors.Is(err, push.ErrSweepInProgress):
		writeError(w, http.StatusConflict, "a sweep is already running")
		return
	case err != nil:
		h.logger.Error("sweep failed", "error", err)
		writeError(w, http.StatusInternalServerError, "sweep failed")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Preflight handles OPTIONS /api/sweep.
func (h *SweepHandler) Preflight(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	w.WriteHeader(http.StatusNoContent)
}

func allowCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
