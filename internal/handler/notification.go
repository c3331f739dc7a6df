package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/centavo/internal/auth"
	"github.com/dukerupert/centavo/internal/model"
	"github.com/dukerupert/centavo/internal/store"
)

type NotificationHandler struct {
	store  *store.NotificationStore
	logger *slog.Logger
}

func NewNotificationHandler(s *store.NotificationStore, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{store: s, logger: logger}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	notifications, err := h.store.ListByUser(userID)
	if err != nil {
		h.logger.Error("list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	n, err := h.store.MarkRead(id, userID)
	if err != nil {
		h.logger.Error("mark notification read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}
	if n == nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	updated, err := h.store.MarkAllRead(userID)
	if err != nil {
		h.logger.Error("mark all notifications read", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update notifications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// Delete handles DELETE /api/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		h.logger.Error("delete notification", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
