package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/centavo/internal/auth"
	"github.com/dukerupert/centavo/internal/push"
	"github.com/dukerupert/centavo/internal/store"
)

type PushHandler struct {
	pushStore *store.PushStore
	service   *push.Service
	logger    *slog.Logger
}

// NewPushHandler creates the push endpoints. service may be nil when
// VAPID keys are not configured; push routes then answer 503.
func NewPushHandler(ps *store.PushStore, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{pushStore: ps, service: svc, logger: logger}
}

func (h *PushHandler) configured(w http.ResponseWriter) bool {
	if h.service == nil {
		writeError(w, http.StatusServiceUnavailable, "push notifications are not configured")
		return false
	}
	return true
}

type subscribeRequest struct {
	Endpoint   string `json:"endpoint"`
	P256dh     string `json:"p256dh"`
	Auth       string `json:"auth"`
	DeviceName string `json:"device_name"`
}

// Subscribe handles POST /api/push/subscribe. Re-subscribing the same
// endpoint updates the stored keys instead of creating a duplicate.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	userID := auth.UserID(r.Context())

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Endpoint == "" || req.P256dh == "" || req.Auth == "" {
		writeError(w, http.StatusBadRequest, "endpoint, p256dh, and auth are required")
		return
	}

	sub, err := h.pushStore.CreateSubscription(userID, req.Endpoint, req.P256dh, req.Auth, req.DeviceName)
	if err != nil {
		h.logger.Error("create push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save subscription")
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles DELETE /api/push/subscriptions/{id}
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.pushStore.DeleteSubscription(id, userID); err != nil {
		h.logger.Error("delete push subscription", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions handles GET /api/push/subscriptions
func (h *PushHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	subs, err := h.pushStore.ListByUser(userID)
	if err != nil {
		h.logger.Error("list push subscriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}
	if subs == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// GetVAPIDKey handles GET /api/push/vapid-key
func (h *PushHandler) GetVAPIDKey(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.service.VAPIDPublicKey()})
}

// TestNotification handles POST /api/push/test. It attempts delivery
// to every endpoint the user has registered and reports per-endpoint
// outcomes as counts. Expired endpoints are pruned, not counted as
// permanent failures worth keeping.
func (h *PushHandler) TestNotification(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	userID := auth.UserID(r.Context())

	subs, err := h.pushStore.ListByUser(userID)
	if err != nil {
		h.logger.Error("list push subscriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}
	if len(subs) == 0 {
		writeError(w, http.StatusNotFound, "no push subscriptions registered")
		return
	}

	payload := push.Payload{
		Title: "Test Notification",
		Body:  "Push notifications are working!",
		URL:   "/settings",
		Tag:   "test",
	}

	sent, failed := 0, 0
	for i := range subs {
		err := h.service.Send(r.Context(), &subs[i], payload)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, push.ErrExpired):
			failed++
			if err := h.pushStore.DeleteByEndpoint(subs[i].Endpoint); err != nil {
				h.logger.Error("prune expired subscription", "error", err)
			}
		default:
			failed++
			h.logger.Warn("test push send", "endpoint", subs[i].Endpoint, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]int{"sent": sent, "failed": failed})
}
