package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/centavo/internal/auth"
	"github.com/dukerupert/centavo/internal/duedate"
	"github.com/dukerupert/centavo/internal/model"
	"github.com/dukerupert/centavo/internal/store"
	"github.com/dukerupert/centavo/internal/websocket"
)

type AccountHandler struct {
	store  *store.AccountStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewAccountHandler(s *store.AccountStore, hub *websocket.Hub, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{store: s, hub: hub, logger: logger}
}

type accountRequest struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
	DueDay      int    `json:"due_day"`
}

func (req *accountRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.AmountCents <= 0 {
		return "amount_cents must be positive"
	}
	if req.DueDay < 1 || req.DueDay > 31 {
		return "due_day must be between 1 and 31"
	}
	req.Category = model.NormalizeBillCategory(req.Category)
	return ""
}

// accountView annotates a fixed account with its computed dueness for
// the list endpoint, so clients never re-implement the calendar math.
type accountView struct {
	model.FixedAccount
	DaysUntilDue int    `json:"days_until_due"`
	Badge        string `json:"badge,omitempty"`
}

// List handles GET /api/accounts. Accounts are sorted soonest-due
// first; inactive ones sort after active ones.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	accounts, err := h.store.ListByUser(userID)
	if err != nil {
		h.logger.Error("list accounts", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	now := time.Now()
	var active, inactive []model.FixedAccount
	for _, a := range accounts {
		if a.IsActive {
			active = append(active, a)
		} else {
			inactive = append(inactive, a)
		}
	}
	duedate.SortByDueDate(active, now)
	duedate.SortByDueDate(inactive, now)

	views := make([]accountView, 0, len(accounts))
	for _, a := range append(active, inactive...) {
		days := duedate.DaysUntilDue(now, a.DueDay)
		v := accountView{FixedAccount: a, DaysUntilDue: days}
		if badge, ok := duedate.BadgeText(days); ok {
			v.Badge = badge
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

// Create handles POST /api/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	acct, err := h.store.Create(userID, req.Name, req.AmountCents, req.Category, req.DueDay)
	if err != nil {
		h.logger.Error("create account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityAccount, "created", acct.ID))
	writeJSON(w, http.StatusCreated, acct)
}

// Get handles GET /api/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	acct, err := h.store.GetByID(id, userID)
	if err != nil {
		h.logger.Error("get account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	if acct == nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

// Update handles PUT /api/accounts/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	acct, err := h.store.Update(id, userID, req.Name, req.AmountCents, req.Category, req.DueDay)
	if err != nil {
		h.logger.Error("update account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update account")
		return
	}
	if acct == nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityAccount, "updated", acct.ID))
	writeJSON(w, http.StatusOK, acct)
}

// ToggleActive handles POST /api/accounts/{id}/toggle. Parked
// (inactive) accounts keep their history but are excluded from sweeps.
func (h *AccountHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	current, err := h.store.GetByID(id, userID)
	if err != nil {
		h.logger.Error("toggle account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update account")
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	acct, err := h.store.SetActive(id, userID, !current.IsActive)
	if err != nil {
		h.logger.Error("toggle account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update account")
		return
	}
	if acct == nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityAccount, "updated", acct.ID))
	writeJSON(w, http.StatusOK, acct)
}

// Delete handles DELETE /api/accounts/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		h.logger.Error("delete account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityAccount, "deleted", id))
	w.WriteHeader(http.StatusNoContent)
}
