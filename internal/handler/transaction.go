package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/centavo/internal/auth"
	"github.com/dukerupert/centavo/internal/balance"
	"github.com/dukerupert/centavo/internal/model"
	"github.com/dukerupert/centavo/internal/store"
	"github.com/dukerupert/centavo/internal/websocket"
)

type TransactionHandler struct {
	store  *store.TransactionStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTransactionHandler(s *store.TransactionStore, hub *websocket.Hub, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{store: s, hub: hub, logger: logger}
}

type transactionRequest struct {
	Name        string    `json:"name"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (req *transactionRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.AmountCents <= 0 {
		return "amount_cents must be positive"
	}
	if !model.ValidTransactionType(req.Type) {
		return "type must be income or expense"
	}
	req.Category = model.NormalizeTransactionCategory(req.Type, req.Category)
	if req.OccurredAt.IsZero() {
		req.OccurredAt = time.Now().UTC()
	}
	return ""
}

// List handles GET /api/transactions?days=N
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	days, err := parseDaysParam(r, 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.store.ListByUserSince(userID, balance.PeriodStart(time.Now(), days))
	if err != nil {
		h.logger.Error("list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []model.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.store.Create(userID, req.Name, req.AmountCents, req.Type, req.Category, req.OccurredAt)
	if err != nil {
		h.logger.Error("create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityTransaction, "created", tx.ID))
	writeJSON(w, http.StatusCreated, tx)
}

// Get handles GET /api/transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.store.GetByID(id, userID)
	if err != nil {
		h.logger.Error("get transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// Update handles PUT /api/transactions/{id}
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.store.Update(id, userID, req.Name, req.AmountCents, req.Type, req.Category, req.OccurredAt)
	if err != nil {
		h.logger.Error("update transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityTransaction, "updated", tx.ID))
	writeJSON(w, http.StatusOK, tx)
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.store.Delete(id, userID); err != nil {
		h.logger.Error("delete transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	h.hub.Publish(userID, websocket.NewMessage(websocket.EntityTransaction, "deleted", id))
	w.WriteHeader(http.StatusNoContent)
}

type balanceResponse struct {
	PeriodDays   int       `json:"period_days"`
	PeriodStart  time.Time `json:"period_start"`
	BalanceCents int64     `json:"balance_cents"`
	IncomeCents  int64     `json:"income_cents"`
	ExpenseCents int64     `json:"expense_cents"`
}

// Balance handles GET /api/balance?days=N
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	days, err := parseDaysParam(r, 30)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := balance.PeriodStart(time.Now(), days)
	txs, err := h.store.ListByUserSince(userID, start)
	if err != nil {
		h.logger.Error("load period transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute balance")
		return
	}

	resp := balanceResponse{
		PeriodDays:   days,
		PeriodStart:  start,
		BalanceCents: balance.Sum(txs),
	}
	for _, tx := range txs {
		if tx.Type == model.TypeIncome {
			resp.IncomeCents += tx.AmountCents
		} else {
			resp.ExpenseCents += tx.AmountCents
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
