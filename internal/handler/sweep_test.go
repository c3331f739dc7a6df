package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/centavo/internal/model"
	"github.com/dukerupert/centavo/internal/push"
)

type stubBills struct{ accounts []model.FixedAccount }

func (s *stubBills) ListActive() ([]model.FixedAccount, error) { return s.accounts, nil }

type stubSubs struct{ subs []model.PushSubscription }

func (s *stubSubs) ListByUser(userID int64) ([]model.PushSubscription, error) { return s.subs, nil }
func (s *stubSubs) DeleteByEndpoint(endpoint string) error                    { return nil }

type stubHistory struct{ created int }

func (s *stubHistory) Create(userID int64, title, message string) (*model.Notification, error) {
	s.created++
	return &model.Notification{ID: int64(s.created), UserID: userID, Title: title, Message: message}, nil
}

type stubSender struct{ sent int }

func (s *stubSender) Send(ctx context.Context, sub *model.PushSubscription, payload push.Payload) error {
	s.sent++
	return nil
}

func TestSweepEndpoint(t *testing.T) {
	// One bill due today (due day == today's day-of-month is always 0
	// days out), one well outside the reminder window.
	now := time.Now()
	bills := &stubBills{accounts: []model.FixedAccount{
		{ID: 1, UserID: 7, Name: "Rent", DueDay: now.Day(), IsActive: true},
		{ID: 2, UserID: 7, Name: "Gym", DueDay: now.AddDate(0, 0, 10).Day(), IsActive: true},
	}}
	subs := &stubSubs{subs: []model.PushSubscription{
		{ID: 1, UserID: 7, Endpoint: "https://push/ep", P256dhKey: "p", AuthKey: "a"},
	}}
	history := &stubHistory{}
	sender := &stubSender{}

	dispatcher := push.NewDispatcher(bills, subs, history, sender, slog.Default())
	h := NewSweepHandler(dispatcher, slog.Default())

	w := httptest.NewRecorder()
	h.Run(w, httptest.NewRequest("POST", "/api/sweep", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS origin header = %q, want *", got)
	}

	var res push.Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := push.Result{BillsChecked: 2, BillsSelected: 1, NotificationsSent: 1}
	if res != want {
		t.Errorf("result = %+v, want %+v", res, want)
	}
	if history.created != 1 {
		t.Errorf("history rows = %d, want 1", history.created)
	}
}

func TestSweepEndpointUnconfigured(t *testing.T) {
	h := NewSweepHandler(nil, slog.Default())

	w := httptest.NewRecorder()
	h.Run(w, httptest.NewRequest("POST", "/api/sweep", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestSweepPreflight(t *testing.T) {
	h := NewSweepHandler(nil, slog.Default())

	w := httptest.NewRecorder()
	h.Preflight(w, httptest.NewRequest("OPTIONS", "/api/sweep", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("missing Access-Control-Allow-Methods header")
	}
}
