package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/centavo/internal/auth"
	"github.com/dukerupert/centavo/internal/database"
	"github.com/dukerupert/centavo/internal/store"
)

func setupAuth(t *testing.T) (*store.SessionStore, int64) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user, err := store.NewUserStore(db).Create("dev@example.com", "Dev", "x")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return store.NewSessionStore(db), user.ID
}

func TestRequireAuthValidSession(t *testing.T) {
	sessions, userID := setupAuth(t)
	sess, err := sessions.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var got auth.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
	})

	r := httptest.NewRequest("GET", "/api/accounts", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	w := httptest.NewRecorder()

	RequireAuth(sessions)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.UserID != userID {
		t.Errorf("user id = %d, want %d", got.UserID, userID)
	}
	if got.SessionID != sess.ID {
		t.Errorf("session id = %d, want %d", got.SessionID, sess.ID)
	}
}

func TestRequireAuthRejects(t *testing.T) {
	sessions, _ := setupAuth(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})
	handler := RequireAuth(sessions)(next)

	t.Run("missing cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/accounts", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/accounts", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "deadbeef"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
