package store

import (
	"testing"
)

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "sessions@example.com")
	ss := NewSessionStore(db)

	sess, err := ss.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != userID {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := ss.Delete(sess.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	got, err = ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestSessionExpiry(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "expiry@example.com")
	ss := NewSessionStore(db)

	sess, err := ss.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	// Force the session into the past.
	if _, err := db.Exec(`UPDATE sessions SET expires_at = datetime('now', '-1 day') WHERE id = ?`, sess.ID); err != nil {
		t.Fatalf("backdate session: %v", err)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got != nil {
		t.Error("expired session should not be returned")
	}

	deleted, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d sessions, want 1", deleted)
	}
}
