package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/centavo/internal/model"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

const notificationCols = `id, user_id, title, message, is_read, created_at`

// Create inserts one unread history row. The sweep writes this before
// attempting any endpoint delivery.
func (s *NotificationStore) Create(userID int64, title, message string) (*model.Notification, error) {
	result, err := s.db.Exec(
		`INSERT INTO notifications (user_id, title, message) VALUES (?, ?, ?)`,
		userID, title, message,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *NotificationStore) GetByID(id, userID int64) (*model.Notification, error) {
	row := s.db.QueryRow(
		`SELECT `+notificationCols+` FROM notifications WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (s *NotificationStore) ListByUser(userID int64) ([]model.Notification, error) {
	rows, err := s.db.Query(
		`SELECT `+notificationCols+` FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (s *NotificationStore) MarkRead(id, userID int64) (*model.Notification, error) {
	_, err := s.db.Exec(
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *NotificationStore) MarkAllRead(userID int64) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func (s *NotificationStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

func scanNotification(scanner interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	var read int
	err := scanner.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	n.IsRead = read != 0
	return &n, nil
}
