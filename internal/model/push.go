package model

import "time"

// PushSubscription is one registered web-push endpoint for a user
// (one per subscribed device/browser). The key material is opaque
// here; it passes through to the push transport.
type PushSubscription struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"p256dh_key"`
	AuthKey    string    `json:"auth_key"`
	DeviceName string    `json:"device_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is one row of delivery history. It records the logical
// notification, written before delivery is attempted; its existence
// does not guarantee any endpoint received the push.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
