package amqp

import (
	"encoding/json"
	"time"
)

// NotificationKind identifies the account event a notification describes.
type NotificationKind string

const (
	NotificationUserCreated     NotificationKind = "user.created"
	NotificationPasswordChanged NotificationKind = "user.password_changed"
)

// NotificationMessage is the payload published for account events.
// The mailer worker turns these into outbound emails.
type NotificationMessage struct {
	Kind      NotificationKind `json:"kind"`
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewNotificationMessage creates a notification message for the given event.
func NewNotificationMessage(kind NotificationKind, email, name string) *NotificationMessage {
	return &NotificationMessage{
		Kind:      kind,
		Email:     email,
		Name:      name,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// NotificationMessageFromJSON creates a message from JSON bytes
func NotificationMessageFromJSON(data []byte) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
