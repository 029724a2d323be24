package models

import (
	"time"
)

// HistoryRole is the author of a history message.
type HistoryRole string

const (
	RoleUser      HistoryRole = "user"
	RoleAssistant HistoryRole = "assistant"
	RoleSystem    HistoryRole = "system"
)

// IsDisplayable reports whether messages with this role appear in the
// transcript (system messages are filtered from display).
func (r HistoryRole) IsDisplayable() bool {
	return r == RoleUser || r == RoleAssistant
}

// Chat represents a conversation owned by a user.
type Chat struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	ModelName *string   `json:"model_name,omitempty" db:"model_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HistoryMessage is a single message within a chat. Ordering is by
// creation timestamp ascending; the database assigns ID and timestamp.
type HistoryMessage struct {
	ID        string      `json:"id" db:"id"`
	ChatID    string      `json:"chat_id" db:"chat_id"`
	Role      HistoryRole `json:"role" db:"role"`
	Content   string      `json:"content" db:"content"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
