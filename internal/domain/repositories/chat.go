package repositories

import (
	"context"

	"sitebuilder/internal/domain/models"
)

// ChatRepository manages chat rows. All reads are scoped by owning user.
type ChatRepository interface {
	// CreateChat inserts a chat and fills in the DB-assigned ID and timestamps.
	CreateChat(ctx context.Context, chat *models.Chat) error

	// GetChat retrieves a chat by ID, scoped to the owning user.
	GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error)

	// ListChatsByUser retrieves all chats for a user, newest activity first.
	ListChatsByUser(ctx context.Context, userID string) ([]models.Chat, error)

	// UpdateChat persists a chat's mutable fields (title).
	UpdateChat(ctx context.Context, chat *models.Chat) error

	// DeleteChat removes a chat and its messages.
	DeleteChat(ctx context.Context, chatID, userID string) error

	// TouchChat bumps updated_at so the chat sorts to the top of the list.
	TouchChat(ctx context.Context, chatID string) error
}

// MessageRepository manages history rows. Appends are single-row atomic;
// no multi-row grouping is guaranteed, so callers that need ordering must
// insert sequentially.
type MessageRepository interface {
	// AppendMessage inserts one message and fills in the DB-assigned ID
	// and creation timestamp.
	AppendMessage(ctx context.Context, msg *models.HistoryMessage) error

	// ListMessagesByChat retrieves all messages for a chat ordered by
	// creation timestamp ascending.
	ListMessagesByChat(ctx context.Context, chatID string) ([]models.HistoryMessage, error)
}
