package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// PostgresMessageRepository implements the MessageRepository interface using PostgreSQL
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(config *RepositoryConfig) repositories.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// AppendMessage inserts a single message. The database assigns the ID and
// creation timestamp; transcript order is creation-timestamp ascending, so
// callers that need a specific order must insert sequentially.
func (r *PostgresMessageRepository) AppendMessage(ctx context.Context, msg *models.HistoryMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (chat_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.History)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		msg.ChatID,
		msg.Role,
		msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}

	return nil
}

// ListMessagesByChat retrieves all messages for a chat, oldest first
func (r *PostgresMessageRepository) ListMessagesByChat(ctx context.Context, chatID string) ([]models.HistoryMessage, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, role, content, created_at
		FROM %s
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`, r.tables.History)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.HistoryMessage
	for rows.Next() {
		var msg models.HistoryMessage
		err := rows.Scan(
			&msg.ID,
			&msg.ChatID,
			&msg.Role,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if messages == nil {
		messages = []models.HistoryMessage{}
	}

	return messages, nil
}
