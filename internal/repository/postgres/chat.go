package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// PostgresChatRepository implements the ChatRepository interface using PostgreSQL
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new PostgresChatRepository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateChat inserts a new chat row
func (r *PostgresChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, model_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		chat.UserID,
		chat.Title,
		chat.ModelName,
		chat.CreatedAt,
		chat.UpdatedAt,
	).Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create chat: %w", err)
	}

	return nil
}

// GetChat retrieves a chat by ID, scoped to the owning user
func (r *PostgresChatRepository) GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, model_name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Chats)

	var chat models.Chat
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, chatID, userID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.ModelName,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}

	return &chat, nil
}

// ListChatsByUser retrieves all chats for a user, newest activity first
func (r *PostgresChatRepository) ListChatsByUser(ctx context.Context, userID string) ([]models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, model_name, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.UserID,
			&chat.Title,
			&chat.ModelName,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	// Return empty slice instead of nil
	if chats == nil {
		chats = []models.Chat{}
	}

	return chats, nil
}

// UpdateChat persists a chat's title
func (r *PostgresChatRepository) UpdateChat(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		chat.Title,
		chat.UpdatedAt,
		chat.ID,
		chat.UserID,
	)

	if err != nil {
		return fmt.Errorf("update chat: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteChat removes a chat; history rows cascade at the schema level
func (r *PostgresChatRepository) DeleteChat(ctx context.Context, chatID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}

	return nil
}

// TouchChat bumps updated_at so the chat sorts to the top of the list
func (r *PostgresChatRepository) TouchChat(ctx context.Context, chatID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET updated_at = $1 WHERE id = $2
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, time.Now(), chatID); err != nil {
		return fmt.Errorf("touch chat: %w", err)
	}

	return nil
}
