package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// generatedHTMLFileName is the fixed file name for generated site markup.
const generatedHTMLFileName = "index.html"

// PostgresWebsiteRepository implements the WebsiteRepository interface using PostgreSQL
type PostgresWebsiteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewWebsiteRepository creates a new PostgresWebsiteRepository
func NewWebsiteRepository(config *RepositoryConfig) repositories.WebsiteRepository {
	return &PostgresWebsiteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateWebsite inserts a website row linked to a chat
func (r *PostgresWebsiteRepository) CreateWebsite(ctx context.Context, site *models.Website) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (chat_id, business_prompt, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Websites)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		site.ChatID,
		site.BusinessPrompt,
		site.Language,
		site.CreatedAt,
		site.UpdatedAt,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("website for chat %s already exists", site.ChatID),
				ResourceType: "website",
				ResourceID:   site.ChatID,
			}
		}
		return fmt.Errorf("create website: %w", err)
	}

	return nil
}

// GetWebsiteByChatID retrieves the website linked to a chat
func (r *PostgresWebsiteRepository) GetWebsiteByChatID(ctx context.Context, chatID string) (*models.Website, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, business_prompt, language, created_at, updated_at
		FROM %s
		WHERE chat_id = $1
	`, r.tables.Websites)

	var site models.Website
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, chatID).Scan(
		&site.ID,
		&site.ChatID,
		&site.BusinessPrompt,
		&site.Language,
		&site.CreatedAt,
		&site.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("website for chat %s: %w", chatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get website: %w", err)
	}

	return &site, nil
}

// SaveGeneratedHTML upserts the index.html file record for a website
func (r *PostgresWebsiteRepository) SaveGeneratedHTML(ctx context.Context, websiteID, html string) (*models.FileRecord, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (website_id, file_name, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (website_id, file_name)
		DO UPDATE SET content = EXCLUDED.content
		RETURNING id, created_at
	`, r.tables.Files)

	file := &models.FileRecord{
		WebsiteID: websiteID,
		FileName:  generatedHTMLFileName,
		Content:   html,
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, websiteID, generatedHTMLFileName, html).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save generated html: %w", err)
	}

	return file, nil
}

// GetGeneratedHTML returns the latest index.html content for a website
func (r *PostgresWebsiteRepository) GetGeneratedHTML(ctx context.Context, websiteID string) (string, error) {
	query := fmt.Sprintf(`
		SELECT content FROM %s
		WHERE website_id = $1 AND file_name = $2
	`, r.tables.Files)

	var content string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, websiteID, generatedHTMLFileName).Scan(&content)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("generated html for website %s: %w", websiteID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get generated html: %w", err)
	}

	return content, nil
}
