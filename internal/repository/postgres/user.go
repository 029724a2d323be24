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

// PostgresUserRepository implements the UserRepository interface using PostgreSQL
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new PostgresUserRepository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetProfile returns display data for a user
func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := fmt.Sprintf(`
		SELECT name, email, avatar_url
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	var profile models.UserProfile
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&profile.Name,
		&profile.Email,
		&profile.AvatarURL,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}
