package repositories

import (
	"context"

	"sitebuilder/internal/domain/models"
)

// WebsiteRepository manages generated-website rows and their files.
type WebsiteRepository interface {
	// CreateWebsite inserts a website row linked to a chat.
	CreateWebsite(ctx context.Context, site *models.Website) error

	// GetWebsiteByChatID retrieves the website linked to a chat.
	// Each chat has at most one; returns ErrNotFound when none exists.
	GetWebsiteByChatID(ctx context.Context, chatID string) (*models.Website, error)

	// SaveGeneratedHTML upserts the index.html file record for a website.
	SaveGeneratedHTML(ctx context.Context, websiteID, html string) (*models.FileRecord, error)

	// GetGeneratedHTML returns the latest index.html content, or "" with
	// ErrNotFound when no file has been generated yet.
	GetGeneratedHTML(ctx context.Context, websiteID string) (string, error)
}

// UserRepository reads profile data from the public users table.
type UserRepository interface {
	// GetProfile returns display data for a user, or ErrNotFound.
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}
