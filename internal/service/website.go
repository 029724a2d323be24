package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitebuilder/internal/config"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// CreateWebsiteRequest is the payload for creating a website record.
// HTML, when present, is stored as the initial generated markup in the
// same transaction as the website row.
type CreateWebsiteRequest struct {
	ChatID         string             `json:"chatId"`
	BusinessPrompt string             `json:"businessPrompt"`
	Language       models.AppLanguage `json:"language"`
	HTML           string             `json:"html"`
}

// WebsiteService manages generated-website records and their HTML.
type WebsiteService interface {
	CreateWebsite(ctx context.Context, req *CreateWebsiteRequest) (*models.Website, error)
	GetWebsiteByChatID(ctx context.Context, chatID string) (*models.Website, error)
	SaveGeneratedHTML(ctx context.Context, websiteID, html string) (*models.FileRecord, error)
	GetGeneratedHTML(ctx context.Context, websiteID string) (string, error)
}

type websiteService struct {
	websiteRepo repositories.WebsiteRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewWebsiteService creates a new website service
func NewWebsiteService(
	websiteRepo repositories.WebsiteRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) WebsiteService {
	return &websiteService{
		websiteRepo: websiteRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateWebsite inserts a website row linked to a chat
func (s *websiteService) CreateWebsite(ctx context.Context, req *CreateWebsiteRequest) (*models.Website, error) {
	if err := s.validateCreateWebsiteRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}

	site := &models.Website{
		ChatID:         req.ChatID,
		BusinessPrompt: strings.TrimSpace(req.BusinessPrompt),
		Language:       language,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	// When initial markup ships with the request, the row and its
	// index.html land in one transaction so no website is ever visible
	// without the markup it was created with.
	if strings.TrimSpace(req.HTML) != "" {
		err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if err := s.websiteRepo.CreateWebsite(txCtx, site); err != nil {
				return err
			}
			_, err := s.websiteRepo.SaveGeneratedHTML(txCtx, site.ID, req.HTML)
			return err
		})
		if err != nil {
			return nil, err
		}
	} else if err := s.websiteRepo.CreateWebsite(ctx, site); err != nil {
		return nil, err
	}

	s.logger.Info("website created",
		"id", site.ID,
		"chat_id", site.ChatID,
		"language", site.Language,
	)

	return site, nil
}

// GetWebsiteByChatID retrieves the website linked to a chat
func (s *websiteService) GetWebsiteByChatID(ctx context.Context, chatID string) (*models.Website, error) {
	return s.websiteRepo.GetWebsiteByChatID(ctx, chatID)
}

// SaveGeneratedHTML upserts the generated index.html for a website
func (s *websiteService) SaveGeneratedHTML(ctx context.Context, websiteID, html string) (*models.FileRecord, error) {
	if websiteID == "" {
		return nil, fmt.Errorf("%w: website ID is required", domain.ErrValidation)
	}

	return s.websiteRepo.SaveGeneratedHTML(ctx, websiteID, html)
}

// GetGeneratedHTML returns the latest generated markup for a website
func (s *websiteService) GetGeneratedHTML(ctx context.Context, websiteID string) (string, error) {
	return s.websiteRepo.GetGeneratedHTML(ctx, websiteID)
}

func (s *websiteService) validateCreateWebsiteRequest(req *CreateWebsiteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ChatID, validation.Required),
		validation.Field(&req.BusinessPrompt,
			validation.Required,
			validation.Length(1, config.MaxPromptLength),
		),
		validation.Field(&req.Language,
			validation.In(models.LanguageEnglish, models.LanguageArabic, models.LanguageKurdish, models.AppLanguage("")),
		),
	)
}
