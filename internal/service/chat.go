package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitebuilder/internal/ai"
	"sitebuilder/internal/config"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// DefaultChatTitle is used when no title is provided for a new chat.
const DefaultChatTitle = "New Website"

// CreateChatRequest is the payload for creating a chat.
type CreateChatRequest struct {
	UserID    string `json:"-"`
	Title     string `json:"title"`
	ModelName string `json:"modelName"`
}

// AppendMessageRequest is the payload for writing one transcript turn
// directly, as the post-auth restore flow does when replaying a guest
// session.
type AppendMessageRequest struct {
	Role    models.HistoryRole `json:"role"`
	Content string             `json:"content"`
}

// UpdateChatRequest is the payload for renaming a chat.
type UpdateChatRequest struct {
	Title string `json:"title"`
}

// ChatService manages chat sessions (CRUD only; message flow lives in
// SendService).
type ChatService interface {
	CreateChat(ctx context.Context, req *CreateChatRequest) (*models.Chat, error)
	GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	RenameChat(ctx context.Context, chatID, userID string, req *UpdateChatRequest) (*models.Chat, error)
	DeleteChat(ctx context.Context, chatID, userID string) error
	ListMessages(ctx context.Context, chatID, userID string) ([]models.HistoryMessage, error)
	AppendMessage(ctx context.Context, chatID, userID string, req *AppendMessageRequest) (*models.HistoryMessage, error)
}

type chatService struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	registry    *ai.Registry
	logger      *slog.Logger
}

// NewChatService creates a new chat CRUD service
func NewChatService(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	registry *ai.Registry,
	logger *slog.Logger,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		registry:    registry,
		logger:      logger,
	}
}

// CreateChat creates a new chat owned by the requesting user
func (s *chatService) CreateChat(ctx context.Context, req *CreateChatRequest) (*models.Chat, error) {
	if err := s.validateCreateChatRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = DefaultChatTitle
	}

	modelName := strings.TrimSpace(req.ModelName)
	if modelName == "" {
		settings, err := s.registry.ModelForTier("registered")
		if err != nil {
			return nil, err
		}
		modelName = settings.ID
	}

	chat := &models.Chat{
		UserID:    req.UserID,
		Title:     title,
		ModelName: &modelName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created",
		"id", chat.ID,
		"title", chat.Title,
		"user_id", req.UserID,
	)

	return chat, nil
}

// GetChat retrieves a chat by ID
func (s *chatService) GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	return s.chatRepo.GetChat(ctx, chatID, userID)
}

// ListChats retrieves all chats for a user, newest activity first
func (s *chatService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	return s.chatRepo.ListChatsByUser(ctx, userID)
}

// RenameChat updates a chat's title
func (s *chatService) RenameChat(ctx context.Context, chatID, userID string, req *UpdateChatRequest) (*models.Chat, error) {
	if err := s.validateUpdateChatRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	chat, err := s.chatRepo.GetChat(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	chat.Title = strings.TrimSpace(req.Title)
	chat.UpdatedAt = time.Now()

	if err := s.chatRepo.UpdateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat renamed",
		"id", chat.ID,
		"title", chat.Title,
		"user_id", userID,
	)

	return chat, nil
}

// DeleteChat removes a chat
func (s *chatService) DeleteChat(ctx context.Context, chatID, userID string) error {
	if err := s.chatRepo.DeleteChat(ctx, chatID, userID); err != nil {
		return err
	}

	s.logger.Info("chat deleted",
		"id", chatID,
		"user_id", userID,
	)

	return nil
}

// ListMessages retrieves the transcript for a chat the user owns
func (s *chatService) ListMessages(ctx context.Context, chatID, userID string) ([]models.HistoryMessage, error) {
	// Ownership check before exposing history
	if _, err := s.chatRepo.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	return s.messageRepo.ListMessagesByChat(ctx, chatID)
}

// AppendMessage writes one transcript turn into a chat the user owns.
// No assistant reply is generated; the restore flow replays both sides
// of a transcript itself.
func (s *chatService) AppendMessage(ctx context.Context, chatID, userID string, req *AppendMessageRequest) (*models.HistoryMessage, error) {
	if err := s.validateAppendMessageRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.chatRepo.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	message := &models.HistoryMessage{
		ChatID:  chatID,
		Role:    req.Role,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.messageRepo.AppendMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := s.chatRepo.TouchChat(ctx, chatID); err != nil {
		s.logger.Warn("touch chat failed", "chat_id", chatID, "error", err)
	}

	return message, nil
}

// Validation methods

func (s *chatService) validateCreateChatRequest(req *CreateChatRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Length(0, config.MaxChatTitleLength),
		),
	)
}

func (s *chatService) validateUpdateChatRequest(req *UpdateChatRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxChatTitleLength),
		),
	)
}

func (s *chatService) validateAppendMessageRequest(req *AppendMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Role, validation.Required, validation.By(func(value interface{}) error {
			role, _ := value.(models.HistoryRole)
			if !role.IsDisplayable() {
				return errors.New("must be user or assistant")
			}
			return nil
		})),
		validation.Field(&req.Content, validation.Required, validation.By(func(value interface{}) error {
			content, _ := value.(string)
			if strings.TrimSpace(content) == "" {
				return errors.New("cannot be blank")
			}
			return nil
		})),
	)
}
