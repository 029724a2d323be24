package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"sitebuilder/internal/ai"
	"sitebuilder/internal/config"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// SendMessageRequest is the payload for the message-send operation.
type SendMessageRequest struct {
	UserID  string `json:"-"`
	ChatID  string `json:"chatId"`
	Content string `json:"content"`
}

// SendMessageResult carries the persisted pair plus the authoritative
// transcript. HTML is non-nil only when the chat has generated preview
// markup; clients treat a present-but-blank value as "clear preview" and
// an absent value as "leave preview untouched".
type SendMessageResult struct {
	UserMessage      *models.HistoryMessage  `json:"userMessage"`
	AssistantMessage *models.HistoryMessage  `json:"assistantMessage"`
	Messages         []models.HistoryMessage `json:"messages"`
	HTML             *string                 `json:"html,omitempty"`
}

// SendService persists a user message, produces the assistant reply, and
// returns the full transcript.
type SendService interface {
	SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResult, error)
}

type sendService struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	websiteRepo repositories.WebsiteRepository
	logger      *slog.Logger
}

// NewSendService creates a new message-send service
func NewSendService(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	websiteRepo repositories.WebsiteRepository,
	logger *slog.Logger,
) SendService {
	return &sendService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		websiteRepo: websiteRepo,
		logger:      logger,
	}
}

// SendMessage appends the user message and the assistant reply, then
// returns the authoritative transcript. The two inserts are sequential
// single-row operations; creation timestamps define transcript order.
func (s *sendService) SendMessage(ctx context.Context, req *SendMessageRequest) (*SendMessageResult, error) {
	if err := s.validateSendMessageRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Verify the chat exists and belongs to the caller
	if _, err := s.chatRepo.GetChat(ctx, req.ChatID, req.UserID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)

	userMessage := &models.HistoryMessage{
		ChatID:  req.ChatID,
		Role:    models.RoleUser,
		Content: content,
	}
	if err := s.messageRepo.AppendMessage(ctx, userMessage); err != nil {
		return nil, err
	}

	assistantMessage := &models.HistoryMessage{
		ChatID:  req.ChatID,
		Role:    models.RoleAssistant,
		Content: ai.BuildAssistantReply(content),
	}
	if err := s.messageRepo.AppendMessage(ctx, assistantMessage); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListMessagesByChat(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}

	// Bump the chat's activity timestamp; a failure here is not worth
	// failing the whole send over.
	if err := s.chatRepo.TouchChat(ctx, req.ChatID); err != nil {
		s.logger.Warn("touch chat failed", "chat_id", req.ChatID, "error", err)
	}

	result := &SendMessageResult{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
		Messages:         messages,
	}

	// Attach generated preview markup when the chat has a website with
	// an index.html file. Omitted entirely when no website exists yet.
	if html, ok, err := s.loadPreviewHTML(ctx, req.ChatID); err != nil {
		s.logger.Warn("load preview html failed", "chat_id", req.ChatID, "error", err)
	} else if ok {
		result.HTML = &html
	}

	s.logger.Info("message sent",
		"chat_id", req.ChatID,
		"user_id", req.UserID,
		"transcript_len", len(messages),
	)

	return result, nil
}

// loadPreviewHTML returns (html, true) when the chat has a generated
// index.html, ("", false) when it has no website yet.
func (s *sendService) loadPreviewHTML(ctx context.Context, chatID string) (string, bool, error) {
	site, err := s.websiteRepo.GetWebsiteByChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	html, err := s.websiteRepo.GetGeneratedHTML(ctx, site.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return html, true, nil
}

func (s *sendService) validateSendMessageRequest(req *SendMessageRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ChatID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.By(func(value interface{}) error {
				content, _ := value.(string)
				if strings.TrimSpace(content) == "" {
					return errors.New("cannot be blank")
				}
				return nil
			}),
			validation.Length(1, config.MaxPromptLength),
		),
	)
}
