package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/domain/repositories"
)

// fakeTxManager runs the function directly and counts invocations.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChatRepo is an in-memory ChatRepository.
type fakeChatRepo struct {
	chats    map[string]*models.Chat
	nextID   int
	touched  []string
	touchErr error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*models.Chat)}
}

func (r *fakeChatRepo) CreateChat(ctx context.Context, chat *models.Chat) error {
	r.nextID++
	chat.ID = fmt.Sprintf("chat-%d", r.nextID)
	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *fakeChatRepo) GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	chat, ok := r.chats[chatID]
	if !ok || chat.UserID != userID {
		return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	copied := *chat
	return &copied, nil
}

func (r *fakeChatRepo) ListChatsByUser(ctx context.Context, userID string) ([]models.Chat, error) {
	chats := []models.Chat{}
	for _, chat := range r.chats {
		if chat.UserID == userID {
			chats = append(chats, *chat)
		}
	}
	return chats, nil
}

func (r *fakeChatRepo) UpdateChat(ctx context.Context, chat *models.Chat) error {
	stored, ok := r.chats[chat.ID]
	if !ok || stored.UserID != chat.UserID {
		return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrNotFound)
	}
	copied := *chat
	r.chats[chat.ID] = &copied
	return nil
}

func (r *fakeChatRepo) DeleteChat(ctx context.Context, chatID, userID string) error {
	chat, ok := r.chats[chatID]
	if !ok || chat.UserID != userID {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	delete(r.chats, chatID)
	return nil
}

func (r *fakeChatRepo) TouchChat(ctx context.Context, chatID string) error {
	if r.touchErr != nil {
		return r.touchErr
	}
	r.touched = append(r.touched, chatID)
	return nil
}

// fakeMessageRepo is an in-memory MessageRepository that assigns IDs
// and monotonically increasing timestamps like the database does.
type fakeMessageRepo struct {
	messages  map[string][]models.HistoryMessage
	nextID    int
	appendErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string][]models.HistoryMessage)}
}

func (r *fakeMessageRepo) AppendMessage(ctx context.Context, msg *models.HistoryMessage) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.nextID++
	msg.ID = fmt.Sprintf("msg-%d", r.nextID)
	msg.CreatedAt = time.Unix(int64(1700000000+r.nextID), 0)
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], *msg)
	return nil
}

func (r *fakeMessageRepo) ListMessagesByChat(ctx context.Context, chatID string) ([]models.HistoryMessage, error) {
	out := make([]models.HistoryMessage, len(r.messages[chatID]))
	copy(out, r.messages[chatID])
	return out, nil
}

// fakeWebsiteRepo is an in-memory WebsiteRepository.
type fakeWebsiteRepo struct {
	sites  map[string]*models.Website // keyed by chat ID
	html   map[string]string          // keyed by website ID
	nextID int
}

func newFakeWebsiteRepo() *fakeWebsiteRepo {
	return &fakeWebsiteRepo{
		sites: make(map[string]*models.Website),
		html:  make(map[string]string),
	}
}

func (r *fakeWebsiteRepo) CreateWebsite(ctx context.Context, site *models.Website) error {
	if _, ok := r.sites[site.ChatID]; ok {
		return fmt.Errorf("website for chat %s: %w", site.ChatID, domain.ErrConflict)
	}
	r.nextID++
	site.ID = fmt.Sprintf("site-%d", r.nextID)
	stored := *site
	r.sites[site.ChatID] = &stored
	return nil
}

func (r *fakeWebsiteRepo) GetWebsiteByChatID(ctx context.Context, chatID string) (*models.Website, error) {
	site, ok := r.sites[chatID]
	if !ok {
		return nil, fmt.Errorf("website for chat %s: %w", chatID, domain.ErrNotFound)
	}
	copied := *site
	return &copied, nil
}

func (r *fakeWebsiteRepo) SaveGeneratedHTML(ctx context.Context, websiteID, html string) (*models.FileRecord, error) {
	r.html[websiteID] = html
	return &models.FileRecord{WebsiteID: websiteID, FileName: "index.html", Content: html}, nil
}

func (r *fakeWebsiteRepo) GetGeneratedHTML(ctx context.Context, websiteID string) (string, error) {
	html, ok := r.html[websiteID]
	if !ok {
		return "", fmt.Errorf("html for website %s: %w", websiteID, domain.ErrNotFound)
	}
	return html, nil
}
