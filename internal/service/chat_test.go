package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/ai"
	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
)

func newTestChatService(t *testing.T) (ChatService, *fakeChatRepo, *fakeMessageRepo) {
	t.Helper()
	registry, err := ai.NewRegistry()
	require.NoError(t, err)

	chatRepo := newFakeChatRepo()
	messageRepo := newFakeMessageRepo()
	return NewChatService(chatRepo, messageRepo, registry, testLogger()), chatRepo, messageRepo
}

func TestCreateChatDefaultsTitleAndModel(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, DefaultChatTitle, chat.Title)
	require.NotNil(t, chat.ModelName)
	assert.Equal(t, "gpt-4o", *chat.ModelName)
	assert.NotEmpty(t, chat.ID)
}

func TestCreateChatKeepsProvidedTitleAndModel(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{
		UserID:    "u-1",
		Title:     "  Guest Chat  ",
		ModelName: "gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.Equal(t, "Guest Chat", chat.Title)
	assert.Equal(t, "gpt-4o-mini", *chat.ModelName)
}

func TestCreateChatRequiresUser(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	_, err := svc.CreateChat(context.Background(), &CreateChatRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRenameChatScopedToOwner(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	_, err = svc.RenameChat(context.Background(), chat.ID, "someone-else", &UpdateChatRequest{Title: "stolen"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	renamed, err := svc.RenameChat(context.Background(), chat.ID, "u-1", &UpdateChatRequest{Title: "My Bakery"})
	require.NoError(t, err)
	assert.Equal(t, "My Bakery", renamed.Title)
}

func TestAppendMessageReplaysOneTurn(t *testing.T) {
	svc, chatRepo, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	msg, err := svc.AppendMessage(context.Background(), chat.ID, "u-1", &AppendMessageRequest{
		Role:    models.RoleUser,
		Content: "  build a bakery  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "build a bakery", msg.Content)
	assert.NotEmpty(t, msg.ID)

	messages, err := svc.ListMessages(context.Background(), chat.ID, "u-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, []string{chat.ID}, chatRepo.touched)
}

func TestAppendMessageRejectsBadInput(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *AppendMessageRequest
	}{
		{"system role", &AppendMessageRequest{Role: models.RoleSystem, Content: "x"}},
		{"unknown role", &AppendMessageRequest{Role: "moderator", Content: "x"}},
		{"blank content", &AppendMessageRequest{Role: models.RoleUser, Content: "   "}},
		{"empty content", &AppendMessageRequest{Role: models.RoleUser}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AppendMessage(context.Background(), chat.ID, "u-1", tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAppendMessageScopedToOwner(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), chat.ID, "intruder", &AppendMessageRequest{
		Role:    models.RoleUser,
		Content: "hi",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMessagesRequiresOwnership(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	chat, err := svc.CreateChat(context.Background(), &CreateChatRequest{UserID: "u-1"})
	require.NoError(t, err)

	_, err = svc.ListMessages(context.Background(), chat.ID, "intruder")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteChatMissingIsNotFound(t *testing.T) {
	svc, _, _ := newTestChatService(t)

	err := svc.DeleteChat(context.Background(), "nope", "u-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
