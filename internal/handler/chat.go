package handler

import (
	"log/slog"
	"net/http"

	"sitebuilder/internal/httputil"
	"sitebuilder/internal/service"
)

// ChatHandler handles chat HTTP requests.
// Handlers only communicate with services, never repositories.
type ChatHandler struct {
	chatService service.ChatService
	sendService service.SendService
	logger      *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	chatService service.ChatService,
	sendService service.SendService,
	logger *slog.Logger,
) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		sendService: sendService,
		logger:      logger,
	}
}

// CreateChat creates a new chat session
// POST /api/chats
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req service.CreateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.UserID = userID

	chat, err := h.chatService.CreateChat(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// ListChats retrieves all chats for the current user
// GET /api/chats
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	chats, err := h.chatService.ListChats(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chats)
}

// GetChat retrieves a single chat by ID
// GET /api/chats/{id}
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	chat, err := h.chatService.GetChat(r.Context(), chatID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// RenameChat updates a chat's title
// PATCH /api/chats/{id}
func (h *ChatHandler) RenameChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	var req service.UpdateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	chat, err := h.chatService.RenameChat(r.Context(), chatID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// DeleteChat removes a chat
// DELETE /api/chats/{id}
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	if err := h.chatService.DeleteChat(r.Context(), chatID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMessages retrieves the transcript for a chat
// GET /api/chats/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	messages, err := h.chatService.ListMessages(r.Context(), chatID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}

// AppendMessage writes one transcript turn without generating a reply
// POST /api/chats/{id}/messages
func (h *ChatHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	var req service.AppendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	message, err := h.chatService.AppendMessage(r.Context(), chatID, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, message)
}

// SendMessage persists a user message and returns the updated transcript
// POST /api/chat/send
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req service.SendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.UserID = userID

	if req.ChatID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "chatId is required.")
		return
	}
	if req.Content == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content is required.")
		return
	}

	result, err := h.sendService.SendMessage(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
