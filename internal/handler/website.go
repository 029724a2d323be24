package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/httputil"
	"sitebuilder/internal/service"
)

// WebsiteHandler serves generated-website records and their markup.
type WebsiteHandler struct {
	websiteService service.WebsiteService
	chatService    service.ChatService
	logger         *slog.Logger
}

// NewWebsiteHandler creates a new website handler
func NewWebsiteHandler(
	websiteService service.WebsiteService,
	chatService service.ChatService,
	logger *slog.Logger,
) *WebsiteHandler {
	return &WebsiteHandler{
		websiteService: websiteService,
		chatService:    chatService,
		logger:         logger,
	}
}

// websiteResponse pairs the website row with its generated markup.
type websiteResponse struct {
	Website *models.Website `json:"website"`
	HTML    *string         `json:"html"`
}

// CreateWebsite inserts a website record linked to a chat the user owns
// POST /api/websites
func (h *WebsiteHandler) CreateWebsite(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req service.CreateWebsiteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// Ownership check through the chat
	if _, err := h.chatService.GetChat(r.Context(), req.ChatID, userID); err != nil {
		handleError(w, err)
		return
	}

	site, err := h.websiteService.CreateWebsite(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, site)
}

// GetChatWebsite returns the website linked to a chat, with its markup
// GET /api/chats/{id}/website
func (h *WebsiteHandler) GetChatWebsite(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	userID := httputil.GetUserID(r)
	if _, err := h.chatService.GetChat(r.Context(), chatID, userID); err != nil {
		handleError(w, err)
		return
	}

	site, err := h.websiteService.GetWebsiteByChatID(r.Context(), chatID)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := websiteResponse{Website: site}
	if html, err := h.websiteService.GetGeneratedHTML(r.Context(), site.ID); err == nil {
		resp.HTML = &html
	} else if !errors.Is(err, domain.ErrNotFound) {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
