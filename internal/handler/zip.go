package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/httputil"
	"sitebuilder/internal/service"
)

// ZipHandler serves starter-package downloads.
type ZipHandler struct {
	zipService  service.ZipService
	userService service.UserService
	logger      *slog.Logger
}

// NewZipHandler creates a new ZIP download handler
func NewZipHandler(zipService service.ZipService, userService service.UserService, logger *slog.Logger) *ZipHandler {
	return &ZipHandler{
		zipService:  zipService,
		userService: userService,
		logger:      logger,
	}
}

type zipRequest struct {
	Prompt string `json:"prompt"`
}

// Download builds and streams the starter archive
// POST /api/guest/zip
func (h *ZipHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req zipRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		httputil.RespondError(w, http.StatusBadRequest, "prompt is required.")
		return
	}

	// Label the archive with the user's email when the profile has one
	userLabel := userID
	if profile, err := h.userService.GetProfile(r.Context(), userID); err == nil && profile.Email != nil {
		userLabel = *profile.Email
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.logger.Warn("profile lookup failed for zip label", "user_id", userID, "error", err)
	}

	archive, err := h.zipService.BuildStarterArchive(prompt, userLabel)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ZipFileName))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(archive)
}
