package handler

import (
	"log/slog"
	"net/http"

	"sitebuilder/internal/httputil"
	"sitebuilder/internal/service"
)

// UserHandler serves profile data for the authenticated user.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile returns the current user's profile
// GET /api/users/me/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// HealthCheck reports liveness
// GET /health
func (h *UserHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
