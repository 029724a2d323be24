package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/httputil"
)

type fakeVerifier struct {
	claims *models.SupabaseClaims
}

func (f *fakeVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	if f.claims == nil || token != "good-token" {
		return nil, domain.ErrUnauthorized
	}
	return f.claims, nil
}

func (f *fakeVerifier) Close() error { return nil }

func validClaims(userID string) *models.SupabaseClaims {
	claims := &models.SupabaseClaims{Role: "authenticated"}
	claims.Subject = userID
	return claims
}

func TestAuthMiddlewarePassesUserIDThrough(t *testing.T) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r)
	})

	handler := AuthMiddleware(&fakeVerifier{claims: validClaims("u-1")})(next)

	req := httptest.NewRequest("GET", "/api/chats", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", gotUserID)
}

func TestAuthMiddlewareRejectsMissingOrBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"bad token", "Bearer wrong-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
			handler := AuthMiddleware(&fakeVerifier{claims: validClaims("u-1")})(next)

			req := httptest.NewRequest("GET", "/api/chats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized.", body.Error)
		})
	}
}

func TestAuthMiddlewareSkipsPublicPaths(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := AuthMiddleware(&fakeVerifier{})(next)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
