package handler

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/domain"
	"sitebuilder/internal/domain/models"
	"sitebuilder/internal/service"
)

type fakeZipService struct {
	gotPrompt string
	gotLabel  string
}

func (f *fakeZipService) BuildStarterArchive(prompt, userLabel string) ([]byte, error) {
	f.gotPrompt = prompt
	f.gotLabel = userLabel

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("README.txt")
	if err != nil {
		return nil, err
	}
	if _, err := entry.Write([]byte("Prompt: " + prompt)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type fakeUserService struct {
	profile *models.UserProfile
}

func (f *fakeUserService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if f.profile == nil {
		return nil, domain.ErrNotFound
	}
	return f.profile, nil
}

func TestZipDownloadSuccess(t *testing.T) {
	email := "user@example.com"
	zipSvc := &fakeZipService{}
	h := NewZipHandler(zipSvc, &fakeUserService{profile: &models.UserProfile{Email: &email}}, testLogger())

	rec := httptest.NewRecorder()
	h.Download(rec, authedRequest("POST", "/api/guest/zip", `{"prompt": "a bakery site"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="website-files.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	assert.Equal(t, "a bakery site", zipSvc.gotPrompt)
	assert.Equal(t, email, zipSvc.gotLabel)

	// The body is a readable archive
	data := rec.Body.Bytes()
	_, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
}

func TestZipDownloadRequiresAuth(t *testing.T) {
	h := NewZipHandler(&fakeZipService{}, &fakeUserService{}, testLogger())

	req := httptest.NewRequest("POST", "/api/guest/zip", strings.NewReader(`{"prompt": "x"}`))
	rec := httptest.NewRecorder()
	h.Download(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized.", decodeError(t, rec))
}

func TestZipDownloadRequiresPrompt(t *testing.T) {
	h := NewZipHandler(&fakeZipService{}, &fakeUserService{}, testLogger())

	rec := httptest.NewRecorder()
	h.Download(rec, authedRequest("POST", "/api/guest/zip", `{"prompt": "   "}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "prompt is required.", decodeError(t, rec))
}

var _ service.ZipService = (*fakeZipService)(nil)
var _ service.UserService = (*fakeUserService)(nil)
