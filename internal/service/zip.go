package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sitebuilder/internal/domain"
)

const (
	// ZipFileName is the archive name sent in Content-Disposition.
	ZipFileName = "website-files.zip"

	// readmeFileName is the single entry of the starter archive.
	readmeFileName = "README.txt"
)

// ZipService builds downloadable starter archives. Until real generation
// lands, the archive contains a single README describing the prompt.
type ZipService interface {
	// BuildStarterArchive returns the ZIP bytes for the given prompt.
	// userLabel identifies the requesting user in the README (email or ID).
	BuildStarterArchive(prompt, userLabel string) ([]byte, error)
}

type zipService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewZipService creates a new ZIP packaging service
func NewZipService(logger *slog.Logger) ZipService {
	return &zipService{
		logger: logger,
		now:    time.Now,
	}
}

// BuildStarterArchive writes the placeholder starter package
func (s *zipService) BuildStarterArchive(prompt, userLabel string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrValidation)
	}

	body := strings.Join([]string{
		"AI Website Builder - Starter Package",
		"",
		"This is a placeholder ZIP for testing download gating.",
		"",
		"Prompt: " + prompt,
		"Generated for user: " + userLabel,
		"Generated at: " + s.now().UTC().Format(time.RFC3339),
	}, "\n")

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	file, err := writer.Create(readmeFileName)
	if err != nil {
		return nil, fmt.Errorf("create zip entry: %w", err)
	}
	if _, err := file.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("write zip entry: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}

	s.logger.Info("starter archive built",
		"prompt_len", len(prompt),
		"bytes", buf.Len(),
	)

	return buf.Bytes(), nil
}
