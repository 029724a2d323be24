package api

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultZipFilename is used when the server names no attachment.
const DefaultZipFilename = "website-files.zip"

var (
	extendedFilenamePattern = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	plainFilenamePattern    = regexp.MustCompile(`(?i)filename\s*=\s*"?([^";]+)"?`)
)

// ZipDownload is a fetched starter archive.
type ZipDownload struct {
	Filename string
	Data     []byte
}

// RequestWebsiteZip fetches the starter archive for the given prompt.
func (c *Client) RequestWebsiteZip(ctx context.Context, prompt string) (*ZipDownload, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"prompt": prompt}).
		Post("/api/guest/zip")
	if err != nil {
		return nil, fmt.Errorf("request zip: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to generate ZIP.")
	}

	return &ZipDownload{
		Filename: ParseContentDispositionFilename(resp.Header().Get("Content-Disposition")),
		Data:     resp.Body(),
	}, nil
}

// ParseContentDispositionFilename recovers the attachment name from a
// Content-Disposition header. The RFC 5987 extended form wins over the
// bare form; an unusable header falls back to the default name.
func ParseContentDispositionFilename(header string) string {
	if match := extendedFilenamePattern.FindStringSubmatch(header); match != nil {
		if decoded, err := url.PathUnescape(match[1]); err == nil {
			if name := strings.TrimSpace(decoded); name != "" {
				return name
			}
		}
	}
	if match := plainFilenamePattern.FindStringSubmatch(header); match != nil {
		if name := strings.TrimSpace(match[1]); name != "" {
			return name
		}
	}
	return DefaultZipFilename
}
