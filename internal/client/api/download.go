package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Downloader fetches starter archives and writes them into a local
// directory, the client-side stand-in for a browser download.
type Downloader struct {
	client *Client
	dir    string
}

// NewDownloader creates a downloader that saves into dir
func NewDownloader(client *Client, dir string) *Downloader {
	return &Downloader{client: client, dir: dir}
}

// DownloadWebsiteZip fetches the archive for the prompt and saves it
// under the server-provided attachment name.
func (d *Downloader) DownloadWebsiteZip(ctx context.Context, prompt string) error {
	download, err := d.client.RequestWebsiteZip(ctx, prompt)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(d.dir, filepath.Base(download.Filename))
	if err := os.WriteFile(path, download.Data, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}
