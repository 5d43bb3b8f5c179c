// Package fsio implements the storage sink port: directory management,
// pointer/sidecar writes and image downloads.
package fsio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mralexsaavedra/jellytube/internal/logging"
	"github.com/mralexsaavedra/jellytube/internal/models"
)

// Sink writes library files to the local filesystem.
type Sink struct {
	client *http.Client
}

// New returns a filesystem sink.
func New() *Sink {
	return &Sink{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// EnsureDirectory creates the directory recursively. Creating an existing
// directory is a no-op.
func (s *Sink) EnsureDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	return nil
}

// FileExists reports whether a file is present at path.
func (s *Sink) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteStrmFile writes the playback URL as the entire file contents.
func (s *Sink) WriteStrmFile(path, url string) error {
	if err := os.WriteFile(path, []byte(url), 0o644); err != nil {
		return fmt.Errorf("failed to write strm file %q: %w", path, err)
	}
	logging.D("Created strm file %q", path)
	return nil
}

// WriteNfoFile writes the metadata sidecar for a video.
func (s *Sink) WriteNfoFile(path string, video models.Video, channel models.Channel) error {
	if err := os.WriteFile(path, []byte(renderNfo(video, channel)), 0o644); err != nil {
		return fmt.Errorf("failed to write nfo file %q: %w", path, err)
	}
	logging.D("Created nfo file %q", path)
	return nil
}

// DownloadImage streams a remote image to destPath. The body lands in a
// temporary file first so a failed download never leaves a partial file at
// the destination.
func (s *Sink) DownloadImage(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %q: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image %q: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close response body for %q: %v", url, err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download image %q: status %d", url, resp.StatusCode)
	}

	tmpPath := destPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", tmpPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed writing image to %q: %w", tmpPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %q: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move image into place at %q: %w", destPath, err)
	}
	return nil
}
