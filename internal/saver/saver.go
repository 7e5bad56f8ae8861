// Package saver persists generated images to the local filesystem, from
// either a download URL or a base64 payload. It creates the destination
// directory when missing and removes partially written files on download
// failure.
package saver

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// defaultExtension is used when neither a data: prefix nor the URL reveals
// the image format.
const defaultExtension = "png"

// Saver writes image payloads to disk. The zero http.Client is fine for
// production; tests point URLs at a local stub.
type Saver struct {
	httpc *http.Client
}

// New returns a Saver using the default HTTP client for downloads.
func New() *Saver {
	return &Saver{httpc: &http.Client{}}
}

// SaveBase64 decodes data (raw base64 or a data:image/<ext>;base64,...
// payload) and writes it under dir. When the data: prefix declares an image
// type, that type drives the file extension; otherwise "png" is used.
// Returns the final file path.
func (s *Saver) SaveBase64(dir, filename, data string) (string, error) {
	ext := defaultExtension
	if strings.HasPrefix(data, "data:") {
		meta, rest, ok := strings.Cut(data, ",")
		if !ok {
			return "", fmt.Errorf("malformed data URI")
		}
		if e := extensionFromDataURI(meta); e != "" {
			ext = e
		}
		data = rest
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode base64 image: %w", err)
	}

	path, err := destinationPath(dir, filename, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return path, nil
}

// SaveURL streams the image at rawURL into a file under dir. The extension
// comes from the URL path when it has one, else "png". A failed or partial
// download leaves no file behind. Returns the final file path.
func (s *Saver) SaveURL(ctx context.Context, rawURL, dir, filename string) (string, error) {
	ext := defaultExtension
	if u, err := url.Parse(rawURL); err == nil {
		if e := strings.TrimPrefix(filepath.Ext(u.Path), "."); e != "" {
			ext = e
		}
	}

	path, err := destinationPath(dir, filename, ext)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close image file: %w", err)
	}
	return path, nil
}

// destinationPath creates dir when absent and joins the filename, appending
// ext only when the filename does not already carry an extension.
func destinationPath(dir, filename, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	if filepath.Ext(filename) == "" {
		filename = filename + "." + ext
	}
	return filepath.Join(dir, filename), nil
}

// extensionFromDataURI extracts the image type from a "data:image/<type>[;base64]"
// prefix, e.g. "jpeg" from data:image/jpeg;base64. SVG's "+xml" suffix is
// dropped.
func extensionFromDataURI(meta string) string {
	meta = strings.TrimPrefix(meta, "data:")
	mediaType, _, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return ""
	}
	ext := strings.TrimPrefix(mediaType, "image/")
	ext, _, _ = strings.Cut(ext, "+")
	return ext
}
