package recraft

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Image is one generated image entry. Depending on the requested
// response_format the API fills the URL or the inline base64 payload.
type Image struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
}

// ImagesResponse is the multi-image response shape (generations,
// imageToImage, inpaint, replaceBackground).
type ImagesResponse struct {
	Data []Image `json:"data"`
}

// ImageResponse is the single-image response shape (vectorize,
// removeBackground, crispUpscale, creativeUpscale).
type ImageResponse struct {
	Image Image `json:"image"`
}

// StyleResponse is returned by style creation.
type StyleResponse struct {
	ID string `json:"id"`
}

// UserResponse is returned by the user info endpoint.
type UserResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Credits int    `json:"credits"`
}

// Color is an RGB triple, passed through to the API unmodified.
type Color struct {
	RGB []int `json:"rgb"`
}

// Controls is the optional generation-tuning bundle. It is opaque to this
// server: validated structurally, then forwarded as-is (JSON-stringified
// into a single form field on multipart endpoints).
type Controls struct {
	ArtisticLevel   *int    `json:"artistic_level,omitempty"`
	Colors          []Color `json:"colors,omitempty"`
	BackgroundColor *Color  `json:"background_color,omitempty"`
	NoText          *bool   `json:"no_text,omitempty"`
}

// TextLayout is a caller-supplied literal text plus its 4-point bounding box,
// forwarded to the generator uninterpreted.
type TextLayout struct {
	Text string      `json:"text"`
	BBox [][]float64 `json:"bbox"`
}

// GenerateRequest is the JSON body for the generations endpoint.
type GenerateRequest struct {
	Prompt         string       `json:"prompt"`
	N              int          `json:"n,omitempty"`
	Style          string       `json:"style,omitempty"`
	Substyle       string       `json:"substyle,omitempty"`
	StyleID        string       `json:"style_id,omitempty"`
	Size           string       `json:"size,omitempty"`
	Model          string       `json:"model,omitempty"`
	ResponseFormat string       `json:"response_format,omitempty"`
	NegativePrompt string       `json:"negative_prompt,omitempty"`
	Controls       *Controls    `json:"controls,omitempty"`
	TextLayout     []TextLayout `json:"text_layout,omitempty"`
}

// ImageToImageRequest carries the multipart fields for imageToImage.
type ImageToImageRequest struct {
	Image          FileSource
	Prompt         string
	Strength       float64
	N              int
	Style          string
	Substyle       string
	StyleID        string
	Model          string
	ResponseFormat string
	NegativePrompt string
	Controls       *Controls
}

// InpaintRequest carries the multipart fields for inpaint.
type InpaintRequest struct {
	Image          FileSource
	Mask           FileSource
	Prompt         string
	N              int
	Style          string
	Substyle       string
	StyleID        string
	Model          string
	ResponseFormat string
	NegativePrompt string
}

// ReplaceBackgroundRequest carries the multipart fields for
// replaceBackground.
type ReplaceBackgroundRequest struct {
	Image          FileSource
	Prompt         string
	N              int
	Style          string
	Substyle       string
	StyleID        string
	Model          string
	ResponseFormat string
	NegativePrompt string
}

type sourceKind int

const (
	sourceBytes sourceKind = iota
	sourceReader
	sourcePath
)

// FileSource is a tagged variant over the three accepted binary payload
// representations: in-memory bytes, an open reader, or a filesystem path.
type FileSource struct {
	kind   sourceKind
	data   []byte
	reader io.Reader
	path   string
}

// FileBytes wraps an in-memory payload.
func FileBytes(b []byte) FileSource {
	return FileSource{kind: sourceBytes, data: b}
}

// FileReader wraps an already-open reader. The reader is consumed by the
// request that carries it.
func FileReader(r io.Reader) FileSource {
	return FileSource{kind: sourceReader, reader: r}
}

// FilePath wraps a filesystem path, opened lazily when the request body is
// built.
func FilePath(p string) FileSource {
	return FileSource{kind: sourcePath, path: p}
}

// open returns the payload reader plus the filename to label the multipart
// part with.
func (s FileSource) open() (io.ReadCloser, string, error) {
	switch s.kind {
	case sourceBytes:
		return io.NopCloser(bytes.NewReader(s.data)), "image.png", nil
	case sourceReader:
		if s.reader == nil {
			return nil, "", fmt.Errorf("file source reader is nil")
		}
		return io.NopCloser(s.reader), "image.png", nil
	case sourcePath:
		f, err := os.Open(s.path)
		if err != nil {
			return nil, "", fmt.Errorf("open image file: %w", err)
		}
		return f, filepath.Base(s.path), nil
	}
	return nil, "", fmt.Errorf("empty file source")
}
