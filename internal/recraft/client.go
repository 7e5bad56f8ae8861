// Package recraft is the HTTP client for the Recraft image API. Each
// operation is one method; bodies are JSON or multipart form data depending
// on the endpoint, and every call carries the configured bearer token. The
// client performs no retries: a non-2xx response surfaces as an
// *UpstreamError carrying the raw response body.
package recraft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"recraft-mcp/internal/config"
)

// Client calls the Recraft API. It is safe for concurrent use; it holds no
// mutable state beyond the shared http.Client.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a Client from the process configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpc:   &http.Client{},
	}
}

// UpstreamError is a non-2xx response from the API. The body is kept verbatim
// so the upstream's own diagnostics reach the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("recraft api returned status %d: %s", e.StatusCode, e.Body)
}

// MissingDataError means the API accepted the request but the response
// carried no usable image data. It is distinct from UpstreamError so callers
// can tell "rejected" from "accepted but empty".
type MissingDataError struct {
	Op string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no image data received from %s", e.Op)
}

// GenerateImage generates images from a text prompt.
func (c *Client) GenerateImage(ctx context.Context, req *GenerateRequest) (*ImagesResponse, error) {
	var out ImagesResponse
	if err := c.postJSON(ctx, "/v1/images/generations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImageToImage transforms an input image guided by a prompt and strength.
func (c *Client) ImageToImage(ctx context.Context, req *ImageToImageRequest) (*ImagesResponse, error) {
	fields := map[string]string{
		"prompt":   req.Prompt,
		"strength": formatFloat(req.Strength),
	}
	setOptional(fields, "n", formatInt(req.N))
	setOptional(fields, "style", req.Style)
	setOptional(fields, "substyle", req.Substyle)
	setOptional(fields, "style_id", req.StyleID)
	setOptional(fields, "model", req.Model)
	setOptional(fields, "response_format", req.ResponseFormat)
	setOptional(fields, "negative_prompt", req.NegativePrompt)
	if err := setControls(fields, req.Controls); err != nil {
		return nil, err
	}

	var out ImagesResponse
	err := c.postForm(ctx, "/v1/images/imageToImage", []filePart{{"image", req.Image}}, fields, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Inpaint regenerates the masked region of an image.
func (c *Client) Inpaint(ctx context.Context, req *InpaintRequest) (*ImagesResponse, error) {
	fields := map[string]string{"prompt": req.Prompt}
	setOptional(fields, "n", formatInt(req.N))
	setOptional(fields, "style", req.Style)
	setOptional(fields, "substyle", req.Substyle)
	setOptional(fields, "style_id", req.StyleID)
	setOptional(fields, "model", req.Model)
	setOptional(fields, "response_format", req.ResponseFormat)
	setOptional(fields, "negative_prompt", req.NegativePrompt)

	var out ImagesResponse
	parts := []filePart{{"image", req.Image}, {"mask", req.Mask}}
	if err := c.postForm(ctx, "/v1/images/inpaint", parts, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReplaceBackground keeps the subject of an image and regenerates the
// background from a prompt.
func (c *Client) ReplaceBackground(ctx context.Context, req *ReplaceBackgroundRequest) (*ImagesResponse, error) {
	fields := map[string]string{"prompt": req.Prompt}
	setOptional(fields, "n", formatInt(req.N))
	setOptional(fields, "style", req.Style)
	setOptional(fields, "substyle", req.Substyle)
	setOptional(fields, "style_id", req.StyleID)
	setOptional(fields, "model", req.Model)
	setOptional(fields, "response_format", req.ResponseFormat)
	setOptional(fields, "negative_prompt", req.NegativePrompt)

	var out ImagesResponse
	err := c.postForm(ctx, "/v1/images/replaceBackground", []filePart{{"image", req.Image}}, fields, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Vectorize converts a raster image into SVG.
func (c *Client) Vectorize(ctx context.Context, file FileSource) (*ImageResponse, error) {
	return c.postSingleFile(ctx, "/v1/images/vectorize", file)
}

// RemoveBackground makes the background of an image transparent.
func (c *Client) RemoveBackground(ctx context.Context, file FileSource) (*ImageResponse, error) {
	return c.postSingleFile(ctx, "/v1/images/removeBackground", file)
}

// CrispUpscale enhances resolution without regenerating content.
func (c *Client) CrispUpscale(ctx context.Context, file FileSource) (*ImageResponse, error) {
	return c.postSingleFile(ctx, "/v1/images/crispUpscale", file)
}

// CreativeUpscale enhances resolution while regenerating fine detail.
func (c *Client) CreativeUpscale(ctx context.Context, file FileSource) (*ImageResponse, error) {
	return c.postSingleFile(ctx, "/v1/images/creativeUpscale", file)
}

// CreateStyle derives a reusable style from reference images. Files are sent
// as indexed parts file1..fileN alongside the base style field.
func (c *Client) CreateStyle(ctx context.Context, style string, files []FileSource) (*StyleResponse, error) {
	parts := make([]filePart, len(files))
	for i, f := range files {
		parts[i] = filePart{fmt.Sprintf("file%d", i+1), f}
	}
	var out StyleResponse
	if err := c.postForm(ctx, "/v1/styles", parts, map[string]string{"style": style}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserInfo fetches the authenticated user's profile and credit balance.
func (c *Client) GetUserInfo(ctx context.Context) (*UserResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	var out UserResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postSingleFile(ctx context.Context, endpoint string, file FileSource) (*ImageResponse, error) {
	var out ImageResponse
	if err := c.postForm(ctx, endpoint, []filePart{{"file", file}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// filePart is one binary part of a multipart request.
type filePart struct {
	field  string
	source FileSource
}

func (c *Client) postForm(ctx context.Context, endpoint string, files []filePart, fields map[string]string, out any) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	for _, part := range files {
		r, name, err := part.source.open()
		if err != nil {
			return err
		}
		w, err := writer.CreateFormFile(part.field, name)
		if err != nil {
			r.Close()
			return fmt.Errorf("create form part %s: %w", part.field, err)
		}
		if _, err := io.Copy(w, r); err != nil {
			r.Close()
			return fmt.Errorf("copy form part %s: %w", part.field, err)
		}
		r.Close()
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("recraft api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// setOptional appends a stringified scalar only when it has a value; absent
// fields are omitted from the form entirely, never sent empty.
func setOptional(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

// setControls serializes the controls bundle to a JSON string form field.
func setControls(fields map[string]string, controls *Controls) error {
	if controls == nil {
		return nil
	}
	buf, err := json.Marshal(controls)
	if err != nil {
		return fmt.Errorf("encode controls: %w", err)
	}
	fields["controls"] = string(buf)
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
