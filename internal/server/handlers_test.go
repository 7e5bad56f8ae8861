package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recraft-mcp/internal/config"
	"recraft-mcp/internal/recraft"
	"recraft-mcp/internal/saver"
	"recraft-mcp/internal/schema"
)

// newTestServer wires a Server against a stub upstream. Handlers are
// registered on the returned mux after creation so they can reference the
// stub's own URL.
func newTestServer(t *testing.T) (*Server, *http.ServeMux, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client := recraft.NewClient(&config.Config{BaseURL: ts.URL, APIKey: "test-key"})
	return New(client, saver.New(), zap.NewNop()), mux, ts
}

// writeTempImage creates a file the image-path arguments can point at.
func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.png")
	require.NoError(t, os.WriteFile(path, []byte("fake-png-bytes"), 0o644))
	return path
}

func callArgs(t *testing.T, args map[string]any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return raw
}

func TestVectorizeImage_URLResult(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/images/vectorize", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"image": map[string]any{"url": "https://x/y.svg"}})
	})

	result, err := srv.executeTool(context.Background(), "vectorize_image",
		callArgs(t, map[string]any{"file": writeTempImage(t)}))
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, Content{Type: "text", Text: "https://x/y.svg"}, result.Content[0])
}

func TestGetUserInfo_Format(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"name": "A", "email": "a@b.com", "credits": 10})
	})

	result, err := srv.executeTool(context.Background(), "get_user_info", nil)
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "Name: A, Email: a@b.com, Credits: 10", result.Content[0].Text)
}

func TestGenerateImage_InlineBase64(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{"b64_json": payload}}})
	})

	result, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{"prompt": "cat"}))
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "image", result.Content[0].Type)
	assert.Equal(t, "image/png", result.Content[0].MimeType)
	assert.Equal(t, payload, result.Content[0].Data)
}

func TestGenerateImage_NoImageData(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{"prompt": "cat"}))
	require.Error(t, err)

	var missing *recraft.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "no image data received")
}

func TestGenerateImage_SaveToDiskRequiresDestination(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{"prompt": "cat", "save_to_disk": true}))
	require.Error(t, err)

	var vErr *schema.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), "save_to_disk: output_path is required when save_to_disk is true")
	assert.Contains(t, err.Error(), "save_to_disk: filename is required when save_to_disk is true")
}

func TestGenerateImage_SaveToDiskRelativePath(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{
			"prompt":       "cat",
			"save_to_disk": true,
			"output_path":  "relative/out",
			"filename":     "img",
		}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_path: must be an absolute path")
	assert.NotContains(t, err.Error(), "output_path is required when save_to_disk is true")
}

func TestGenerateImage_SaveToDisk(t *testing.T) {
	srv, mux, ts := newTestServer(t)
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{"url": ts.URL + "/img.png"}}})
	})
	mux.HandleFunc("/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("generated-bytes"))
	})

	dir := t.TempDir()
	result, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{
			"prompt":       "cat",
			"save_to_disk": true,
			"output_path":  dir,
			"filename":     "out",
		}))
	require.NoError(t, err)

	savedPath := filepath.Join(dir, "out.png")
	assert.Equal(t, "Image generated and saved to "+savedPath, result.Content[0].Text)

	content, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, "generated-bytes", string(content))
}

func TestGenerateImage_SaveFailureIsDistinct(t *testing.T) {
	srv, mux, ts := newTestServer(t)
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{"url": ts.URL + "/gone.png"}}})
	})
	mux.HandleFunc("/gone.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{
			"prompt":       "cat",
			"save_to_disk": true,
			"output_path":  t.TempDir(),
			"filename":     "out",
		}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image generated but saving failed")
}

func TestGenerateImage_InvalidStyleMessage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{"prompt": "cat", "style": "vaporwave"}))
	require.Error(t, err)
	assert.Equal(t,
		`Invalid style: "vaporwave". Valid options are: any, realistic_image, digital_illustration, vector_illustration, icon, logo_raster`,
		err.Error())
}

func TestGenerateImage_UpstreamErrorPropagates(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("quota exceeded"))
	})

	_, err := srv.executeTool(context.Background(), "generate_image",
		callArgs(t, map[string]any{"prompt": "cat"}))
	require.Error(t, err)

	var upErr *recraft.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestImageToImage_StringNumericArguments(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/images/imageToImage", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "0.5", r.FormValue("strength"))
		assert.Equal(t, "3", r.FormValue("n"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{map[string]any{"url": "https://x/z.png"}}})
	})

	result, err := srv.executeTool(context.Background(), "image_to_image",
		callArgs(t, map[string]any{
			"image":    writeTempImage(t),
			"prompt":   "make it night",
			"strength": "0.5",
			"n":        "3",
		}))
	require.NoError(t, err)
	assert.Equal(t, "https://x/z.png", result.Content[0].Text)
}

func TestImageToImage_StrengthOutOfRange(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "image_to_image",
		callArgs(t, map[string]any{
			"image":    writeTempImage(t),
			"prompt":   "p",
			"strength": "1.5",
		}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strength: must be at most 1")
}

func TestImageToImage_StrengthNaNRejected(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "image_to_image",
		callArgs(t, map[string]any{
			"image":    writeTempImage(t),
			"prompt":   "p",
			"strength": "NaN",
		}))
	require.Error(t, err)

	var vErr *schema.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), `strength: "NaN" is not a valid number`)
}

func TestSaveImageToDisk_RequiresSource(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "save_image_to_disk",
		callArgs(t, map[string]any{"output_path": "/tmp/x", "filename": "img"}))
	require.Error(t, err)

	var vErr *schema.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "either image_url or image_b64 must be provided", err.Error())
}

func TestSaveImageToDisk_URLTakesPriority(t *testing.T) {
	srv, mux, ts := newTestServer(t)
	mux.HandleFunc("/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("url-bytes"))
	})

	dir := t.TempDir()
	result, err := srv.executeTool(context.Background(), "save_image_to_disk",
		callArgs(t, map[string]any{
			"output_path": dir,
			"filename":    "img",
			"image_url":   ts.URL + "/img.png",
			"image_b64":   base64.StdEncoding.EncodeToString([]byte("b64-bytes")),
		}))
	require.NoError(t, err)

	savedPath := filepath.Join(dir, "img.png")
	assert.Equal(t, "Image saved to "+savedPath, result.Content[0].Text)

	content, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, "url-bytes", string(content))
}

func TestSaveImageToDisk_JPEGDataURIExtension(t *testing.T) {
	srv, _, _ := newTestServer(t)

	dir := t.TempDir()
	result, err := srv.executeTool(context.Background(), "save_image_to_disk",
		callArgs(t, map[string]any{
			"output_path": dir,
			"filename":    "photo",
			"image_b64":   "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")),
		}))
	require.NoError(t, err)
	assert.Equal(t, "Image saved to "+filepath.Join(dir, "photo.jpeg"), result.Content[0].Text)
}

func TestCreateStyle_Result(t *testing.T) {
	srv, mux, _ := newTestServer(t)
	mux.HandleFunc("/v1/styles", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "icon", r.FormValue("style"))
		json.NewEncoder(w).Encode(map[string]any{"id": "style-123"})
	})

	result, err := srv.executeTool(context.Background(), "create_style",
		callArgs(t, map[string]any{"style": "icon", "files": []string{writeTempImage(t)}}))
	require.NoError(t, err)
	assert.Equal(t, "Style created with ID: style-123", result.Content[0].Text)
}

func TestRequiredFieldsNamedInErrors(t *testing.T) {
	srv, _, _ := newTestServer(t)

	tests := []struct {
		tool string
		want []string
	}{
		{"generate_image", []string{"prompt: required"}},
		{"image_to_image", []string{"image: required", "prompt: required", "strength: required"}},
		{"inpaint_image", []string{"image: required", "mask: required", "prompt: required"}},
		{"replace_background", []string{"image: required", "prompt: required"}},
		{"vectorize_image", []string{"file: required"}},
		{"remove_background", []string{"file: required"}},
		{"crisp_upscale", []string{"file: required"}},
		{"creative_upscale", []string{"file: required"}},
		{"create_style", []string{"style: required", "files: required"}},
		{"save_image_to_disk", []string{"output_path: required", "filename: required"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			_, err := srv.executeTool(context.Background(), tt.tool, json.RawMessage(`{}`))
			require.Error(t, err)

			var vErr *schema.ValidationError
			require.ErrorAs(t, err, &vErr)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestRelativePathsRejected(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "vectorize_image",
		callArgs(t, map[string]any{"file": "relative/input.png"}))
	require.Error(t, err)
	assert.Equal(t, "file: must be an absolute path", err.Error())
}

func TestExecuteTool_Unknown(t *testing.T) {
	srv, _, _ := newTestServer(t)

	_, err := srv.executeTool(context.Background(), "teleport_image", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, fmt.Sprintf("unknown tool: %s", "teleport_image"), err.Error())
}
