package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"recraft-mcp/internal/recraft"
	"recraft-mcp/internal/schema"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "generate_image", "vectorize_image").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// Content is one segment of a tool result: either text or an inline image.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// ToolResult is the protocol-facing output of one tool call.
type ToolResult struct {
	Content []Content `json:"content"`
}

func textResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: "text", Text: text}}}
}

func imageResult(data []byte, mimeType string) *ToolResult {
	return &ToolResult{Content: []Content{{
		Type:     "image",
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}}}
}

// handleToolsCall processes a tools/call request and executes the specified
// tool. Validation failures map to -32602; everything else that goes wrong
// during execution maps to -32000 with the error text preserved.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			return s.errorResponse(req.ID, -32602, "Invalid arguments", vErr.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Validates and normalizes arguments via its schema
//  2. Calls the matching Recraft API method
//  3. Shapes the response into text or inline-image content
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error) {
	switch name {
	case "generate_image":
		return s.handleGenerateImage(ctx, args)
	case "image_to_image":
		return s.handleImageToImage(ctx, args)
	case "inpaint_image":
		return s.handleInpaintImage(ctx, args)
	case "replace_background":
		return s.handleReplaceBackground(ctx, args)
	case "vectorize_image":
		return s.handleVectorizeImage(ctx, args)
	case "remove_background":
		return s.handleRemoveBackground(ctx, args)
	case "crisp_upscale":
		return s.handleCrispUpscale(ctx, args)
	case "creative_upscale":
		return s.handleCreativeUpscale(ctx, args)
	case "create_style":
		return s.handleCreateStyle(ctx, args)
	case "get_user_info":
		return s.handleGetUserInfo(ctx, args)
	case "save_image_to_disk":
		return s.handleSaveImageToDisk(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// shapeImage turns one image entry into protocol content: inline bytes when
// the API returned base64, otherwise the image's URL as text.
func shapeImage(op string, img recraft.Image) (*ToolResult, error) {
	if img.B64JSON != "" {
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image data: %w", err)
		}
		return imageResult(data, "image/png"), nil
	}
	if img.URL == "" {
		return nil, &recraft.MissingDataError{Op: op}
	}
	return textResult(img.URL), nil
}

// === Generation ===

func (s *Server) handleGenerateImage(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[generateImageArgs](generateImageSchema, args)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.GenerateImage(ctx, &recraft.GenerateRequest{
		Prompt:         a.Prompt,
		N:              a.N,
		Style:          a.Style,
		Substyle:       a.Substyle,
		StyleID:        a.StyleID,
		Size:           a.Size,
		Model:          a.Model,
		ResponseFormat: a.ResponseFormat,
		NegativePrompt: a.NegativePrompt,
		Controls:       a.Controls,
		TextLayout:     a.TextLayout,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, &recraft.MissingDataError{Op: "generate_image"}
	}
	img := resp.Data[0]

	if a.SaveToDisk {
		path, err := s.saveImage(ctx, img, a.OutputPath, a.Filename)
		if err != nil {
			return nil, fmt.Errorf("image generated but saving failed: %w", err)
		}
		return textResult("Image generated and saved to " + path), nil
	}
	return shapeImage("generate_image", img)
}

// saveImage persists one generated image, preferring the URL when both
// representations are present.
func (s *Server) saveImage(ctx context.Context, img recraft.Image, dir, filename string) (string, error) {
	switch {
	case img.URL != "":
		return s.saver.SaveURL(ctx, img.URL, dir, filename)
	case img.B64JSON != "":
		return s.saver.SaveBase64(dir, filename, img.B64JSON)
	}
	return "", &recraft.MissingDataError{Op: "generate_image"}
}

// === Transformation ===

func (s *Server) handleImageToImage(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[imageToImageArgs](imageToImageSchema, args)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.ImageToImage(ctx, &recraft.ImageToImageRequest{
		Image:          recraft.FilePath(a.Image),
		Prompt:         a.Prompt,
		Strength:       a.Strength,
		N:              a.N,
		Style:          a.Style,
		Substyle:       a.Substyle,
		StyleID:        a.StyleID,
		Model:          a.Model,
		ResponseFormat: a.ResponseFormat,
		NegativePrompt: a.NegativePrompt,
		Controls:       a.Controls,
	})
	if err != nil {
		return nil, err
	}
	return firstImage("image_to_image", resp)
}

func (s *Server) handleInpaintImage(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[inpaintArgs](inpaintImageSchema, args)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Inpaint(ctx, &recraft.InpaintRequest{
		Image:          recraft.FilePath(a.Image),
		Mask:           recraft.FilePath(a.Mask),
		Prompt:         a.Prompt,
		N:              a.N,
		Style:          a.Style,
		Substyle:       a.Substyle,
		StyleID:        a.StyleID,
		Model:          a.Model,
		ResponseFormat: a.ResponseFormat,
		NegativePrompt: a.NegativePrompt,
	})
	if err != nil {
		return nil, err
	}
	return firstImage("inpaint_image", resp)
}

func (s *Server) handleReplaceBackground(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[replaceBackgroundArgs](replaceBackgroundSchema, args)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.ReplaceBackground(ctx, &recraft.ReplaceBackgroundRequest{
		Image:          recraft.FilePath(a.Image),
		Prompt:         a.Prompt,
		N:              a.N,
		Style:          a.Style,
		Substyle:       a.Substyle,
		StyleID:        a.StyleID,
		Model:          a.Model,
		ResponseFormat: a.ResponseFormat,
		NegativePrompt: a.NegativePrompt,
	})
	if err != nil {
		return nil, err
	}
	return firstImage("replace_background", resp)
}

func firstImage(op string, resp *recraft.ImagesResponse) (*ToolResult, error) {
	if len(resp.Data) == 0 {
		return nil, &recraft.MissingDataError{Op: op}
	}
	return shapeImage(op, resp.Data[0])
}

// === Single-file operations ===

func (s *Server) handleVectorizeImage(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	return s.handleSingleFile(ctx, args, "vectorize_image", vectorizeImageSchema, s.client.Vectorize)
}

func (s *Server) handleRemoveBackground(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	return s.handleSingleFile(ctx, args, "remove_background", removeBackgroundSchema, s.client.RemoveBackground)
}

func (s *Server) handleCrispUpscale(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	return s.handleSingleFile(ctx, args, "crisp_upscale", crispUpscaleSchema, s.client.CrispUpscale)
}

func (s *Server) handleCreativeUpscale(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	return s.handleSingleFile(ctx, args, "creative_upscale", creativeUpscaleSchema, s.client.CreativeUpscale)
}

func (s *Server) handleSingleFile(
	ctx context.Context,
	args json.RawMessage,
	op string,
	sch *schema.Object,
	call func(context.Context, recraft.FileSource) (*recraft.ImageResponse, error),
) (*ToolResult, error) {
	a, err := schema.ValidateAs[fileArgs](sch, args)
	if err != nil {
		return nil, err
	}
	resp, err := call(ctx, recraft.FilePath(a.File))
	if err != nil {
		return nil, err
	}
	return shapeImage(op, resp.Image)
}

// === Styles and account ===

func (s *Server) handleCreateStyle(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[createStyleArgs](createStyleSchema, args)
	if err != nil {
		return nil, err
	}
	files := make([]recraft.FileSource, len(a.Files))
	for i, path := range a.Files {
		files[i] = recraft.FilePath(path)
	}
	resp, err := s.client.CreateStyle(ctx, a.Style, files)
	if err != nil {
		return nil, err
	}
	return textResult("Style created with ID: " + resp.ID), nil
}

func (s *Server) handleGetUserInfo(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	if _, err := getUserInfoSchema.ValidateJSON(args); err != nil {
		return nil, err
	}
	user, err := s.client.GetUserInfo(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Name: %s, Email: %s, Credits: %d", user.Name, user.Email, user.Credits)), nil
}

// === Disk save ===

func (s *Server) handleSaveImageToDisk(ctx context.Context, args json.RawMessage) (*ToolResult, error) {
	a, err := schema.ValidateAs[saveImageArgs](saveImageToDiskSchema, args)
	if err != nil {
		return nil, err
	}

	var path string
	if a.ImageURL != "" {
		path, err = s.saver.SaveURL(ctx, a.ImageURL, a.OutputPath, a.Filename)
	} else {
		path, err = s.saver.SaveBase64(a.OutputPath, a.Filename, a.ImageB64)
	}
	if err != nil {
		return nil, err
	}
	return textResult("Image saved to " + path), nil
}
