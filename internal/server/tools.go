package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools. Every inputSchema is
// rendered from the same schema object the dispatcher validates with, so the
// advertised constraints always match the enforced ones.
func GetToolDefinitions() []Tool {
	return []Tool{
		// Generation
		{
			Name:        "generate_image",
			Description: "Generate images from a text prompt using the Recraft API. Supports styles, substyles, custom style IDs, sizes, palette controls and text layout hints. Can optionally save the first image to the local filesystem.",
			InputSchema: generateImageSchema.JSONSchema(),
		},

		// Transformation
		{
			Name:        "image_to_image",
			Description: "Transform an existing image guided by a prompt. Strength (0.0-1.0) controls how far the result departs from the input.",
			InputSchema: imageToImageSchema.JSONSchema(),
		},
		{
			Name:        "inpaint_image",
			Description: "Regenerate the masked region of an image from a prompt. The mask's white pixels mark the area to replace.",
			InputSchema: inpaintImageSchema.JSONSchema(),
		},
		{
			Name:        "replace_background",
			Description: "Keep the subject of an image and generate a new background from a prompt.",
			InputSchema: replaceBackgroundSchema.JSONSchema(),
		},

		// Single-file operations
		{
			Name:        "vectorize_image",
			Description: "Convert a raster image into an SVG vector image.",
			InputSchema: vectorizeImageSchema.JSONSchema(),
		},
		{
			Name:        "remove_background",
			Description: "Remove the background of an image, leaving the subject on transparency.",
			InputSchema: removeBackgroundSchema.JSONSchema(),
		},
		{
			Name:        "crisp_upscale",
			Description: "Upscale an image, enhancing resolution without regenerating content.",
			InputSchema: crispUpscaleSchema.JSONSchema(),
		},
		{
			Name:        "creative_upscale",
			Description: "Upscale an image while regenerating fine detail for a sharper result.",
			InputSchema: creativeUpscaleSchema.JSONSchema(),
		},

		// Styles and account
		{
			Name:        "create_style",
			Description: "Create a reusable style from 1-5 reference images. Returns the new style ID for use with generate_image.",
			InputSchema: createStyleSchema.JSONSchema(),
		},
		{
			Name:        "get_user_info",
			Description: "Get the authenticated Recraft user's name, email and remaining credits.",
			InputSchema: getUserInfoSchema.JSONSchema(),
		},

		// Disk save
		{
			Name:        "save_image_to_disk",
			Description: "Save an image to the local filesystem from either a URL or a base64 payload. Exactly one image source is needed; when both are given the URL is used.",
			InputSchema: saveImageToDiskSchema.JSONSchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
