package server

import (
	"recraft-mcp/internal/recraft"
	"recraft-mcp/internal/schema"
	"recraft-mcp/internal/styles"
)

// Argument structs are the typed shape each handler works with. They are
// filled from the validator's normalized output, so coercible numeric fields
// ("n", "strength", RGB channels) always arrive as numbers here even when the
// caller sent them as strings.

type generateImageArgs struct {
	Prompt         string               `json:"prompt"`
	Style          string               `json:"style,omitempty"`
	Substyle       string               `json:"substyle,omitempty"`
	StyleID        string               `json:"style_id,omitempty"`
	Size           string               `json:"size,omitempty"`
	N              int                  `json:"n,omitempty"`
	Model          string               `json:"model,omitempty"`
	ResponseFormat string               `json:"response_format,omitempty"`
	NegativePrompt string               `json:"negative_prompt,omitempty"`
	Controls       *recraft.Controls    `json:"controls,omitempty"`
	TextLayout     []recraft.TextLayout `json:"text_layout,omitempty"`
	SaveToDisk     bool                 `json:"save_to_disk,omitempty"`
	OutputPath     string               `json:"output_path,omitempty"`
	Filename       string               `json:"filename,omitempty"`
}

type imageToImageArgs struct {
	Image          string            `json:"image"`
	Prompt         string            `json:"prompt"`
	Strength       float64           `json:"strength"`
	N              int               `json:"n,omitempty"`
	Style          string            `json:"style,omitempty"`
	Substyle       string            `json:"substyle,omitempty"`
	StyleID        string            `json:"style_id,omitempty"`
	Model          string            `json:"model,omitempty"`
	ResponseFormat string            `json:"response_format,omitempty"`
	NegativePrompt string            `json:"negative_prompt,omitempty"`
	Controls       *recraft.Controls `json:"controls,omitempty"`
}

type inpaintArgs struct {
	Image          string `json:"image"`
	Mask           string `json:"mask"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Style          string `json:"style,omitempty"`
	Substyle       string `json:"substyle,omitempty"`
	StyleID        string `json:"style_id,omitempty"`
	Model          string `json:"model,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

type replaceBackgroundArgs struct {
	Image          string `json:"image"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n,omitempty"`
	Style          string `json:"style,omitempty"`
	Substyle       string `json:"substyle,omitempty"`
	StyleID        string `json:"style_id,omitempty"`
	Model          string `json:"model,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

type fileArgs struct {
	File string `json:"file"`
}

type createStyleArgs struct {
	Style string   `json:"style"`
	Files []string `json:"files"`
}

type saveImageArgs struct {
	OutputPath string `json:"output_path"`
	Filename   string `json:"filename"`
	ImageURL   string `json:"image_url,omitempty"`
	ImageB64   string `json:"image_b64,omitempty"`
}

// Shared field constructors. Each call returns a fresh Field so no schema
// shares mutable state with another.

func promptField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Required:    true,
		NonEmpty:    true,
		Description: "Text description of the desired image",
	}
}

func imagePathField(description string) *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Required:    true,
		NonEmpty:    true,
		AbsPath:     true,
		Description: description,
	}
}

func styleField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Enum:        styles.All,
		Description: "Base style controlling the rendering aesthetic",
	}
}

// substyleField validates against the recraftv3 vocabulary regardless of the
// declared model; the v2 family is not cross-checked here.
func substyleField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Enum:        styles.AllSubstyles(styles.ModelV3),
		Description: "Substyle refining the base style; valid values depend on style and model",
	}
}

func styleIDField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		NonEmpty:    true,
		Description: "ID of a previously created style; mutually exclusive with style on the API side",
	}
}

func sizeField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Enum:        styles.Sizes(),
		Description: "Output size as WxH",
		Default:     "1024x1024",
	}
}

func nField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeInteger,
		Coerce:      true,
		Min:         schema.Float(1),
		Max:         schema.Float(6),
		Description: "Number of images to generate (1-6)",
		Default:     1,
	}
}

func modelField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Enum:        styles.Models,
		Description: "Model generation to use",
		Default:     styles.ModelV3,
	}
}

func responseFormatField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Enum:        []string{"url", "b64_json"},
		Description: "How the API returns the image: a download URL or inline base64",
		Default:     "url",
	}
}

func negativePromptField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeString,
		Description: "What to avoid in the generated image",
	}
}

func colorField(description string) *schema.Field {
	return &schema.Field{
		Type:        schema.TypeObject,
		Description: description,
		PropOrder:   []string{"rgb"},
		Properties: map[string]*schema.Field{
			"rgb": {
				Type:     schema.TypeArray,
				Required: true,
				MinItems: 3,
				MaxItems: 3,
				Items: &schema.Field{
					Type:   schema.TypeInteger,
					Coerce: true,
					Min:    schema.Float(0),
					Max:    schema.Float(255),
				},
				Description: "Channel values as [r, g, b]",
			},
		},
	}
}

func controlsField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeObject,
		Description: "Optional generation tuning, forwarded to the API unmodified",
		PropOrder:   []string{"artistic_level", "colors", "background_color", "no_text"},
		Properties: map[string]*schema.Field{
			"artistic_level": {
				Type:        schema.TypeInteger,
				Coerce:      true,
				Min:         schema.Float(0),
				Max:         schema.Float(5),
				Description: "Creativity level from 0 (strict) to 5 (free)",
			},
			"colors": {
				Type:        schema.TypeArray,
				Items:       colorField(""),
				Description: "Preferred palette colors",
			},
			"background_color": colorField("Preferred background color"),
			"no_text": {
				Type:        schema.TypeBoolean,
				Description: "Suppress text in the generated image",
			},
		},
	}
}

func textLayoutField() *schema.Field {
	return &schema.Field{
		Type:        schema.TypeArray,
		Description: "Text placement hints, forwarded to the generator uninterpreted",
		Items: &schema.Field{
			Type:      schema.TypeObject,
			PropOrder: []string{"text", "bbox"},
			Properties: map[string]*schema.Field{
				"text": {
					Type:        schema.TypeString,
					Required:    true,
					NonEmpty:    true,
					Description: "Literal text to place",
				},
				"bbox": {
					Type:     schema.TypeArray,
					Required: true,
					MinItems: 4,
					MaxItems: 4,
					Items: &schema.Field{
						Type:     schema.TypeArray,
						MinItems: 2,
						MaxItems: 2,
						Items:    &schema.Field{Type: schema.TypeNumber},
					},
					Description: "Bounding box as four [x, y] corner points",
				},
			},
		},
	}
}

// Per-tool schemas. These drive both validation and the inputSchema
// advertised on tools/list.

var generateImageSchema = &schema.Object{
	Order: []string{
		"prompt", "style", "substyle", "style_id", "size", "n", "model",
		"response_format", "negative_prompt", "controls", "text_layout",
		"save_to_disk", "output_path", "filename",
	},
	Fields: map[string]*schema.Field{
		"prompt":          promptField(),
		"style":           styleField(),
		"substyle":        substyleField(),
		"style_id":        styleIDField(),
		"size":            sizeField(),
		"n":               nField(),
		"model":           modelField(),
		"response_format": responseFormatField(),
		"negative_prompt": negativePromptField(),
		"controls":        controlsField(),
		"text_layout":     textLayoutField(),
		"save_to_disk": {
			Type:        schema.TypeBoolean,
			Description: "Also write the generated image to the local filesystem",
		},
		"output_path": {
			Type:        schema.TypeString,
			NonEmpty:    true,
			AbsPath:     true,
			Description: "Absolute directory to save into; required when save_to_disk is true",
		},
		"filename": {
			Type:        schema.TypeString,
			NonEmpty:    true,
			Description: "Filename for the saved image; required when save_to_disk is true",
		},
	},
	Rules: []schema.Rule{requireSaveDestination},
}

var imageToImageSchema = &schema.Object{
	Order: []string{
		"image", "prompt", "strength", "n", "style", "substyle", "style_id",
		"model", "response_format", "negative_prompt", "controls",
	},
	Fields: map[string]*schema.Field{
		"image":  imagePathField("Absolute path to the input image"),
		"prompt": promptField(),
		"strength": {
			Type:        schema.TypeNumber,
			Required:    true,
			Coerce:      true,
			Min:         schema.Float(0),
			Max:         schema.Float(1),
			Description: "How strongly the prompt transforms the input, 0.0 to 1.0",
		},
		"n":               nField(),
		"style":           styleField(),
		"substyle":        substyleField(),
		"style_id":        styleIDField(),
		"model":           modelField(),
		"response_format": responseFormatField(),
		"negative_prompt": negativePromptField(),
		"controls":        controlsField(),
	},
}

var inpaintImageSchema = &schema.Object{
	Order: []string{
		"image", "mask", "prompt", "n", "style", "substyle", "style_id",
		"model", "response_format", "negative_prompt",
	},
	Fields: map[string]*schema.Field{
		"image":           imagePathField("Absolute path to the input image"),
		"mask":            imagePathField("Absolute path to the mask image; white marks the region to regenerate"),
		"prompt":          promptField(),
		"n":               nField(),
		"style":           styleField(),
		"substyle":        substyleField(),
		"style_id":        styleIDField(),
		"model":           modelField(),
		"response_format": responseFormatField(),
		"negative_prompt": negativePromptField(),
	},
}

var replaceBackgroundSchema = &schema.Object{
	Order: []string{
		"image", "prompt", "n", "style", "substyle", "style_id", "model",
		"response_format", "negative_prompt",
	},
	Fields: map[string]*schema.Field{
		"image":           imagePathField("Absolute path to the input image"),
		"prompt":          promptField(),
		"n":               nField(),
		"style":           styleField(),
		"substyle":        substyleField(),
		"style_id":        styleIDField(),
		"model":           modelField(),
		"response_format": responseFormatField(),
		"negative_prompt": negativePromptField(),
	},
}

func singleFileSchema(description string) *schema.Object {
	return &schema.Object{
		Order: []string{"file"},
		Fields: map[string]*schema.Field{
			"file": imagePathField(description),
		},
	}
}

var (
	vectorizeImageSchema   = singleFileSchema("Absolute path to the raster image to vectorize")
	removeBackgroundSchema = singleFileSchema("Absolute path to the image whose background to remove")
	crispUpscaleSchema     = singleFileSchema("Absolute path to the image to upscale")
	creativeUpscaleSchema  = singleFileSchema("Absolute path to the image to upscale")
)

var createStyleSchema = &schema.Object{
	Order: []string{"style", "files"},
	Fields: map[string]*schema.Field{
		"style": {
			Type:        schema.TypeString,
			Required:    true,
			NonEmpty:    true,
			Enum:        creatableStyles(),
			Description: "Base style the new style derives from",
		},
		"files": {
			Type:        schema.TypeArray,
			Required:    true,
			MinItems:    1,
			MaxItems:    5,
			Items:       &schema.Field{Type: schema.TypeString, NonEmpty: true, AbsPath: true},
			Description: "Absolute paths of 1-5 reference images",
		},
	},
}

var getUserInfoSchema = &schema.Object{
	Fields: map[string]*schema.Field{},
}

var saveImageToDiskSchema = &schema.Object{
	Order: []string{"output_path", "filename", "image_url", "image_b64"},
	Fields: map[string]*schema.Field{
		"output_path": {
			Type:        schema.TypeString,
			Required:    true,
			NonEmpty:    true,
			AbsPath:     true,
			Description: "Absolute directory to save into",
		},
		"filename": {
			Type:        schema.TypeString,
			Required:    true,
			NonEmpty:    true,
			Description: "Filename for the saved image; extension derived from the source when missing",
		},
		"image_url": {
			Type:        schema.TypeString,
			NonEmpty:    true,
			Description: "URL of the image to download and save",
		},
		"image_b64": {
			Type:        schema.TypeString,
			NonEmpty:    true,
			Description: "Base64 image payload, raw or as a data: URI",
		},
	},
	Rules: []schema.Rule{requireImageSource},
}

// requireSaveDestination makes output_path and filename mandatory once
// save_to_disk is set. Violations are reported against save_to_disk, the
// field that triggered the requirement.
func requireSaveDestination(args map[string]any) []schema.Issue {
	save, _ := args["save_to_disk"].(bool)
	if !save {
		return nil
	}
	var issues []schema.Issue
	if _, ok := args["output_path"]; !ok {
		issues = append(issues, schema.Issue{Path: "save_to_disk", Message: "output_path is required when save_to_disk is true"})
	}
	if _, ok := args["filename"]; !ok {
		issues = append(issues, schema.Issue{Path: "save_to_disk", Message: "filename is required when save_to_disk is true"})
	}
	return issues
}

// requireImageSource demands at least one of image_url / image_b64. Both
// present is fine; the URL wins at execution time.
func requireImageSource(args map[string]any) []schema.Issue {
	if _, ok := args["image_url"]; ok {
		return nil
	}
	if _, ok := args["image_b64"]; ok {
		return nil
	}
	return []schema.Issue{{Message: "either image_url or image_b64 must be provided"}}
}

func creatableStyles() []string {
	out := make([]string, 0, len(styles.All)-1)
	for _, s := range styles.All {
		if s != styles.StyleAny {
			out = append(out, s)
		}
	}
	return out
}
