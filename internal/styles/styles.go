// Package styles holds the static Recraft vocabulary: the base styles, the
// per-model substyle families, and the allowed image sizes. All tables are
// built once at init and never mutated; membership checks are map lookups.
package styles

import "sort"

// Recraft model generations. The model selects which substyle family applies.
const (
	ModelV2 = "recraftv2"
	ModelV3 = "recraftv3"
)

// Models lists the supported model identifiers in a stable order.
var Models = []string{ModelV2, ModelV3}

// Base styles accepted by the generation endpoints.
const (
	StyleAny                 = "any"
	StyleRealisticImage      = "realistic_image"
	StyleDigitalIllustration = "digital_illustration"
	StyleVectorIllustration  = "vector_illustration"
	StyleIcon                = "icon"
	StyleLogoRaster          = "logo_raster"
)

// All lists every base style in a stable order.
var All = []string{
	StyleAny,
	StyleRealisticImage,
	StyleDigitalIllustration,
	StyleVectorIllustration,
	StyleIcon,
	StyleLogoRaster,
}

// imageSizes are the 15 "WxH" values the API accepts.
var imageSizes = []string{
	"1024x1024",
	"1365x1024",
	"1024x1365",
	"1536x1024",
	"1024x1536",
	"1820x1024",
	"1024x1820",
	"1024x2048",
	"2048x1024",
	"1434x1024",
	"1024x1434",
	"1024x1280",
	"1280x1024",
	"1024x1707",
	"1707x1024",
}

// v3Substyles is the recraftv3 substyle family keyed by base style.
var v3Substyles = map[string][]string{
	StyleAny: {},
	StyleRealisticImage: {
		"b_and_w",
		"enterprise",
		"evening_light",
		"faded_nostalgia",
		"forest_life",
		"hard_flash",
		"hdr",
		"motion_blur",
		"mystic_naturalism",
		"natural_light",
		"natural_tones",
		"organic_calm",
		"real_life_glow",
		"retro_realism",
		"retro_snapshot",
		"studio_portrait",
		"urban_drama",
		"village_realism",
		"warm_folk",
	},
	StyleDigitalIllustration: {
		"2d_art_poster",
		"2d_art_poster_2",
		"antiquarian",
		"bold_fantasy",
		"child_book",
		"cover",
		"crosshatch",
		"digital_engraving",
		"engraving_color",
		"expressionism",
		"freehand_details",
		"grain",
		"grain_20",
		"graphic_intensity",
		"hand_drawn",
		"hand_drawn_outline",
		"handmade_3d",
		"hard_comics",
		"infantile_sketch",
		"long_shadow",
		"modern_folk",
		"multicolor",
		"neon_calm",
		"noir",
		"nostalgic_pastel",
		"outline_details",
		"pastel_gradient",
		"pastel_sketch",
		"pixel_art",
		"plastic",
		"pop_art",
		"pop_renaissance",
		"seamless",
		"street_art",
		"tablet_sketch",
		"urban_glow",
		"urban_sketching",
		"vanilla_dreams",
		"young_adult_book",
		"young_adult_book_2",
	},
	StyleVectorIllustration: {
		"bold_stroke",
		"chemistry",
		"colored_stencil",
		"contour_pop_art",
		"cosmics",
		"cutout",
		"depressive",
		"editorial",
		"emotional_flat",
		"engraving",
		"infographical",
		"line_art",
		"line_circuit",
		"linocut",
		"marker_outline",
		"mosaic",
		"naivector",
		"roundish_flat",
		"seamless",
		"segmented_colors",
		"sharp_contrast",
		"thin",
		"vector_photo",
		"vivid_shapes",
	},
	StyleIcon: {
		"broken_line",
		"colored_outline",
		"colored_shapes",
		"colored_shapes_gradient",
		"doodle_fill",
		"doodle_offset_fill",
		"offset_fill",
		"outline",
		"outline_gradient",
		"uneven_fill",
	},
	StyleLogoRaster: {
		"emblem_graffiti",
		"emblem_pop_art",
		"emblem_punk",
		"emblem_stamp",
		"emblem_vintage",
	},
}

// v2Substyles is the older recraftv2 substyle family keyed by base style.
var v2Substyles = map[string][]string{
	StyleAny: {},
	StyleRealisticImage: {
		"b_and_w",
		"enterprise",
		"hard_flash",
		"hdr",
		"motion_blur",
		"natural_light",
		"studio_portrait",
	},
	StyleDigitalIllustration: {
		"2d_art_poster",
		"2d_art_poster_2",
		"3d",
		"80s",
		"engraving_color",
		"glow",
		"grain",
		"hand_drawn",
		"hand_drawn_outline",
		"handmade_3d",
		"infantile_sketch",
		"kawaii",
		"pixel_art",
		"psychedelic",
		"seamless",
		"voxel",
		"watercolor",
	},
	StyleVectorIllustration: {
		"cartoon",
		"doodle_line_art",
		"engraving",
		"flat_2",
		"kawaii",
		"line_art",
		"line_circuit",
		"linocut",
		"seamless",
	},
	StyleIcon: {
		"broken_line",
		"colored_outline",
		"colored_shapes",
		"colored_shapes_gradient",
		"doodle_fill",
		"doodle_offset_fill",
		"offset_fill",
		"outline",
		"outline_gradient",
		"uneven_fill",
	},
	StyleLogoRaster: {},
}

var (
	styleSet map[string]struct{}
	sizeSet  map[string]struct{}

	// substyleSets is keyed model -> style -> substyle.
	substyleSets map[string]map[string]map[string]struct{}

	// substyleUnions is keyed model -> substyle, across all styles.
	substyleUnions map[string]map[string]struct{}
)

func init() {
	styleSet = toSet(All)
	sizeSet = toSet(imageSizes)

	families := map[string]map[string][]string{
		ModelV2: v2Substyles,
		ModelV3: v3Substyles,
	}
	substyleSets = make(map[string]map[string]map[string]struct{}, len(families))
	substyleUnions = make(map[string]map[string]struct{}, len(families))
	for model, family := range families {
		substyleSets[model] = make(map[string]map[string]struct{}, len(family))
		substyleUnions[model] = make(map[string]struct{})
		for style, subs := range family {
			substyleSets[model][style] = toSet(subs)
			for _, sub := range subs {
				substyleUnions[model][sub] = struct{}{}
			}
		}
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ValidStyle reports whether name is a known base style.
func ValidStyle(name string) bool {
	_, ok := styleSet[name]
	return ok
}

// ValidSize reports whether size is one of the allowed "WxH" values.
func ValidSize(size string) bool {
	_, ok := sizeSet[size]
	return ok
}

// Sizes returns a copy of the allowed image sizes in a stable order.
func Sizes() []string {
	out := make([]string, len(imageSizes))
	copy(out, imageSizes)
	return out
}

// Substyles returns the substyles valid for the given model and style, in a
// stable sorted order. Unknown model/style combinations yield an empty slice.
func Substyles(model, style string) []string {
	set := substyleSets[model][style]
	out := make([]string, 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	sort.Strings(out)
	return out
}

// AllSubstyles returns every substyle known for a model across all styles,
// sorted.
func AllSubstyles(model string) []string {
	union := substyleUnions[model]
	out := make([]string, 0, len(union))
	for sub := range union {
		out = append(out, sub)
	}
	sort.Strings(out)
	return out
}

// ValidSubstyle reports whether sub is valid for the given model and style.
func ValidSubstyle(model, style, sub string) bool {
	_, ok := substyleSets[model][style][sub]
	return ok
}
