package blocks

import "maps"

// BaseLanguage is the language every block and page title must carry. It is
// the fallback when a requested translation is missing.
const BaseLanguage = "en"

// Type identifies a registered block kind.
type Type string

const (
	TypeHero              Type = "hero"
	TypeFeatures          Type = "features"
	TypeTestimonials      Type = "testimonials"
	TypeCTA               Type = "cta"
	TypeText              Type = "text"
	TypeImage             Type = "image"
	TypeVideo             Type = "video"
	TypeStats             Type = "stats"
	TypeTeam              Type = "team"
	TypeLogos             Type = "logos"
	TypeFAQ               Type = "faq"
	TypeForm              Type = "form"
	TypeServices          Type = "services"
	TypePricing           Type = "pricing"
	TypeSpacer            Type = "spacer"
	TypeCountdownTimer    Type = "countdownTimer"
	TypePricingComparison Type = "pricingComparison"
	TypeGuarantee         Type = "guarantee"
	TypeVideoTestimonial  Type = "videoTestimonial"
)

func (t Type) String() string { return string(t) }

// Category groups block types in the authoring palette.
type Category string

const (
	CategoryLayout   Category = "Layout"
	CategoryContent  Category = "Content"
	CategoryMedia    Category = "Media"
	CategoryForms    Category = "Forms"
	CategoryBusiness Category = "Business"
	CategoryUtility  Category = "Utility"
)

var categoryOrder = []Category{
	CategoryLayout,
	CategoryContent,
	CategoryMedia,
	CategoryForms,
	CategoryBusiness,
	CategoryUtility,
}

// Categories returns every category in palette order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

func validCategory(c Category) bool {
	for _, candidate := range categoryOrder {
		if candidate == c {
			return true
		}
	}
	return false
}

// Content maps a language code to the payload for that language. The payload
// shape depends on the block type; see the typed variants in content.go.
type Content map[string]map[string]any

// Clone deep copies the content map.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	out := make(Content, len(c))
	for lang, payload := range c {
		out[lang] = CloneMap(payload)
	}
	return out
}

// Languages lists the languages present in c, base language first.
func (c Content) Languages() []string {
	out := make([]string, 0, len(c))
	if _, ok := c[BaseLanguage]; ok {
		out = append(out, BaseLanguage)
	}
	for lang := range c {
		if lang != BaseLanguage {
			out = append(out, lang)
		}
	}
	return out
}

// Settings is the presentation bag attached to a block.
type Settings map[string]any

// Clone deep copies the settings.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	return Settings(CloneMap(s))
}

// Block is one ordered, independently toggleable unit of page content.
type Block struct {
	ID       string   `json:"id" firestore:"id"`
	Type     Type     `json:"type" firestore:"type"`
	Order    int      `json:"order" firestore:"order"`
	Enabled  bool     `json:"enabled" firestore:"enabled"`
	Content  Content  `json:"content" firestore:"content"`
	Settings Settings `json:"settings,omitempty" firestore:"settings,omitempty"`
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	b.Content = b.Content.Clone()
	b.Settings = b.Settings.Clone()
	return b
}

// CloneBlocks deep copies a block slice.
func CloneBlocks(in []Block) []Block {
	if in == nil {
		return nil
	}
	out := make([]Block, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}

// CloneMap deep copies nested maps and slices found in JSON-like payloads.
func CloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return CloneMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for i, item := range typed {
			out[i] = CloneMap(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	case map[string]string:
		return maps.Clone(typed)
	default:
		return v
	}
}
