package blocks_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

func TestDefaultRegistryCoversClosedTypeSet(t *testing.T) {
	registry := blocks.DefaultRegistry()
	want := []blocks.Type{
		blocks.TypeHero, blocks.TypeFeatures, blocks.TypeTestimonials, blocks.TypeCTA,
		blocks.TypeText, blocks.TypeImage, blocks.TypeVideo, blocks.TypeStats,
		blocks.TypeTeam, blocks.TypeLogos, blocks.TypeFAQ, blocks.TypeForm,
		blocks.TypeServices, blocks.TypePricing, blocks.TypeSpacer,
		blocks.TypeCountdownTimer, blocks.TypePricingComparison,
		blocks.TypeGuarantee, blocks.TypeVideoTestimonial,
	}
	if got := len(registry.Types()); got != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), got)
	}
	for _, typ := range want {
		entry, ok := registry.Get(typ)
		if !ok {
			t.Fatalf("expected %s to be registered", typ)
		}
		if entry.Label == "" || entry.Icon == "" {
			t.Fatalf("expected label and icon for %s", typ)
		}
		for _, key := range []string{
			blocks.SettingPadding, blocks.SettingMargin, blocks.SettingAlignment,
			blocks.SettingBackground, blocks.SettingAnimation,
		} {
			if _, ok := entry.DefaultSettings[key]; !ok {
				t.Fatalf("expected %s default settings to include %s", typ, key)
			}
		}
	}
}

func TestDefaultContentMatchesSchemas(t *testing.T) {
	registry := blocks.DefaultRegistry()
	for _, typ := range registry.Types() {
		entry, _ := registry.Get(typ)
		if err := registry.ValidateContent(typ, entry.DefaultContent[blocks.BaseLanguage]); err != nil {
			t.Fatalf("default content for %s invalid: %v", typ, err)
		}
		if _, err := registry.Decode(typ, entry.DefaultContent[blocks.BaseLanguage]); err != nil {
			t.Fatalf("decode default content for %s: %v", typ, err)
		}
	}
}

func TestListByCategoryIsDeterministic(t *testing.T) {
	registry := blocks.DefaultRegistry()
	first := registry.ListByCategory()
	second := registry.ListByCategory()
	if len(first) != len(second) {
		t.Fatalf("expected %d categories on second call, got %d", len(first), len(second))
	}
	for category, entries := range first {
		again := second[category]
		if len(again) != len(entries) {
			t.Fatalf("category %s: expected %d entries, got %d", category, len(entries), len(again))
		}
		for i, entry := range entries {
			if again[i].Type != entry.Type || again[i].Label != entry.Label {
				t.Fatalf("category %s position %d: expected %s (%s), got %s (%s)", category, i, entry.Type, entry.Label, again[i].Type, again[i].Label)
			}
			if !reflect.DeepEqual(again[i].DefaultSettings, entry.DefaultSettings) {
				t.Fatalf("category %s position %d: settings differ: %v vs %v", category, i, entry.DefaultSettings, again[i].DefaultSettings)
			}
		}
	}

	layout := first[blocks.CategoryLayout]
	if len(layout) != 2 || layout[0].Type != blocks.TypeHero || layout[1].Type != blocks.TypeSpacer {
		t.Fatalf("unexpected layout entries: %+v", layout)
	}

	palette := registry.Palette()
	if len(palette) != len(blocks.Categories()) {
		t.Fatalf("expected every category in palette, got %d groups", len(palette))
	}
	for i, group := range palette {
		if group.Category != blocks.Categories()[i] {
			t.Fatalf("palette group %d: expected %s got %s", i, blocks.Categories()[i], group.Category)
		}
	}
}

func TestRegistryGetReturnsCopies(t *testing.T) {
	registry := blocks.DefaultRegistry()
	entry, _ := registry.Get(blocks.TypeFeatures)
	entry.DefaultSettings["columns"] = 99
	entry.DefaultContent[blocks.BaseLanguage]["title"] = "mutated"

	again, _ := registry.Get(blocks.TypeFeatures)
	if again.DefaultSettings["columns"] != 3 {
		t.Fatalf("registry settings mutated: %v", again.DefaultSettings["columns"])
	}
	if again.DefaultContent[blocks.BaseLanguage]["title"] == "mutated" {
		t.Fatalf("registry content mutated")
	}
}

func TestNewRegistryRejectsInvalidEntries(t *testing.T) {
	base := blocks.Content{blocks.BaseLanguage: {}}
	cases := []struct {
		name    string
		entries []blocks.Entry
		want    error
	}{
		{
			name:    "missing type",
			entries: []blocks.Entry{{Category: blocks.CategoryContent, DefaultContent: base}},
			want:    blocks.ErrTypeRequired,
		},
		{
			name: "duplicate type",
			entries: []blocks.Entry{
				{Type: "promo", Category: blocks.CategoryContent, DefaultContent: base},
				{Type: "promo", Category: blocks.CategoryContent, DefaultContent: base},
			},
			want: blocks.ErrTypeDuplicate,
		},
		{
			name:    "unknown category",
			entries: []blocks.Entry{{Type: "promo", Category: "Sidebar", DefaultContent: base}},
			want:    blocks.ErrCategoryUnknown,
		},
		{
			name:    "missing base content",
			entries: []blocks.Entry{{Type: "promo", Category: blocks.CategoryContent, DefaultContent: blocks.Content{"fr": {}}}},
			want:    blocks.ErrBaseContentMissing,
		},
		{
			name: "bad schema",
			entries: []blocks.Entry{{
				Type:           "promo",
				Category:       blocks.CategoryContent,
				DefaultContent: base,
				Schema:         map[string]any{"type": 42},
			}},
			want: blocks.ErrSchemaInvalid,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := blocks.NewRegistry(tc.entries...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewBlockSeedsDefaults(t *testing.T) {
	registry := blocks.DefaultRegistry()
	block, err := registry.NewBlock(blocks.TypeCTA)
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	if block.ID == "" || !block.Enabled || block.Type != blocks.TypeCTA {
		t.Fatalf("unexpected block: %+v", block)
	}
	if block.Content[blocks.BaseLanguage]["title"] != "Ready to start?" {
		t.Fatalf("expected default title, got %v", block.Content[blocks.BaseLanguage]["title"])
	}

	other, _ := registry.NewBlock(blocks.TypeCTA)
	if other.ID == block.ID {
		t.Fatalf("expected unique block ids")
	}

	if _, err := registry.NewBlock("carousel"); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestEffectiveSettingsOverridePerKey(t *testing.T) {
	registry := blocks.MustNewRegistry(blocks.Entry{
		Type:            "grid",
		Category:        blocks.CategoryContent,
		DefaultContent:  blocks.Content{blocks.BaseLanguage: {}},
		DefaultSettings: blocks.Settings{"columns": 3, "cardStyle": "glass"},
	})
	got := registry.EffectiveSettings(blocks.Block{Type: "grid", Settings: blocks.Settings{"columns": 4}})
	want := blocks.Settings{"columns": 4, "cardStyle": "glass"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMergeSettingsIsShallow(t *testing.T) {
	defaults := blocks.Settings{"border": map[string]any{"width": 1, "color": "red"}}
	overrides := blocks.Settings{"border": map[string]any{"width": 2}}
	got := blocks.MergeSettings(defaults, overrides)
	border := got["border"].(map[string]any)
	if _, ok := border["color"]; ok {
		t.Fatalf("expected nested map to be replaced, got %v", border)
	}
	border["width"] = 9
	if overrides["border"].(map[string]any)["width"] != 2 {
		t.Fatalf("merge result aliases overrides")
	}
}

func TestValidateContentReportsIssues(t *testing.T) {
	registry := blocks.DefaultRegistry()
	err := registry.ValidateContent(blocks.TypeFeatures, map[string]any{
		"title":    "Why us",
		"features": []any{map[string]any{"description": "no title"}},
	})
	if !errors.Is(err, blocks.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
	var contentErr *blocks.ContentError
	if !errors.As(err, &contentErr) || len(contentErr.Issues) == 0 {
		t.Fatalf("expected content issues, got %v", err)
	}

	if err := registry.ValidateContent("carousel", map[string]any{}); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestValidateBlockChecksEveryLanguage(t *testing.T) {
	registry := blocks.DefaultRegistry()
	block := blocks.Block{
		ID:   "b1",
		Type: blocks.TypeCTA,
		Content: blocks.Content{
			"en": {"title": "Start"},
			"es": {"description": "sin titulo"},
		},
	}
	if err := registry.ValidateBlock(block); !errors.Is(err, blocks.ErrContentInvalid) {
		t.Fatalf("expected es slice to fail, got %v", err)
	}
	delete(block.Content, "en")
	if err := registry.ValidateBlock(block); !errors.Is(err, blocks.ErrBaseContentMissing) {
		t.Fatalf("expected ErrBaseContentMissing, got %v", err)
	}
}

func TestDecodeTypedVariant(t *testing.T) {
	registry := blocks.DefaultRegistry()
	value, err := registry.Decode(blocks.TypePricing, map[string]any{
		"plans": []any{map[string]any{"name": "Pro", "price": "$9", "highlighted": true}},
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pricing, ok := value.(blocks.PricingContent)
	if !ok {
		t.Fatalf("expected PricingContent, got %T", value)
	}
	if len(pricing.Plans) != 1 || !pricing.Plans[0].Highlighted {
		t.Fatalf("unexpected plans: %+v", pricing.Plans)
	}
}
