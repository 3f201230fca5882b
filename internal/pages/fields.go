package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

// applyFields merges Store.Update fields into page.
func applyFields(page *Page, fields map[string]any) error {
	for key, value := range fields {
		var ok bool
		switch key {
		case FieldSlug:
			page.Slug, ok = value.(string)
		case FieldTitle:
			var title Localized
			title, ok = value.(Localized)
			page.Title = title.Clone()
		case FieldStatus:
			page.Status, ok = value.(Status)
		case FieldSEO:
			var seo SEO
			seo, ok = value.(SEO)
			page.SEO = seo.Clone()
		case FieldBlocks:
			var list []blocks.Block
			list, ok = value.([]blocks.Block)
			page.Blocks = blocks.CloneBlocks(list)
		case FieldSettings:
			page.Settings, ok = value.(Settings)
		case FieldUpdatedAt:
			page.UpdatedAt, ok = value.(time.Time)
		case FieldLastEditedBy:
			page.LastEditedBy, ok = value.(string)
		default:
			return fmt.Errorf("pages: unknown field %q", key)
		}
		if !ok {
			return fmt.Errorf("pages: field %q has unexpected type %T", key, value)
		}
	}
	return nil
}

func sortByUpdatedDesc(list []*Page) {
	sortPages(list, func(a, b *Page) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
