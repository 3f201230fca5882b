package render

import (
	"context"
	"html"
	"html/template"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
)

// SEO is page search metadata resolved for one language.
type SEO struct {
	Title       string
	Description string
	Keywords    []string
	OGImage     string
	NoIndex     bool
}

// Document is everything a host needs to emit one page in one language.
type Document struct {
	ID       string
	Slug     string
	Lang     string
	Title    string
	SEO      SEO
	CSS      template.CSS
	Settings pages.Settings
	Blocks   []Output
}

var cssPolicy = bluemonday.StrictPolicy()

// RenderDocument renders page for lang. Title and SEO fall back to the base
// language; an empty SEO title falls back to the page title.
func (d *Dispatcher) RenderDocument(ctx context.Context, page *pages.Page, lang string) Document {
	if page == nil {
		return Document{Lang: lang, Blocks: []Output{}}
	}
	title := page.Title.Resolve(lang)
	seo := SEO{
		Title:       page.SEO.Title.Resolve(lang),
		Description: page.SEO.Description.Resolve(lang),
		Keywords:    slices.Clone(page.SEO.Keywords),
		OGImage:     page.SEO.OGImage,
		NoIndex:     page.SEO.NoIndex,
	}
	if seo.Title == "" {
		seo.Title = title
	}

	logging.WithPage(d.logger, page.ID, page.Slug).Debug("render.document", "lang", lang, "blocks", len(page.Blocks))
	return Document{
		ID:       page.ID,
		Slug:     page.Slug,
		Lang:     lang,
		Title:    title,
		SEO:      seo,
		CSS:      SanitizeCSS(page.Settings.CustomCSS),
		Settings: page.Settings,
		Blocks:   d.RenderPage(ctx, page.Blocks, lang),
	}
}

// SanitizeCSS strips markup from custom page CSS so the result can be placed
// inside a style element.
func SanitizeCSS(css string) template.CSS {
	cleaned := html.UnescapeString(cssPolicy.Sanitize(css))
	cleaned = strings.ReplaceAll(cleaned, "<", "")
	return template.CSS(strings.TrimSpace(cleaned))
}
