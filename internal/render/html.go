package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLOptions configures the built-in HTML renderers.
type HTMLOptions struct {
	// Sanitize passes Markdown output through Policy. When false, raw HTML in
	// Markdown is dropped by the parser instead.
	Sanitize           bool
	Policy             *bluemonday.Policy
	MarkdownExtensions []string
}

// DefaultHTMLOptions sanitizes with the rich text policy.
func DefaultHTMLOptions() HTMLOptions {
	return HTMLOptions{Sanitize: true, Policy: RichTextPolicy()}
}

// RichTextPolicy is the bluemonday policy applied to Markdown output.
func RichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// view is the data handed to every block template.
type view struct {
	ID        string
	Type      blocks.Type
	Lang      string
	Class     string
	Animation string
	Settings  blocks.Settings
	Content   any
	Body      template.HTML
}

type htmlRenderer struct {
	tmpl     *template.Template
	name     string
	registry *blocks.Registry
	markdown *markdown.Parser
	policy   *bluemonday.Policy
}

// NewHTMLRenderers parses the embedded templates and returns a renderer for
// each registered type that has one.
func NewHTMLRenderers(registry *blocks.Registry, opts HTMLOptions) (map[blocks.Type]Renderer, error) {
	tmpl, err := template.New("blocks").Funcs(template.FuncMap{
		"setting": settingString,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}

	policy := opts.Policy
	if opts.Sanitize && policy == nil {
		policy = RichTextPolicy()
	}
	if !opts.Sanitize {
		policy = nil
	}
	parser := markdown.NewParser(markdown.Options{
		Extensions: opts.MarkdownExtensions,
		Unsafe:     policy != nil,
	})

	out := map[blocks.Type]Renderer{}
	for _, t := range registry.Types() {
		name := string(t)
		if tmpl.Lookup(name) == nil {
			continue
		}
		out[t] = &htmlRenderer{
			tmpl:     tmpl,
			name:     name,
			registry: registry,
			markdown: parser,
			policy:   policy,
		}
	}
	return out, nil
}

func (r *htmlRenderer) Render(_ context.Context, in Input) (Output, error) {
	content, err := r.registry.Decode(in.Type, in.Content)
	if err != nil {
		return Output{}, err
	}
	data := view{
		ID:        in.BlockID,
		Type:      in.Type,
		Lang:      in.Lang,
		Class:     blockClass(in.Type, in.Settings),
		Animation: settingString(in.Settings, blocks.SettingAnimation),
		Settings:  in.Settings,
		Content:   content,
	}
	if text, ok := content.(blocks.TextContent); ok {
		body, err := r.markdownBody(text.Body)
		if err != nil {
			return Output{}, err
		}
		data.Body = body
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, r.name, data); err != nil {
		return Output{}, fmt.Errorf("render %s: %w", r.name, err)
	}
	return Output{
		BlockID: in.BlockID,
		Type:    in.Type,
		HTML:    template.HTML(strings.TrimSpace(buf.String())),
	}, nil
}

func (r *htmlRenderer) markdownBody(source string) (template.HTML, error) {
	rendered, err := r.markdown.Render([]byte(source))
	if err != nil {
		return "", err
	}
	if r.policy != nil {
		rendered = r.policy.SanitizeBytes(rendered)
	}
	return template.HTML(rendered), nil
}

func blockClass(t blocks.Type, settings blocks.Settings) string {
	classes := []string{"pb-block", "pb-" + string(t)}
	for _, item := range []struct{ prefix, key string }{
		{"pb-pad-", blocks.SettingPadding},
		{"pb-margin-", blocks.SettingMargin},
		{"pb-align-", blocks.SettingAlignment},
		{"pb-bg-", blocks.SettingBackground},
	} {
		if value := settingString(settings, item.key); value != "" {
			classes = append(classes, item.prefix+value)
		}
	}
	return strings.Join(classes, " ")
}

func settingString(settings blocks.Settings, key string) string {
	value, ok := settings[key]
	if !ok || value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
