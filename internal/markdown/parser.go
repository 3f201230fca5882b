package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the goldmark engine used for text blocks.
type Options struct {
	// Extensions lists goldmark extensions by name. Empty selects gfm,
	// linkify and tasklist. Unknown names are ignored.
	Extensions []string
	HardWraps  bool
	// Unsafe lets raw HTML in the source through. Output is expected to be
	// sanitized downstream when this is set.
	Unsafe bool
}

// Parser renders Markdown into HTML fragments. It is stateless after
// construction and safe for concurrent use.
type Parser struct {
	engine goldmark.Markdown
}

func NewParser(opts Options) *Parser {
	return &Parser{engine: newEngine(opts)}
}

// Render converts Markdown source into HTML.
func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderString is Render for string input.
func (p *Parser) RenderString(source string) (string, error) {
	out, err := p.Render([]byte(source))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func newEngine(opts Options) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}
	var out []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[key]; dup {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		out = append(out, ext)
		seen[key] = struct{}{}
	}
	return out
}
