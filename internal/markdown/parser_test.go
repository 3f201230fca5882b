package markdown_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

func TestParserRendersHeadingsWithIDs(t *testing.T) {
	p := markdown.NewParser(markdown.Options{})
	out, err := p.RenderString("# Our Story\n\nWe build *sites*.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<h1 id="our-story">Our Story</h1>`) {
		t.Fatalf("expected heading with id, got %q", out)
	}
	if !strings.Contains(out, "<em>sites</em>") {
		t.Fatalf("expected emphasis, got %q", out)
	}
}

func TestParserDefaultExtensionsIncludeTables(t *testing.T) {
	p := markdown.NewParser(markdown.Options{})
	out, err := p.RenderString("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected gfm table, got %q", out)
	}
}

func TestParserOmitsRawHTMLUnlessUnsafe(t *testing.T) {
	source := "<script>alert(1)</script>\n\ntext"

	safe, err := markdown.NewParser(markdown.Options{}).RenderString(source)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(safe, "<script>") {
		t.Fatalf("expected raw html to be omitted, got %q", safe)
	}

	unsafe, err := markdown.NewParser(markdown.Options{Unsafe: true}).RenderString(source)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(unsafe, "<script>") {
		t.Fatalf("expected raw html with Unsafe, got %q", unsafe)
	}
}

func TestKnownExtension(t *testing.T) {
	if !markdown.KnownExtension(" Footnote ") {
		t.Fatalf("expected footnote to be known")
	}
	if markdown.KnownExtension("mermaid") {
		t.Fatalf("expected mermaid to be unknown")
	}
}
