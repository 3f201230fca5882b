package fixtures

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

//go:embed seed/*.md
var seedFS embed.FS

var (
	ErrSlugMissing = errors.New("fixtures: slug is required")
	ErrDuplicate   = errors.New("fixtures: slug defined more than once")
)

// yamlFormat parses front matter with yaml.v3 so nested maps decode with
// string keys.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

type blockFrontMatter struct {
	Type     string                    `yaml:"type"`
	Enabled  *bool                     `yaml:"enabled"`
	Content  map[string]map[string]any `yaml:"content"`
	Settings map[string]any            `yaml:"settings"`
}

type pageFrontMatter struct {
	Slug      string             `yaml:"slug"`
	Status    string             `yaml:"status"`
	Title     map[string]string  `yaml:"title"`
	SEO       pages.SEO          `yaml:"seo"`
	Settings  *pages.Settings    `yaml:"settings"`
	Blocks    []blockFrontMatter `yaml:"blocks"`
	UpdatedAt time.Time          `yaml:"updated"`
}

// Loader reads seed pages from Markdown files with YAML front matter. The
// Markdown body, when present, becomes a trailing text block in the base
// language.
type Loader struct {
	registry *blocks.Registry
	logger   interfaces.Logger
	now      func() time.Time
}

type Option func(*Loader)

func WithRegistry(registry *blocks.Registry) Option {
	return func(l *Loader) {
		if registry != nil {
			l.registry = registry
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		registry: blocks.DefaultRegistry(),
		logger:   logging.NoOp(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Builtin returns the embedded seed file system.
func Builtin() fs.FS {
	sub, err := fs.Sub(seedFS, "seed")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadDir parses every *.md file under dir in fsys, sorted by file name.
func (l *Loader) LoadDir(fsys fs.FS, dir string) ([]*pages.Page, error) {
	if dir == "" {
		dir = "."
	}
	matches, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("fixtures: list %s: %w", dir, err)
	}
	slices.Sort(matches)

	out := make([]*pages.Page, 0, len(matches))
	seen := map[string]string{}
	for _, name := range matches {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("fixtures: read %s: %w", name, err)
		}
		page, err := l.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("fixtures: %s: %w", name, err)
		}
		if prev, ok := seen[page.Slug]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicate, page.Slug, prev, name)
		}
		seen[page.Slug] = name
		out = append(out, page)
	}
	return out, nil
}

// Parse builds one page from a Markdown source. Ids are derived from the
// slug so reloading the same file yields the same ids.
func (l *Loader) Parse(source []byte) (*pages.Page, error) {
	var meta pageFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	slug, err := pages.NormalizeSlug(meta.Slug)
	if err != nil {
		if errors.Is(err, pages.ErrSlugRequired) {
			return nil, ErrSlugMissing
		}
		return nil, err
	}
	if strings.TrimSpace(meta.Title[blocks.BaseLanguage]) == "" {
		return nil, pages.ErrBaseTitleRequired
	}
	status := pages.Status(strings.ToLower(strings.TrimSpace(meta.Status)))
	if status == "" {
		status = pages.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", pages.ErrStatusInvalid, meta.Status)
	}

	list := make([]blocks.Block, 0, len(meta.Blocks)+1)
	for i, fm := range meta.Blocks {
		block, err := l.block(slug, i, fm)
		if err != nil {
			return nil, err
		}
		list = append(list, block)
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		block, err := l.block(slug, len(list), blockFrontMatter{
			Type:    string(blocks.TypeText),
			Content: map[string]map[string]any{blocks.BaseLanguage: {"body": text}},
		})
		if err != nil {
			return nil, err
		}
		list = append(list, block)
	}

	settings := pages.DefaultSettings()
	if meta.Settings != nil {
		settings = *meta.Settings
	}
	updated := meta.UpdatedAt.UTC()
	if meta.UpdatedAt.IsZero() {
		updated = l.now()
	}
	return &pages.Page{
		ID:           identity.PageID(slug),
		Slug:         slug,
		Title:        pages.Localized(meta.Title),
		Status:       status,
		SEO:          meta.SEO,
		Blocks:       list,
		Settings:     settings,
		CreatedAt:    updated,
		UpdatedAt:    updated,
		CreatedBy:    "fixtures",
		LastEditedBy: "fixtures",
	}, nil
}

func (l *Loader) block(slug string, position int, fm blockFrontMatter) (blocks.Block, error) {
	t := blocks.Type(strings.TrimSpace(fm.Type))
	block, err := l.registry.NewBlock(t)
	if err != nil {
		return blocks.Block{}, fmt.Errorf("block %d: %w", position, err)
	}
	block.ID = identity.BlockID(slug, position, string(t))
	block.Order = position
	if fm.Enabled != nil {
		block.Enabled = *fm.Enabled
	}
	if len(fm.Content) > 0 {
		block.Content = blocks.Content(fm.Content)
	}
	if len(fm.Settings) > 0 {
		block.Settings = blocks.Settings(fm.Settings)
	}
	if err := l.registry.ValidateBlock(block); err != nil {
		return blocks.Block{}, fmt.Errorf("block %d (%s): %w", position, t, err)
	}
	return block, nil
}

// Apply writes seeds to store, skipping pages whose id already exists. It
// returns the number of pages created.
func (l *Loader) Apply(ctx context.Context, store pages.Store, seeds []*pages.Page) (int, error) {
	created := 0
	for _, page := range seeds {
		logger := logging.WithPage(l.logger, page.ID, page.Slug)
		if _, err := store.Get(ctx, page.ID); err == nil {
			logger.Debug("fixtures.page.exists")
			continue
		} else if !errors.Is(err, pages.ErrDocumentNotFound) {
			return created, fmt.Errorf("fixtures: lookup %s: %w", page.Slug, err)
		}
		if err := store.Create(ctx, page); err != nil {
			return created, fmt.Errorf("fixtures: create %s: %w", page.Slug, err)
		}
		logger.Info("fixtures.page.created", "blocks", len(page.Blocks))
		created++
	}
	return created, nil
}
