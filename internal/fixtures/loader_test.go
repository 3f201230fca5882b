package fixtures_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/fixtures"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
}

func TestLoadBuiltinSeeds(t *testing.T) {
	loader := fixtures.NewLoader(fixtures.WithClock(fixedClock))
	seeds, err := loader.LoadDir(fixtures.Builtin(), ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}

	about, home := seeds[0], seeds[1]
	if about.Slug != "about" || home.Slug != "home" {
		t.Fatalf("expected seeds sorted by file name, got %s, %s", about.Slug, home.Slug)
	}
	if about.ID != identity.PageID("about") {
		t.Fatalf("expected deterministic page id")
	}
	if about.Status != pages.StatusPublished || !about.Settings.ShowBreadcrumbs {
		t.Fatalf("unexpected about page %+v", about)
	}

	last := about.Blocks[len(about.Blocks)-1]
	if last.Type != blocks.TypeText {
		t.Fatalf("expected markdown body as trailing text block, got %s", last.Type)
	}
	if body, _ := last.Content["en"]["body"].(string); body == "" {
		t.Fatalf("expected text body")
	}
	if !blocks.IsDense(about.Blocks) {
		t.Fatalf("seed blocks must have dense orders")
	}

	if len(home.Blocks) != 4 {
		t.Fatalf("expected 4 home blocks, got %d", len(home.Blocks))
	}
	if home.Blocks[2].Enabled {
		t.Fatalf("countdown block should be disabled")
	}
	if home.Blocks[1].Settings["columns"] != 4 {
		t.Fatalf("expected columns override, got %v", home.Blocks[1].Settings["columns"])
	}
	if home.Blocks[0].ID != identity.BlockID("home", 0, "hero") {
		t.Fatalf("expected deterministic block id")
	}
	if !home.UpdatedAt.Equal(fixedClock()) {
		t.Fatalf("expected clock timestamp, got %v", home.UpdatedAt)
	}
}

func TestParseRejectsInvalidSeeds(t *testing.T) {
	loader := fixtures.NewLoader()

	if _, err := loader.Parse(testsupport.LoadFixture(t, "invalid_block.md")); !errors.Is(err, blocks.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
	if _, err := loader.Parse(testsupport.LoadFixture(t, "unknown_type.md")); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, err := loader.Parse([]byte("---\ntitle:\n  en: x\n---\n")); !errors.Is(err, fixtures.ErrSlugMissing) {
		t.Fatalf("expected ErrSlugMissing, got %v", err)
	}
	if _, err := loader.Parse([]byte("---\nslug: x\ntitle:\n  es: x\n---\n")); !errors.Is(err, pages.ErrBaseTitleRequired) {
		t.Fatalf("expected ErrBaseTitleRequired, got %v", err)
	}
}

func TestLoadDirRejectsDuplicateSlugs(t *testing.T) {
	page := []byte("---\nslug: promo\ntitle:\n  en: Promo\n---\n")
	fsys := fstest.MapFS{
		"pages/a.md": &fstest.MapFile{Data: page},
		"pages/b.md": &fstest.MapFile{Data: page},
	}
	if _, err := fixtures.NewLoader().LoadDir(fsys, "pages"); !errors.Is(err, fixtures.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := pages.NewMemoryStore()
	loader := fixtures.NewLoader(fixtures.WithClock(fixedClock))
	seeds, err := loader.LoadDir(os.DirFS("seed"), ".")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	created, err := loader.Apply(ctx, store, seeds)
	if err != nil || created != 2 {
		t.Fatalf("first apply: created %d err %v", created, err)
	}
	created, err = loader.Apply(ctx, store, seeds)
	if err != nil || created != 0 {
		t.Fatalf("second apply should skip existing pages: created %d err %v", created, err)
	}

	svc := pages.NewService(store)
	published := pages.StatusPublished
	home, err := svc.GetBySlug(ctx, "home", &published)
	if err != nil || home == nil {
		t.Fatalf("expected published home page, got %v %v", home, err)
	}
}
