package pages_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func newBunStore(t *testing.T) *pages.BunStore {
	t.Helper()
	store := pages.NewBunStore(testsupport.NewSQLiteDB(t), pages.WithPollInterval(20*time.Millisecond))
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func samplePage(slug string, updated time.Time) *pages.Page {
	return &pages.Page{
		ID:     uuid.NewString(),
		Slug:   slug,
		Title:  pages.Localized{"en": "Sample", "es": "Ejemplo"},
		Status: pages.StatusDraft,
		SEO:    pages.SEO{Keywords: []string{"a", "b"}},
		Blocks: []blocks.Block{{
			ID:      "b1",
			Type:    blocks.TypeText,
			Enabled: true,
			Content: blocks.Content{"en": {"body": "Hello"}},
		}},
		Settings:  pages.DefaultSettings(),
		CreatedAt: updated,
		UpdatedAt: updated,
		CreatedBy: "editor-1",
	}
}

func TestBunStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	page := samplePage("about", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	if err := store.Create(ctx, page); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.Get(ctx, page.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slug != "about" || got.Title["es"] != "Ejemplo" {
		t.Fatalf("unexpected page %+v", got)
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Content["en"]["body"] != "Hello" {
		t.Fatalf("unexpected blocks %+v", got.Blocks)
	}
	if !got.Settings.ShowHeader || len(got.SEO.Keywords) != 2 {
		t.Fatalf("unexpected nested fields %+v %+v", got.Settings, got.SEO)
	}

	if _, err := store.Get(ctx, uuid.NewString()); !errors.Is(err, pages.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if _, err := store.Get(ctx, "not-a-uuid"); !errors.Is(err, pages.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound for invalid id, got %v", err)
	}
}

func TestBunStoreUniqueSlug(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Create(ctx, samplePage("promo", now)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, samplePage("promo", now)); !errors.Is(err, pages.ErrDocumentConflict) {
		t.Fatalf("expected ErrDocumentConflict, got %v", err)
	}
}

func TestBunStoreFindUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	about := samplePage("about", base)
	pricing := samplePage("pricing", base.Add(time.Hour))
	for _, page := range []*pages.Page{about, pricing} {
		if err := store.Create(ctx, page); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	published := pages.StatusPublished
	matches, err := store.FindBySlug(ctx, "about", &published, 1)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no published matches, got %d", len(matches))
	}

	err = store.Update(ctx, about.ID, map[string]any{
		pages.FieldStatus:    published,
		pages.FieldUpdatedAt: base.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	matches, err = store.FindBySlug(ctx, "about", &published, 1)
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected published match, got %v %v", matches, err)
	}
	if matches[0].Title["en"] != "Sample" {
		t.Fatalf("update must not touch other columns, got %+v", matches[0].Title)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != about.ID {
		t.Fatalf("expected updated page first, got %v", pageIDs(list))
	}

	if err := store.Update(ctx, pricing.ID, map[string]any{pages.FieldSlug: "about"}); !errors.Is(err, pages.ErrDocumentConflict) {
		t.Fatalf("expected slug conflict on update, got %v", err)
	}

	if err := store.Delete(ctx, about.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, about.ID); !errors.Is(err, pages.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestBunStoreWatchPolls(t *testing.T) {
	ctx := context.Background()
	store := newBunStore(t)
	page := samplePage("about", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	if err := store.Create(ctx, page); err != nil {
		t.Fatalf("create: %v", err)
	}

	sub, err := store.Watch(ctx, page.ID)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer sub.Close()

	if first := receive(t, sub); first.Page == nil {
		t.Fatalf("expected initial snapshot, got %+v", first)
	}
	if err := store.Update(ctx, page.ID, map[string]any{
		pages.FieldTitle:     pages.Localized{"en": "Changed"},
		pages.FieldUpdatedAt: page.UpdatedAt.Add(time.Minute),
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if next := receive(t, sub); next.Page == nil || next.Page.Title["en"] != "Changed" {
		t.Fatalf("expected changed snapshot, got %+v", next)
	}
}

func TestServiceOverBunStore(t *testing.T) {
	svc := pages.NewService(newBunStore(t))
	ctx := identity.WithActor(context.Background(), "editor-1")

	id, err := svc.Create(ctx, pages.PageDraft{Slug: "promo", Title: pages.Localized{"en": "Promo"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, pages.PageDraft{Slug: "promo", Title: pages.Localized{"en": "Promo"}}); !errors.Is(err, pages.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
	copyID, err := svc.Duplicate(ctx, id)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	copied, err := svc.GetByID(ctx, copyID)
	if err != nil || copied == nil || copied.Slug != "promo-copy" {
		t.Fatalf("unexpected copy %+v %v", copied, err)
	}
}
