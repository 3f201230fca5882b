package di_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

func quietLogs() di.Option {
	return di.WithLoggerProvider(console.NewProvider(console.Options{Writer: io.Discard}))
}

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	c, err := di.NewContainer(context.Background(), cfg, append([]di.Option{quietLogs()}, opts...)...)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "dynamo"

	if _, err := di.NewContainer(context.Background(), cfg); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestContainerDefaultsToMemoryStore(t *testing.T) {
	c := newContainer(t, runtimeconfig.DefaultConfig())

	if _, ok := c.PageStore().(*pages.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", c.PageStore())
	}
	if c.PageService() == nil || c.Dispatcher() == nil || c.Translator() == nil {
		t.Fatalf("expected services to be wired")
	}
	if c.Registry() != blocks.DefaultRegistry() {
		t.Fatalf("expected default registry")
	}
}

func TestContainerSeedsBuiltinFixtures(t *testing.T) {
	c := newContainer(t, runtimeconfig.DefaultConfig())
	ctx := context.Background()

	created, err := c.SeedFixtures(ctx, nil, ".")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 seeded pages, got %d", created)
	}
	again, err := c.SeedFixtures(ctx, nil, ".")
	if err != nil || again != 0 {
		t.Fatalf("expected reseed to be a no-op, got %d %v", again, err)
	}

	published := pages.StatusPublished
	home, err := c.PageService().GetBySlug(ctx, "home", &published)
	if err != nil || home == nil {
		t.Fatalf("expected published home page, got %v %v", home, err)
	}
	doc := c.Dispatcher().RenderDocument(ctx, home, "en")
	if len(doc.Blocks) == 0 {
		t.Fatalf("expected rendered blocks for home")
	}
}

func TestContainerOpensBunStoreFromConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	cfg.Storage.Dialect = "sqlite"
	cfg.Storage.DSN = "file:di_container_bun?mode=memory&cache=shared"

	c := newContainer(t, cfg)
	if _, ok := c.PageStore().(*pages.BunStore); !ok {
		t.Fatalf("expected bun store, got %T", c.PageStore())
	}

	ctx := identity.WithActor(context.Background(), "editor-1")
	id, err := c.PageService().Create(ctx, pages.PageDraft{
		Slug:  "contact",
		Title: pages.Localized{"en": "Contact"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	page, err := c.PageService().GetByID(ctx, id)
	if err != nil || page == nil || page.Slug != "contact" {
		t.Fatalf("expected stored page, got %+v %v", page, err)
	}
}

func TestContainerReusesInjectedBunDB(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageBun
	db := testsupport.NewSQLiteDB(t)

	c := newContainer(t, cfg, di.WithBunDB(db))
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("injected database must stay open: %v", err)
	}
}

func TestContainerPrefersInjectedRenderer(t *testing.T) {
	c := newContainer(t, runtimeconfig.DefaultConfig(), di.WithRenderer(blocks.TypeSpacer,
		render.RendererFunc(func(_ context.Context, in render.Input) (render.Output, error) {
			return render.Output{BlockID: in.BlockID, Type: blocks.TypeSpacer, HTML: "<hr>"}, nil
		})))

	out, ok := c.Dispatcher().Render(context.Background(), blocks.Block{
		ID: "s1", Type: blocks.TypeSpacer, Enabled: true,
	}, "en")
	if !ok || out.HTML != "<hr>" {
		t.Fatalf("expected injected renderer output, got %+v %v", out, ok)
	}
}

func TestContainerEditorOptionsUseScheduler(t *testing.T) {
	scheduler := editor.NewManualScheduler()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.AutosaveDelay = time.Second
	c := newContainer(t, cfg, di.WithScheduler(scheduler))

	ctx := identity.WithActor(context.Background(), "editor-1")
	session := editor.New(ctx, c.PageService(), c.EditorOptions(editor.WithoutWatch())...)
	defer session.Close()

	if err := session.SetTitle("Launch"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := session.SetSlug("launch"); err != nil {
		t.Fatalf("set slug: %v", err)
	}
	scheduler.Advance(time.Second)

	if session.ID() == "" {
		t.Fatalf("expected autosave to create the page")
	}
}

func TestContainerCommandsAndPromos(t *testing.T) {
	c := newContainer(t, runtimeconfig.DefaultConfig())
	ctx := identity.WithActor(context.Background(), "editor-1")
	if _, err := c.SeedFixtures(ctx, nil, "."); err != nil {
		t.Fatalf("seed: %v", err)
	}
	about, err := c.PageService().GetBySlug(ctx, "about", nil)
	if err != nil || about == nil {
		t.Fatalf("expected about page, got %v", err)
	}

	var copyID string
	cmd := pagescmd.NewDuplicatePageCommand(about.ID, "")
	cmd.Result = &copyID
	if err := c.Commands().Duplicate.Execute(ctx, cmd); err != nil {
		t.Fatalf("duplicate command: %v", err)
	}
	copied, err := c.PageService().GetByID(ctx, copyID)
	if err != nil || copied == nil || !strings.HasPrefix(copied.Slug, "about-copy") {
		t.Fatalf("expected copied page, got %+v %v", copied, err)
	}

	if err := c.Promos().Dismiss(ctx, "spring-sale"); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if dismissed, _ := c.Promos().Dismissed(ctx, "spring-sale"); !dismissed {
		t.Fatalf("expected promo to be dismissed")
	}
}
