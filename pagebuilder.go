package pagebuilder

import (
	"context"
	"io/fs"
	"time"

	"github.com/uptrace/bun"

	pfirestore "github.com/goliatone/go-pagebuilder/internal/adapters/firestore"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/clientstate"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// PageService exports the page repository contract.
type PageService = pages.Service

type (
	Page         = pages.Page
	PageDraft    = pages.PageDraft
	PagePatch    = pages.PagePatch
	Status       = pages.Status
	Localized    = pages.Localized
	SEO          = pages.SEO
	Settings     = pages.Settings
	PageStore    = pages.Store
	Snapshot     = pages.Snapshot
	Watcher      = pages.Subscription
	Block        = blocks.Block
	BlockType    = blocks.Type
	BlockEntry   = blocks.Entry
	Registry     = blocks.Registry
	Renderer     = render.Renderer
	RenderInput  = render.Input
	Output       = render.Output
	Document     = render.Document
	Session      = editor.Session
	EditorOption = editor.Option
	Scheduler    = editor.Scheduler
	ClientStore  = clientstate.Store
	Commands     = pagescmd.Handlers
)

const (
	StatusDraft     = pages.StatusDraft
	StatusPublished = pages.StatusPublished
)

// Option customises module construction.
type Option = di.Option

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

func WithActorProvider(provider interfaces.ActorProvider) Option {
	return di.WithActorProvider(provider)
}

func WithTranslator(translator interfaces.Translator) Option {
	return di.WithTranslator(translator)
}

func WithRegistry(registry *Registry) Option {
	return di.WithRegistry(registry)
}

func WithClock(clock func() time.Time) Option {
	return di.WithClock(clock)
}

func WithScheduler(scheduler Scheduler) Option {
	return di.WithScheduler(scheduler)
}

func WithRenderer(t BlockType, r Renderer) Option {
	return di.WithRenderer(t, r)
}

func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

func WithFirestoreProvider(provider *pfirestore.Provider) Option {
	return di.WithFirestoreProvider(provider)
}

func WithPageStore(store PageStore) Option {
	return di.WithPageStore(store)
}

func WithClientStore(store ClientStore) Option {
	return di.WithClientStore(store)
}

// Module is the top level page builder runtime facade.
type Module struct {
	container *di.Container
}

// New validates cfg and wires every service. Call Close to release the
// connections opened for bun or firestore storage.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Pages() PageService {
	return m.container.PageService()
}

func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

func (m *Module) Commands() Commands {
	return m.container.Commands()
}

// Promos tracks which promotional banners a visitor dismissed.
func (m *Module) Promos() *clientstate.PromoDismissals {
	return m.container.Promos()
}

// RenderPage renders the enabled blocks of list in order for lang.
func (m *Module) RenderPage(ctx context.Context, list []Block, lang string) []Output {
	return m.container.Dispatcher().RenderPage(ctx, list, lang)
}

// RenderDocument renders page with its title, SEO and custom CSS resolved
// for lang.
func (m *Module) RenderDocument(ctx context.Context, page *Page, lang string) Document {
	return m.container.Dispatcher().RenderDocument(ctx, page, lang)
}

// RenderPublished looks up a published page by slug and renders it. It
// returns false when no published page matches.
func (m *Module) RenderPublished(ctx context.Context, slug, lang string) (Document, bool, error) {
	status := StatusPublished
	page, err := m.Pages().GetBySlug(ctx, slug, &status)
	if err != nil || page == nil {
		return Document{}, false, err
	}
	return m.RenderDocument(ctx, page, lang), true, nil
}

// NewEditor starts a session over an empty draft.
func (m *Module) NewEditor(ctx context.Context, opts ...EditorOption) *Session {
	return editor.New(ctx, m.Pages(), m.container.EditorOptions(opts...)...)
}

// OpenEditor loads page id into a new session that follows remote changes.
func (m *Module) OpenEditor(ctx context.Context, id string, opts ...EditorOption) (*Session, error) {
	return editor.Open(ctx, m.Pages(), id, m.container.EditorOptions(opts...)...)
}

// SeedFixtures creates the pages described by Markdown files under dir in
// fsys. A nil fsys selects the built-in seed pages.
func (m *Module) SeedFixtures(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	return m.container.SeedFixtures(ctx, fsys, dir)
}

func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
