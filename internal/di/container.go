package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/uptrace/bun"

	pfirestore "github.com/goliatone/go-pagebuilder/internal/adapters/firestore"
	"github.com/goliatone/go-pagebuilder/internal/adapters/storage"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/clientstate"
	"github.com/goliatone/go-pagebuilder/internal/commands"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/editor"
	"github.com/goliatone/go-pagebuilder/internal/fixtures"
	"github.com/goliatone/go-pagebuilder/internal/i18n"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Container wires the page builder services from a runtime config. Values
// supplied through options win over the ones derived from config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	actors         interfaces.ActorProvider
	translator     interfaces.Translator
	registry       *blocks.Registry
	clock          func() time.Time
	scheduler      editor.Scheduler
	renderers      map[blocks.Type]render.Renderer

	bunDB     *bun.DB
	firestore *pfirestore.Provider
	store     pages.Store
	kv        clientstate.Store

	pageSvc    pages.Service
	dispatcher *render.Dispatcher
	commands   pagescmd.Handlers
	promos     *clientstate.PromoDismissals

	closers []func() error
}

// Option mutates the container before services are built.
type Option func(*Container)

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActorProvider overrides how the current editor is resolved.
func WithActorProvider(provider interfaces.ActorProvider) Option {
	return func(c *Container) {
		c.actors = provider
	}
}

func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Container) {
		c.translator = translator
	}
}

func WithRegistry(registry *blocks.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// WithScheduler sets the autosave scheduler handed to editor sessions.
func WithScheduler(scheduler editor.Scheduler) Option {
	return func(c *Container) {
		c.scheduler = scheduler
	}
}

// WithRenderer installs a renderer for t ahead of the built-in HTML one.
func WithRenderer(t blocks.Type, r render.Renderer) Option {
	return func(c *Container) {
		if c.renderers == nil {
			c.renderers = map[blocks.Type]render.Renderer{}
		}
		c.renderers[t] = r
	}
}

// WithBunDB reuses an open database for the bun store. The container does
// not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithFirestoreProvider reuses a client provider for the firestore store.
// The container does not close it.
func WithFirestoreProvider(provider *pfirestore.Provider) Option {
	return func(c *Container) {
		c.firestore = provider
	}
}

// WithPageStore bypasses the configured storage provider.
func WithPageStore(store pages.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

func WithClientStore(store clientstate.Store) Option {
	return func(c *Container) {
		c.kv = store
	}
}

// NewContainer validates cfg and builds every service. Bun stores get their
// schema created before the container is returned.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureTranslator(); err != nil {
		return nil, err
	}
	if c.registry == nil {
		c.registry = blocks.DefaultRegistry()
	}
	if err := c.configureStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.configureRendering(); err != nil {
		_ = c.Close()
		return nil, err
	}

	pageOpts := []pages.ServiceOption{
		pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		pages.WithTranslator(c.translator),
	}
	if c.actors != nil {
		pageOpts = append(pageOpts, pages.WithActorProvider(c.actors))
	}
	if c.clock != nil {
		pageOpts = append(pageOpts, pages.WithClock(c.clock))
	}
	c.pageSvc = pages.NewService(c.store, pageOpts...)
	c.commands = pagescmd.NewHandlers(c.pageSvc, commands.CommandLogger(c.loggerProvider, "pages"))

	if c.kv == nil {
		kvOpts := []clientstate.MemoryOption{}
		if c.clock != nil {
			kvOpts = append(kvOpts, clientstate.WithClock(c.clock))
		}
		c.kv = clientstate.NewMemoryStore(kvOpts...)
	}
	c.promos = clientstate.NewPromoDismissals(c.kv, cfg.ClientState.DefaultTTL)

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureTranslator() error {
	if c.translator != nil {
		return nil
	}
	translator, err := i18n.NewDefaultTranslator(i18n.FromModuleConfig(c.Config.DefaultLocale, c.Config.Locales))
	if err != nil {
		return fmt.Errorf("di: translator: %w", err)
	}
	c.translator = translator
	return nil
}

func (c *Container) configureStore(ctx context.Context) error {
	if c.store != nil {
		return nil
	}
	storageLogger := logging.StorageLogger(c.loggerProvider)
	cfg := c.Config.Storage

	switch cfg.NormalizedProvider() {
	case runtimeconfig.StorageBun:
		if c.bunDB == nil {
			dbCfg := storage.Config{Dialect: cfg.Dialect, DSN: cfg.DSN}
			if dialect := strings.ToLower(strings.TrimSpace(cfg.Dialect)); dialect == storage.DialectSQLite || dialect == "sqlite3" {
				dbCfg.MaxOpenConns = 1
			}
			db, err := storage.OpenBun(dbCfg)
			if err != nil {
				return err
			}
			c.bunDB = db
			c.closers = append(c.closers, db.Close)
		}
		store := pages.NewBunStore(c.bunDB, pages.WithStoreLogger(storageLogger))
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("di: bun schema: %w", err)
		}
		c.store = store
	case runtimeconfig.StorageFirestore:
		if c.firestore == nil {
			c.firestore = pfirestore.NewProvider(pfirestore.Config{
				ProjectID:    cfg.ProjectID,
				EmulatorHost: cfg.EmulatorHost,
			})
			c.closers = append(c.closers, c.firestore.Close)
		}
		c.store = pages.NewFirestoreStore(c.firestore,
			pages.WithCollection(cfg.Collection),
			pages.WithFirestoreLogger(storageLogger),
		)
	default:
		c.store = pages.NewMemoryStore()
	}
	storageLogger.Debug("storage.configured", "provider", cfg.NormalizedProvider())
	return nil
}

func (c *Container) configureRendering() error {
	htmlOpts := render.HTMLOptions{
		Sanitize:           c.Config.Render.Sanitize,
		MarkdownExtensions: c.Config.Render.MarkdownExtensions,
	}
	if htmlOpts.Sanitize {
		htmlOpts.Policy = render.RichTextPolicy()
	}
	renderOpts := []render.Option{
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
		render.WithHTMLOptions(htmlOpts),
	}
	for t, r := range c.renderers {
		renderOpts = append(renderOpts, render.WithRenderer(t, r))
	}
	dispatcher, err := render.NewDispatcher(c.registry, renderOpts...)
	if err != nil {
		return err
	}
	c.dispatcher = dispatcher
	return nil
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) Translator() interfaces.Translator         { return c.translator }
func (c *Container) Registry() *blocks.Registry                { return c.registry }
func (c *Container) PageStore() pages.Store                    { return c.store }
func (c *Container) PageService() pages.Service                { return c.pageSvc }
func (c *Container) Dispatcher() *render.Dispatcher            { return c.dispatcher }
func (c *Container) Commands() pagescmd.Handlers               { return c.commands }
func (c *Container) ClientStore() clientstate.Store            { return c.kv }
func (c *Container) Promos() *clientstate.PromoDismissals      { return c.promos }

// EditorOptions returns the session options derived from config. Options
// passed by callers are appended so they take precedence.
func (c *Container) EditorOptions(extra ...editor.Option) []editor.Option {
	opts := []editor.Option{
		editor.WithRegistry(c.registry),
		editor.WithAutosaveDelay(c.Config.Editor.AutosaveDelay),
		editor.WithLogger(logging.EditorLogger(c.loggerProvider)),
		editor.WithLanguage(c.Config.DefaultLocale),
	}
	if c.scheduler != nil {
		opts = append(opts, editor.WithScheduler(c.scheduler))
	}
	return append(opts, extra...)
}

// SeedFixtures parses every Markdown page under dir in fsys and creates the
// ones missing from the page store.
func (c *Container) SeedFixtures(ctx context.Context, fsys fs.FS, dir string) (int, error) {
	if fsys == nil {
		fsys = fixtures.Builtin()
	}
	loaderOpts := []fixtures.Option{
		fixtures.WithRegistry(c.registry),
		fixtures.WithLogger(logging.FixturesLogger(c.loggerProvider)),
	}
	if c.clock != nil {
		loaderOpts = append(loaderOpts, fixtures.WithClock(c.clock))
	}
	loader := fixtures.NewLoader(loaderOpts...)
	seeds, err := loader.LoadDir(fsys, dir)
	if err != nil {
		return 0, err
	}
	return loader.Apply(ctx, c.store, seeds)
}

// Close releases the connections the container opened itself.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
