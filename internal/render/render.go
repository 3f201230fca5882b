package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

var (
	// ErrRenderSkipped marks every reason a block produced no output.
	ErrRenderSkipped = errors.New("render: block skipped")
	ErrUnregistered  = fmt.Errorf("%w: type not registered", ErrRenderSkipped)
	ErrNoRenderer    = fmt.Errorf("%w: no renderer for type", ErrRenderSkipped)
	ErrRendererPanic = fmt.Errorf("%w: renderer panicked", ErrRenderSkipped)
)

// Input is what a renderer receives for one block.
type Input struct {
	BlockID  string
	Type     blocks.Type
	Lang     string
	Content  map[string]any
	Settings blocks.Settings
}

// Output is the rendered form of one block.
type Output struct {
	BlockID string
	Type    blocks.Type
	HTML    template.HTML
}

// Renderer turns resolved content and effective settings into output.
type Renderer interface {
	Render(ctx context.Context, in Input) (Output, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, in Input) (Output, error)

func (f RendererFunc) Render(ctx context.Context, in Input) (Output, error) {
	return f(ctx, in)
}

// Dispatcher maps blocks to renderers and contains failures to the block
// that caused them.
type Dispatcher struct {
	registry  *blocks.Registry
	renderers map[blocks.Type]Renderer
	logger    interfaces.Logger
	html      HTMLOptions
	defaults  bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRenderer registers or replaces the renderer for one type.
func WithRenderer(t blocks.Type, r Renderer) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.renderers[t] = r
		}
	}
}

// WithHTMLOptions configures the built-in HTML renderers.
func WithHTMLOptions(opts HTMLOptions) Option {
	return func(d *Dispatcher) {
		d.html = opts
	}
}

// WithoutDefaultRenderers starts the dispatcher with no built-in renderers.
func WithoutDefaultRenderers() Option {
	return func(d *Dispatcher) {
		d.defaults = false
	}
}

// NewDispatcher builds a dispatcher over registry. Built-in HTML renderers
// are installed for every registered type unless disabled; renderers passed
// through WithRenderer take precedence.
func NewDispatcher(registry *blocks.Registry, opts ...Option) (*Dispatcher, error) {
	if registry == nil {
		registry = blocks.DefaultRegistry()
	}
	d := &Dispatcher{
		registry:  registry,
		renderers: map[blocks.Type]Renderer{},
		logger:    logging.NoOp(),
		html:      DefaultHTMLOptions(),
		defaults:  true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.defaults {
		builtins, err := NewHTMLRenderers(registry, d.html)
		if err != nil {
			return nil, err
		}
		for t, r := range builtins {
			if _, overridden := d.renderers[t]; !overridden {
				d.renderers[t] = r
			}
		}
	}
	return d, nil
}

// Registry returns the registry the dispatcher resolves types against.
func (d *Dispatcher) Registry() *blocks.Registry {
	return d.registry
}

// Render renders one block. The boolean is false when the block is disabled
// or was skipped; skips are logged and never returned as errors.
func (d *Dispatcher) Render(ctx context.Context, block blocks.Block, lang string) (Output, bool) {
	if !block.Enabled {
		return Output{}, false
	}
	if !d.registry.Has(block.Type) {
		d.skip(ctx, block, ErrUnregistered)
		return Output{}, false
	}
	renderer, ok := d.renderers[block.Type]
	if !ok {
		d.skip(ctx, block, ErrNoRenderer)
		return Output{}, false
	}

	in := Input{
		BlockID:  block.ID,
		Type:     block.Type,
		Lang:     lang,
		Content:  blocks.Resolve(block, lang),
		Settings: d.registry.EffectiveSettings(block),
	}
	out, err := invoke(ctx, renderer, in)
	if err != nil {
		d.skip(ctx, block, err)
		return Output{}, false
	}
	if out.BlockID == "" {
		out.BlockID = block.ID
	}
	if out.Type == "" {
		out.Type = block.Type
	}
	return out, true
}

// RenderPage renders list in order, dropping disabled and failing blocks.
// The input slice is not modified.
func (d *Dispatcher) RenderPage(ctx context.Context, list []blocks.Block, lang string) []Output {
	ordered := blocks.SortByOrder(list)
	out := make([]Output, 0, len(ordered))
	for _, block := range ordered {
		if rendered, ok := d.Render(ctx, block, lang); ok {
			out = append(out, rendered)
		}
	}
	return out
}

func invoke(ctx context.Context, r Renderer, in Input) (out Output, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", ErrRendererPanic, recovered)
		}
	}()
	out, err = r.Render(ctx, in)
	if err != nil && !errors.Is(err, ErrRenderSkipped) {
		err = fmt.Errorf("%w: %w", ErrRenderSkipped, err)
	}
	return out, err
}

func (d *Dispatcher) skip(ctx context.Context, block blocks.Block, reason error) {
	logging.WithBlock(d.logger, block.ID, string(block.Type)).
		WithContext(ctx).
		Warn("render.skipped", "error", reason)
}
