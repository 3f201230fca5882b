package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Config selects level, output format and focus for the go-logger root.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus restricts output to the named modules, e.g. pagebuilder.editor.
	Focus []string
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", format)
	}
}

// Provider hands out one go-logger child per module name and reuses it for
// later lookups.
type Provider struct {
	root *glog.BaseLogger

	mu       sync.Mutex
	children map[string]interfaces.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the go-logger root. Format is json (default), console
// or pretty; unknown levels leave the go-logger default in place.
func NewProvider(cfg Config) (*Provider, error) {
	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}
	options := []glog.Option{format}
	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimmed(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root, children: map[string]interfaces.Logger{}}, nil
}

// GetLogger returns the logger for module. An empty name returns the root.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	module = strings.TrimSpace(module)
	if module == "" {
		return adapt(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if logger, ok := p.children[module]; ok {
		return logger
	}
	logger := adapt(p.root.GetLogger(module))
	p.children[module] = logger
	return logger
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &moduleLogger{inner: inner}
}

// moduleLogger satisfies interfaces.Logger and FieldsLogger over go-logger.
type moduleLogger struct {
	inner glog.Logger
}

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

// WithFields prefers go-logger's native field support and otherwise passes
// the fields as sorted key/value pairs through With.
func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	switch inner := l.inner.(type) {
	case glog.FieldsLogger:
		return adapt(inner.WithFields(maps.Clone(fields)))
	case interface{ With(...any) *glog.BaseLogger }:
		args := make([]any, 0, len(fields)*2)
		for _, key := range slices.Sorted(maps.Keys(fields)) {
			args = append(args, key, fields[key])
		}
		return adapt(inner.With(args...))
	default:
		return l
	}
}

// WithContext binds ctx and applies any fields stored with
// logging.ContextWithFields.
func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return logging.WithFields(adapt(l.inner.WithContext(ctx)), logging.ContextFields(ctx))
}

func trimmed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
