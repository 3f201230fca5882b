package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	rootModule     = "pagebuilder"
	pagesModule    = "pagebuilder.pages"
	renderModule   = "pagebuilder.render"
	editorModule   = "pagebuilder.editor"
	storageModule  = "pagebuilder.storage"
	fixturesModule = "pagebuilder.fixtures"
)

const (
	fieldPageID    = "page_id"
	fieldPageSlug  = "slug"
	fieldBlockID   = "block_id"
	fieldBlockType = "block_type"
)

// ModuleLogger returns a logger scoped to module, tagged with a "module"
// field. A nil provider yields the no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger used by the page service.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// RenderLogger returns the logger used by the renderer dispatch.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// EditorLogger returns the logger used by editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// StorageLogger returns the logger used by document store adapters.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// FixturesLogger returns the logger used while seeding pages.
func FixturesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fixturesModule)
}

// WithPage tags logger with the page id and slug. Empty values are skipped.
func WithPage(logger interfaces.Logger, id, slug string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldPageSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// WithBlock tags logger with a block id and type.
func WithBlock(logger interfaces.Logger, id, blockType string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		fields[fieldBlockID] = trimmed
	}
	if trimmed := strings.TrimSpace(blockType); trimmed != "" {
		fields[fieldBlockType] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
