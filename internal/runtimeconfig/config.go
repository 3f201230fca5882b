package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrDefaultLocaleRequired   = errors.New("pagebuilder config: default locale is required")
	ErrDefaultLocaleNotListed  = errors.New("pagebuilder config: default locale must be one of the configured locales")
	ErrStorageProviderUnknown  = errors.New("pagebuilder config: storage provider is invalid")
	ErrStorageDialectUnknown   = errors.New("pagebuilder config: storage dialect is invalid")
	ErrFirestoreProjectMissing = errors.New("pagebuilder config: firestore project id is required")
	ErrAutosaveDelayInvalid    = errors.New("pagebuilder config: autosave delay must be positive")
	ErrLoggingProviderUnknown  = errors.New("pagebuilder config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("pagebuilder config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("pagebuilder config: logging format is invalid")
	ErrClientStateTTLInvalid   = errors.New("pagebuilder config: client state ttl must be positive")
)

const (
	StorageMemory    = "memory"
	StorageBun       = "bun"
	StorageFirestore = "firestore"
)

// Config aggregates the settings a page builder module needs at startup.
type Config struct {
	DefaultLocale string            `yaml:"defaultLocale"`
	Locales       []string          `yaml:"locales"`
	Storage       StorageConfig     `yaml:"storage"`
	Editor        EditorConfig      `yaml:"editor"`
	Render        RenderConfig      `yaml:"render"`
	Logging       LoggingConfig     `yaml:"logging"`
	ClientState   ClientStateConfig `yaml:"clientState"`
}

// StorageConfig selects the page store. Dialect and DSN apply to bun;
// ProjectID, EmulatorHost and Collection apply to firestore.
type StorageConfig struct {
	Provider     string `yaml:"provider"`
	Dialect      string `yaml:"dialect"`
	DSN          string `yaml:"dsn"`
	ProjectID    string `yaml:"projectId"`
	EmulatorHost string `yaml:"emulatorHost"`
	Collection   string `yaml:"collection"`
}

type EditorConfig struct {
	AutosaveDelay time.Duration `yaml:"autosaveDelay"`
}

// RenderConfig mirrors render.HTMLOptions.
type RenderConfig struct {
	Sanitize           bool     `yaml:"sanitize"`
	MarkdownExtensions []string `yaml:"markdownExtensions"`
}

// LoggingConfig picks between the console provider and go-logger.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"addSource"`
	Focus     []string `yaml:"focus"`
}

type ClientStateConfig struct {
	DefaultTTL time.Duration `yaml:"defaultTTL"`
}

// DefaultConfig returns an in-memory setup with English and Spanish locales.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en", "es"},
		Storage: StorageConfig{
			Provider:   StorageMemory,
			Dialect:    "sqlite",
			Collection: "pages",
		},
		Editor: EditorConfig{
			AutosaveDelay: 3 * time.Second,
		},
		Render: RenderConfig{
			Sanitize: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		ClientState: ClientStateConfig{
			DefaultTTL: 7 * 24 * time.Hour,
		},
	}
}

// Validate checks cross-field consistency. The first failing rule is
// returned wrapped around one of the exported sentinel errors.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.Locales) > 0 && !slices.ContainsFunc(cfg.Locales, func(l string) bool {
		return strings.EqualFold(strings.TrimSpace(l), strings.TrimSpace(cfg.DefaultLocale))
	}) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleNotListed, cfg.DefaultLocale)
	}
	if err := cfg.Storage.validate(); err != nil {
		return err
	}
	if cfg.Editor.AutosaveDelay <= 0 {
		return fmt.Errorf("%w: %s", ErrAutosaveDelayInvalid, cfg.Editor.AutosaveDelay)
	}
	if err := cfg.Logging.validate(); err != nil {
		return err
	}
	if cfg.ClientState.DefaultTTL <= 0 {
		return fmt.Errorf("%w: %s", ErrClientStateTTLInvalid, cfg.ClientState.DefaultTTL)
	}
	return nil
}

// NormalizedProvider lowercases the provider and defaults to memory.
func (cfg StorageConfig) NormalizedProvider() string {
	provider := normalize(cfg.Provider)
	if provider == "" {
		return StorageMemory
	}
	return provider
}

func (cfg StorageConfig) validate() error {
	provider := cfg.NormalizedProvider()
	if err := validation.Validate(provider, validation.In(StorageMemory, StorageBun, StorageFirestore)); err != nil {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	switch provider {
	case StorageBun:
		dialect := normalize(cfg.Dialect)
		if err := validation.Validate(dialect, validation.Required, validation.In("sqlite", "sqlite3", "postgres", "postgresql", "pg")); err != nil {
			return fmt.Errorf("%w: %q", ErrStorageDialectUnknown, cfg.Dialect)
		}
	case StorageFirestore:
		if err := validation.Validate(strings.TrimSpace(cfg.ProjectID), validation.Required); err != nil {
			return ErrFirestoreProjectMissing
		}
	}
	return nil
}

func (cfg LoggingConfig) validate() error {
	provider := normalize(cfg.Provider)
	if provider == "" {
		provider = "console"
	}
	if err := validation.Validate(provider, validation.In("console", "gologger")); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if err := validation.Validate(normalize(cfg.Level), validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Level)
	}
	if provider == "gologger" {
		if err := validation.Validate(normalize(cfg.Format), validation.In("json", "console", "pretty")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
