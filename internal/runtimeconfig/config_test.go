package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestConfigValidate_DefaultLocaleMustBeListed(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "fr"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleNotListed) {
		t.Fatalf("expected ErrDefaultLocaleNotListed, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorageProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "dynamo"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_BunNeedsKnownDialect(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "BUN"
	cfg.Storage.Dialect = "mysql"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDialectUnknown) {
		t.Fatalf("expected ErrStorageDialectUnknown, got %v", err)
	}

	cfg.Storage.Dialect = "postgres"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("postgres dialect should validate: %v", err)
	}
}

func TestConfigValidate_FirestoreNeedsProject(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageFirestore

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrFirestoreProjectMissing) {
		t.Fatalf("expected ErrFirestoreProjectMissing, got %v", err)
	}
}

func TestConfigValidate_AutosaveDelayPositive(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.AutosaveDelay = 0

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAutosaveDelayInvalid) {
		t.Fatalf("expected ErrAutosaveDelayInvalid, got %v", err)
	}
}

func TestConfigValidate_LoggingRules(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_ClientStateTTL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.ClientState.DefaultTTL = -time.Second

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrClientStateTTLInvalid) {
		t.Fatalf("expected ErrClientStateTTLInvalid, got %v", err)
	}
}

func TestConfigDecodesFromYAML(t *testing.T) {
	source := []byte(`
defaultLocale: en
locales: [en, es]
storage:
  provider: bun
  dialect: sqlite
  dsn: "file::memory:"
editor:
  autosaveDelay: 2s
logging:
  provider: gologger
  level: debug
  format: json
clientState:
  defaultTTL: 24h
`)
	cfg := runtimeconfig.DefaultConfig()
	if err := yaml.Unmarshal(source, &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Storage.NormalizedProvider() != runtimeconfig.StorageBun {
		t.Fatalf("expected bun storage, got %q", cfg.Storage.Provider)
	}
	if cfg.Editor.AutosaveDelay != 2*time.Second {
		t.Fatalf("expected 2s autosave delay, got %s", cfg.Editor.AutosaveDelay)
	}
	if cfg.ClientState.DefaultTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.ClientState.DefaultTTL)
	}
	if !cfg.Render.Sanitize {
		t.Fatalf("defaults should survive partial documents")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("decoded config should validate: %v", err)
	}
}
