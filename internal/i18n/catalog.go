package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps a locale to its flat key/value translations.
type Catalog map[string]map[string]string

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() (Catalog, error) {
	return LoadCatalog(embeddedLocales, "locales")
}

// LoadCatalog reads every <locale>.yaml file in dir of fsys.
func LoadCatalog(fsys fs.FS, dir string) (Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalog dir %q: %w", dir, err)
	}
	catalog := Catalog{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		messages, err := decodeMessages(data)
		if err != nil {
			return nil, fmt.Errorf("i18n: decode %s: %w", name, err)
		}
		catalog[normalizeLocale(strings.TrimSuffix(name, ".yaml"))] = messages
	}
	return catalog, nil
}

// Loader reads a single YAML catalog file from disk. The file maps locales
// to key/value messages.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Load(ctx context.Context) (Catalog, error) {
	if l == nil || l.path == "" {
		return nil, fmt.Errorf("i18n: loader path cannot be empty")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open catalog %q: %w", l.path, err)
	}
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: decode catalog %q: %w", l.path, err)
	}
	catalog := make(Catalog, len(raw))
	for locale, messages := range raw {
		catalog[normalizeLocale(locale)] = messages
	}
	return catalog, nil
}

// Merge overlays other onto c, key by key.
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c)+len(other))
	for _, source := range []Catalog{c, other} {
		for locale, messages := range source {
			if out[locale] == nil {
				out[locale] = map[string]string{}
			}
			for key, value := range messages {
				out[locale][key] = value
			}
		}
	}
	return out
}

func decodeMessages(data []byte) (map[string]string, error) {
	messages := map[string]string{}
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}
