package i18n

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

var (
	ErrMissingTranslation = errors.New("i18n: missing translation")
	ErrDefaultLocale      = errors.New("i18n: default locale has no catalog")
)

// Translator resolves catalog keys with regional and default locale
// fallback. It is read-only after construction.
type Translator struct {
	catalog       Catalog
	defaultLocale string
	supported     []string
	matcher       language.Matcher
}

var (
	_ interfaces.Translator    = (*Translator)(nil)
	_ interfaces.LocaleMatcher = (*Translator)(nil)
)

// NewTranslator builds a translator over catalog. Config.Locales limits the
// locales offered; empty means every catalog locale.
func NewTranslator(cfg Config, catalog Catalog) (*Translator, error) {
	defaultLocale := normalizeLocale(cfg.DefaultLocale)
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	if _, ok := catalog[defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLocale, defaultLocale)
	}

	supported := []string{defaultLocale}
	candidates := cfg.Locales
	if len(candidates) == 0 {
		for locale := range catalog {
			candidates = append(candidates, locale)
		}
		slices.Sort(candidates)
	}
	for _, locale := range candidates {
		locale = normalizeLocale(locale)
		if locale != "" && !slices.Contains(supported, locale) {
			supported = append(supported, locale)
		}
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, locale := range supported {
		tags = append(tags, language.Make(locale))
	}

	return &Translator{
		catalog:       catalog,
		defaultLocale: defaultLocale,
		supported:     supported,
		matcher:       language.NewMatcher(tags),
	}, nil
}

// NewDefaultTranslator uses the embedded catalog.
func NewDefaultTranslator(cfg Config) (*Translator, error) {
	catalog, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewTranslator(cfg, catalog)
}

func (t *Translator) DefaultLocale() string { return t.defaultLocale }

// Locales lists supported locales, default first.
func (t *Translator) Locales() []string { return slices.Clone(t.supported) }

// Match returns the supported locale closest to locale, or the default.
func (t *Translator) Match(locale string) string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return t.defaultLocale
	}
	if slices.Contains(t.supported, locale) {
		return locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return t.defaultLocale
	}
	_, index, confidence := t.matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(t.supported) {
		return t.defaultLocale
	}
	return t.supported[index]
}

// Translate looks key up in locale, its matched parent, then the default
// locale. Missing keys return the key itself with ErrMissingTranslation.
func (t *Translator) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range t.chain(locale) {
		if message, ok := t.catalog[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(message, args...), nil
			}
			return message, nil
		}
	}
	return key, fmt.Errorf("%w: %s", ErrMissingTranslation, key)
}

func (t *Translator) chain(locale string) []string {
	locale = normalizeLocale(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
	}
	if matched := t.Match(locale); !slices.Contains(chain, matched) {
		chain = append(chain, matched)
	}
	if base, _, ok := strings.Cut(locale, "-"); ok && !slices.Contains(chain, base) {
		chain = append(chain, base)
	}
	if !slices.Contains(chain, t.defaultLocale) {
		chain = append(chain, t.defaultLocale)
	}
	return chain
}
