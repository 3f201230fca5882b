package interfaces

// Translator looks up a localized string for a key. Implementations fall back
// to their default locale and finally to the key itself.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// LocaleMatcher maps an arbitrary language tag onto one of the configured
// locales.
type LocaleMatcher interface {
	Match(locale string) string
}
