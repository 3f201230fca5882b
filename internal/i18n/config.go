package i18n

// Config selects the default locale and the locales offered to authors.
type Config struct {
	DefaultLocale string
	Locales       []string
}

func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: defaultLocale,
		Locales:       locales,
	}
}
