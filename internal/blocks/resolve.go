package blocks

// Resolve returns the payload of b for lang, falling back to BaseLanguage and
// then to an empty map. The result is a copy.
func Resolve(b Block, lang string) map[string]any {
	if payload, ok := b.Content[lang]; ok && payload != nil {
		return CloneMap(payload)
	}
	if payload, ok := b.Content[BaseLanguage]; ok && payload != nil {
		return CloneMap(payload)
	}
	return map[string]any{}
}

// ResolveString applies the same fallback to a localized string map.
func ResolveString(values map[string]string, lang string) string {
	if v, ok := values[lang]; ok && v != "" {
		return v
	}
	return values[BaseLanguage]
}
