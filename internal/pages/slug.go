package pages

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-slug"
)

const copySuffix = "-copy"

// NormalizeSlug trims and normalizes value with go-slug rules.
func NormalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" || !slug.IsValid(normalized) {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

// CopySlug returns the n-th duplicate candidate for base: base-copy for
// n == 1, base-copy-n afterwards.
func CopySlug(base string, n int) string {
	if n <= 1 {
		return base + copySuffix
	}
	return base + copySuffix + "-" + strconv.Itoa(n)
}
