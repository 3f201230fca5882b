package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity kind so different kinds never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageID is the stable id of a seeded page.
func PageID(slug string) string {
	return UUID("pagebuilder:page:" + strings.ToLower(strings.TrimSpace(slug))).String()
}

// BlockID is the stable id of the block at position within a seeded page.
func BlockID(pageSlug string, position int, blockType string) string {
	key := "pagebuilder:block:" + strings.ToLower(strings.TrimSpace(pageSlug)) + ":" +
		strings.TrimSpace(blockType) + ":" + strconv.Itoa(position)
	return UUID(key).String()
}
