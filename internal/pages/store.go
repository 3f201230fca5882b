package pages

import (
	"context"
	"errors"
)

var (
	ErrDocumentNotFound = errors.New("pages: document not found")
	// ErrDocumentConflict is returned by stores that enforce uniqueness when
	// a write collides with an existing document.
	ErrDocumentConflict = errors.New("pages: document conflicts with an existing document")
)

// Field names accepted by Store.Update.
const (
	FieldSlug         = "slug"
	FieldTitle        = "title"
	FieldStatus       = "status"
	FieldSEO          = "seo"
	FieldBlocks       = "blocks"
	FieldSettings     = "settings"
	FieldUpdatedAt    = "updatedAt"
	FieldLastEditedBy = "lastEditedBy"
)

// Store is the document store the page service persists through.
type Store interface {
	// Get returns ErrDocumentNotFound when id is absent.
	Get(ctx context.Context, id string) (*Page, error)
	// FindBySlug returns at most limit pages with slug, most recently updated
	// first. A nil status matches any status; limit <= 0 means no limit.
	FindBySlug(ctx context.Context, slug string, status *Status, limit int) ([]*Page, error)
	// List returns every page ordered by UpdatedAt descending.
	List(ctx context.Context) ([]*Page, error)
	Create(ctx context.Context, page *Page) error
	// Update merges fields into the stored document.
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, id string) (Subscription, error)
}
