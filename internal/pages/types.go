package pages

import (
	"maps"
	"slices"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

// Status is the publication state of a page.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Toggle returns the opposite status. Unknown values toggle to published.
func (s Status) Toggle() Status {
	if s == StatusPublished {
		return StatusDraft
	}
	return StatusPublished
}

// Localized maps a language code to text.
type Localized map[string]string

// Clone copies l.
func (l Localized) Clone() Localized {
	if l == nil {
		return nil
	}
	return maps.Clone(l)
}

// Resolve returns the value for lang with base language fallback.
func (l Localized) Resolve(lang string) string {
	return blocks.ResolveString(l, lang)
}

// SEO holds per-page search metadata.
type SEO struct {
	Title       Localized `json:"title,omitempty" yaml:"title,omitempty" firestore:"title,omitempty"`
	Description Localized `json:"description,omitempty" yaml:"description,omitempty" firestore:"description,omitempty"`
	Keywords    []string  `json:"keywords,omitempty" yaml:"keywords,omitempty" firestore:"keywords,omitempty"`
	OGImage     string    `json:"ogImage,omitempty" yaml:"ogImage,omitempty" firestore:"ogImage,omitempty"`
	NoIndex     bool      `json:"noIndex,omitempty" yaml:"noIndex,omitempty" firestore:"noIndex,omitempty"`
}

func (s SEO) Clone() SEO {
	s.Title = s.Title.Clone()
	s.Description = s.Description.Clone()
	s.Keywords = slices.Clone(s.Keywords)
	return s
}

// Settings holds page level presentation flags.
type Settings struct {
	ShowHeader      bool   `json:"showHeader" yaml:"showHeader" firestore:"showHeader"`
	ShowFooter      bool   `json:"showFooter" yaml:"showFooter" firestore:"showFooter"`
	ShowBreadcrumbs bool   `json:"showBreadcrumbs" yaml:"showBreadcrumbs" firestore:"showBreadcrumbs"`
	CustomCSS       string `json:"customCss,omitempty" yaml:"customCss,omitempty" firestore:"customCss,omitempty"`
}

// DefaultSettings is applied to pages created without explicit settings.
func DefaultSettings() Settings {
	return Settings{ShowHeader: true, ShowFooter: true}
}

// Page is the persisted page document.
type Page struct {
	ID           string         `json:"id" firestore:"-"`
	Slug         string         `json:"slug" firestore:"slug"`
	Title        Localized      `json:"title" firestore:"title"`
	Status       Status         `json:"status" firestore:"status"`
	SEO          SEO            `json:"seo" firestore:"seo"`
	Blocks       []blocks.Block `json:"blocks" firestore:"blocks"`
	Settings     Settings       `json:"settings" firestore:"settings"`
	CreatedAt    time.Time      `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" firestore:"updatedAt"`
	CreatedBy    string         `json:"createdBy" firestore:"createdBy"`
	LastEditedBy string         `json:"lastEditedBy" firestore:"lastEditedBy"`
}

// Clone returns a deep copy of p.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Title = p.Title.Clone()
	cloned.SEO = p.SEO.Clone()
	cloned.Blocks = blocks.CloneBlocks(p.Blocks)
	return &cloned
}

// IsPublished reports whether anonymous visitors may resolve p.
func (p *Page) IsPublished() bool {
	return p != nil && p.Status == StatusPublished
}

// PageDraft is the input to Create.
type PageDraft struct {
	Slug     string
	Title    Localized
	Status   Status
	SEO      SEO
	Blocks   []blocks.Block
	Settings *Settings
}

// PagePatch is a merge update; nil fields are left untouched.
type PagePatch struct {
	Slug     *string
	Title    Localized
	Status   *Status
	SEO      *SEO
	Blocks   []blocks.Block
	Settings *Settings
	// ClearBlocks replaces the block list with an empty one. A nil Blocks
	// slice alone means "unchanged".
	ClearBlocks bool
}

// IsEmpty reports whether the patch changes nothing.
func (p PagePatch) IsEmpty() bool {
	return p.Slug == nil && p.Title == nil && p.Status == nil && p.SEO == nil &&
		p.Blocks == nil && p.Settings == nil && !p.ClearBlocks
}

// Snapshot is one event on a page subscription.
type Snapshot struct {
	Page    *Page
	Deleted bool
	Err     error
}

// Subscription is a stream of snapshots for one page. The first snapshot
// carries the current state. Close stops delivery and closes C; it may be
// called more than once.
type Subscription interface {
	C() <-chan Snapshot
	Close()
}
