package blocks

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrTypeRequired       = errors.New("blocks: type is required")
	ErrTypeDuplicate      = errors.New("blocks: type already registered")
	ErrCategoryUnknown    = errors.New("blocks: unknown category")
	ErrBaseContentMissing = errors.New("blocks: default content must include the base language")
	ErrUnknownType        = errors.New("blocks: type not registered")
)

// Entry is the static metadata for one block type.
type Entry struct {
	Type            Type
	Label           string
	Category        Category
	Icon            string
	Description     string
	DefaultContent  Content
	DefaultSettings Settings
	// Schema is a JSON Schema (draft 2020-12) describing one language slice
	// of the content payload.
	Schema map[string]any

	decode func(map[string]any) (any, error)
}

func (e Entry) clone() Entry {
	e.DefaultContent = e.DefaultContent.Clone()
	e.DefaultSettings = e.DefaultSettings.Clone()
	e.Schema = CloneMap(e.Schema)
	return e
}

// CategoryGroup is one palette section.
type CategoryGroup struct {
	Category Category
	Entries  []Entry
}

// Registry is an immutable catalogue of block types. It is safe for
// concurrent use.
type Registry struct {
	entries map[Type]Entry
	order   []Type
	schemas map[Type]*compiledSchema
}

// NewRegistry validates entries and builds a registry. Registration order is
// kept for palette listings.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make(map[Type]Entry, len(entries)),
		order:   make([]Type, 0, len(entries)),
		schemas: make(map[Type]*compiledSchema, len(entries)),
	}
	for _, entry := range entries {
		entry.Type = Type(strings.TrimSpace(string(entry.Type)))
		if entry.Type == "" {
			return nil, ErrTypeRequired
		}
		if _, exists := r.entries[entry.Type]; exists {
			return nil, fmt.Errorf("%w: %s", ErrTypeDuplicate, entry.Type)
		}
		if !validCategory(entry.Category) {
			return nil, fmt.Errorf("%w: %q for %s", ErrCategoryUnknown, entry.Category, entry.Type)
		}
		if _, ok := entry.DefaultContent[BaseLanguage]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrBaseContentMissing, entry.Type)
		}
		if entry.Schema != nil {
			compiled, err := compileSchema(entry.Type, entry.Schema)
			if err != nil {
				return nil, err
			}
			r.schemas[entry.Type] = compiled
		}
		r.entries[entry.Type] = entry.clone()
		r.order = append(r.order, entry.Type)
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error.
func MustNewRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry of built-in block types.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = MustNewRegistry(builtinEntries()...)
	})
	return defaultRegistry
}

// Get returns a copy of the entry for t.
func (r *Registry) Get(t Type) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	entry, ok := r.entries[t]
	if !ok {
		return Entry{}, false
	}
	return entry.clone(), true
}

// Has reports whether t is registered.
func (r *Registry) Has(t Type) bool {
	if r == nil {
		return false
	}
	_, ok := r.entries[t]
	return ok
}

// Types lists registered types in registration order.
func (r *Registry) Types() []Type {
	if r == nil {
		return nil
	}
	return append([]Type(nil), r.order...)
}

// ListByCategory groups entries by category. Each list keeps registration
// order, so repeated calls return identical results.
func (r *Registry) ListByCategory() map[Category][]Entry {
	out := map[Category][]Entry{}
	if r == nil {
		return out
	}
	for _, t := range r.order {
		entry := r.entries[t]
		out[entry.Category] = append(out[entry.Category], entry.clone())
	}
	return out
}

// Palette returns the non-empty category groups in palette order.
func (r *Registry) Palette() []CategoryGroup {
	grouped := r.ListByCategory()
	out := make([]CategoryGroup, 0, len(grouped))
	for _, category := range categoryOrder {
		if entries := grouped[category]; len(entries) > 0 {
			out = append(out, CategoryGroup{Category: category, Entries: entries})
		}
	}
	return out
}

// NewBlock builds an enabled block of type t seeded with the registry
// defaults. Order is left at zero for the caller to place.
func (r *Registry) NewBlock(t Type) (Block, error) {
	entry, ok := r.Get(t)
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return Block{
		ID:       NewID(),
		Type:     t,
		Enabled:  true,
		Content:  entry.DefaultContent,
		Settings: entry.DefaultSettings,
	}, nil
}

// EffectiveSettings merges the registry defaults for b.Type with b.Settings.
// Unknown types return a copy of b.Settings.
func (r *Registry) EffectiveSettings(b Block) Settings {
	var defaults Settings
	if r != nil {
		if entry, ok := r.entries[b.Type]; ok {
			defaults = entry.DefaultSettings
		}
	}
	return MergeSettings(defaults, b.Settings)
}

// Decode converts payload into the typed variant registered for t.
func (r *Registry) Decode(t Type, payload map[string]any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	entry, ok := r.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	if entry.decode == nil {
		return CloneMap(payload), nil
	}
	return entry.decode(payload)
}
