package pages

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store for tests and local development. It
// does not enforce slug uniqueness, matching document stores without
// unique indexes.
type MemoryStore struct {
	mu       sync.RWMutex
	pages    map[string]*Page
	watchers map[string]map[*feed]struct{}
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages:    map[string]*Page{},
		watchers: map[string]map[*feed]struct{}{},
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return page.Clone(), nil
}

func (m *MemoryStore) FindBySlug(_ context.Context, slug string, status *Status, limit int) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Page
	for _, page := range m.pages {
		if page.Slug != slug {
			continue
		}
		if status != nil && page.Status != *status {
			continue
		}
		out = append(out, page.Clone())
	}
	sortByUpdatedDesc(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Page, 0, len(m.pages))
	for _, page := range m.pages {
		out = append(out, page.Clone())
	}
	sortByUpdatedDesc(out)
	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, page *Page) error {
	if page == nil || page.ID == "" {
		return fmt.Errorf("pages: memory store requires a page id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.pages[page.ID]; exists {
		return fmt.Errorf("%w: id %s", ErrDocumentConflict, page.ID)
	}
	m.pages[page.ID] = page.Clone()
	m.notifyLocked(page.ID)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.pages[id]
	if !ok {
		return ErrDocumentNotFound
	}
	next := current.Clone()
	if err := applyFields(next, fields); err != nil {
		return err
	}
	m.pages[id] = next
	m.notifyLocked(id)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(m.pages, id)
	m.notifyLocked(id)
	return nil
}

// Watch streams the page's current state followed by every later change.
func (m *MemoryStore) Watch(ctx context.Context, id string) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sub *feed
	sub = newFeed(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if set := m.watchers[id]; set != nil {
			delete(set, sub)
			if len(set) == 0 {
				delete(m.watchers, id)
			}
		}
	})
	if m.watchers[id] == nil {
		m.watchers[id] = map[*feed]struct{}{}
	}
	m.watchers[id][sub] = struct{}{}
	sub.publish(m.snapshotLocked(id))
	return sub, nil
}

// Watchers reports how many subscriptions are open for id.
func (m *MemoryStore) Watchers(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.watchers[id])
}

func (m *MemoryStore) snapshotLocked(id string) Snapshot {
	page, ok := m.pages[id]
	if !ok {
		return Snapshot{Deleted: true}
	}
	return Snapshot{Page: page.Clone()}
}

func (m *MemoryStore) notifyLocked(id string) {
	set := m.watchers[id]
	if len(set) == 0 {
		return
	}
	snapshot := m.snapshotLocked(id)
	for sub := range set {
		copied := snapshot
		copied.Page = snapshot.Page.Clone()
		sub.publish(copied)
	}
}

func sortPages(list []*Page, cmp func(a, b *Page) int) {
	slices.SortStableFunc(list, cmp)
}
