package pages

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	pfirestore "github.com/goliatone/go-pagebuilder/internal/adapters/firestore"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const defaultCollection = "pages"

// FirestoreStore keeps one document per page in a Firestore collection. The
// document id is the page id. Watch uses realtime snapshot listeners.
type FirestoreStore struct {
	provider   *pfirestore.Provider
	collection string
	logger     interfaces.Logger
}

var _ Store = (*FirestoreStore)(nil)

// FirestoreStoreOption configures a FirestoreStore.
type FirestoreStoreOption func(*FirestoreStore)

// WithCollection overrides the "pages" collection name.
func WithCollection(name string) FirestoreStoreOption {
	return func(s *FirestoreStore) {
		if name != "" {
			s.collection = name
		}
	}
}

func WithFirestoreLogger(logger interfaces.Logger) FirestoreStoreOption {
	return func(s *FirestoreStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewFirestoreStore(provider *pfirestore.Provider, opts ...FirestoreStoreOption) *FirestoreStore {
	s := &FirestoreStore{
		provider:   provider,
		collection: defaultCollection,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FirestoreStore) coll(ctx context.Context) (*firestore.CollectionRef, error) {
	if s.provider == nil {
		return nil, errors.New("pages: firestore provider not configured")
	}
	client, err := s.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(s.collection), nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*Page, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := coll.Doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreError("get page", err)
	}
	return decodeSnapshot(snap)
}

func (s *FirestoreStore) FindBySlug(ctx context.Context, slug string, status *Status, limit int) ([]*Page, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}
	query := coll.Where(FieldSlug, "==", slug)
	if status != nil {
		query = query.Where(FieldStatus, "==", string(*status))
	}
	query = query.OrderBy(FieldUpdatedAt, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return collect(ctx, query.Documents(ctx))
}

func (s *FirestoreStore) List(ctx context.Context) ([]*Page, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}
	return collect(ctx, coll.OrderBy(FieldUpdatedAt, firestore.Desc).Documents(ctx))
}

// Create fails with ErrDocumentConflict when the id is already taken. Slug
// uniqueness is not enforced here.
func (s *FirestoreStore) Create(ctx context.Context, page *Page) error {
	if page == nil {
		return errors.New("pages: page is required")
	}
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.Doc(page.ID).Create(ctx, page); err != nil {
		return mapFirestoreError("create page", err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, fields map[string]any) error {
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := coll.Doc(id).Update(ctx, updates); err != nil {
		return mapFirestoreError("update page", err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	coll, err := s.coll(ctx)
	if err != nil {
		return err
	}
	if _, err := coll.Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return mapFirestoreError("delete page", err)
	}
	return nil
}

// Watch attaches a snapshot listener to the page document. The first
// snapshot reflects the current state, including Deleted when absent.
func (s *FirestoreStore) Watch(ctx context.Context, id string) (Subscription, error) {
	coll, err := s.coll(ctx)
	if err != nil {
		return nil, err
	}
	listenCtx, cancel := context.WithCancel(context.Background())
	it := coll.Doc(id).Snapshots(listenCtx)
	sub := newFeed(ctx, func() {
		cancel()
		it.Stop()
	})
	go s.listen(listenCtx, id, it, sub)
	return sub, nil
}

func (s *FirestoreStore) listen(ctx context.Context, id string, it *firestore.DocumentSnapshotIterator, sub *feed) {
	logger := logging.WithPage(s.logger, id, "")
	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, iterator.Done) {
				return
			}
			err = mapFirestoreError("watch page", err)
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Warn("page.watch.listen_failed", "error", err)
			sub.publish(Snapshot{Err: err})
			return
		}
		if !snap.Exists() {
			sub.publish(Snapshot{Deleted: true})
			continue
		}
		page, err := decodeSnapshot(snap)
		if err != nil {
			sub.publish(Snapshot{Err: err})
			continue
		}
		sub.publish(Snapshot{Page: page})
	}
}

func collect(ctx context.Context, docs *firestore.DocumentIterator) ([]*Page, error) {
	defer docs.Stop()
	out := []*Page{}
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			return out, nil
		}
		if err != nil {
			return nil, mapFirestoreError("query pages", err)
		}
		page, err := decodeSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
}

func decodeSnapshot(snap *firestore.DocumentSnapshot) (*Page, error) {
	var page Page
	if err := snap.DataTo(&page); err != nil {
		return nil, fmt.Errorf("pages: decode %s: %w", snap.Ref.ID, err)
	}
	page.ID = snap.Ref.ID
	return &page, nil
}

func mapFirestoreError(op string, err error) error {
	wrapped := pfirestore.WrapError(op, err)
	switch {
	case pfirestore.IsNotFound(wrapped):
		return ErrDocumentNotFound
	case pfirestore.IsConflict(wrapped):
		return fmt.Errorf("%w: %v", ErrDocumentConflict, wrapped)
	}
	return wrapped
}
