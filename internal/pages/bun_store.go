package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/adapters/storage"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const defaultPollInterval = 2 * time.Second

type pageRecord struct {
	bun.BaseModel `bun:"table:pagebuilder_pages,alias:p"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug         string         `bun:"slug,notnull" json:"slug"`
	Title        Localized      `bun:"title,type:jsonb" json:"title"`
	Status       string         `bun:"status,notnull" json:"status"`
	SEO          SEO            `bun:"seo,type:jsonb" json:"seo"`
	Blocks       []blocks.Block `bun:"blocks,type:jsonb" json:"blocks"`
	Settings     Settings       `bun:"settings,type:jsonb" json:"settings"`
	CreatedAt    time.Time      `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,notnull" json:"updated_at"`
	CreatedBy    string         `bun:"created_by" json:"created_by"`
	LastEditedBy string         `bun:"last_edited_by" json:"last_edited_by"`
}

var fieldColumns = map[string]string{
	FieldSlug:         "slug",
	FieldTitle:        "title",
	FieldStatus:       "status",
	FieldSEO:          "seo",
	FieldBlocks:       "blocks",
	FieldSettings:     "settings",
	FieldUpdatedAt:    "updated_at",
	FieldLastEditedBy: "last_edited_by",
}

func newPageRecordRepository(db *bun.DB) repository.Repository[*pageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*pageRecord]{
		NewRecord: func() *pageRecord { return &pageRecord{} },
		GetID: func(r *pageRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *pageRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(r *pageRecord) string {
			return r.Slug
		},
	})
}

// BunStore persists pages in a SQL table through go-repository-bun. A unique
// index on slug turns concurrent duplicate creates into ErrDocumentConflict.
type BunStore struct {
	db           *bun.DB
	repo         repository.Repository[*pageRecord]
	pollInterval time.Duration
	logger       interfaces.Logger
}

var _ Store = (*BunStore)(nil)

// BunStoreOption configures a BunStore.
type BunStoreOption func(*BunStore)

// WithPollInterval sets how often Watch polls for changes.
func WithPollInterval(d time.Duration) BunStoreOption {
	return func(s *BunStore) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func WithStoreLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	s := &BunStore{
		db:           db,
		repo:         newPageRecordRepository(db),
		pollInterval: defaultPollInterval,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema creates the pages table and its indexes when missing.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*pageRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("pages: create table: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*pageRecord)(nil)).
		Index("pagebuilder_pages_slug_key").
		Unique().
		Column("slug").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("pages: create slug index: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*pageRecord)(nil)).
		Index("pagebuilder_pages_updated_at_idx").
		Column("updated_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("pages: create updated_at index: %w", err)
	}
	return nil
}

func (s *BunStore) Get(ctx context.Context, id string) (*Page, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return record.toPage(), nil
}

func (s *BunStore) FindBySlug(ctx context.Context, slug string, status *Status, limit int) ([]*Page, error) {
	filter := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("?TableAlias.slug = ?", slug)
		if status != nil {
			q = q.Where("?TableAlias.status = ?", string(*status))
		}
		return q.OrderExpr("?TableAlias.updated_at DESC")
	})

	var (
		records []*pageRecord
		err     error
	)
	if limit > 0 {
		records, _, err = s.repo.List(ctx, filter, repository.SelectPaginate(limit, 0))
	} else {
		records, _, err = s.repo.List(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("pages: find by slug: %w", err)
	}
	return toPages(records), nil
}

func (s *BunStore) List(ctx context.Context) ([]*Page, error) {
	records, _, err := s.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.updated_at DESC")
	}))
	if err != nil {
		return nil, fmt.Errorf("pages: list: %w", err)
	}
	return toPages(records), nil
}

func (s *BunStore) Create(ctx context.Context, page *Page) error {
	record, err := newPageRecord(page)
	if err != nil {
		return err
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDocumentConflict, err)
		}
		return err
	}
	return nil
}

func (s *BunStore) Update(ctx context.Context, id string, fields map[string]any) error {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}
	page := record.toPage()
	if err := applyFields(page, fields); err != nil {
		return err
	}
	next, err := newPageRecord(page)
	if err != nil {
		return err
	}

	columns := make([]string, 0, len(fields))
	for key := range fields {
		columns = append(columns, fieldColumns[key])
	}
	if _, err := s.repo.Update(ctx, next,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(columns...),
	); err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDocumentConflict, err)
		}
		return mapRepositoryError(err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, id string) error {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}
	return mapRepositoryError(s.repo.Delete(ctx, &pageRecord{ID: record.ID}))
}

// Watch polls the row and emits a snapshot whenever UpdatedAt changes or
// the row disappears.
func (s *BunStore) Watch(ctx context.Context, id string) (Subscription, error) {
	pollCtx, cancel := context.WithCancel(context.Background())
	sub := newFeed(ctx, cancel)
	go s.poll(pollCtx, id, sub)
	return sub, nil
}

func (s *BunStore) poll(ctx context.Context, id string, sub *feed) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var (
		last    time.Time
		deleted bool
		first   = true
	)
	logger := logging.WithPage(s.logger, id, "")
	for {
		page, err := s.Get(ctx, id)
		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, ErrDocumentNotFound):
			if first || !deleted {
				sub.publish(Snapshot{Deleted: true})
			}
			deleted = true
		case err != nil:
			logger.Warn("page.watch.poll_failed", "error", err)
			sub.publish(Snapshot{Err: err})
		default:
			if first || deleted || !page.UpdatedAt.Equal(last) {
				sub.publish(Snapshot{Page: page})
			}
			last = page.UpdatedAt
			deleted = false
		}
		first = false

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *BunStore) getRecord(ctx context.Context, id string) (*pageRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrDocumentNotFound
	}
	record, err := s.repo.GetByID(ctx, uid.String())
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return record, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return ErrDocumentNotFound
	}
	return fmt.Errorf("pages repository error: %w", err)
}

func newPageRecord(page *Page) (*pageRecord, error) {
	uid, err := uuid.Parse(page.ID)
	if err != nil {
		return nil, fmt.Errorf("pages: bun store requires uuid ids: %w", err)
	}
	return &pageRecord{
		ID:           uid,
		Slug:         page.Slug,
		Title:        page.Title.Clone(),
		Status:       string(page.Status),
		SEO:          page.SEO.Clone(),
		Blocks:       blocks.CloneBlocks(page.Blocks),
		Settings:     page.Settings,
		CreatedAt:    page.CreatedAt.UTC(),
		UpdatedAt:    page.UpdatedAt.UTC(),
		CreatedBy:    page.CreatedBy,
		LastEditedBy: page.LastEditedBy,
	}, nil
}

func (r *pageRecord) toPage() *Page {
	list := r.Blocks
	if list == nil {
		list = []blocks.Block{}
	}
	return &Page{
		ID:           r.ID.String(),
		Slug:         r.Slug,
		Title:        r.Title.Clone(),
		Status:       Status(r.Status),
		SEO:          r.SEO.Clone(),
		Blocks:       blocks.CloneBlocks(list),
		Settings:     r.Settings,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		CreatedBy:    r.CreatedBy,
		LastEditedBy: r.LastEditedBy,
	}
}

func toPages(records []*pageRecord) []*Page {
	out := make([]*Page, 0, len(records))
	for _, record := range records {
		if record != nil {
			out = append(out, record.toPage())
		}
	}
	return out
}
