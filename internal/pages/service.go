package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	copySuffixKey         = "pages.copy_suffix"
	defaultCopySuffix     = "(Copy)"
	defaultMaxCopyAttempt = 100
)

// Service manages page documents.
//
// Slug uniqueness is checked before writing without a transaction. Two
// sessions racing on the same slug can both succeed against stores without
// a unique index; GetBySlug reports that case as an anomaly. Updates are
// last write wins at the granularity of one call.
type Service interface {
	Create(ctx context.Context, draft PageDraft) (string, error)
	Update(ctx context.Context, id string, patch PagePatch) error
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (string, error)
	TogglePublish(ctx context.Context, id string) error
	// GetBySlug returns nil, nil when no page matches. A non-nil status
	// restricts matches to that status.
	GetBySlug(ctx context.Context, slug string, status *Status) (*Page, error)
	// GetByID returns nil, nil when the page does not exist.
	GetByID(ctx context.Context, id string) (*Page, error)
	// List returns every page, most recently updated first.
	List(ctx context.Context) ([]*Page, error)
	Watch(ctx context.Context, id string) (Subscription, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type IDGenerator func() string

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithActorProvider sets where the current editor is read from. The default
// reads identity.WithActor values from the context.
func WithActorProvider(provider interfaces.ActorProvider) ServiceOption {
	return func(s *service) {
		if provider != nil {
			s.actors = provider
		}
	}
}

// WithTranslator localizes the title suffix added by Duplicate.
func WithTranslator(translator interfaces.Translator) ServiceOption {
	return func(s *service) {
		s.translator = translator
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxCopyAttempts bounds the -copy-N probe used by Duplicate.
func WithMaxCopyAttempts(n int) ServiceOption {
	return func(s *service) {
		if n > 0 {
			s.maxCopyAttempts = n
		}
	}
}

type service struct {
	store           Store
	now             func() time.Time
	id              IDGenerator
	actors          interfaces.ActorProvider
	translator      interfaces.Translator
	logger          interfaces.Logger
	maxCopyAttempts int
}

// NewService constructs a page service over store.
func NewService(store Store, opts ...ServiceOption) Service {
	if store == nil {
		panic(ErrNilStore)
	}
	s := &service{
		store:           store,
		now:             func() time.Time { return time.Now().UTC() },
		id:              uuid.NewString,
		actors:          identity.ContextActorProvider{},
		logger:          logging.NoOp(),
		maxCopyAttempts: defaultMaxCopyAttempt,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, draft PageDraft) (string, error) {
	actor, err := s.requireActor(ctx, "create page")
	if err != nil {
		return "", err
	}

	slug, err := NormalizeSlug(draft.Slug)
	if err != nil {
		return "", invalidError(err)
	}
	if err := validateTitle(draft.Title); err != nil {
		return "", invalidError(err)
	}
	status := draft.Status
	if status == "" {
		status = StatusDraft
	}
	if !status.Valid() {
		return "", invalidError(ErrStatusInvalid)
	}
	if err := s.ensureSlugAvailable(ctx, slug, ""); err != nil {
		return "", err
	}

	settings := DefaultSettings()
	if draft.Settings != nil {
		settings = *draft.Settings
	}
	now := s.now()
	page := &Page{
		ID:           s.id(),
		Slug:         slug,
		Title:        draft.Title.Clone(),
		Status:       status,
		SEO:          draft.SEO.Clone(),
		Blocks:       normalizeBlocks(draft.Blocks),
		Settings:     settings,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    actor,
		LastEditedBy: actor,
	}

	if err := s.store.Create(ctx, page); err != nil {
		if errors.Is(err, ErrDocumentConflict) {
			return "", duplicateSlugError(slug)
		}
		return "", persistenceError("create", err)
	}

	logging.WithPage(s.logger, page.ID, page.Slug).Info("page.created", "actor", actor, "status", string(status))
	return page.ID, nil
}

func (s *service) Update(ctx context.Context, id string, patch PagePatch) error {
	actor, err := s.requireActor(ctx, "update page")
	if err != nil {
		return err
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	fields := map[string]any{}
	if patch.Slug != nil {
		slug, err := NormalizeSlug(*patch.Slug)
		if err != nil {
			return invalidError(err)
		}
		if slug != current.Slug {
			if err := s.ensureSlugAvailable(ctx, slug, id); err != nil {
				return err
			}
			fields[FieldSlug] = slug
		}
	}
	if patch.Title != nil {
		if err := validateTitle(patch.Title); err != nil {
			return invalidError(err)
		}
		fields[FieldTitle] = patch.Title.Clone()
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return invalidError(ErrStatusInvalid)
		}
		fields[FieldStatus] = *patch.Status
	}
	if patch.SEO != nil {
		fields[FieldSEO] = patch.SEO.Clone()
	}
	if patch.Blocks != nil || patch.ClearBlocks {
		fields[FieldBlocks] = normalizeBlocks(patch.Blocks)
	}
	if patch.Settings != nil {
		fields[FieldSettings] = *patch.Settings
	}
	fields[FieldUpdatedAt] = s.now()
	fields[FieldLastEditedBy] = actor

	if err := s.store.Update(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			return notFoundError(id)
		case errors.Is(err, ErrDocumentConflict):
			slug, _ := fields[FieldSlug].(string)
			return duplicateSlugError(slug)
		default:
			return persistenceError("update", err)
		}
	}

	logging.WithPage(s.logger, id, current.Slug).Debug("page.updated", "actor", actor, "fields", len(fields))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	actor, err := s.requireActor(ctx, "delete page")
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return invalidError(ErrIDRequired)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return notFoundError(id)
		}
		return persistenceError("delete", err)
	}
	logging.WithPage(s.logger, id, "").Info("page.deleted", "actor", actor)
	return nil
}

func (s *service) Duplicate(ctx context.Context, id string) (string, error) {
	if _, err := s.requireActor(ctx, "duplicate page"); err != nil {
		return "", err
	}
	source, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}

	slug, err := s.copySlug(ctx, source.Slug)
	if err != nil {
		return "", err
	}

	title := make(Localized, len(source.Title))
	for lang, value := range source.Title {
		title[lang] = strings.TrimSpace(value + " " + s.copySuffix(lang))
	}
	clonedBlocks := blocks.CloneBlocks(source.Blocks)
	for i := range clonedBlocks {
		clonedBlocks[i].ID = blocks.NewID()
	}
	settings := source.Settings

	newID, err := s.Create(ctx, PageDraft{
		Slug:     slug,
		Title:    title,
		Status:   StatusDraft,
		SEO:      source.SEO.Clone(),
		Blocks:   clonedBlocks,
		Settings: &settings,
	})
	if err != nil {
		return "", err
	}
	logging.WithPage(s.logger, newID, slug).Info("page.duplicated", "source_id", source.ID)
	return newID, nil
}

func (s *service) TogglePublish(ctx context.Context, id string) error {
	if _, err := s.requireActor(ctx, "toggle publish"); err != nil {
		return err
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	next := current.Status.Toggle()
	return s.Update(ctx, id, PagePatch{Status: &next})
}

func (s *service) GetBySlug(ctx context.Context, slug string, status *Status) (*Page, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, nil
	}
	matches, err := s.store.FindBySlug(ctx, normalized, status, 2)
	if err != nil {
		return nil, persistenceError("find by slug", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		logging.WithPage(s.logger, matches[0].ID, normalized).
			Warn("page.slug_anomaly", "error", ErrSlugAnomaly, "other_id", matches[1].ID)
		return matches[0], nil
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Page, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	page, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, persistenceError("get", err)
	}
	return page, nil
}

func (s *service) List(ctx context.Context) ([]*Page, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, persistenceError("list", err)
	}
	return list, nil
}

func (s *service) Watch(ctx context.Context, id string) (Subscription, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	sub, err := s.store.Watch(ctx, id)
	if err != nil {
		return nil, persistenceError("watch", err)
	}
	return sub, nil
}

func (s *service) requireActor(ctx context.Context, op string) (string, error) {
	actor, err := s.actors.CurrentActor(ctx)
	if err != nil {
		s.logger.Warn("page.actor_lookup_failed", "operation", op, "error", err)
		return "", actorLookupError(op, err)
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", unauthenticatedError(op)
	}
	return actor, nil
}

func (s *service) load(ctx context.Context, id string) (*Page, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidError(ErrIDRequired)
	}
	page, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, notFoundError(id)
		}
		return nil, persistenceError("get", err)
	}
	return page, nil
}

func (s *service) ensureSlugAvailable(ctx context.Context, slug, selfID string) error {
	matches, err := s.store.FindBySlug(ctx, slug, nil, 0)
	if err != nil {
		return persistenceError("find by slug", err)
	}
	for _, match := range matches {
		if match.ID != selfID {
			return duplicateSlugError(slug)
		}
	}
	return nil
}

func (s *service) copySlug(ctx context.Context, base string) (string, error) {
	for n := 1; n <= s.maxCopyAttempts; n++ {
		candidate := CopySlug(base, n)
		matches, err := s.store.FindBySlug(ctx, candidate, nil, 1)
		if err != nil {
			return "", persistenceError("find by slug", err)
		}
		if len(matches) == 0 {
			return candidate, nil
		}
	}
	return "", copySlugExhaustedError(base)
}

func (s *service) copySuffix(lang string) string {
	if s.translator == nil {
		return defaultCopySuffix
	}
	value, err := s.translator.Translate(lang, copySuffixKey)
	if err != nil || strings.TrimSpace(value) == "" || value == copySuffixKey {
		return defaultCopySuffix
	}
	return value
}

func validateTitle(title Localized) error {
	if strings.TrimSpace(title[blocks.BaseLanguage]) == "" {
		return ErrBaseTitleRequired
	}
	return nil
}

// normalizeBlocks clones list, fills missing ids and renumbers orders.
func normalizeBlocks(list []blocks.Block) []blocks.Block {
	out := blocks.Renumber(blocks.CloneBlocks(list))
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = blocks.NewID()
		}
	}
	if out == nil {
		out = []blocks.Block{}
	}
	return out
}
