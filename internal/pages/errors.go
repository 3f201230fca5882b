package pages

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrUnauthenticated    = errors.New("pages: authenticated actor required")
	ErrDuplicateSlug      = errors.New("pages: slug already in use")
	ErrNotFound           = errors.New("pages: page not found")
	ErrIDRequired         = errors.New("pages: page id required")
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrBaseTitleRequired  = errors.New("pages: base language title is required")
	ErrStatusInvalid      = errors.New("pages: status must be draft or published")
	ErrPersistence        = errors.New("pages: persistence failure")
	ErrSlugAnomaly        = errors.New("pages: slug resolves to more than one page")
	ErrCopySlugExhausted  = errors.New("pages: unable to derive unique duplicate slug")
	ErrNilStore           = errors.New("pages: store is required")
	ErrActorResolveFailed = errors.New("pages: actor lookup failed")
)

const (
	codeUnauthenticated = "PAGE_UNAUTHENTICATED"
	codeDuplicateSlug   = "PAGE_DUPLICATE_SLUG"
	codeNotFound        = "PAGE_NOT_FOUND"
	codeInvalid         = "PAGE_INVALID"
	codePersistence     = "PAGE_PERSISTENCE_FAILED"
)

func unauthenticatedError(op string) error {
	return goerrors.Wrap(ErrUnauthenticated, goerrors.CategoryAuth, op+": sign in to edit pages").
		WithTextCode(codeUnauthenticated)
}

// actorLookupError keeps both ErrUnauthenticated and ErrActorResolveFailed
// in the chain along with the provider's error.
func actorLookupError(op string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %w: %w", ErrUnauthenticated, ErrActorResolveFailed, err), goerrors.CategoryAuth, op+": could not resolve editor").
		WithTextCode(codeUnauthenticated)
}

func duplicateSlugError(slug string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrDuplicateSlug, slug), goerrors.CategoryConflict, "slug already in use").
		WithTextCode(codeDuplicateSlug)
}

func notFoundError(id string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrNotFound, id), goerrors.CategoryNotFound, "page not found").
		WithTextCode(codeNotFound)
}

func invalidError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "page input invalid").
		WithTextCode(codeInvalid)
}

func persistenceError(op string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrPersistence, op, err), goerrors.CategoryInternal, "page store call failed").
		WithTextCode(codePersistence)
}

func copySlugExhaustedError(slug string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrCopySlugExhausted, slug), goerrors.CategoryConflict, "duplicate slug unavailable").
		WithTextCode(codeDuplicateSlug)
}
