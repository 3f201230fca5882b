package pagescmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/testsupport"
)

type stubService struct {
	pages.Service
	duplicated []string
	toggled    []string
	deleted    []string
	actors     []string
	err        error
}

func (s *stubService) record(ctx context.Context) {
	actor, _ := identity.ActorFromContext(ctx)
	s.actors = append(s.actors, actor)
}

func (s *stubService) Duplicate(ctx context.Context, id string) (string, error) {
	s.record(ctx)
	if s.err != nil {
		return "", s.err
	}
	s.duplicated = append(s.duplicated, id)
	return id + "-copy", nil
}

func (s *stubService) TogglePublish(ctx context.Context, id string) error {
	s.record(ctx)
	s.toggled = append(s.toggled, id)
	return s.err
}

func (s *stubService) Delete(ctx context.Context, id string) error {
	s.record(ctx)
	s.deleted = append(s.deleted, id)
	return s.err
}

func TestDuplicateCommandReturnsCopyID(t *testing.T) {
	svc := &stubService{}
	handlers := pagescmd.NewHandlers(svc, nil)

	var copyID string
	cmd := pagescmd.NewDuplicatePageCommand("about", "editor-1")
	cmd.Result = &copyID

	if err := handlers.Duplicate.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copyID != "about-copy" {
		t.Fatalf("expected copy id, got %q", copyID)
	}
	if len(svc.actors) != 1 || svc.actors[0] != "editor-1" {
		t.Fatalf("expected actor on context, got %v", svc.actors)
	}
}

func TestCommandsKeepCallerActorWhenUnset(t *testing.T) {
	svc := &stubService{}
	handlers := pagescmd.NewHandlers(svc, nil)
	ctx := identity.WithActor(context.Background(), "owner")

	if err := handlers.TogglePublish.Execute(ctx, pagescmd.NewTogglePublishPageCommand("home", "")); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(svc.toggled) != 1 || svc.toggled[0] != "home" {
		t.Fatalf("expected toggle on home, got %v", svc.toggled)
	}
	if svc.actors[0] != "owner" {
		t.Fatalf("expected caller actor, got %v", svc.actors)
	}
}

func TestCommandsRequirePageID(t *testing.T) {
	svc := &stubService{}
	handlers := pagescmd.NewHandlers(svc, nil)

	err := handlers.Delete.Execute(context.Background(), pagescmd.NewDeletePageCommand("  ", "editor-1"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(svc.deleted) != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestCommandsSurfaceServiceErrors(t *testing.T) {
	svc := &stubService{err: pages.ErrNotFound}
	logger := testsupport.NewRecordingLogger()
	handlers := pagescmd.NewHandlers(svc, logger)

	err := handlers.Delete.Execute(context.Background(), pagescmd.NewDeletePageCommand("gone", "editor-1"))
	if !errors.Is(err, pages.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	entry, ok := logger.Find("command.execute.failed")
	if !ok {
		t.Fatalf("expected failure log")
	}
	if entry.Fields["page_id"] != "gone" || entry.Fields["operation"] != "pages.delete" {
		t.Fatalf("unexpected fields: %+v", entry.Fields)
	}
}

func TestCommandTypes(t *testing.T) {
	if pagescmd.NewDuplicatePageCommand("a", "").Type() == pagescmd.NewDeletePageCommand("a", "").Type() {
		t.Fatalf("command types must differ")
	}
}
