package firestore_test

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pfirestore "github.com/goliatone/go-pagebuilder/internal/adapters/firestore"
)

func TestWrapErrorClassifiesStatusCodes(t *testing.T) {
	notFound := pfirestore.WrapError("get page", status.Error(codes.NotFound, "missing"))
	if !pfirestore.IsNotFound(notFound) || pfirestore.IsConflict(notFound) {
		t.Fatalf("expected not found classification, got %v", notFound)
	}
	if notFound.Error() != "get page: rpc error: code = NotFound desc = missing" {
		t.Fatalf("unexpected message %q", notFound.Error())
	}

	exists := pfirestore.WrapError("create page", status.Error(codes.AlreadyExists, "dup"))
	if !pfirestore.IsConflict(exists) {
		t.Fatalf("expected conflict classification")
	}

	var wrapped *pfirestore.Error
	unavailable := pfirestore.WrapError("list", status.Error(codes.Unavailable, "down"))
	if !errors.As(unavailable, &wrapped) || !wrapped.IsUnavailable() {
		t.Fatalf("expected unavailable classification, got %v", unavailable)
	}
}

func TestWrapErrorPassesContextErrors(t *testing.T) {
	if err := pfirestore.WrapError("get", context.Canceled); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := pfirestore.WrapError("get", status.Error(codes.DeadlineExceeded, "slow")); err != context.DeadlineExceeded {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if pfirestore.WrapError("get", nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestProviderRequiresProjectID(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	provider := pfirestore.NewProvider(pfirestore.Config{})
	if _, err := provider.Client(context.Background()); !errors.Is(err, pfirestore.ErrProjectIDRequired) {
		t.Fatalf("expected ErrProjectIDRequired, got %v", err)
	}
	if err := provider.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := provider.Client(context.Background()); !errors.Is(err, pfirestore.ErrProviderClosed) {
		t.Fatalf("expected ErrProviderClosed, got %v", err)
	}
}

func TestProviderEnvironmentFallbacks(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8686")
	provider := pfirestore.NewProvider(pfirestore.Config{})
	if provider.ProjectID() != "env-project" {
		t.Fatalf("expected env project, got %q", provider.ProjectID())
	}
	if provider.EmulatorHost() != "127.0.0.1:8686" {
		t.Fatalf("expected env emulator host, got %q", provider.EmulatorHost())
	}

	configured := pfirestore.NewProvider(pfirestore.Config{ProjectID: "cfg", EmulatorHost: "localhost:1"})
	if configured.ProjectID() != "cfg" || configured.EmulatorHost() != "localhost:1" {
		t.Fatalf("expected config values to win")
	}
}
