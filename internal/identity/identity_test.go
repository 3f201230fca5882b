package identity_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/identity"
)

func TestPageIDIsStable(t *testing.T) {
	first := identity.PageID("About")
	second := identity.PageID(" about ")
	if first == "" || first != second {
		t.Fatalf("expected stable id, got %q and %q", first, second)
	}
	if identity.PageID("contact") == first {
		t.Fatalf("expected different slugs to produce different ids")
	}
}

func TestBlockIDDependsOnPosition(t *testing.T) {
	a := identity.BlockID("home", 0, "hero")
	b := identity.BlockID("home", 1, "hero")
	if a == b {
		t.Fatalf("expected distinct block ids")
	}
	if a != identity.BlockID("home", 0, "hero") {
		t.Fatalf("expected deterministic block id")
	}
}

func TestContextActorProvider(t *testing.T) {
	provider := identity.ContextActorProvider{}

	actor, err := provider.CurrentActor(context.Background())
	if err != nil || actor != "" {
		t.Fatalf("expected anonymous, got %q %v", actor, err)
	}

	ctx := identity.WithActor(context.Background(), " editor-1 ")
	actor, err = provider.CurrentActor(ctx)
	if err != nil || actor != "editor-1" {
		t.Fatalf("expected editor-1, got %q %v", actor, err)
	}
}

func TestStaticActorProvider(t *testing.T) {
	actor, _ := identity.StaticActorProvider("admin").CurrentActor(context.Background())
	if actor != "admin" {
		t.Fatalf("expected admin, got %q", actor)
	}
}
