package identity

import (
	"context"
	"strings"

	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

type actorKey struct{}

// WithActor returns a context carrying actor as the current editor.
func WithActor(ctx context.Context, actor string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorKey{}, strings.TrimSpace(actor))
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	actor, ok := ctx.Value(actorKey{}).(string)
	return actor, ok && actor != ""
}

// ContextActorProvider reads the actor placed on the context by WithActor.
type ContextActorProvider struct{}

var _ interfaces.ActorProvider = ContextActorProvider{}

func (ContextActorProvider) CurrentActor(ctx context.Context) (string, error) {
	actor, _ := ActorFromContext(ctx)
	return actor, nil
}

// StaticActorProvider always reports the same actor. An empty value models
// a signed out session.
type StaticActorProvider string

func (s StaticActorProvider) CurrentActor(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}
