package interfaces

import "context"

// ActorProvider resolves the identity of the user performing a mutation.
// An empty id with a nil error means the request is anonymous.
type ActorProvider interface {
	CurrentActor(ctx context.Context) (string, error)
}

// ActorProviderFunc adapts a function to ActorProvider.
type ActorProviderFunc func(ctx context.Context) (string, error)

func (fn ActorProviderFunc) CurrentActor(ctx context.Context) (string, error) {
	if fn == nil {
		return "", nil
	}
	return fn(ctx)
}
