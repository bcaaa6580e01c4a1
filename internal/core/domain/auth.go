package domain

import "context"

// AuthGrant is the result of a successful credentials exchange.
type AuthGrant struct {
	Token     string
	ExpiresIn int64
	Username  string
}

type actorCtxKey struct{}

// WithActor binds the authenticated admin username to the context so
// downstream layers can attribute mutations to them.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, username)
}

// ActorFromContext returns the username stored by [WithActor], or the
// empty string for an unattributed context.
func ActorFromContext(ctx context.Context) string {
	username, _ := ctx.Value(actorCtxKey{}).(string)
	return username
}
