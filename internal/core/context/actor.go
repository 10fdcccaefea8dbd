// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"mandiflow/internal/core/security"
)

// ActorContext identifies the authenticated back-office user. It is threaded
// explicitly into permission checks instead of being read from ambient
// session storage.
type ActorContext struct {
	UserID string
	Name   string
	Role   security.Role
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context or nil.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetActorID returns the actor's user ID from context or empty string.
func GetActorID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.UserID
	}
	return ""
}

// GetRole returns the actor's role from context or empty role.
func GetRole(ctx context.Context) security.Role {
	if a := GetActor(ctx); a != nil {
		return a.Role
	}
	return ""
}
