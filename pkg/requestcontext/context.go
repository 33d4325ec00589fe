// Package requestcontext provides context accessors for request-scoped
// values set by callers and consumed by services and stores.
//
// The clock accessor is the important one: every now-relative computation
// (certification expiry, client age, overdue detection, audit timestamps)
// reads time through Now(ctx) so tests can pin a deterministic instant with
// WithTime instead of racing the wall clock.
package requestcontext

import (
	"context"
	"time"
)

type (
	actorKey       struct{}
	requestTimeKey struct{}
)

// WithActor stores the acting user identity (typically the authenticated
// subject) for audit attribution.
func WithActor(ctx context.Context, actor string) context.Context {
	if actor == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor returns the acting user identity, or "" when none was set.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

// WithTime pins the request clock. Tests use this to make expiry, age, and
// overdue computations deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the pinned request time if one was set, otherwise the current
// UTC wall-clock time.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}
