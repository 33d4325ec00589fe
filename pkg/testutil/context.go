package testutil

import (
	"context"
	"time"

	"carepath/pkg/requestcontext"
)

// Actor is the audit identity stamped by test contexts.
const Actor = "test-user"

// Context returns a context with a frozen clock and the test actor, so
// audit stamps written during the test are deterministic.
func Context(now time.Time) context.Context {
	ctx := requestcontext.WithTime(context.Background(), now)
	return requestcontext.WithActor(ctx, Actor)
}
