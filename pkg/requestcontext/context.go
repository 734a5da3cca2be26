// Package requestcontext carries per-invocation values, the acting operator
// and a request ID, from the entry point down to services without threading
// them through every signature.
//
//	ctx = requestcontext.WithActor(ctx, "alice@example.org")
//	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
package requestcontext

import "context"

type (
	actorKey     struct{}
	requestIDKey struct{}
)

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// Actor returns the operator recorded on ctx, or "" when none was set.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
