package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Actor(ctx))
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(WithActor(ctx, "ops@example.org"), "req-1")
	assert.Equal(t, "ops@example.org", Actor(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
}
