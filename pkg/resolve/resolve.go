// Package resolve defines the chat-reference resolution contract shared by
// the registry and the Telegram client adapter.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Resolver turns a user-supplied chat reference into the platform's
// canonical numeric chat id. Implementations do not retry internally;
// retry policy belongs to the caller.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (int64, error)
}

var (
	ErrNotFound  = errors.New("chat not found")
	ErrTransient = errors.New("transient resolution failure")
)

// RateLimitedError carries the platform-specified backoff duration.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Func adapts a plain function to the Resolver interface.
type Func func(ctx context.Context, ref string) (int64, error)

func (f Func) Resolve(ctx context.Context, ref string) (int64, error) {
	return f(ctx, ref)
}
