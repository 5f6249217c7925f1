package middleware

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gotd/td/telegram"
	"github.com/krelay/kwrelay-bot/client/middleware/recovery"
	"github.com/krelay/kwrelay-bot/client/middleware/retry"
	"github.com/krelay/kwrelay-bot/config"
)

// https://github.com/iyear/tdl/blob/master/core/tclient/tclient.go
func NewDefaultMiddlewares(ctx context.Context, timeout time.Duration) []telegram.Middleware {
	return append([]telegram.Middleware{
		recovery.New(ctx, newBackoff(timeout)),
		retry.New(config.C().Telegram.RpcRetry),
	}, NewFloodWaitMiddlewares(uint(config.C().Telegram.FloodRetry))...)
}

func newBackoff(timeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.Multiplier = 1.1
	b.MaxElapsedTime = timeout
	b.MaxInterval = 10 * time.Second
	return b
}
