// Package relay filters inbound messages from watched chats against the
// keyword list and fans matching messages out to the target chats.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krelay/kwrelay-bot/pkg/keyword"
)

// ErrInvalidDestination marks a target that is unknown or unreachable;
// such failures are logged once and never retried.
var ErrInvalidDestination = errors.New("invalid destination chat")

// RateLimitedError carries the platform backoff before a retry is allowed.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Forwarder forwards one message to one destination. Errors other than
// ErrInvalidDestination and RateLimitedError are treated as transient.
type Forwarder interface {
	Forward(ctx context.Context, fromChat int64, messageID int, toChat int64) error
}

// Ruleset is the registry view the engine needs per message.
type Ruleset interface {
	IsWatched(chatID int64) bool
	Terms() []string
}

// Inbound is one new-message event from the platform.
type Inbound struct {
	ChatID    int64
	MessageID int
	Sender    string
	Text      string
}

type Engine struct {
	rules   Ruleset
	fw      Forwarder
	targets []int64
	events  chan Inbound
	workers int
}

func New(rules Ruleset, fw Forwarder, targets []int64, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		rules:   rules,
		fw:      fw,
		targets: targets,
		events:  make(chan Inbound, 128),
		workers: workers,
	}
}

// Submit queues an inbound message for processing.
func (e *Engine) Submit(ev Inbound) {
	e.events <- ev
}

// Run starts the worker pool. Workers exit when ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	log.FromContext(ctx).Info("relay engine started", "workers", e.workers, "targets", len(e.targets))
	for i := 0; i < e.workers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-e.events:
					e.Process(ctx, ev)
				}
			}
		}()
	}
}

// Process handles a single inbound message synchronously: filter, match,
// fan out. Forward failures never escape; the event loop must not die on
// a bad destination.
func (e *Engine) Process(ctx context.Context, ev Inbound) {
	if !e.rules.IsWatched(ev.ChatID) {
		return
	}
	if !keyword.Matches(ev.Text, e.rules.Terms()) {
		return
	}
	logger := log.FromContext(ctx)
	logger.Info("keyword match", "chat", ev.ChatID, "msg", ev.MessageID, "sender", ev.Sender)

	var wg sync.WaitGroup
	for _, target := range e.targets {
		wg.Add(1)
		go func(to int64) {
			defer wg.Done()
			if err := e.forward(ctx, ev, to); err != nil {
				logger.Error("forward failed", "from", ev.ChatID, "msg", ev.MessageID, "to", to, "error", err)
			} else {
				logger.Debug("forwarded", "from", ev.ChatID, "msg", ev.MessageID, "to", to)
			}
		}(target)
	}
	wg.Wait()
}

// forward attempts one destination with at most one retry: rate limits
// wait out the platform backoff first, transient errors retry at once,
// invalid destinations are final.
func (e *Engine) forward(ctx context.Context, ev Inbound, to int64) error {
	err := e.fw.Forward(ctx, ev.ChatID, ev.MessageID, to)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidDestination) {
		return err
	}
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.RetryAfter):
		}
	}
	if err := e.fw.Forward(ctx, ev.ChatID, ev.MessageID, to); err != nil {
		return fmt.Errorf("permanent after retry: %w", err)
	}
	return nil
}
