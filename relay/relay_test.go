package relay_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/krelay/kwrelay-bot/relay"
)

type staticRules struct {
	watched map[int64]bool
	terms   []string
}

func (r *staticRules) IsWatched(id int64) bool { return r.watched[id] }
func (r *staticRules) Terms() []string         { return r.terms }

type call struct {
	from int64
	msg  int
	to   int64
}

// scriptedForwarder returns the queued errors per destination, then nil.
type scriptedForwarder struct {
	mu    sync.Mutex
	calls []call
	fails map[int64][]error
}

func (f *scriptedForwarder) Forward(_ context.Context, from int64, msg int, to int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{from, msg, to})
	if errs := f.fails[to]; len(errs) > 0 {
		err := errs[0]
		f.fails[to] = errs[1:]
		return err
	}
	return nil
}

func (f *scriptedForwarder) callsTo(to int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.to == to {
			n++
		}
	}
	return n
}

func TestUnwatchedChatNeverForwards(t *testing.T) {
	fw := &scriptedForwarder{}
	eng := relay.New(&staticRules{watched: map[int64]bool{}, terms: []string{"cat"}}, fw, []int64{1}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 99, MessageID: 1, Text: "cat"})
	if len(fw.calls) != 0 {
		t.Fatalf("forwarded %d times from unwatched chat", len(fw.calls))
	}
}

func TestNoMatchNoForward(t *testing.T) {
	fw := &scriptedForwarder{}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 10, MessageID: 1, Text: "dog"})
	if len(fw.calls) != 0 {
		t.Fatalf("forwarded %d times without a match", len(fw.calls))
	}
}

func TestFanOutToAllTargets(t *testing.T) {
	fw := &scriptedForwarder{}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1, 2, 3}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 10, MessageID: 5, Text: "the cat sat"})
	for _, to := range []int64{1, 2, 3} {
		if got := fw.callsTo(to); got != 1 {
			t.Errorf("destination %d got %d forwards, want 1", to, got)
		}
	}
}

func TestRateLimitedDestinationIsolated(t *testing.T) {
	fw := &scriptedForwarder{fails: map[int64][]error{
		1: {
			&relay.RateLimitedError{RetryAfter: time.Millisecond},
			errors.New("still limited"),
		},
	}}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1, 2}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 10, MessageID: 5, Text: "cat"})

	// Destination 1: initial attempt + exactly one retry, then permanent.
	if got := fw.callsTo(1); got != 2 {
		t.Errorf("rate-limited destination got %d attempts, want 2", got)
	}
	// Destination 2 is unaffected.
	if got := fw.callsTo(2); got != 1 {
		t.Errorf("healthy destination got %d forwards, want 1", got)
	}
}

func TestTransientRetriedOnce(t *testing.T) {
	fw := &scriptedForwarder{fails: map[int64][]error{
		1: {errors.New("connection reset")},
	}}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 10, MessageID: 5, Text: "cat"})
	if got := fw.callsTo(1); got != 2 {
		t.Fatalf("transient failure got %d attempts, want 2", got)
	}
}

func TestInvalidDestinationNotRetried(t *testing.T) {
	fw := &scriptedForwarder{fails: map[int64][]error{
		1: {relay.ErrInvalidDestination},
	}}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1, 2}, 1)
	eng.Process(context.Background(), relay.Inbound{ChatID: 10, MessageID: 5, Text: "cat"})
	if got := fw.callsTo(1); got != 1 {
		t.Errorf("invalid destination got %d attempts, want 1", got)
	}
	if got := fw.callsTo(2); got != 1 {
		t.Errorf("healthy destination got %d forwards, want 1", got)
	}
}

func TestRunConsumesSubmittedEvents(t *testing.T) {
	fw := &scriptedForwarder{}
	rules := &staticRules{watched: map[int64]bool{10: true}, terms: []string{"cat"}}
	eng := relay.New(rules, fw, []int64{1}, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eng.Run(ctx)

	eng.Submit(relay.Inbound{ChatID: 10, MessageID: 1, Text: "a cat"})
	eng.Submit(relay.Inbound{ChatID: 10, MessageID: 2, Text: "another cat"})

	deadline := time.After(2 * time.Second)
	for fw.callsTo(1) < 2 {
		select {
		case <-deadline:
			t.Fatalf("only %d forwards observed", fw.callsTo(1))
		case <-time.After(5 * time.Millisecond):
		}
	}
}
