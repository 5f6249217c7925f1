// Package registry holds the authoritative watched-chat and keyword state.
// Every mutation resolves, checks, persists, then commits; a failed persist
// leaves the in-memory state untouched.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/pkg/resolve"
	"github.com/krelay/kwrelay-bot/pkg/stem"
	"github.com/krelay/kwrelay-bot/storage"
)

var (
	ErrChatAlreadyWatched = errors.New("chat is already in the watch list")
	ErrChatNotWatched     = errors.New("chat is not in the watch list")
	ErrKeywordExists      = errors.New("keyword is already in the list")
	ErrKeywordNotFound    = errors.New("keyword is not in the list")
	ErrEmptyTerm          = errors.New("keyword term is empty")
	ErrPersistFailed      = errors.New("failed to persist registry")
)

type Registry struct {
	resolver resolve.Resolver
	store    storage.Store

	// wmu serializes whole mutations (read-modify-persist); mu guards the
	// slices for snapshot reads.
	wmu      sync.Mutex
	mu       sync.RWMutex
	chats    []storage.Chat
	keywords []keyword.Keyword
}

func New(resolver resolve.Resolver, store storage.Store) *Registry {
	return &Registry{resolver: resolver, store: store}
}

// Load restores the persisted snapshot. Absent or malformed data is not
// fatal: the registry starts empty and the problem is logged.
func (r *Registry) Load(ctx context.Context) {
	logger := log.FromContext(ctx)
	snap, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			logger.Info("no stored registry snapshot, starting empty")
		} else {
			logger.Warn("failed to load registry snapshot, starting empty", "error", err)
		}
		return
	}
	r.mu.Lock()
	r.chats = snap.Chats
	r.keywords = snap.Keywords
	r.mu.Unlock()
	logger.Info("registry loaded", "chats", len(snap.Chats), "keywords", len(snap.Keywords))
}

func (r *Registry) persist(ctx context.Context, chats []storage.Chat, keywords []keyword.Keyword) error {
	if err := r.store.Save(ctx, storage.Snapshot{Chats: chats, Keywords: keywords}); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	r.mu.Lock()
	r.chats = chats
	r.keywords = keywords
	r.mu.Unlock()
	return nil
}

// AddChat resolves the reference and adds the chat. Uniqueness is by
// resolved id: two references for the same chat are duplicates.
func (r *Registry) AddChat(ctx context.Context, ref string) (storage.Chat, error) {
	id, err := r.resolver.Resolve(ctx, ref)
	if err != nil {
		return storage.Chat{}, fmt.Errorf("resolve %q: %w", ref, err)
	}
	r.wmu.Lock()
	defer r.wmu.Unlock()
	for _, c := range r.snapshotChats() {
		if c.ID == id {
			return c, ErrChatAlreadyWatched
		}
	}
	chat := storage.Chat{ID: id, Label: strings.TrimSpace(ref)}
	next := append(r.snapshotChats(), chat)
	if err := r.persist(ctx, next, r.snapshotKeywords()); err != nil {
		return storage.Chat{}, err
	}
	return chat, nil
}

// RemoveChat resolves the reference and removes the chat by resolved id.
func (r *Registry) RemoveChat(ctx context.Context, ref string) (storage.Chat, error) {
	id, err := r.resolver.Resolve(ctx, ref)
	if err != nil {
		return storage.Chat{}, fmt.Errorf("resolve %q: %w", ref, err)
	}
	r.wmu.Lock()
	defer r.wmu.Unlock()
	chats := r.snapshotChats()
	idx := slices.IndexFunc(chats, func(c storage.Chat) bool { return c.ID == id })
	if idx < 0 {
		return storage.Chat{}, ErrChatNotWatched
	}
	removed := chats[idx]
	next := slices.Delete(chats, idx, idx+1)
	if err := r.persist(ctx, next, r.snapshotKeywords()); err != nil {
		return storage.Chat{}, err
	}
	return removed, nil
}

// ListChats returns the watched chats in insertion order.
func (r *Registry) ListChats() []storage.Chat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.chats)
}

// IsWatched reports whether the chat id is in the watch list.
func (r *Registry) IsWatched(chatID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.ContainsFunc(r.chats, func(c storage.Chat) bool { return c.ID == chatID })
}

// AddKeyword lowercases the term and inserts it, plus a stemmed derivative
// when requested and distinct. Returns every keyword actually inserted;
// ErrKeywordExists when nothing was.
func (r *Registry) AddKeyword(ctx context.Context, term string, stemming bool) ([]keyword.Keyword, error) {
	derived := keyword.Derive(term, stemming)
	if len(derived) == 0 {
		return nil, ErrEmptyTerm
	}
	r.wmu.Lock()
	defer r.wmu.Unlock()
	existing := make(map[string]struct{}, len(r.keywords))
	for _, k := range r.snapshotKeywords() {
		existing[k.Term] = struct{}{}
	}
	var added []keyword.Keyword
	for _, k := range derived {
		if _, ok := existing[k.Term]; !ok {
			added = append(added, k)
			existing[k.Term] = struct{}{}
		}
	}
	if len(added) == 0 {
		return nil, ErrKeywordExists
	}
	next := append(r.snapshotKeywords(), added...)
	if err := r.persist(ctx, r.snapshotChats(), next); err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveKeyword removes the literal term plus anything reachable from it:
// entries equal to its stem under either language's rules, and derivatives
// whose source term is the literal. Keywords are unique by text, so a
// coincidentally equal independent entry is removed too.
func (r *Registry) RemoveKeyword(ctx context.Context, term string) ([]keyword.Keyword, error) {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return nil, ErrEmptyTerm
	}
	victims := map[string]struct{}{t: {}}
	for _, root := range stem.Roots(t) {
		victims[root] = struct{}{}
	}
	r.wmu.Lock()
	defer r.wmu.Unlock()
	var removed []keyword.Keyword
	var next []keyword.Keyword
	for _, k := range r.snapshotKeywords() {
		_, hit := victims[k.Term]
		if hit || k.SourceTerm == t {
			removed = append(removed, k)
			continue
		}
		next = append(next, k)
	}
	if len(removed) == 0 {
		return nil, ErrKeywordNotFound
	}
	if err := r.persist(ctx, r.snapshotChats(), next); err != nil {
		return nil, err
	}
	return removed, nil
}

// ListKeywords returns the keywords in insertion order.
func (r *Registry) ListKeywords() []keyword.Keyword {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.keywords)
}

// Terms returns just the match terms, for the relay engine.
func (r *Registry) Terms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	terms := make([]string, 0, len(r.keywords))
	for _, k := range r.keywords {
		terms = append(terms, k.Term)
	}
	return terms
}

func (r *Registry) snapshotChats() []storage.Chat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.chats)
}

func (r *Registry) snapshotKeywords() []keyword.Keyword {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.keywords)
}
