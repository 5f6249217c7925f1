package registry_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/registry"
	"github.com/krelay/kwrelay-bot/storage"
)

type fakeResolver struct {
	ids map[string]int64
}

func (f *fakeResolver) Resolve(_ context.Context, ref string) (int64, error) {
	id, ok := f.ids[ref]
	if !ok {
		return 0, fmt.Errorf("no such chat: %s", ref)
	}
	return id, nil
}

type fakeStore struct {
	mu    sync.Mutex
	saved storage.Snapshot
	saves int
	fail  error
}

func (f *fakeStore) Load(context.Context) (storage.Snapshot, error) {
	return storage.Snapshot{}, storage.ErrNotExist
}

func (f *fakeStore) Save(_ context.Context, snap storage.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.saved = snap
	f.saves++
	return nil
}

func newRegistry(ids map[string]int64) (*registry.Registry, *fakeStore) {
	store := &fakeStore{}
	return registry.New(&fakeResolver{ids: ids}, store), store
}

func TestAddChatDuplicateByResolvedID(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(map[string]int64{
		"@alias_one": 1001,
		"@alias_two": 1001,
	})
	if _, err := reg.AddChat(ctx, "@alias_one"); err != nil {
		t.Fatalf("first AddChat: %v", err)
	}
	_, err := reg.AddChat(ctx, "@alias_two")
	if !errors.Is(err, registry.ErrChatAlreadyWatched) {
		t.Fatalf("second AddChat error = %v, want ErrChatAlreadyWatched", err)
	}
	if got := len(reg.ListChats()); got != 1 {
		t.Fatalf("ListChats length = %d, want 1", got)
	}
}

func TestRemoveThenAddChat(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(map[string]int64{"@chan": 7, "7": 7})
	if _, err := reg.AddChat(ctx, "@chan"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.RemoveChat(ctx, "7"); err != nil {
		t.Fatalf("RemoveChat by different reference: %v", err)
	}
	if reg.IsWatched(7) {
		t.Fatal("chat still watched after removal")
	}
	if _, err := reg.AddChat(ctx, "@chan"); err != nil {
		t.Fatalf("re-add after removal: %v", err)
	}
	if !reg.IsWatched(7) {
		t.Fatal("chat not watched after re-add")
	}
}

func TestRemoveChatNotWatched(t *testing.T) {
	reg, _ := newRegistry(map[string]int64{"@chan": 7})
	_, err := reg.RemoveChat(context.Background(), "@chan")
	if !errors.Is(err, registry.ErrChatNotWatched) {
		t.Fatalf("error = %v, want ErrChatNotWatched", err)
	}
}

func TestAddKeywordLowercasesLiteral(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(nil)
	added, err := reg.AddKeyword(ctx, "Test", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 1 || added[0].Term != "test" {
		t.Fatalf("added = %+v, want single lowercase test", added)
	}
	list := reg.ListKeywords()
	if len(list) != 1 || list[0].Term != "test" {
		t.Fatalf("ListKeywords = %+v", list)
	}
}

func TestAddKeywordWithStemmingInsertsBoth(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(nil)
	added, err := reg.AddKeyword(ctx, "running", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 2 {
		t.Fatalf("added %d keywords, want 2: %+v", len(added), added)
	}
	if added[0].Term != "running" || added[1].Term != "run" {
		t.Fatalf("added = %+v", added)
	}
	if added[1].SourceTerm != "running" || added[1].Origin != keyword.OriginStemmed {
		t.Fatalf("derivative = %+v", added[1])
	}

	removed, err := reg.RemoveKeyword(ctx, "running")
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed %d keywords, want 2: %+v", len(removed), removed)
	}
	if got := len(reg.ListKeywords()); got != 0 {
		t.Fatalf("ListKeywords length = %d, want 0", got)
	}
}

func TestRemoveDerivativeKeepsLiteral(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(nil)
	if _, err := reg.AddKeyword(ctx, "running", true); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.RemoveKeyword(ctx, "run"); err != nil {
		t.Fatal(err)
	}
	list := reg.ListKeywords()
	if len(list) != 1 || list[0].Term != "running" {
		t.Fatalf("ListKeywords = %+v, want only running", list)
	}
}

func TestAddKeywordAlreadyPresent(t *testing.T) {
	ctx := context.Background()
	reg, _ := newRegistry(nil)
	if _, err := reg.AddKeyword(ctx, "cat", false); err != nil {
		t.Fatal(err)
	}
	_, err := reg.AddKeyword(ctx, "CAT", false)
	if !errors.Is(err, registry.ErrKeywordExists) {
		t.Fatalf("error = %v, want ErrKeywordExists", err)
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(map[string]int64{"@chan": 7})
	store.fail = errors.New("disk full")

	_, err := reg.AddChat(ctx, "@chan")
	if !errors.Is(err, registry.ErrPersistFailed) {
		t.Fatalf("AddChat error = %v, want ErrPersistFailed", err)
	}
	if len(reg.ListChats()) != 0 {
		t.Fatal("chat committed despite persist failure")
	}

	_, err = reg.AddKeyword(ctx, "cat", false)
	if !errors.Is(err, registry.ErrPersistFailed) {
		t.Fatalf("AddKeyword error = %v, want ErrPersistFailed", err)
	}
	if len(reg.ListKeywords()) != 0 {
		t.Fatal("keyword committed despite persist failure")
	}

	// Recovery after the store heals.
	store.fail = nil
	if _, err := reg.AddKeyword(ctx, "cat", false); err != nil {
		t.Fatalf("AddKeyword after recovery: %v", err)
	}
}

func TestConcurrentAddKeywordNoLostUpdate(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(nil)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := reg.AddKeyword(ctx, fmt.Sprintf("term%02d", i), false); err != nil {
				t.Errorf("AddKeyword %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	list := reg.ListKeywords()
	if len(list) != n {
		t.Fatalf("ListKeywords length = %d, want %d", len(list), n)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.saved.Keywords) != n {
		t.Fatalf("persisted %d keywords, want %d", len(store.saved.Keywords), n)
	}
}

func TestLoadStartsEmptyOnError(t *testing.T) {
	reg := registry.New(&fakeResolver{}, &failingStore{})
	reg.Load(context.Background())
	if len(reg.ListChats()) != 0 || len(reg.ListKeywords()) != 0 {
		t.Fatal("registry not empty after failed load")
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context) (storage.Snapshot, error) {
	return storage.Snapshot{}, errors.New("corrupted")
}

func (failingStore) Save(context.Context, storage.Snapshot) error { return nil }
