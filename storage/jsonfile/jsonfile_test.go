package jsonfile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/storage"
	"github.com/krelay/kwrelay-bot/storage/jsonfile"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	s := jsonfile.New(path)
	ctx := context.Background()

	snap := storage.Snapshot{
		Chats: []storage.Chat{
			{ID: -1001234567890, Label: "@some_channel"},
			{ID: 42, Label: "42"},
		},
		Keywords: []keyword.Keyword{
			{Term: "running", Origin: keyword.OriginLiteral},
			{Term: "run", Origin: keyword.OriginStemmed, SourceTerm: "running"},
		},
	}
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Chats) != 2 || got.Chats[0] != snap.Chats[0] || got.Chats[1] != snap.Chats[1] {
		t.Fatalf("chats = %+v, want %+v", got.Chats, snap.Chats)
	}
	if len(got.Keywords) != 2 || got.Keywords[1].SourceTerm != "running" {
		t.Fatalf("keywords = %+v, want %+v", got.Keywords, snap.Keywords)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := jsonfile.New(filepath.Join(t.TempDir(), "nope.json"))
	_, err := s.Load(context.Background())
	if !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("Load error = %v, want ErrNotExist", err)
	}
}

func TestLoadLegacyFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	legacy := `{"chats": ["-1001234567890", "42"], "keywords": ["Cat", "dog"]}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := jsonfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Chats) != 2 || got.Chats[0].ID != -1001234567890 || got.Chats[1].ID != 42 {
		t.Fatalf("chats = %+v", got.Chats)
	}
	if len(got.Keywords) != 2 || got.Keywords[0].Term != "cat" || got.Keywords[0].Origin != keyword.OriginLiteral {
		t.Fatalf("keywords = %+v", got.Keywords)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := jsonfile.New(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
