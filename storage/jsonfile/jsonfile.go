// Package jsonfile persists the registry snapshot as a single JSON file,
// compatible with the historical {"chats": [...], "keywords": [...]}
// layout where both lists held bare strings.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/storage"
)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

type fileData struct {
	Chats    []chatEntry    `json:"chats"`
	Keywords []keywordEntry `json:"keywords"`
}

// chatEntry accepts either the current object form or a legacy bare
// string / number holding the chat id.
type chatEntry storage.Chat

func (c *chatEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("legacy chat entry %q is not a chat id: %w", s, err)
		}
		*c = chatEntry{ID: id}
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = chatEntry{ID: n}
		return nil
	}
	var obj struct {
		ID    int64  `json:"id"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.ID == 0 {
		return errors.New("chat entry has no id")
	}
	*c = chatEntry{ID: obj.ID, Label: obj.Label}
	return nil
}

// keywordEntry accepts either the current object form or a legacy bare
// string, which becomes a literal keyword.
type keywordEntry keyword.Keyword

func (k *keywordEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = keywordEntry{Term: strings.ToLower(strings.TrimSpace(s)), Origin: keyword.OriginLiteral}
		return nil
	}
	var obj struct {
		Term       string         `json:"term"`
		Origin     keyword.Origin `json:"origin"`
		SourceTerm string         `json:"source_term"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Term == "" {
		return errors.New("keyword entry has no term")
	}
	if obj.Origin == "" {
		obj.Origin = keyword.OriginLiteral
	}
	*k = keywordEntry{Term: obj.Term, Origin: obj.Origin, SourceTerm: obj.SourceTerm}
	return nil
}

func (s *Store) Load(_ context.Context) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.Snapshot{}, storage.ErrNotExist
		}
		return storage.Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return storage.Snapshot{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	snap := storage.Snapshot{
		Chats:    make([]storage.Chat, 0, len(data.Chats)),
		Keywords: make([]keyword.Keyword, 0, len(data.Keywords)),
	}
	for _, c := range data.Chats {
		snap.Chats = append(snap.Chats, storage.Chat(c))
	}
	for _, k := range data.Keywords {
		snap.Keywords = append(snap.Keywords, keyword.Keyword(k))
	}
	return snap, nil
}

func (s *Store) Save(_ context.Context, snap storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash mid-save never leaves a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
