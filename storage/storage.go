// Package storage defines the persisted registry snapshot and the store
// interface the registry saves through.
package storage

import (
	"context"
	"errors"

	"github.com/krelay/kwrelay-bot/pkg/keyword"
)

// Chat is a watched source chat. Label keeps the reference string the
// operator originally supplied, for display only.
type Chat struct {
	ID    int64  `json:"id"`
	Label string `json:"label,omitempty"`
}

// Snapshot is the full registry state as persisted. Slice order is
// insertion order and is preserved across save/load.
type Snapshot struct {
	Chats    []Chat            `json:"chats"`
	Keywords []keyword.Keyword `json:"keywords"`
}

// ErrNotExist is returned by Load when nothing has been persisted yet.
var ErrNotExist = errors.New("no stored snapshot")

type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}
