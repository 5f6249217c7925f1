// Package sqlite persists the registry snapshot in a sqlite database.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"github.com/krelay/kwrelay-bot/pkg/keyword"
	"github.com/krelay/kwrelay-bot/storage"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

type chatModel struct {
	ID     uint  `gorm:"primarykey"`
	ChatID int64 `gorm:"uniqueIndex"`
	Label  string
}

func (chatModel) TableName() string { return "chats" }

type keywordModel struct {
	ID         uint   `gorm:"primarykey"`
	Term       string `gorm:"uniqueIndex"`
	Origin     string
	SourceTerm string
}

func (keywordModel) TableName() string { return "keywords" }

type Store struct {
	db *gorm.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: glogger.New(log.FromContext(ctx), glogger.Config{
			SlowThreshold:             5 * time.Second,
			LogLevel:                  glogger.Error,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&chatModel{}, &keywordModel{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	var chats []chatModel
	if err := s.db.WithContext(ctx).Order("id").Find(&chats).Error; err != nil {
		return storage.Snapshot{}, err
	}
	var keywords []keywordModel
	if err := s.db.WithContext(ctx).Order("id").Find(&keywords).Error; err != nil {
		return storage.Snapshot{}, err
	}
	if len(chats) == 0 && len(keywords) == 0 {
		return storage.Snapshot{}, storage.ErrNotExist
	}
	snap := storage.Snapshot{
		Chats:    make([]storage.Chat, 0, len(chats)),
		Keywords: make([]keyword.Keyword, 0, len(keywords)),
	}
	for _, c := range chats {
		snap.Chats = append(snap.Chats, storage.Chat{ID: c.ChatID, Label: c.Label})
	}
	for _, k := range keywords {
		snap.Keywords = append(snap.Keywords, keyword.Keyword{
			Term:       k.Term,
			Origin:     keyword.Origin(k.Origin),
			SourceTerm: k.SourceTerm,
		})
	}
	return snap, nil
}

// Save replaces the whole stored snapshot in one transaction. The registry
// serializes mutations, so full rewrites stay cheap at this scale.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&chatModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&keywordModel{}).Error; err != nil {
			return err
		}
		for _, c := range snap.Chats {
			if err := tx.Create(&chatModel{ChatID: c.ID, Label: c.Label}).Error; err != nil {
				return err
			}
		}
		for _, k := range snap.Keywords {
			if err := tx.Create(&keywordModel{Term: k.Term, Origin: string(k.Origin), SourceTerm: k.SourceTerm}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
