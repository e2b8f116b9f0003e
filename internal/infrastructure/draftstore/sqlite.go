package draftstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DraftBlob is a single keyed draft payload. The wizard keeps one row per
// recovery key, overwritten on every autosave.
type DraftBlob struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Payload   []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DraftBlob) TableName() string {
	return "draft_blobs"
}

// SQLiteStore persists draft payloads in a local SQLite file so an
// interrupted wizard session survives process restarts.
type SQLiteStore struct {
	db *gorm.DB
}

// Open opens (or creates) the draft store at the given path
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create draft store dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}

	if err := db.AutoMigrate(&DraftBlob{}); err != nil {
		return nil, fmt.Errorf("migrate draft store: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the payload stored under key, or (nil, nil) when absent
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob DraftBlob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob.Payload, nil
}

// Set stores the payload under key, replacing any previous value
func (s *SQLiteStore) Set(ctx context.Context, key string, payload []byte) error {
	blob := DraftBlob{Key: key, Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&blob).Error
}

// Delete removes the payload stored under key. Deleting a missing key is
// not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&DraftBlob{}, "key = ?", key).Error
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
