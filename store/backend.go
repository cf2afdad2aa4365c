// store/backend.go
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"guild-economy-system/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Backend persists and restores the serialized state document.
type Backend interface {
	// Load returns the last saved snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context) ([]byte, error)
	// Save durably replaces the snapshot.
	Save(ctx context.Context, data []byte) error
}

// FileBackend keeps the snapshot in a single JSON file, written via a temp
// file and rename so a crash mid-write never corrupts the previous snapshot.
type FileBackend struct {
	Path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", b.Path, err)
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, b.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// PostgresBackend keeps the snapshot in a single database row, upserted on
// every flush. Used when DATABASE_URL is set.
type PostgresBackend struct {
	DB *gorm.DB
}

func NewPostgresBackend(dsn string) (*PostgresBackend, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect snapshot database: %w", err)
	}
	if err := db.AutoMigrate(&models.SnapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return &PostgresBackend{DB: db}, nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]byte, error) {
	var row models.SnapshotRow
	err := b.DB.WithContext(ctx).Where("id = ?", 1).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot row: %w", err)
	}
	return row.Data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, data []byte) error {
	row := models.SnapshotRow{ID: 1, Data: data, SavedAt: time.Now().UTC()}
	err := b.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"seq":      gorm.Expr("state_snapshots.seq + 1"),
			"data":     data,
			"saved_at": row.SavedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot row: %w", err)
	}
	return nil
}
