package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotRow is the single table used by the SQLite backend. Snapshots
// stay opaque JSON blobs; nothing queries inside them.
type snapshotRow struct {
	Key       string `gorm:"primaryKey;column:key"`
	Data      []byte `gorm:"column:data"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string {
	return "snapshots"
}

// SQLiteBackend stores snapshots in a local SQLite database.
type SQLiteBackend struct {
	db *gorm.DB
}

// NewSQLiteBackend opens (or creates) the database at path and migrates
// the snapshot table.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return row.Data, true, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, key string, data []byte) error {
	row := snapshotRow{Key: key, Data: data, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
