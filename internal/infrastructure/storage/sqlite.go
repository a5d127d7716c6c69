package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shop/storefront/internal/domain/shared"
)

// kvRecord is the gorm model backing the sqlite store
type kvRecord struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for kvRecord
func (kvRecord) TableName() string {
	return "kv_store"
}

// SQLiteStore is the default durable KVStore, backed by an embedded SQLite
// database. Suitable for single-instance deployments.
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the database file at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrating kv_store table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the raw value stored under key, or shared.ErrKeyNotFound
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record kvRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrKeyNotFound, key)
		}
		return nil, err
	}
	return record.Value, nil
}

// Set stores value under key, replacing any previous value
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	record := kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Save(&record).Error
}

// Delete removes key; deleting a missing key is not an error
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error
}

var _ shared.KVStore = (*SQLiteStore)(nil)
