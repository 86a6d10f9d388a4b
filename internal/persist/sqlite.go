package persist

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// snapshotRow is the single-table schema backing the SQLite adapter: one row
// per store key holding the latest serialized snapshot.
type snapshotRow struct {
	Key       string `gorm:"primaryKey;size:255"`
	Data      []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string {
	return "snapshots"
}

// SQLiteAdapter persists snapshots in a local SQLite database.
type SQLiteAdapter struct {
	db *gorm.DB
}

// NewSQLiteAdapter opens (or creates) the database file and migrates the
// snapshot table.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &SQLiteAdapter{db: db}, nil
}

func (a *SQLiteAdapter) Load(ctx context.Context, key string) ([]byte, error) {
	var row snapshotRow
	err := a.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

func (a *SQLiteAdapter) Save(ctx context.Context, key string, data []byte) error {
	row := snapshotRow{Key: key, Data: data, UpdatedAt: time.Now()}
	return a.db.WithContext(ctx).Save(&row).Error
}
