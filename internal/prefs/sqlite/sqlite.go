// Package sqlite is a prefs.Store on an embedded SQLite database.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	sqlitedriver "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/tomz197/portfolio/internal/prefs"
)

// memoryDSN is a shared in-memory database, used when no path is given.
const memoryDSN = "file::memory:?cache=shared"

// Preference is one stored row. Name holds the preference key.
type Preference struct {
	Owner     string `gorm:"primaryKey;size:128"`
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"size:256"`
	UpdatedAt time.Time
}

// Store implements prefs.Store with gorm.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates the schema. An
// empty path opens an in-memory database.
func Open(path string, l *log.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = memoryDSN
	}
	db, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("migrate preferences: %w", err)
	}
	if path == "" {
		l.Info("Using in-memory preference store")
	} else {
		l.Info("Using preference store", "path", path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, owner, key string) (string, bool, error) {
	var p Preference
	err := s.db.WithContext(ctx).
		Where("owner = ? AND name = ?", owner, key).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return p.Value, true, nil
}

func (s *Store) Put(ctx context.Context, owner, key, value string) error {
	p := Preference{Owner: owner, Name: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("put preference %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ prefs.Store = (*Store)(nil)
