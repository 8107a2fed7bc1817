package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Journal is the local record of mutations sent to the server. It never
// stores tasks for reading back, only what was attempted and how it ended.
type Journal struct {
	db *gorm.DB
}

// Open sets up the journal database at path and runs migrations
func Open(path string) (*Journal, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err := db.AutoMigrate(&Mutation{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
