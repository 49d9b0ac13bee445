package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens the database connection for the given DSN and returns the
// handle for injection into repositories. "memory" (or an empty DSN) uses a
// shared in-memory SQLite database; anything else is treated as a SQLite
// file path.
func Init(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	if dsn == "memory" || dsn == "" {
		log.Println("INFO: [Database] Initializing in-memory SQLite database.")
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open in-memory database: %w", err)
		}
		return db, nil
	}

	log.Printf("INFO: [Database] Initializing file-based SQLite database at %q.", dsn)
	dbDir := filepath.Dir(dsn)
	if dbDir != "." && dbDir != "/" {
		if _, statErr := os.Stat(dbDir); os.IsNotExist(statErr) {
			if mkdirErr := os.MkdirAll(dbDir, 0755); mkdirErr != nil {
				return nil, fmt.Errorf("failed to create database directory %q: %w", dbDir, mkdirErr)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database (DSN %q): %w", dsn, err)
	}
	log.Println("INFO: [Database] Database connection established successfully.")
	return db, nil
}
