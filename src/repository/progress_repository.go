package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/realtime"
)

// ProgressRepository stores per-user mood tracking entries.
type ProgressRepository interface {
	InsertEntry(entry *models.ProgressEntry) (*models.ProgressEntry, error)
	GetEntriesByUserID(userID string) ([]models.ProgressEntry, error)
	HasEntryForDay(userID string, day time.Time) (bool, error)
}

type progressRepository struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewProgressRepository creates a GORM-backed ProgressRepository.
func NewProgressRepository(db *gorm.DB, hub *realtime.Hub) ProgressRepository {
	return &progressRepository{db: db, hub: hub}
}

// InsertEntry stores a new progress entry and publishes a change event.
func (r *progressRepository) InsertEntry(entry *models.ProgressEntry) (*models.ProgressEntry, error) {
	if entry.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}

	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("ERROR: [ProgressRepository] Failed to insert progress entry for userID %s: %v", entry.UserID, err)
		return nil, fmt.Errorf("failed to insert progress entry for userID %s: %w", entry.UserID, err)
	}

	log.Printf("INFO: [ProgressRepository] Inserted progress entry ID=%d for userID %s (mood=%d).", entry.ID, entry.UserID, entry.MoodScore)

	if r.hub != nil {
		r.hub.Publish(realtime.Event{Table: models.ProgressEntry{}.TableName(), UserID: entry.UserID, Action: "insert"})
	}
	return entry, nil
}

// GetEntriesByUserID returns the user's progress entries ordered by date,
// oldest first.
func (r *progressRepository) GetEntriesByUserID(userID string) ([]models.ProgressEntry, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var entries []models.ProgressEntry
	err := r.db.Where("user_id = ?", userID).Order("date asc").Find(&entries).Error
	if err != nil {
		log.Printf("ERROR: [ProgressRepository] Failed to query progress entries for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to query progress entries for userID %s: %w", userID, err)
	}
	return entries, nil
}

// HasEntryForDay reports whether the user already has an entry on the
// calendar day containing the given time.
func (r *progressRepository) HasEntryForDay(userID string, day time.Time) (bool, error) {
	if userID == "" {
		return false, errors.New("user ID cannot be empty")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.Model(&models.ProgressEntry{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ProgressRepository] Failed to check entry for userID %s on %s: %v", userID, start.Format("2006-01-02"), err)
		return false, fmt.Errorf("failed to check progress entry for userID %s: %w", userID, err)
	}
	return count > 0, nil
}
