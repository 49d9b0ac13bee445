package models

import (
	"strings"
	"time"
)

// ProgressEntry records one day of mood tracking for a user. Activities are
// stored as a comma-separated list to keep the schema portable across SQLite
// and Postgres.
type ProgressEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	Date       time.Time `json:"date" gorm:"index"`
	MoodScore  int       `json:"mood_score"` // 1-10
	Activities string    `json:"-" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the ProgressEntry model.
func (ProgressEntry) TableName() string {
	return "progress_tracking"
}

// ActivityList splits the stored activities into a slice. An empty field
// yields an empty slice, not [""].
func (p *ProgressEntry) ActivityList() []string {
	if p.Activities == "" {
		return []string{}
	}
	return strings.Split(p.Activities, ",")
}

// SetActivities stores the given activities on the entry.
func (p *ProgressEntry) SetActivities(activities []string) {
	p.Activities = strings.Join(activities, ",")
}

// ProgressSnapshot is the aggregate view served to the progress page: the
// user's tracked entries, their assessment history and the derived mood
// distribution.
type ProgressSnapshot struct {
	UserID           string          `json:"user_id"`
	Entries          []ProgressEntry `json:"entries"`
	Assessments      []Assessment    `json:"assessments"`
	MoodDistribution map[string]int  `json:"mood_distribution"`
	GeneratedAt      time.Time       `json:"generated_at"`
}
