package models

import (
	"time"
)

// SeverityLevel classifies a completed assessment.
type SeverityLevel string

const (
	SeverityMinor SeverityLevel = "minor"
	SeverityMild  SeverityLevel = "mild"
	SeverityMajor SeverityLevel = "major"
)

// Question defines a single questionnaire question.
// Only the root question carries NextQuestions; every other question
// belongs to exactly one category.
type Question struct {
	ID            string              `json:"id"`
	Text          string              `json:"text"`
	Options       []string            `json:"options"`
	NextQuestions map[string][]string `json:"next_questions,omitempty"` // option label -> follow-up question IDs
	Category      string              `json:"category,omitempty"`
}

// SeverityResult is derived from a completed answer set. It is recomputed
// on demand and never stored as part of session state.
type SeverityResult struct {
	Level SeverityLevel `json:"level"`
	Score int           `json:"score"` // 0-20
}

// Assessment is a persisted record of a completed assessment session.
type Assessment struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	UserID          string        `json:"user_id" gorm:"index;not null"`
	AssessmentDate  time.Time     `json:"assessment_date" gorm:"index"`
	SeverityLevel   SeverityLevel `json:"severity_level" gorm:"type:varchar(20);not null"`
	Score           int           `json:"score"`
	Recommendations string        `json:"recommendations" gorm:"type:text"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TableName specifies the table name for the Assessment model.
func (Assessment) TableName() string {
	return "assessments"
}
