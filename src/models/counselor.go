package models

import "time"

// CounselorProfile represents a counselor available for session booking.
type CounselorProfile struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FullName        string    `json:"full_name" gorm:"not null"`
	Email           string    `json:"email" gorm:"uniqueIndex;not null"`
	Specialization  string    `json:"specialization"` // comma-separated focus areas
	ExperienceYears int       `json:"experience_years"`
	Bio             string    `json:"bio" gorm:"type:text"`
	Availability    string    `json:"availability"`
	Rating          float64   `json:"rating"`
	Reviews         int       `json:"reviews"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CounselorProfile model.
func (CounselorProfile) TableName() string {
	return "counselor_profiles"
}
