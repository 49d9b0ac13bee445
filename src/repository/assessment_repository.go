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

// AssessmentRepository defines the persistence contract for completed
// assessments: insert once, query per user ordered by date.
type AssessmentRepository interface {
	InsertAssessment(assessment *models.Assessment) (*models.Assessment, error)
	GetAssessmentsByUserID(userID string) ([]models.Assessment, error)
	GetLatestAssessment(userID string) (*models.Assessment, error)
}

type assessmentRepository struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewAssessmentRepository creates a GORM-backed AssessmentRepository. The
// hub may be nil when change notifications are not needed (tests).
func NewAssessmentRepository(db *gorm.DB, hub *realtime.Hub) AssessmentRepository {
	return &assessmentRepository{db: db, hub: hub}
}

// InsertAssessment stores a completed assessment record and publishes a
// change event for the owning user.
func (r *assessmentRepository) InsertAssessment(assessment *models.Assessment) (*models.Assessment, error) {
	if assessment.UserID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if assessment.AssessmentDate.IsZero() {
		assessment.AssessmentDate = time.Now()
	}

	if err := r.db.Create(assessment).Error; err != nil {
		log.Printf("ERROR: [AssessmentRepository] Failed to insert assessment for userID %s: %v", assessment.UserID, err)
		return nil, fmt.Errorf("failed to insert assessment for userID %s: %w", assessment.UserID, err)
	}

	log.Printf("INFO: [AssessmentRepository] Inserted assessment ID=%d for userID %s (level=%s, score=%d).",
		assessment.ID, assessment.UserID, assessment.SeverityLevel, assessment.Score)

	if r.hub != nil {
		r.hub.Publish(realtime.Event{Table: models.Assessment{}.TableName(), UserID: assessment.UserID, Action: "insert"})
	}
	return assessment, nil
}

// GetAssessmentsByUserID returns the user's assessments ordered by
// assessment date, oldest first.
func (r *assessmentRepository) GetAssessmentsByUserID(userID string) ([]models.Assessment, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var assessments []models.Assessment
	err := r.db.Where("user_id = ?", userID).Order("assessment_date asc").Find(&assessments).Error
	if err != nil {
		log.Printf("ERROR: [AssessmentRepository] Failed to query assessments for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to query assessments for userID %s: %w", userID, err)
	}
	return assessments, nil
}

// GetLatestAssessment returns the most recent assessment for the user, or
// nil without error when the user has none.
func (r *assessmentRepository) GetLatestAssessment(userID string) (*models.Assessment, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	var assessment models.Assessment
	err := r.db.Where("user_id = ?", userID).Order("assessment_date desc").First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [AssessmentRepository] Failed to fetch latest assessment for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch latest assessment for userID %s: %w", userID, err)
	}
	return &assessment, nil
}
