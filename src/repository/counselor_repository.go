package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/ninadtherock/MindCare/src/models"
)

// CounselorRepository manages the counselor directory.
type CounselorRepository interface {
	CreateProfile(profile *models.CounselorProfile) (*models.CounselorProfile, error)
	ListProfiles() ([]models.CounselorProfile, error)
	GetProfileByEmail(email string) (*models.CounselorProfile, error)
	SeedDefaults(profiles []models.CounselorProfile) error
}

type counselorRepository struct {
	db *gorm.DB
}

// NewCounselorRepository creates a GORM-backed CounselorRepository.
func NewCounselorRepository(db *gorm.DB) CounselorRepository {
	return &counselorRepository{db: db}
}

// CreateProfile stores a new counselor profile from enrollment.
func (r *counselorRepository) CreateProfile(profile *models.CounselorProfile) (*models.CounselorProfile, error) {
	if profile.FullName == "" || profile.Email == "" {
		return nil, errors.New("counselor name and email are required")
	}

	if err := r.db.Create(profile).Error; err != nil {
		log.Printf("ERROR: [CounselorRepository] Failed to create profile for %s: %v", profile.Email, err)
		return nil, fmt.Errorf("failed to create counselor profile for %s: %w", profile.Email, err)
	}
	log.Printf("INFO: [CounselorRepository] Created counselor profile ID=%d (%s).", profile.ID, profile.FullName)
	return profile, nil
}

// ListProfiles returns all counselor profiles ordered by rating, best first.
func (r *counselorRepository) ListProfiles() ([]models.CounselorProfile, error) {
	var profiles []models.CounselorProfile
	if err := r.db.Order("rating desc").Find(&profiles).Error; err != nil {
		log.Printf("ERROR: [CounselorRepository] Failed to list counselor profiles: %v", err)
		return nil, fmt.Errorf("failed to list counselor profiles: %w", err)
	}
	return profiles, nil
}

// GetProfileByEmail looks up a counselor by email, returning nil without
// error when no profile exists.
func (r *counselorRepository) GetProfileByEmail(email string) (*models.CounselorProfile, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}

	var profile models.CounselorProfile
	err := r.db.First(&profile, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [CounselorRepository] Failed to fetch counselor %s: %v", email, err)
		return nil, fmt.Errorf("failed to fetch counselor profile for %s: %w", email, err)
	}
	return &profile, nil
}

// SeedDefaults inserts the given profiles when the directory is empty, so a
// fresh deployment has bookable counselors out of the box.
func (r *counselorRepository) SeedDefaults(profiles []models.CounselorProfile) error {
	var count int64
	if err := r.db.Model(&models.CounselorProfile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count counselor profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := r.db.Create(&profiles).Error; err != nil {
		return fmt.Errorf("failed to seed counselor profiles: %w", err)
	}
	log.Printf("INFO: [CounselorRepository] Seeded %d default counselor profiles.", len(profiles))
	return nil
}
