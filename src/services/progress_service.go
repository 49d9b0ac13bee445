package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/realtime"
	"github.com/ninadtherock/MindCare/src/repository"
	"github.com/ninadtherock/MindCare/src/utils"
)

// Mood distribution bucket labels, keyed off assessment scores.
const (
	MoodVeryHappy = "Very Happy"
	MoodHappy     = "Happy"
	MoodNeutral   = "Neutral"
	MoodSad       = "Sad"
	MoodVerySad   = "Very Sad"
)

// ProgressService assembles the per-user progress view: tracked mood
// entries, assessment history and the derived mood distribution. Snapshots
// are cached per user; change events from the realtime hub invalidate the
// affected user's cache so the next read refetches.
type ProgressService interface {
	GetSnapshot(userID string) (*models.ProgressSnapshot, error)
}

type progressService struct {
	progressRepo   repository.ProgressRepository
	assessmentRepo repository.AssessmentRepository
	hub            *realtime.Hub

	mu       sync.Mutex
	cache    map[string]*models.ProgressSnapshot
	watching map[string]bool
}

// NewProgressService creates a ProgressService. The hub may be nil, in
// which case snapshots are recomputed on every read.
func NewProgressService(progressRepo repository.ProgressRepository, assessmentRepo repository.AssessmentRepository, hub *realtime.Hub) ProgressService {
	return &progressService{
		progressRepo:   progressRepo,
		assessmentRepo: assessmentRepo,
		hub:            hub,
		cache:          make(map[string]*models.ProgressSnapshot),
		watching:       make(map[string]bool),
	}
}

// GetSnapshot returns the user's progress view, creating today's progress
// entry from the latest assessment when one is missing.
func (s *progressService) GetSnapshot(userID string) (*models.ProgressSnapshot, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	s.ensureWatch(userID)

	// Without a hub there is nothing to invalidate a cached snapshot, so
	// caching would serve the first read forever. Recompute instead.
	if s.hub != nil {
		s.mu.Lock()
		if cached, ok := s.cache[userID]; ok {
			s.mu.Unlock()
			return cached, nil
		}
		s.mu.Unlock()
	}

	if err := s.ensureTodayEntry(userID); err != nil {
		// A missing auto-entry degrades the view but should not hide it.
		log.Printf("WARN: [ProgressService] Could not create today's progress entry for userID %s: %v", userID, err)
	}

	assessments, err := s.assessmentRepo.GetAssessmentsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching assessments: %w", err)
	}

	entries, err := s.progressRepo.GetEntriesByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching progress entries: %w", err)
	}

	snapshot := &models.ProgressSnapshot{
		UserID:           userID,
		Entries:          entries,
		Assessments:      assessments,
		MoodDistribution: moodDistribution(assessments),
		GeneratedAt:      time.Now(),
	}

	if s.hub != nil {
		s.mu.Lock()
		s.cache[userID] = snapshot
		s.mu.Unlock()
	}
	return snapshot, nil
}

// ensureWatch subscribes once per user to assessment and progress changes;
// any event drops that user's cached snapshot.
func (s *progressService) ensureWatch(userID string) {
	if s.hub == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching[userID] {
		return
	}
	s.watching[userID] = true

	invalidate := func(ev realtime.Event) {
		s.mu.Lock()
		delete(s.cache, ev.UserID)
		s.mu.Unlock()
	}
	s.hub.Subscribe(models.Assessment{}.TableName(), userID, invalidate)
	s.hub.Subscribe(models.ProgressEntry{}.TableName(), userID, invalidate)
}

// ensureTodayEntry derives a progress entry from the latest assessment when
// the user has none for the current day: mood score is the assessment score
// halved and clamped to 1..10, activities scale with severity. Users with no
// assessments get no auto-entry.
func (s *progressService) ensureTodayEntry(userID string) error {
	exists, err := s.progressRepo.HasEntryForDay(userID, time.Now())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	latest, err := s.assessmentRepo.GetLatestAssessment(userID)
	if err != nil {
		return err
	}
	if latest == nil {
		return nil
	}

	entry := &models.ProgressEntry{
		UserID:    userID,
		Date:      time.Now(),
		MoodScore: utils.Clamp(int(math.Round(float64(latest.Score)/2)), 1, 10),
	}
	entry.SetActivities(activitiesForSeverity(latest.SeverityLevel))

	_, err = s.progressRepo.InsertEntry(entry)
	return err
}

func activitiesForSeverity(level models.SeverityLevel) []string {
	switch level {
	case models.SeverityMinor:
		return []string{"meditation"}
	case models.SeverityMild:
		return []string{"meditation", "journaling"}
	default:
		return []string{"meditation", "journaling", "exercise"}
	}
}

// moodDistribution buckets assessment scores into the five mood labels.
func moodDistribution(assessments []models.Assessment) map[string]int {
	distribution := map[string]int{
		MoodVeryHappy: 0,
		MoodHappy:     0,
		MoodNeutral:   0,
		MoodSad:       0,
		MoodVerySad:   0,
	}
	for _, a := range assessments {
		switch {
		case a.Score >= 9:
			distribution[MoodVeryHappy]++
		case a.Score >= 7:
			distribution[MoodHappy]++
		case a.Score >= 5:
			distribution[MoodNeutral]++
		case a.Score >= 3:
			distribution[MoodSad]++
		default:
			distribution[MoodVerySad]++
		}
	}
	return distribution
}
