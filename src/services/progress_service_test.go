package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/realtime"
)

// MockProgressRepository is a mock type for the ProgressRepository interface
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) InsertEntry(entry *models.ProgressEntry) (*models.ProgressEntry, error) {
	args := m.Called(entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressEntry), args.Error(1)
}

func (m *MockProgressRepository) GetEntriesByUserID(userID string) ([]models.ProgressEntry, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressEntry), args.Error(1)
}

func (m *MockProgressRepository) HasEntryForDay(userID string, day time.Time) (bool, error) {
	args := m.Called(userID, day)
	return args.Bool(0), args.Error(1)
}

func TestProgressService_GetSnapshot(t *testing.T) {
	userID := "user1"

	t.Run("Snapshot aggregates entries, assessments and distribution", func(t *testing.T) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		service := NewProgressService(mockProgress, mockAssessments, nil)

		assessments := []models.Assessment{
			{UserID: userID, Score: 2, SeverityLevel: models.SeverityMinor},
			{UserID: userID, Score: 6, SeverityLevel: models.SeverityMild},
			{UserID: userID, Score: 10, SeverityLevel: models.SeverityMild},
		}
		entries := []models.ProgressEntry{
			{UserID: userID, MoodScore: 4},
			{UserID: userID, MoodScore: 5},
		}

		mockAssessments.On("GetAssessmentsByUserID", userID).Return(assessments, nil).Once()
		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
		mockProgress.On("GetEntriesByUserID", userID).Return(entries, nil).Once()

		snapshot, err := service.GetSnapshot(userID)

		assert.NoError(t, err)
		assert.Equal(t, userID, snapshot.UserID)
		assert.Len(t, snapshot.Entries, 2)
		assert.Len(t, snapshot.Assessments, 3)
		assert.Equal(t, 1, snapshot.MoodDistribution[MoodVeryHappy]) // 10
		assert.Equal(t, 0, snapshot.MoodDistribution[MoodHappy])
		assert.Equal(t, 1, snapshot.MoodDistribution[MoodNeutral]) // 6
		assert.Equal(t, 0, snapshot.MoodDistribution[MoodSad])
		assert.Equal(t, 1, snapshot.MoodDistribution[MoodVerySad]) // 2
		mockAssessments.AssertExpectations(t)
		mockProgress.AssertExpectations(t)
	})

	t.Run("Missing day entry is derived from the latest assessment", func(t *testing.T) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		service := NewProgressService(mockProgress, mockAssessments, nil)

		latest := models.Assessment{UserID: userID, Score: 10, SeverityLevel: models.SeverityMild}
		assessments := []models.Assessment{
			{UserID: userID, Score: 3, SeverityLevel: models.SeverityMinor},
			latest,
		}

		mockAssessments.On("GetAssessmentsByUserID", userID).Return(assessments, nil).Once()
		mockAssessments.On("GetLatestAssessment", userID).Return(&latest, nil).Once()
		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
		mockProgress.On("InsertEntry", mock.MatchedBy(func(entry *models.ProgressEntry) bool {
			// Latest assessment (score 10, mild) maps to mood 5 with two activities.
			return entry.UserID == userID &&
				entry.MoodScore == 5 &&
				entry.Activities == "meditation,journaling"
		})).Return(&models.ProgressEntry{ID: 1, UserID: userID}, nil).Once()
		mockProgress.On("GetEntriesByUserID", userID).Return([]models.ProgressEntry{{UserID: userID, MoodScore: 5}}, nil).Once()

		snapshot, err := service.GetSnapshot(userID)

		assert.NoError(t, err)
		assert.Len(t, snapshot.Entries, 1)
		mockProgress.AssertExpectations(t)
	})

	t.Run("Major severity yields the full activity set", func(t *testing.T) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		service := NewProgressService(mockProgress, mockAssessments, nil)

		latest := models.Assessment{UserID: userID, Score: 15, SeverityLevel: models.SeverityMajor}

		mockAssessments.On("GetAssessmentsByUserID", userID).Return([]models.Assessment{latest}, nil).Once()
		mockAssessments.On("GetLatestAssessment", userID).Return(&latest, nil).Once()
		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
		mockProgress.On("InsertEntry", mock.MatchedBy(func(entry *models.ProgressEntry) bool {
			// round(15/2)=8, activities scale to all three.
			return entry.MoodScore == 8 && entry.Activities == "meditation,journaling,exercise"
		})).Return(&models.ProgressEntry{ID: 1}, nil).Once()
		mockProgress.On("GetEntriesByUserID", userID).Return([]models.ProgressEntry{}, nil).Once()

		_, err := service.GetSnapshot(userID)

		assert.NoError(t, err)
		mockProgress.AssertExpectations(t)
	})

	t.Run("No assessments means no auto entry", func(t *testing.T) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		service := NewProgressService(mockProgress, mockAssessments, nil)

		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
		mockAssessments.On("GetLatestAssessment", userID).Return(nil, nil).Once()
		mockAssessments.On("GetAssessmentsByUserID", userID).Return([]models.Assessment{}, nil).Once()
		mockProgress.On("GetEntriesByUserID", userID).Return([]models.ProgressEntry{}, nil).Once()

		snapshot, err := service.GetSnapshot(userID)

		assert.NoError(t, err)
		assert.Empty(t, snapshot.Entries)
		assert.Equal(t, 0, snapshot.MoodDistribution[MoodVeryHappy])
		mockProgress.AssertNotCalled(t, "InsertEntry", mock.Anything)
	})

	t.Run("Empty user ID is rejected", func(t *testing.T) {
		service := NewProgressService(new(MockProgressRepository), new(MockAssessmentRepository), nil)

		_, err := service.GetSnapshot("")
		assert.Error(t, err)
	})
}

func TestProgressService_Cache(t *testing.T) {
	userID := "user1"

	newCachedService := func(hub *realtime.Hub) (ProgressService, *MockProgressRepository, *MockAssessmentRepository) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(true, nil)
		mockAssessments.On("GetAssessmentsByUserID", userID).Return([]models.Assessment{}, nil)
		mockProgress.On("GetEntriesByUserID", userID).Return([]models.ProgressEntry{}, nil)
		return NewProgressService(mockProgress, mockAssessments, hub), mockProgress, mockAssessments
	}

	t.Run("Repeated reads are served from cache", func(t *testing.T) {
		service, mockProgress, mockAssessments := newCachedService(realtime.NewHub())

		first, err := service.GetSnapshot(userID)
		assert.NoError(t, err)
		second, err := service.GetSnapshot(userID)
		assert.NoError(t, err)

		assert.Same(t, first, second)
		mockAssessments.AssertNumberOfCalls(t, "GetAssessmentsByUserID", 1)
		mockProgress.AssertNumberOfCalls(t, "GetEntriesByUserID", 1)
	})

	t.Run("Change event invalidates the cached snapshot", func(t *testing.T) {
		hub := realtime.NewHub()
		service, mockProgress, mockAssessments := newCachedService(hub)

		_, err := service.GetSnapshot(userID)
		assert.NoError(t, err)

		hub.Publish(realtime.Event{
			Table:  models.Assessment{}.TableName(),
			UserID: userID,
			Action: "insert",
		})

		_, err = service.GetSnapshot(userID)
		assert.NoError(t, err)
		mockAssessments.AssertNumberOfCalls(t, "GetAssessmentsByUserID", 2)
		mockProgress.AssertNumberOfCalls(t, "GetEntriesByUserID", 2)
	})

	t.Run("Nil hub recomputes on every read", func(t *testing.T) {
		mockProgress := new(MockProgressRepository)
		mockAssessments := new(MockAssessmentRepository)
		service := NewProgressService(mockProgress, mockAssessments, nil)

		mockProgress.On("HasEntryForDay", userID, mock.AnythingOfType("time.Time")).Return(true, nil)
		mockProgress.On("GetEntriesByUserID", userID).Return([]models.ProgressEntry{}, nil)
		mockAssessments.On("GetAssessmentsByUserID", userID).Return([]models.Assessment{}, nil).Once()
		mockAssessments.On("GetAssessmentsByUserID", userID).Return([]models.Assessment{
			{UserID: userID, Score: 10, SeverityLevel: models.SeverityMild},
		}, nil).Once()

		first, err := service.GetSnapshot(userID)
		assert.NoError(t, err)
		assert.Empty(t, first.Assessments)

		// A second read must see data written after the first, not a stale
		// cached snapshot that nothing can invalidate.
		second, err := service.GetSnapshot(userID)
		assert.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.Len(t, second.Assessments, 1)
		assert.Equal(t, 1, second.MoodDistribution[MoodVeryHappy])
	})

	t.Run("Events for other users leave the cache intact", func(t *testing.T) {
		hub := realtime.NewHub()
		service, _, mockAssessments := newCachedService(hub)

		_, err := service.GetSnapshot(userID)
		assert.NoError(t, err)

		hub.Publish(realtime.Event{
			Table:  models.Assessment{}.TableName(),
			UserID: "someone-else",
			Action: "insert",
		})

		_, err = service.GetSnapshot(userID)
		assert.NoError(t, err)
		mockAssessments.AssertNumberOfCalls(t, "GetAssessmentsByUserID", 1)
	})
}
