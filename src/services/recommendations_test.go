package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ninadtherock/MindCare/src/models"
)

func TestComposeRecommendations(t *testing.T) {
	t.Run("Minor with mood concern", func(t *testing.T) {
		text, err := ComposeRecommendations(models.SeverityMinor, ConcernMood)

		assert.NoError(t, err)
		assert.Equal(t,
			"Consider incorporating mindfulness and relaxation techniques into your daily routine. "+
				"Focus on activities that bring you joy and maintain a regular daily routine.",
			text)
	})

	t.Run("Major with work concern", func(t *testing.T) {
		text, err := ComposeRecommendations(models.SeverityMajor, ConcernWork)

		assert.NoError(t, err)
		assert.Equal(t,
			"We strongly recommend scheduling a session with one of our professional counselors. "+
				"Break tasks into smaller, manageable pieces and take regular breaks.",
			text)
	})

	t.Run("Every level and concern composes", func(t *testing.T) {
		levels := []models.SeverityLevel{models.SeverityMinor, models.SeverityMild, models.SeverityMajor}
		concerns := []string{ConcernMood, ConcernAnxiety, ConcernSleep, ConcernSocial, ConcernWork}

		for _, level := range levels {
			for _, concern := range concerns {
				text, err := ComposeRecommendations(level, concern)
				assert.NoError(t, err)
				assert.NotEmpty(t, text)
			}
		}
	})

	t.Run("Unknown concern fails", func(t *testing.T) {
		_, err := ComposeRecommendations(models.SeverityMild, "Existential Dread")
		assert.ErrorIs(t, err, ErrUnknownConcern)
	})

	t.Run("Unknown severity level fails", func(t *testing.T) {
		_, err := ComposeRecommendations(models.SeverityLevel("catastrophic"), ConcernMood)
		assert.Error(t, err)
	})
}
