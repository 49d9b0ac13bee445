package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ninadtherock/MindCare/src/models"
)

func TestCalculateSeverity(t *testing.T) {
	bank := NewQuestionBank()

	t.Run("Low answers classify as minor", func(t *testing.T) {
		answers := map[string]int{
			RootQuestionID: 0,
			"mood-1":       0,
			"mood-2":       1,
			"mood-3":       1,
		}

		result, err := CalculateSeverity(bank, answers)

		assert.NoError(t, err)
		assert.Equal(t, models.SeverityMinor, result.Level)
		// mean 2/3, scaled to 3.33 and rounded
		assert.Equal(t, 3, result.Score)
	})

	t.Run("Boundary mean of exactly 1 stays minor", func(t *testing.T) {
		answers := map[string]int{
			RootQuestionID: 1,
			"anxiety-1":    1,
			"anxiety-2":    1,
			"anxiety-3":    1,
		}

		result, err := CalculateSeverity(bank, answers)

		assert.NoError(t, err)
		assert.Equal(t, models.SeverityMinor, result.Level)
		assert.Equal(t, 5, result.Score)
	})

	t.Run("Mid answers classify as mild", func(t *testing.T) {
		answers := map[string]int{
			RootQuestionID: 2,
			"sleep-1":      2,
			"sleep-2":      2,
			"sleep-3":      2,
		}

		result, err := CalculateSeverity(bank, answers)

		assert.NoError(t, err)
		assert.Equal(t, models.SeverityMild, result.Level)
		assert.Equal(t, 10, result.Score)
	})

	t.Run("High answers classify as major", func(t *testing.T) {
		answers := map[string]int{
			RootQuestionID: 4,
			"work-1":       3,
			"work-2":       3,
			"work-3":       3,
		}

		result, err := CalculateSeverity(bank, answers)

		assert.NoError(t, err)
		assert.Equal(t, models.SeverityMajor, result.Level)
		assert.Equal(t, 15, result.Score)
	})

	t.Run("Root-only answers are insufficient", func(t *testing.T) {
		_, err := CalculateSeverity(bank, map[string]int{RootQuestionID: 0})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("Empty answer set is insufficient", func(t *testing.T) {
		_, err := CalculateSeverity(bank, map[string]int{})
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("Unknown question ID fails", func(t *testing.T) {
		_, err := CalculateSeverity(bank, map[string]int{"phantom-1": 2})
		assert.ErrorIs(t, err, ErrQuestionNotFound)
	})

	t.Run("Worst category drives multi-category scoring", func(t *testing.T) {
		answers := map[string]int{
			"mood-1":    0,
			"mood-2":    0,
			"mood-3":    0,
			"anxiety-1": 3,
			"anxiety-2": 3,
			"anxiety-3": 3,
		}

		result, err := CalculateSeverity(bank, answers)

		assert.NoError(t, err)
		assert.Equal(t, models.SeverityMajor, result.Level)
		assert.Equal(t, 15, result.Score)
	})

	t.Run("Deterministic across calls", func(t *testing.T) {
		answers := map[string]int{
			"social-1": 1,
			"social-2": 2,
			"social-3": 3,
		}

		first, err := CalculateSeverity(bank, answers)
		assert.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := CalculateSeverity(bank, answers)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}
