package services

import (
	"fmt"
	"math"

	"github.com/ninadtherock/MindCare/src/models"
)

// CalculateSeverity maps a completed answer set to a severity level and
// numeric score. Answers are grouped by the owning question's category, the
// mean option index is taken per populated category, and the maximum mean
// drives the classification. The root answer carries no category and is
// excluded from scoring.
//
// A well-formed session populates exactly one category, but multi-category
// input is accepted and scored the same way. The function is pure and
// deterministic; an answer set with no scorable answers fails with
// ErrInsufficientData.
func CalculateSeverity(bank *QuestionBank, answers map[string]int) (models.SeverityResult, error) {
	sums := make(map[string]int)
	counts := make(map[string]int)

	for questionID, optionIndex := range answers {
		question, err := bank.Lookup(questionID)
		if err != nil {
			return models.SeverityResult{}, fmt.Errorf("scoring answer for %q: %w", questionID, err)
		}
		if question.Category == "" {
			continue // root answer, not scored
		}
		sums[question.Category] += optionIndex
		counts[question.Category]++
	}

	if len(counts) == 0 {
		return models.SeverityResult{}, ErrInsufficientData
	}

	maxMean := 0.0
	for category, count := range counts {
		mean := float64(sums[category]) / float64(count)
		if mean > maxMean {
			maxMean = mean
		}
	}

	result := models.SeverityResult{Score: int(math.Round(maxMean * 5))}
	switch {
	case maxMean <= 1:
		result.Level = models.SeverityMinor
	case maxMean <= 2:
		result.Level = models.SeverityMild
	default:
		result.Level = models.SeverityMajor
	}
	return result, nil
}
