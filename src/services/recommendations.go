package services

import (
	"fmt"

	"github.com/ninadtherock/MindCare/src/models"
)

// baseRecommendations keys a general advice sentence by severity level.
var baseRecommendations = map[models.SeverityLevel]string{
	models.SeverityMinor: "Consider incorporating mindfulness and relaxation techniques into your daily routine.",
	models.SeverityMild:  "Regular exercise and stress management techniques may be helpful. Consider scheduling a consultation.",
	models.SeverityMajor: "We strongly recommend scheduling a session with one of our professional counselors.",
}

// concernRecommendations keys a concern-specific sentence by the canonical
// root option label.
var concernRecommendations = map[string]string{
	ConcernMood:    "Focus on activities that bring you joy and maintain a regular daily routine.",
	ConcernAnxiety: "Practice deep breathing exercises and progressive muscle relaxation.",
	ConcernSleep:   "Establish a consistent sleep schedule and bedtime routine.",
	ConcernSocial:  "Gradually increase social interactions and maintain connections with loved ones.",
	ConcernWork:    "Break tasks into smaller, manageable pieces and take regular breaks.",
}

// ComposeRecommendations joins the severity-keyed base sentence with the
// concern-specific sentence. A concern outside the canonical five means the
// question bank and the root options have drifted apart, which is fatal
// configuration corruption, so it fails with ErrUnknownConcern.
func ComposeRecommendations(level models.SeverityLevel, primaryConcern string) (string, error) {
	base, ok := baseRecommendations[level]
	if !ok {
		return "", fmt.Errorf("no recommendation for severity level %q", level)
	}
	specific, ok := concernRecommendations[primaryConcern]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownConcern, primaryConcern)
	}
	return base + " " + specific, nil
}
