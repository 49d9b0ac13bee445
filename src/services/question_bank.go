package services

import (
	"fmt"

	"github.com/ninadtherock/MindCare/src/models"
)

// Canonical root option labels. The branch mapping and the recommendation
// composer are both keyed by these exact strings.
const (
	ConcernMood    = "Mood and Emotions"
	ConcernAnxiety = "Anxiety and Stress"
	ConcernSleep   = "Sleep and Energy"
	ConcernSocial  = "Social Relationships"
	ConcernWork    = "Work or Academic Performance"
)

// RootQuestionID is the entry point of every assessment session.
const RootQuestionID = "initial-1"

// QuestionBank is the immutable set of assessment questions. It is built
// once at startup and never mutated afterwards.
type QuestionBank struct {
	questions map[string]models.Question
}

// NewQuestionBank builds the default question bank: one root screening
// question and five branches of three follow-up questions each.
func NewQuestionBank() *QuestionBank {
	questions := []models.Question{
		{
			ID:   RootQuestionID,
			Text: "Over the past 2 weeks, which of these areas has concerned you the most?",
			Options: []string{
				ConcernMood,
				ConcernAnxiety,
				ConcernSleep,
				ConcernSocial,
				ConcernWork,
			},
			NextQuestions: map[string][]string{
				ConcernMood:    {"mood-1", "mood-2", "mood-3"},
				ConcernAnxiety: {"anxiety-1", "anxiety-2", "anxiety-3"},
				ConcernSleep:   {"sleep-1", "sleep-2", "sleep-3"},
				ConcernSocial:  {"social-1", "social-2", "social-3"},
				ConcernWork:    {"work-1", "work-2", "work-3"},
			},
		},

		// Mood and Emotions branch
		{
			ID:       "mood-1",
			Text:     "How often have you felt down, depressed, or hopeless?",
			Options:  []string{"Not at all", "Several days", "More than half the days", "Nearly every day"},
			Category: "mood",
		},
		{
			ID:       "mood-2",
			Text:     "Have you had little interest or pleasure in doing things you usually enjoy?",
			Options:  []string{"Not at all", "Several days", "More than half the days", "Nearly every day"},
			Category: "mood",
		},
		{
			ID:       "mood-3",
			Text:     "How often have you had thoughts that you would be better off not living?",
			Options:  []string{"Never", "Rarely", "Sometimes", "Often"},
			Category: "mood",
		},

		// Anxiety and Stress branch
		{
			ID:       "anxiety-1",
			Text:     "How often do you feel nervous, anxious, or on edge?",
			Options:  []string{"Not at all", "Several days", "More than half the days", "Nearly every day"},
			Category: "anxiety",
		},
		{
			ID:       "anxiety-2",
			Text:     "How often do you find yourself worrying excessively about different things?",
			Options:  []string{"Rarely or never", "Occasionally", "Frequently", "Almost constantly"},
			Category: "anxiety",
		},
		{
			ID:       "anxiety-3",
			Text:     "Do you experience physical symptoms when anxious (racing heart, sweating, trembling)?",
			Options:  []string{"Never", "Sometimes", "Often", "Very often"},
			Category: "anxiety",
		},

		// Sleep and Energy branch
		{
			ID:       "sleep-1",
			Text:     "How would you rate your sleep quality over the past week?",
			Options:  []string{"Very good", "Fairly good", "Fairly bad", "Very bad"},
			Category: "sleep",
		},
		{
			ID:       "sleep-2",
			Text:     "How often do you have trouble falling or staying asleep?",
			Options:  []string{"Never", "1-2 times a week", "3-5 times a week", "Almost every night"},
			Category: "sleep",
		},
		{
			ID:       "sleep-3",
			Text:     "How often do you feel tired or have low energy during the day?",
			Options:  []string{"Rarely or never", "Sometimes", "Often", "Almost always"},
			Category: "sleep",
		},

		// Social Relationships branch
		{
			ID:       "social-1",
			Text:     "How comfortable do you feel in social situations?",
			Options:  []string{"Very comfortable", "Somewhat comfortable", "Somewhat uncomfortable", "Very uncomfortable"},
			Category: "social",
		},
		{
			ID:       "social-2",
			Text:     "How often do you feel lonely or isolated?",
			Options:  []string{"Rarely or never", "Sometimes", "Often", "Almost always"},
			Category: "social",
		},
		{
			ID:       "social-3",
			Text:     "How satisfied are you with your relationships with friends and family?",
			Options:  []string{"Very satisfied", "Somewhat satisfied", "Somewhat dissatisfied", "Very dissatisfied"},
			Category: "social",
		},

		// Work/Academic Performance branch
		{
			ID:       "work-1",
			Text:     "How often do you feel overwhelmed by your work or academic responsibilities?",
			Options:  []string{"Rarely or never", "Sometimes", "Often", "Almost always"},
			Category: "work",
		},
		{
			ID:       "work-2",
			Text:     "How well can you concentrate on tasks?",
			Options:  []string{"Very well", "Fairly well", "With some difficulty", "With great difficulty"},
			Category: "work",
		},
		{
			ID:       "work-3",
			Text:     "How often do you procrastinate on important tasks?",
			Options:  []string{"Rarely or never", "Sometimes", "Often", "Almost always"},
			Category: "work",
		},
	}

	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &QuestionBank{questions: byID}
}

// Lookup returns the question with the given ID. A miss indicates corrupt
// bank data and is surfaced as ErrQuestionNotFound so callers fail loudly
// instead of desynchronizing the session flow.
func (b *QuestionBank) Lookup(questionID string) (models.Question, error) {
	q, ok := b.questions[questionID]
	if !ok {
		return models.Question{}, fmt.Errorf("%w: %q", ErrQuestionNotFound, questionID)
	}
	return q, nil
}

// Root returns the initial screening question.
func (b *QuestionBank) Root() models.Question {
	root, err := b.Lookup(RootQuestionID)
	if err != nil {
		// The default bank always contains the root; reaching this means
		// the bank was constructed by hand and is unusable.
		panic(err)
	}
	return root
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}
