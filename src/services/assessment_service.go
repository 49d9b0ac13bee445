package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ninadtherock/MindCare/src/models"
	"github.com/ninadtherock/MindCare/src/repository"
)

// totalQuestions is the fixed length of one assessment: the root screening
// question plus three branch questions.
const totalQuestions = 4

// SessionState is a read-only snapshot of an assessment session, safe to
// hand to transport code while the session keeps evolving.
type SessionState struct {
	SessionID        string                 `json:"session_id"`
	UserID           string                 `json:"user_id,omitempty"`
	Complete         bool                   `json:"complete"`
	Progress         float64                `json:"progress"`
	PrimaryConcern   string                 `json:"primary_concern,omitempty"`
	Question         *models.Question       `json:"question,omitempty"`
	Result           *models.SeverityResult `json:"result,omitempty"`
	Recommendations  string                 `json:"recommendations,omitempty"`
	PersistenceError string                 `json:"persistence_error,omitempty"`
}

// AssessmentService drives adaptive assessment sessions: question
// sequencing, answer accumulation, completion detection and handoff of the
// finished record to storage.
type AssessmentService interface {
	StartSession(userID string) (*SessionState, error)
	SubmitAnswer(sessionID string, optionIndex int) (*SessionState, error)
	ResetSession(sessionID string) (*SessionState, error)
	GetSession(sessionID string) (*SessionState, error)
}

// assessmentSession holds the mutable state of one assessment attempt. A
// session is owned by a single user interaction flow; the mutex only guards
// against the asynchronous persistence writer racing a snapshot.
type assessmentSession struct {
	mu                sync.Mutex
	id                string
	userID            string
	currentQuestionID string
	answers           map[string]int
	queue             []string
	complete          bool
	primaryConcern    string
	result            *models.SeverityResult
	recommendations   string
	submissionErr     error
}

type assessmentService struct {
	bank     *QuestionBank
	repo     repository.AssessmentRepository
	mu       sync.RWMutex
	sessions map[string]*assessmentSession
}

// NewAssessmentService creates an AssessmentService backed by the given
// question bank and assessment store.
func NewAssessmentService(bank *QuestionBank, repo repository.AssessmentRepository) AssessmentService {
	return &assessmentService{
		bank:     bank,
		repo:     repo,
		sessions: make(map[string]*assessmentSession),
	}
}

// StartSession creates a fresh session positioned at the root question.
// userID may be empty for anonymous assessments; those are never persisted.
func (s *assessmentService) StartSession(userID string) (*SessionState, error) {
	sess := &assessmentSession{
		id:                uuid.NewString(),
		userID:            userID,
		currentQuestionID: RootQuestionID,
		answers:           make(map[string]int),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("INFO: [AssessmentService] Started session %s for userID %q.", sess.id, userID)
	return s.snapshot(sess)
}

// SubmitAnswer records the answer to the current question and advances the
// session. On the root question it selects the branch; on the last branch
// question it completes the session and triggers finalization.
func (s *assessmentService) SubmitAnswer(sessionID string, optionIndex int) (*SessionState, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.complete {
		log.Printf("WARN: [AssessmentService] Answer submitted to completed session %s.", sess.id)
		return nil, ErrInvalidState
	}

	question, err := s.bank.Lookup(sess.currentQuestionID)
	if err != nil {
		return nil, err
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, fmt.Errorf("%w: index %d, question %q has %d options",
			ErrInvalidOption, optionIndex, question.ID, len(question.Options))
	}

	sess.answers[question.ID] = optionIndex

	if question.ID == RootQuestionID {
		selected := question.Options[optionIndex]
		sess.primaryConcern = selected
		branch := question.NextQuestions[selected]
		sess.queue = append([]string(nil), branch...)
		sess.currentQuestionID = sess.queue[0]
		log.Printf("INFO: [AssessmentService] Session %s selected concern %q, branch %v.", sess.id, selected, branch)
	} else {
		// Pop the answered question off the pending queue, FIFO order.
		remaining := sess.queue[:0]
		for _, id := range sess.queue {
			if id != question.ID {
				remaining = append(remaining, id)
			}
		}
		sess.queue = remaining

		if len(sess.queue) > 0 {
			sess.currentQuestionID = sess.queue[0]
		} else {
			if err := s.completeLocked(sess); err != nil {
				return nil, err
			}
		}
	}

	return s.snapshotLocked(sess)
}

// completeLocked marks the session complete, computes the severity result
// and recommendations, and hands the record to storage. The caller must
// hold sess.mu. The persistence write is fire-and-forget with respect to
// the transition: a storage failure lands in the session's submission-error
// slot and never rolls back completion.
func (s *assessmentService) completeLocked(sess *assessmentSession) error {
	sess.complete = true
	sess.currentQuestionID = ""

	result, err := CalculateSeverity(s.bank, sess.answers)
	if err != nil {
		return err
	}
	recommendations, err := ComposeRecommendations(result.Level, sess.primaryConcern)
	if err != nil {
		return err
	}
	sess.result = &result
	sess.recommendations = recommendations

	log.Printf("INFO: [AssessmentService] Session %s complete: level=%s score=%d.", sess.id, result.Level, result.Score)

	if sess.userID == "" {
		// Anonymous session: nothing to persist, result stays displayable.
		return nil
	}

	record := &models.Assessment{
		UserID:          sess.userID,
		AssessmentDate:  time.Now(),
		SeverityLevel:   result.Level,
		Score:           result.Score,
		Recommendations: recommendations,
	}
	go s.persist(sess, record)
	return nil
}

func (s *assessmentService) persist(sess *assessmentSession, record *models.Assessment) {
	_, err := s.repo.InsertAssessment(record)
	if err == nil {
		return
	}
	log.Printf("ERROR: [AssessmentService] Failed to persist assessment for session %s: %v", sess.id, err)
	sess.mu.Lock()
	sess.submissionErr = fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	sess.mu.Unlock()
}

// ResetSession returns the session to its initial state: root question
// active, no answers, no pending branch, no error. Valid from any state.
func (s *assessmentService) ResetSession(sessionID string) (*SessionState, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.currentQuestionID = RootQuestionID
	sess.answers = make(map[string]int)
	sess.queue = nil
	sess.complete = false
	sess.primaryConcern = ""
	sess.result = nil
	sess.recommendations = ""
	sess.submissionErr = nil

	log.Printf("INFO: [AssessmentService] Session %s reset.", sess.id)
	return s.snapshotLocked(sess)
}

// GetSession returns a snapshot of the session's current state.
func (s *assessmentService) GetSession(sessionID string) (*SessionState, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess)
}

func (s *assessmentService) lookup(sessionID string) (*assessmentSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

func (s *assessmentService) snapshot(sess *assessmentSession) (*SessionState, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess)
}

func (s *assessmentService) snapshotLocked(sess *assessmentSession) (*SessionState, error) {
	state := &SessionState{
		SessionID:       sess.id,
		UserID:          sess.userID,
		Complete:        sess.complete,
		Progress:        progressLocked(sess),
		PrimaryConcern:  sess.primaryConcern,
		Recommendations: sess.recommendations,
	}
	if sess.result != nil {
		result := *sess.result
		state.Result = &result
	}
	if sess.submissionErr != nil {
		state.PersistenceError = sess.submissionErr.Error()
	}
	if !sess.complete {
		question, err := s.bank.Lookup(sess.currentQuestionID)
		if err != nil {
			return nil, err
		}
		state.Question = &question
	}
	return state, nil
}

// progressLocked computes the display-only completion percentage: 0 before
// any answer, otherwise answered/4 scaled to 100.
func progressLocked(sess *assessmentSession) float64 {
	if !sess.complete && sess.currentQuestionID == RootQuestionID && len(sess.answers) == 0 {
		return 0
	}
	return float64(len(sess.answers)) / float64(totalQuestions) * 100
}
