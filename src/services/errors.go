package services

import "errors"

// Closed error taxonomy for the assessment core. Handlers switch on these
// with errors.Is; nothing in this package returns an untyped failure for a
// condition a caller is expected to handle.
var (
	// ErrInvalidOption means the submitted option index is outside the
	// current question's option range. Recoverable; session state is left
	// unchanged.
	ErrInvalidOption = errors.New("option index out of range for current question")

	// ErrInvalidState means a transition was attempted from a terminal
	// state, e.g. answering a completed session.
	ErrInvalidState = errors.New("invalid transition for current session state")

	// ErrUnknownConcern means the recommendation composer was given a
	// primary concern outside the five canonical root options. This
	// indicates question bank desync and is treated as fatal configuration
	// corruption.
	ErrUnknownConcern = errors.New("unknown primary concern")

	// ErrInsufficientData means the classifier was given an answer set with
	// no scorable category answers.
	ErrInsufficientData = errors.New("answer set contains no scorable answers")

	// ErrQuestionNotFound means a question ID was not present in the bank.
	ErrQuestionNotFound = errors.New("question not found in question bank")

	// ErrSessionNotFound means the referenced assessment session does not
	// exist (never created, or discarded).
	ErrSessionNotFound = errors.New("assessment session not found")

	// ErrPersistenceFailure wraps a storage error from recording a
	// completed assessment. It never invalidates the computed result.
	ErrPersistenceFailure = errors.New("failed to persist assessment")

	// ErrScheduleInvalid means a booking request failed local validation
	// (missing emails, malformed or past session time) and never reached
	// the calendar bridge.
	ErrScheduleInvalid = errors.New("invalid booking request")

	// ErrCounselorNotFound means the requested counselor email has no
	// profile in the directory.
	ErrCounselorNotFound = errors.New("no counselor registered")
)
