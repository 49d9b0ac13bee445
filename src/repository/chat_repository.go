package repository

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ninadtherock/MindCare/src/models"
)

// ChatRepository stores chat transcripts. Conversations with the canned
// responder are ephemeral, so the backing store is in-memory and scoped to
// the process lifetime.
type ChatRepository interface {
	SaveMessage(message models.ChatMessage) error
	GetMessagesByUserID(userID string) ([]models.ChatMessage, error)
}

type chatRepository struct {
	mu       sync.RWMutex
	messages map[string][]models.ChatMessage // keyed by UserID
}

// NewChatRepository creates an in-memory ChatRepository.
func NewChatRepository() ChatRepository {
	return &chatRepository{
		messages: make(map[string][]models.ChatMessage),
	}
}

// SaveMessage appends a message to the user's transcript. Message IDs are
// assigned per user, in insertion order.
func (r *chatRepository) SaveMessage(message models.ChatMessage) error {
	if message.UserID == "" {
		return errors.New("user ID cannot be empty")
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	userMessages := r.messages[message.UserID]
	message.ID = uint(len(userMessages) + 1)
	r.messages[message.UserID] = append(userMessages, message)

	log.Printf("INFO: [ChatRepository] Saved message ID=%d for userID %s (role=%s).", message.ID, message.UserID, message.Role)
	return nil
}

// GetMessagesByUserID returns a copy of the user's transcript. A user with
// no history gets an empty slice, not an error.
func (r *chatRepository) GetMessagesByUserID(userID string) ([]models.ChatMessage, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	userMessages := r.messages[userID]
	result := make([]models.ChatMessage, len(userMessages))
	copy(result, userMessages)
	return result, nil
}
