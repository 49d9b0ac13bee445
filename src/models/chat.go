package models

import "time"

// ChatMessage is one message in a user's conversation with the support bot.
type ChatMessage struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
