package domain

import "time"

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// Chat is keyed 1:1 by swap request. Participants are fixed to the two users
// on the originating request; messages are append-only in insertion order.
type Chat struct {
	ID            string        `json:"id"`
	SwapRequestID string        `json:"swap_request_id"`
	Participants  []string      `json:"participants"`
	Messages      []ChatMessage `json:"messages"`
	LastMessageAt time.Time     `json:"last_message_at"`
	CreatedAt     time.Time     `json:"created_at"`
}
