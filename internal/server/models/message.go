package models

import "time"

// Message is a stored direct message. ReadAt stays nil until the recipient
// marks it read.
type Message struct {
	ID           string     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// SentMessage is what the sender gets back after posting.
type SentMessage struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

// MessageDetail is a message with both parties' public profiles.
type MessageDetail struct {
	ID       string      `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserProfile `json:"from_user"`
	ToUser   UserProfile `json:"to_user"`
}

// InboxMessage is a received message annotated with its sender.
type InboxMessage struct {
	ID       string      `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserProfile `json:"from_user"`
}

// OutboxMessage is a sent message annotated with its recipient.
type OutboxMessage struct {
	ID     string      `json:"id"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
	ToUser UserProfile `json:"to_user"`
}

// ReadReceipt is the result of marking a message read.
type ReadReceipt struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}
