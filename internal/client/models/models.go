// Package models holds the client-side views of the server's JSON payloads.
package models

import "time"

// Registration is the body of a register request.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type UserProfile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// User is a full account as returned by GET /users/{username}.
type User struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type SentMessage struct {
	ID           string    `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

type MessageDetail struct {
	ID       string      `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserProfile `json:"from_user"`
	ToUser   UserProfile `json:"to_user"`
}

type InboxMessage struct {
	ID       string      `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserProfile `json:"from_user"`
}

type OutboxMessage struct {
	ID     string      `json:"id"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
	ToUser UserProfile `json:"to_user"`
}

type ReadReceipt struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}
