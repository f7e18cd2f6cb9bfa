// Package messages declares the server-side repository contract for direct
// messages and its PostgreSQL implementation.
package messages

import (
	"context"

	"github.com/dmitrijs2005/messagely/internal/server/models"
)

// Repository persists direct messages.
type Repository interface {
	// Create stores a new unread message sent now. An unknown sender or
	// recipient yields common.ErrValidation.
	Create(ctx context.Context, from, to, body string) (*models.SentMessage, error)

	// Get returns the message with both parties' profiles or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.MessageDetail, error)

	// MarkRead stamps read_at with now unless it is already set and returns
	// the stored value. A missing message yields common.ErrNotFound.
	MarkRead(ctx context.Context, id string) (*models.ReadReceipt, error)

	// ListFrom returns messages sent by username with recipient profiles.
	ListFrom(ctx context.Context, username string) ([]models.OutboxMessage, error)

	// ListTo returns messages received by username with sender profiles.
	ListTo(ctx context.Context, username string) ([]models.InboxMessage, error)
}
