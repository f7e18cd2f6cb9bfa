package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/logging"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/repomanager"
)

// MessageService is the message store plus the per-message access rules:
// only participants may read a message and only its recipient may mark it read.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *MessageService {
	return &MessageService{db: db, repomanager: m, logger: logger.With("module", "messages")}
}

// Create sends body from one user to another. An unknown recipient yields
// common.ErrValidation and nothing is stored.
func (s *MessageService) Create(ctx context.Context, from, to, body string) (*models.SentMessage, error) {
	if err := required("to_username", to); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", common.ErrValidation)
	}

	msg, err := s.repomanager.Messages(s.db).Create(ctx, from, to, body)
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "message sent", "id", msg.ID, "from", from, "to", to)
	return msg, nil
}

// Get returns the message if caller sent or received it.
func (s *MessageService) Get(ctx context.Context, caller, id string) (*models.MessageDetail, error) {
	if !isMessageID(id) {
		return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
	}

	m, err := s.repomanager.Messages(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller != m.FromUser.Username && caller != m.ToUser.Username {
		return nil, fmt.Errorf("%w: cannot read this message", common.ErrForbidden)
	}
	return m, nil
}

// MarkRead stamps read_at on a message received by caller.
func (s *MessageService) MarkRead(ctx context.Context, caller, id string) (*models.ReadReceipt, error) {
	if !isMessageID(id) {
		return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
	}

	repo := s.repomanager.Messages(s.db)

	m, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != m.ToUser.Username {
		return nil, fmt.Errorf("%w: only the recipient can mark this message as read", common.ErrForbidden)
	}

	return repo.MarkRead(ctx, id)
}

func (s *MessageService) ListFrom(ctx context.Context, username string) ([]models.OutboxMessage, error) {
	return s.repomanager.Messages(s.db).ListFrom(ctx, username)
}

func (s *MessageService) ListTo(ctx context.Context, username string) ([]models.InboxMessage, error) {
	return s.repomanager.Messages(s.db).ListTo(ctx, username)
}
