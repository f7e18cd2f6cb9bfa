package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/dbx"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/messages"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/users"
	"github.com/google/uuid"
)

// InMemoryRepositoryManager keeps users and messages in process memory.
// It enforces the same uniqueness and reference rules as the SQL schema and
// ignores the DBTX it is handed. Used by tests and local experiments.
type InMemoryRepositoryManager struct {
	store *memStore
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: &memStore{
		users:    map[string]models.User{},
		messages: map[string]models.Message{},
		now:      time.Now,
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return memUsers{m.store}
}

func (m *InMemoryRepositoryManager) Messages(dbx.DBTX) messages.Repository {
	return memMessages{m.store}
}

// MessageCount reports how many messages are stored.
func (m *InMemoryRepositoryManager) MessageCount() int {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.messages)
}

type memStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	messages map[string]models.Message
	order    []string
	now      func() time.Time
}

func (s *memStore) profile(username string) models.UserProfile {
	u := s.users[username]
	return u.Profile()
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.Username]; ok {
		return nil, fmt.Errorf("user %q: %w", u.Username, common.ErrAlreadyExists)
	}

	now := r.s.now()
	stored := *u
	stored.JoinAt = now
	stored.LastLoginAt = &now
	r.s.users[u.Username] = stored

	out := stored
	return &out, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	return &u, nil
}

func (r memUsers) List(context.Context) ([]models.UserProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.UserProfile, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u.Profile())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r memUsers) TouchLogin(_ context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	now := r.s.now()
	u.LastLoginAt = &now
	r.s.users[username] = u
	return nil
}

type memMessages struct{ s *memStore }

func (r memMessages) Create(_ context.Context, from, to, body string) (*models.SentMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[from]; !ok {
		return nil, fmt.Errorf("%w: sender %q does not exist", common.ErrValidation, from)
	}
	if _, ok := r.s.users[to]; !ok {
		return nil, fmt.Errorf("%w: recipient %q does not exist", common.ErrValidation, to)
	}

	m := models.Message{ID: uuid.NewString(), FromUsername: from, ToUsername: to, Body: body, SentAt: r.s.now()}
	r.s.messages[m.ID] = m
	r.s.order = append(r.s.order, m.ID)

	return &models.SentMessage{ID: m.ID, FromUsername: from, ToUsername: to, Body: body, SentAt: m.SentAt}, nil
}

func (r memMessages) Get(_ context.Context, id string) (*models.MessageDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
	}
	return &models.MessageDetail{
		ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
		FromUser: r.s.profile(m.FromUsername),
		ToUser:   r.s.profile(m.ToUsername),
	}, nil
}

func (r memMessages) MarkRead(_ context.Context, id string) (*models.ReadReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
	}
	if m.ReadAt == nil {
		now := r.s.now()
		m.ReadAt = &now
		r.s.messages[id] = m
	}
	return &models.ReadReceipt{ID: id, ReadAt: *m.ReadAt}, nil
}

func (r memMessages) ListFrom(_ context.Context, username string) ([]models.OutboxMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.OutboxMessage, 0)
	for _, id := range r.s.order {
		m := r.s.messages[id]
		if m.FromUsername != username {
			continue
		}
		out = append(out, models.OutboxMessage{
			ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
			ToUser: r.s.profile(m.ToUsername),
		})
	}
	return out, nil
}

func (r memMessages) ListTo(_ context.Context, username string) ([]models.InboxMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	in := make([]models.InboxMessage, 0)
	for _, id := range r.s.order {
		m := r.s.messages[id]
		if m.ToUsername != username {
			continue
		}
		in = append(in, models.InboxMessage{
			ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
			FromUser: r.s.profile(m.FromUsername),
		})
	}
	return in, nil
}
