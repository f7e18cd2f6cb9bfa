package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/messagely/internal/dbx"
	"github.com/dmitrijs2005/messagely/internal/logging"
	"github.com/dmitrijs2005/messagely/internal/server/auth"
	"github.com/dmitrijs2005/messagely/internal/server/config"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/messages"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

type testEnv struct {
	rm       *repomanager.InMemoryRepositoryManager
	users    *UserService
	auth     *AuthService
	messages *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	h, err := auth.NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	rm := repomanager.NewInMemoryRepositoryManager()
	return newTestEnvWith(t, rm, h, rm)
}

func newTestEnvWith(t *testing.T, mem *repomanager.InMemoryRepositoryManager, h *auth.PasswordHasher, rm repomanager.RepositoryManager) *testEnv {
	t.Helper()
	cfg := &config.Config{SecretKey: "test-secret"}
	us := NewUserService(nil, rm, h, logging.Nop{})
	as := NewAuthService(us, cfg, logging.Nop{})
	as.spawn = func(f func()) { f() }
	return &testEnv{
		rm:       mem,
		users:    us,
		auth:     as,
		messages: NewMessageService(nil, rm, logging.Nop{}),
	}
}

func registration(username string) models.Registration {
	return models.Registration{
		Username:  username,
		Password:  username + "-pw",
		FirstName: "First " + username,
		LastName:  "Last " + username,
		Phone:     "555-" + username,
	}
}

func (e *testEnv) mustRegister(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := e.users.Register(context.Background(), registration(n)); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// failingManager returns repositories whose every call fails with errBoom.
type failingManager struct{}

func (failingManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (failingManager) Users(dbx.DBTX) users.Repository             { return failingUsers{} }
func (failingManager) Messages(dbx.DBTX) messages.Repository       { return failingMessages{} }

type failingUsers struct{}

func (failingUsers) Create(context.Context, *models.User) (*models.User, error) {
	return nil, errBoom{}
}
func (failingUsers) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, errBoom{}
}
func (failingUsers) List(context.Context) ([]models.UserProfile, error) { return nil, errBoom{} }
func (failingUsers) TouchLogin(context.Context, string) error           { return errBoom{} }

type failingMessages struct{}

func (failingMessages) Create(context.Context, string, string, string) (*models.SentMessage, error) {
	return nil, errBoom{}
}
func (failingMessages) Get(context.Context, string) (*models.MessageDetail, error) {
	return nil, errBoom{}
}
func (failingMessages) MarkRead(context.Context, string) (*models.ReadReceipt, error) {
	return nil, errBoom{}
}
func (failingMessages) ListFrom(context.Context, string) ([]models.OutboxMessage, error) {
	return nil, errBoom{}
}
func (failingMessages) ListTo(context.Context, string) ([]models.InboxMessage, error) {
	return nil, errBoom{}
}

func isBoom(err error) bool {
	var b errBoom
	return errors.As(err, &b)
}
