// Package services contains server-side business logic: accounts and
// credentials (UserService), token issuance (AuthService) and direct
// messages (MessageService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/logging"
	"github.com/dmitrijs2005/messagely/internal/server/auth"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/dmitrijs2005/messagely/internal/server/repositories/repomanager"
)

// UserService is the credential store: it registers users, checks passwords
// and serves profiles.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		logger:      logger.With("module", "users"),
	}
}

// Register validates r, stores the user with a bcrypt hash of the password
// and returns the stored user with Password cleared.
func (s *UserService) Register(ctx context.Context, r models.Registration) (*models.User, error) {
	if err := validateRegistration(r); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(r.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:  r.Username,
		Password:  hash,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	u.Password = ""
	return u, nil
}

// Authenticate reports whether password matches the stored hash for username.
// An unknown username is not an error; a dummy comparison keeps the timing
// similar to a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return false, nil
		}
		return false, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.hasher.Verify(u.Password, password)
	if err != nil {
		return false, fmt.Errorf("error verifying password: %w", err)
	}
	return ok, nil
}

// TouchLogin sets last_login_at to now. Failures are logged only.
func (s *UserService) TouchLogin(ctx context.Context, username string) {
	if err := s.repomanager.Users(s.db).TouchLogin(ctx, username); err != nil {
		s.logger.Warn(ctx, "touch login failed", "username", username, "error", err)
	}
}

func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// Get returns the user without the password hash.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}
