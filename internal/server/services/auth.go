package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/logging"
	"github.com/dmitrijs2005/messagely/internal/server/auth"
	"github.com/dmitrijs2005/messagely/internal/server/config"
	"github.com/dmitrijs2005/messagely/internal/server/models"
)

const touchLoginTimeout = 5 * time.Second

// AuthService issues and verifies session tokens on top of UserService.
type AuthService struct {
	users    *UserService
	secret   []byte
	validity time.Duration
	logger   logging.Logger

	// spawn runs last-login updates off the request path.
	spawn func(func())
}

func NewAuthService(users *UserService, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidityDuration,
		logger:   logger.With("module", "auth"),
		spawn:    func(f func()) { go f() },
	}
}

// Login checks the credentials and returns a signed token for username.
// Bad credentials yield common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	return s.issue(ctx, username)
}

// Register creates the account and logs it straight in.
func (s *AuthService) Register(ctx context.Context, r models.Registration) (string, error) {
	u, err := s.users.Register(ctx, r)
	if err != nil {
		return "", err
	}

	return s.issue(ctx, u.Username)
}

// VerifyToken returns the username carried by a valid token.
func (s *AuthService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", common.ErrUnauthenticated
	}
	return auth.GetUsernameFromToken(token, s.secret)
}

func (s *AuthService) issue(ctx context.Context, username string) (string, error) {
	token, err := auth.GenerateToken(username, s.secret, s.validity)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	s.touchLogin(ctx, username)
	return token, nil
}

func (s *AuthService) touchLogin(ctx context.Context, username string) {
	detached := context.WithoutCancel(ctx)
	s.spawn(func() {
		ctx, cancel := context.WithTimeout(detached, touchLoginTimeout)
		defer cancel()
		s.users.TouchLogin(ctx, username)
	})
}
