// Package users declares the server-side repository contract for user
// accounts and its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/messagely/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user (Password already hashed) with join and last-login
	// times set to now, filling them in on the returned value.
	// A taken username yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the full row, including the password hash.
	// A missing user yields common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns public profiles of all users ordered by username.
	List(ctx context.Context) ([]models.UserProfile, error)

	// TouchLogin sets last_login_at to now. A missing user yields common.ErrNotFound.
	TouchLogin(ctx context.Context, username string) error
}
