package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/messagely/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher returns a hasher using cost (clamped to bcrypt's bounds).
// It precomputes a hash of a throwaway password so that Verify against a
// missing user costs the same as against a real one.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("messagely-dummy-password"), cost)
	if err != nil {
		return nil, err
	}

	return &PasswordHasher{cost: cost, dummy: dummy}, nil
}

func (h *PasswordHasher) Cost() int { return h.cost }

// Hash returns the bcrypt hash of password. Passwords bcrypt cannot take are
// reported as common.ErrValidation.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash. Errors other than a
// mismatch (e.g. a corrupt hash) are returned.
func (h *PasswordHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

// VerifyDummy burns one comparison's worth of time and always fails.
func (h *PasswordHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
