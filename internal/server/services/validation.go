package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/google/uuid"
)

const (
	maxUsernameLength = 64
	// bcrypt only accepts passwords up to 72 bytes.
	maxPasswordBytes = 72
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}

func validateUsername(username string) error {
	if err := required("username", username); err != nil {
		return err
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be at most %d characters", common.ErrValidation, maxUsernameLength)
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: username must not contain whitespace", common.ErrValidation)
	}
	return nil
}

func validateRegistration(r models.Registration) error {
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"password", r.Password},
		{"first_name", r.FirstName},
		{"last_name", r.LastName},
		{"phone", r.Phone},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	if len(r.Password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	return nil
}

// isMessageID reports whether id can name a stored message.
func isMessageID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
