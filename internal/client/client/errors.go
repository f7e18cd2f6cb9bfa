package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/messagely/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"error"`
}

// statusError maps an HTTP status and server message onto a sentinel.
func statusError(status int, msg string) error {
	var kind error
	switch status {
	case http.StatusBadRequest:
		kind = common.ErrValidation
	case http.StatusUnauthorized:
		kind = common.ErrUnauthenticated
	case http.StatusForbidden:
		kind = common.ErrForbidden
	case http.StatusNotFound:
		kind = common.ErrNotFound
	case http.StatusConflict:
		kind = common.ErrAlreadyExists
	default:
		kind = common.ErrInternal
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
