package client

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/snakeboard/internal/common"
)

// Server messages that select a more specific sentinel than the status alone.
const (
	msgUserExists         = "User exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

// APIError is a non-200 answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unwrap maps the status and message onto a sentinel from internal/common.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusBadRequest:
		switch e.Message {
		case msgUserExists:
			return common.ErrAlreadyExists
		case msgInvalidCredentials:
			return common.ErrorUnauthorized
		}
		return common.ErrorValidation
	case http.StatusInternalServerError:
		if e.Message == msgUserNotFound {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return common.ErrUnavailable
	}
	return common.ErrorInternal
}
