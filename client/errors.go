package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport wraps failures where no response reached the client at all
// (DNS, refused connection, timeout). Call sites surface these as a generic
// connectivity message.
var ErrTransport = errors.New("client: transport failure")

// APIError is a response the backend answered with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("client: api error %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 rejection.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 for an absent resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
