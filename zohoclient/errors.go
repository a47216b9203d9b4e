package zohoclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoTokenSource = errors.New("zoho client has no token source")
	ErrEmptyToken    = errors.New("zoho accounts returned an empty access token")
)

// APIError is a response the API rejected: a non-2xx status or a body whose
// code is not 0. Code and Message come from the response envelope when present.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zoho books api error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
