package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUserNotFound is returned when logging in with an unknown email.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken is returned when a request carries no token.
	ErrMissingToken = errors.New("no token")
	// ErrInvalidToken is returned when a token fails signature, expiry or revocation checks.
	ErrInvalidToken = errors.New("token is not valid")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Msg:  e.Message,
		Code: e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown is a
// store failure and is passed through verbatim as a 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, "Email already exists or invalid data", "DUPLICATE_EMAIL")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, "User does not exist", "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, "No token, authorization denied", "TOKEN_MISSING")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, "Token is not valid", "TOKEN_INVALID")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "STORE_ERROR")
	}
}
