package errors

import (
	"errors"
	"fmt"
)

// Common error values for the SkillsMatch client
var (
	// Credential errors
	ErrNoCredential   = errors.New("no credential persisted")
	ErrNoRefreshToken = errors.New("no refresh token held")
	ErrSessionExpired = errors.New("session expired")

	// Input errors
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
)

// ValidationError reports malformed local input, such as blank login
// credentials. It is raised before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError reports a rejected credential: a failed login, an exhausted
// refresh token, or a resource call that stayed unauthorized after the
// single refresh-and-retry. The session manager forces a logout whenever
// one is raised, so an observer of an AuthError always sees an
// unauthenticated session.
type AuthError struct {
	Detail string // human-readable message, from the backend when available
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NetworkError reports that no response was received from the server:
// connection refused, DNS failure, or a request timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a non-auth 4xx/5xx response from a resource endpoint.
// No retry is attempted for these; they surface directly to the caller.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsAPI reports whether err is an APIError.
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
