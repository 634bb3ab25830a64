// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}

// Sentinel business errors. Services return these (wrapped or bare); handlers
// map them to status codes via Status and send err.Error() as the detail.
var (
	// ErrNotFound — barcode/session/customer/category absent; no mutation occurred.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict — duplicate barcode, duplicate card_id, category already exists.
	ErrConflict = errors.New("resource already exists")
	// ErrPrecondition — referential precondition failed, e.g. branch still has
	// active users. Checked before mutation.
	ErrPrecondition = errors.New("operation precondition failed")
	// ErrInsufficientStock aborts the entire sale transaction.
	ErrInsufficientStock = errors.New("Insufficient stock")
	// ErrInsufficientPoints aborts the redemption transaction. The POS terminal
	// matches on this literal message.
	ErrInsufficientPoints = errors.New("Insufficient points balance")
	// ErrSessionNotFound — no open session for the requesting pharmacist.
	ErrSessionNotFound = errors.New("session not found or already closed")
	// ErrInvalidCredentials — wrong email/password/PIN, disabled account, or a
	// bad reset token. Deliberately vague.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Status maps a service error to its HTTP status code. Unrecognized errors are
// transient infrastructure failures: 500, and the caller must replace the
// message with a generic one before responding.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInsufficientPoints):
		// The POS frontend expects 500 with the literal message here.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsBusiness reports whether the error carries a client-safe message.
// Infrastructure errors never reach the client verbatim.
func IsBusiness(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrConflict, ErrPrecondition,
		ErrInsufficientStock, ErrInsufficientPoints, ErrSessionNotFound,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
