package shared

import "errors"

// Error kinds shared by every service. Handlers translate them into HTTP
// statuses through httpx.RespondError.
var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates a missing, invalid or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrConflict indicates the resource already exists.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
)

var (
	// ErrInvalidCredentials indicates login failure. Unknown email and wrong
	// password both resolve to this value.
	ErrInvalidCredentials = &Error{Kind: ErrUnauthenticated, Message: "invalid email or password"}
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// Error pairs an error kind with a message that is safe to show to users.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Validation returns an ErrValidation error with msg.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// Unauthenticated returns an ErrUnauthenticated error with msg.
func Unauthenticated(msg string) error {
	return &Error{Kind: ErrUnauthenticated, Message: msg}
}

// Conflict returns an ErrConflict error with msg.
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// NotFound returns an ErrNotFound error with msg.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// UserMessage extracts the user-facing message from err. Errors that do not
// carry one yield fallback so internal details never leak.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
