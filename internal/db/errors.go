package db

import "errors"

// Sentinel errors, matched with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("already exists")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
)

type (
	// ValidationError reports a missing or malformed input. Nothing was written.
	ValidationError struct {
		Message string
	}

	// ConflictError reports a duplicate unique key. Nothing was written.
	ConflictError struct {
		Message string
	}

	// AuthenticationError never says whether the email or the password was wrong.
	AuthenticationError struct {
		Message string
	}

	// NotFoundError reports a record that does not exist or is not owned by the caller.
	NotFoundError struct {
		Message string
	}
)

func (e *ValidationError) Error() string     { return e.Message }
func (e *ConflictError) Error() string       { return e.Message }
func (e *AuthenticationError) Error() string { return e.Message }
func (e *NotFoundError) Error() string       { return e.Message }

func (e *ValidationError) Is(target error) bool     { return target == ErrValidation }
func (e *ConflictError) Is(target error) bool       { return target == ErrConflict }
func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }
func (e *NotFoundError) Is(target error) bool       { return target == ErrNotFound }

// Result is the success flag plus optional message handed to callers that
// speak the plain operation surface.
type Result struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func ResultOf(err error) Result {
	if err == nil {
		return Result{OK: true}
	}
	return Result{OK: false, Message: err.Error()}
}
