package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across packages for stable error mapping.
var (
	// ErrNotEditing is returned when Commit or Cancel is called with no
	// edit in progress.
	ErrNotEditing = errors.New("no edit in progress")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials indicates a failed sign-in attempt. It does not
	// distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken indicates a sign-up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError reports missing required input. It is always raised before
// any network or storage call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// UploadError wraps a remote transfer failure. The upload is aborted;
// partial state such as an already uploaded thumbnail is not rolled back.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
