package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
)

// Client-facing validation messages.
const (
	MsgFieldsRequired  = "All fields are required"
	MsgInvalidOwnerID  = "Invalid owner_id. Must be a number."
	MsgInvalidDate     = "Invalid date format. Use YYYY-MM-DD."
	MsgInvalidStatus   = "Invalid status value."
	MsgUnknownProject  = "Referenced project does not exist"
	MsgUserOwnsProject = "User still owns projects"
	MsgPasswordTooLong = "Password must be at most 72 bytes"
)

// ValidationError carries a message that is safe to return to the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// ConflictError is a Conflict with a caller-safe message.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func Conflict(msg string) error { return &ConflictError{Msg: msg} }
