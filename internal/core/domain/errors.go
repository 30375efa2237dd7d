package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrUsernameTaken = errors.New("username is taken")
	ErrEmailTaken    = errors.New("email is taken")
)

// FieldErrors maps an input field name to a human-readable problem with that
// field. Validators fill one entry per failing field so a client sees every
// problem in a single response.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Error is an HTTP-mappable failure carrying the status code, a message and
// optional field-level detail. The API error handler renders it as the
// canonical {success:false, message, errors?} envelope.
type Error struct {
	Status  int
	Message string
	Fields  FieldErrors
}

func (e *Error) Error() string { return e.Message }

// NewError builds an *Error. Fields may be nil.
func NewError(status int, message string, fields FieldErrors) *Error {
	return &Error{Status: status, Message: message, Fields: fields}
}
