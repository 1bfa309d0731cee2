package services

import "errors"

// Kind classifies facade failures.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotFound           Kind = "not_found"
	KindOperationFailed    Kind = "operation_failed"
)

// Error is the failure every facade operation reports.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err. Errors from outside the facade count as
// KindOperationFailed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOperationFailed
}

func IsNotFound(err error) bool { return err != nil && KindOf(err) == KindNotFound }

const (
	msgInvalidCredentials = "Invalid email or password"
	msgUserNotFound       = "User not found"
	msgProjectNotFound    = "Project not found"
	msgTaskNotFound       = "Task not found"
	msgTeamNotFound       = "Team not found"
)

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func failed(msg string) *Error {
	return &Error{Kind: KindOperationFailed, Message: msg}
}
