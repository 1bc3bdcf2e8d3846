package quote

import "errors"

var (
	ErrPersistence     = errors.New("could not save quote request")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session already completed")
)

// FieldErrors maps field names to their validation messages. It implements
// error so the service can hand it back through the usual error path.
type FieldErrors map[string]string

func (f FieldErrors) Error() string { return "validation failed" }
