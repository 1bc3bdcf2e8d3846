// Package notifier holds the outbound integrations invoked after a lead is
// persisted. Every client is best-effort: one attempt, no retries, failures
// reported back to the caller for logging only.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"quotelinker/internal/domain"
)

// ErrNotConfigured is returned when an integration has no credential. The
// caller treats it as a skipped channel, not a failure.
var ErrNotConfigured = errors.New("notifier is not configured")

// Ack is the provider's acknowledgement of a delivered notification.
type Ack struct {
	ProviderID string
}

// Error carries the raw diagnostic payload from a failed provider call so it
// can be logged verbatim.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Notifier is the single contract both outbound channels implement.
type Notifier interface {
	// Channel names the integration for logs and submit results.
	Channel() string
	// Notify delivers one notification referencing the persisted lead.
	Notify(ctx context.Context, leadID int64, lead *domain.Lead) (*Ack, error)
}
