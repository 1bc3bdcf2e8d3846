package quote

import (
	"context"

	"quotelinker/internal/domain"
)

// LeadRepository defines the persistence boundary for submitted quotes.
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
}
