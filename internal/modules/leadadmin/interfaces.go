package leadadmin

import (
	"context"

	"quotelinker/internal/domain"
)

// LeadRepository defines the data access the back office needs.
type LeadRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]*domain.Lead, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int64, error)
}
