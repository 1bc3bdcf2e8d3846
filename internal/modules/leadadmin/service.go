package leadadmin

import (
	"context"

	"quotelinker/internal/domain"
)

// Service handles back-office lead management. Submitted form data is
// immutable; only the pipeline status moves.
type Service struct {
	leads LeadRepository
}

func NewService(leads LeadRepository) *Service {
	return &Service{leads: leads}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (s *Service) List(ctx context.Context, status *domain.LeadStatus, limit, offset int) ([]*domain.Lead, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.leads.List(ctx, status, limit, offset)
}

// UpdateStatus moves a lead through the pipeline. Converted is terminal.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) (*domain.Lead, error) {
	if !validStatus(status) {
		return nil, ErrInvalidStatus
	}

	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if lead.IsConverted() {
		return nil, ErrAlreadyConverted
	}

	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.leads.GetByID(ctx, id)
}

// MarkContacted advances a fresh lead to contacted; any other status is left
// untouched.
func (s *Service) MarkContacted(ctx context.Context, id int64) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	if lead.Status == domain.LeadNew {
		if err := s.leads.UpdateStatus(ctx, id, domain.LeadContacted); err != nil {
			return nil, err
		}
	}
	return s.leads.GetByID(ctx, id)
}

// Stats returns lead counts keyed by status.
func (s *Service) Stats(ctx context.Context) (map[domain.LeadStatus]int64, error) {
	return s.leads.CountByStatus(ctx)
}

func validStatus(status domain.LeadStatus) bool {
	switch status {
	case domain.LeadNew, domain.LeadContacted, domain.LeadQualified,
		domain.LeadConverted, domain.LeadRejected, domain.LeadLost:
		return true
	}
	return false
}
