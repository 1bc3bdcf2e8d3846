package leadadmin

import "quotelinker/internal/domain"

// UpdateLeadStatusRequest moves a lead through the pipeline.
type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted qualified converted rejected lost"`
}

// LeadListResponse is the paginated listing payload.
type LeadListResponse struct {
	Leads []*domain.Lead `json:"leads"`
	Total int64          `json:"total"`
}
