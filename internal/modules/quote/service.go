package quote

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"quotelinker/internal/domain"
	"quotelinker/internal/notifier"
)

// NotificationOutcome reports one channel's result. Failures and skipped
// channels are informational only; they never change the submit result.
type NotificationOutcome struct {
	Channel    string `json:"channel"`
	Delivered  bool   `json:"delivered"`
	ProviderID string `json:"provider_id,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SubmitResult is returned once the lead is durably persisted.
type SubmitResult struct {
	LeadID        int64                 `json:"lead_id"`
	Notifications []NotificationOutcome `json:"notifications"`
}

// Service coordinates the submit sequence: persist the record, then fan out
// best-effort notifications whose outcomes are isolated from each other and
// from the user-visible result.
type Service struct {
	leads         LeadRepository
	notifiers     []notifier.Notifier
	log           *zap.Logger
	notifyTimeout time.Duration
}

func NewService(leads LeadRepository, notifiers []notifier.Notifier, log *zap.Logger, notifyTimeout time.Duration) *Service {
	return &Service{
		leads:         leads,
		notifiers:     notifiers,
		log:           log,
		notifyTimeout: notifyTimeout,
	}
}

// Submit persists the record and dispatches the notification fan-out.
// Persistence is the only hard dependency: its failure aborts the attempt
// before any notification is tried and the caller may resubmit the same data
// (a later retry creates a new record; duplicates are accepted).
func (s *Service) Submit(ctx context.Context, req *QuoteRequest, ip, userAgent string) (*SubmitResult, error) {
	if errs := ValidateRecord(req); errs != nil {
		return nil, errs
	}

	lead := toLead(req, ip, userAgent)
	if err := s.leads.Create(ctx, lead); err != nil {
		s.log.Error("lead persistence failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	outcomes := s.fanOut(ctx, lead)
	for _, o := range outcomes {
		switch {
		case o.Skipped:
			s.log.Info("notification channel not configured, skipping",
				zap.String("channel", o.Channel),
				zap.Int64("lead_id", lead.ID),
			)
		case o.Error != "":
			s.log.Warn("notification failed",
				zap.String("channel", o.Channel),
				zap.Int64("lead_id", lead.ID),
				zap.String("error", o.Error),
			)
		default:
			s.log.Info("notification delivered",
				zap.String("channel", o.Channel),
				zap.Int64("lead_id", lead.ID),
				zap.String("provider_id", o.ProviderID),
			)
		}
	}

	return &SubmitResult{LeadID: lead.ID, Notifications: outcomes}, nil
}

// fanOut runs every notifier concurrently, each bounded by its own timeout.
// A slow or hung channel cannot delay the others beyond that bound, and no
// error, nor panic, escapes this boundary.
func (s *Service) fanOut(ctx context.Context, lead *domain.Lead) []NotificationOutcome {
	outcomes := make([]NotificationOutcome, len(s.notifiers))

	var wg sync.WaitGroup
	for i, n := range s.notifiers {
		wg.Add(1)
		go func(i int, n notifier.Notifier) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = NotificationOutcome{
						Channel: n.Channel(),
						Error:   fmt.Sprintf("panic: %v", r),
					}
				}
			}()

			// the user navigating away must not cancel an in-flight
			// notification, so detach from the request's cancellation
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
			defer cancel()

			ack, err := n.Notify(nctx, lead.ID, lead)
			switch {
			case err == nil:
				outcomes[i] = NotificationOutcome{
					Channel:    n.Channel(),
					Delivered:  true,
					ProviderID: ack.ProviderID,
				}
			case errors.Is(err, notifier.ErrNotConfigured):
				outcomes[i] = NotificationOutcome{
					Channel: n.Channel(),
					Skipped: true,
				}
			default:
				outcomes[i] = NotificationOutcome{
					Channel: n.Channel(),
					Error:   err.Error(),
				}
			}
		}(i, n)
	}
	wg.Wait()

	return outcomes
}

// toLead converts the validated form values into the canonical record,
// applying the form defaults for the optional enums.
func toLead(req *QuoteRequest, ip, userAgent string) *domain.Lead {
	age, _ := strconv.Atoi(strings.TrimSpace(req.Age))

	tobacco := domain.TobaccoUse(req.TobaccoUse)
	if tobacco == "" {
		tobacco = domain.TobaccoNo
	}
	contactTime := domain.ContactTime(req.BestTimeToContact)
	if contactTime == "" {
		contactTime = domain.ContactMorning
	}

	now := time.Now()
	return &domain.Lead{
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		Age:               age,
		Gender:            domain.Gender(req.Gender),
		TobaccoUse:        tobacco,
		CoverageAmount:    req.CoverageAmount,
		BestTimeToContact: contactTime,
		ZipCode:           strings.TrimSpace(req.ZipCode),
		Status:            domain.LeadNew,
		Source:            "website",
		IPAddress:         ip,
		UserAgent:         userAgent,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
