package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quotelinker/internal/domain"
	"quotelinker/internal/notifier"
)

// Mock repositories
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil && l != nil {
		l.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
	channel string
}

func (m *MockNotifier) Channel() string { return m.channel }

func (m *MockNotifier) Notify(ctx context.Context, leadID int64, lead *domain.Lead) (*notifier.Ack, error) {
	args := m.Called(ctx, leadID, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifier.Ack), args.Error(1)
}

func newTestService(repo *MockLeadRepository, notifiers ...notifier.Notifier) *Service {
	return NewService(repo, notifiers, zap.NewNop(), time.Second)
}

func johnSmith() QuoteRequest {
	return QuoteRequest{
		FirstName:         "John",
		LastName:          "Smith",
		Email:             "john@example.com",
		Phone:             "5551234567",
		Age:               "35",
		Gender:            "male",
		TobaccoUse:        "no",
		CoverageAmount:    "$100,000",
		BestTimeToContact: "morning",
		ZipCode:           "55305",
	}
}

func TestService_Submit_Success(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	email := &MockNotifier{channel: "email"}
	email.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(&notifier.Ack{ProviderID: "msg-1"}, nil)
	crm := &MockNotifier{channel: "crm"}
	crm.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(&notifier.Ack{ProviderID: "contact-1"}, nil)

	service := newTestService(repo, email, crm)

	req := johnSmith()
	result, err := service.Submit(context.Background(), &req, "203.0.113.9", "test-agent")

	require.NoError(t, err)
	assert.Equal(t, int64(999), result.LeadID)
	require.Len(t, result.Notifications, 2)
	assert.True(t, result.Notifications[0].Delivered)
	assert.Equal(t, "msg-1", result.Notifications[0].ProviderID)
	assert.True(t, result.Notifications[1].Delivered)
	repo.AssertExpectations(t)
	email.AssertExpectations(t)
	crm.AssertExpectations(t)
}

func TestService_Submit_BothNotificationsFail_StillSubmitted(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	email := &MockNotifier{channel: "email"}
	email.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(nil, &notifier.Error{StatusCode: 500, Body: `{"error":"smtp down"}`})
	crm := &MockNotifier{channel: "crm"}
	crm.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(nil, &notifier.Error{StatusCode: 503, Body: `{"error":"rate limited"}`})

	service := newTestService(repo, email, crm)

	req := johnSmith()
	result, err := service.Submit(context.Background(), &req, "", "")

	// the lead is captured; notification failures are warnings only
	require.NoError(t, err)
	assert.Equal(t, int64(999), result.LeadID)
	require.Len(t, result.Notifications, 2)
	for _, o := range result.Notifications {
		assert.False(t, o.Delivered)
		assert.NotEmpty(t, o.Error)
	}
}

func TestService_Submit_PersistenceFailure_NoNotifications(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	email := &MockNotifier{channel: "email"}
	crm := &MockNotifier{channel: "crm"}

	service := newTestService(repo, email, crm)

	req := johnSmith()
	result, err := service.Submit(context.Background(), &req, "", "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPersistence)
	email.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	crm.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Submit_UnconfiguredChannelSkipped(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	email := &MockNotifier{channel: "email"}
	email.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(nil, notifier.ErrNotConfigured)
	crm := &MockNotifier{channel: "crm"}
	crm.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(&notifier.Ack{ProviderID: "contact-1"}, nil)

	service := newTestService(repo, email, crm)

	req := johnSmith()
	result, err := service.Submit(context.Background(), &req, "", "")

	require.NoError(t, err)
	assert.True(t, result.Notifications[0].Skipped)
	assert.Empty(t, result.Notifications[0].Error)
	assert.True(t, result.Notifications[1].Delivered)
}

func TestService_Submit_InvalidRecordRejectedBeforePersist(t *testing.T) {
	repo := new(MockLeadRepository)
	service := newTestService(repo)

	req := johnSmith()
	req.Email = "not-an-email"
	result, err := service.Submit(context.Background(), &req, "", "")

	assert.Nil(t, result)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "email")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Submit_AppliesFormDefaults(t *testing.T) {
	repo := new(MockLeadRepository)
	var saved *domain.Lead
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Lead)
		}).
		Return(nil)

	service := newTestService(repo)

	req := johnSmith()
	req.TobaccoUse = ""
	req.BestTimeToContact = ""
	_, err := service.Submit(context.Background(), &req, "198.51.100.7", "agent")

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, domain.TobaccoNo, saved.TobaccoUse)
	assert.Equal(t, domain.ContactMorning, saved.BestTimeToContact)
	assert.Equal(t, 35, saved.Age)
	assert.Equal(t, domain.LeadNew, saved.Status)
	assert.Equal(t, "website", saved.Source)
	assert.Equal(t, "198.51.100.7", saved.IPAddress)
}

func TestService_Submit_SlowChannelDoesNotBlockResult(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	slow := &MockNotifier{channel: "email"}
	slow.On("Notify", mock.Anything, int64(999), mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done() // hang until the per-call timeout fires
		}).
		Return(nil, context.DeadlineExceeded)
	fast := &MockNotifier{channel: "crm"}
	fast.On("Notify", mock.Anything, int64(999), mock.Anything).
		Return(&notifier.Ack{ProviderID: "contact-1"}, nil)

	service := NewService(repo, []notifier.Notifier{slow, fast}, zap.NewNop(), 50*time.Millisecond)

	req := johnSmith()
	start := time.Now()
	result, err := service.Submit(context.Background(), &req, "", "")

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "submit must be bounded by the per-call timeout")
	assert.NotEmpty(t, result.Notifications[0].Error)
	assert.True(t, result.Notifications[1].Delivered)
}
