package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_InvalidStepDoesNotAdvance(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	errs, ready, err := sess.ApplyNext(QuoteRequest{FirstName: "John"})
	require.NoError(t, err)
	assert.False(t, ready)
	assert.NotEmpty(t, errs)
	assert.Equal(t, 0, sess.Step())
}

func TestSession_ValidStepAdvances(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	errs, ready, err := sess.ApplyNext(QuoteRequest{
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john@example.com",
		Phone:     "5551234567",
	})
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.False(t, ready)
	assert.Equal(t, 1, sess.Step())
}

func TestSession_FullWalkReachesSubmit(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	_, ready, err := sess.ApplyNext(QuoteRequest{
		FirstName: "John", LastName: "Smith",
		Email: "john@example.com", Phone: "5551234567",
	})
	require.NoError(t, err)
	require.False(t, ready)

	_, ready, err = sess.ApplyNext(QuoteRequest{
		Age: "35", Gender: "male", TobaccoUse: "no", CoverageAmount: "$100,000",
	})
	require.NoError(t, err)
	require.False(t, ready)
	require.Equal(t, 2, sess.Step())

	errs, ready, err := sess.ApplyNext(QuoteRequest{
		BestTimeToContact: "morning", ZipCode: "55305",
	})
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.True(t, ready, "last valid step must hand off to submission")

	record := sess.Snapshot()
	assert.Equal(t, "john@example.com", record.Email)
	assert.Equal(t, "$100,000", record.CoverageAmount)
	assert.Equal(t, "55305", record.ZipCode)
}

func TestSession_StepPatchCannotTouchOtherSteps(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	// a step 0 payload carrying step 1 fields must not pre-fill them
	_, _, err := sess.ApplyNext(QuoteRequest{
		FirstName: "John", LastName: "Smith",
		Email: "john@example.com", Phone: "5551234567",
		Age: "35", Gender: "male",
	})
	require.NoError(t, err)

	record := sess.Snapshot()
	assert.Empty(t, record.Age)
	assert.Empty(t, record.Gender)
}

func TestSession_BackFromStepZeroRefused(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	assert.False(t, sess.Back())
	assert.Equal(t, 0, sess.Step())
}

func TestSession_BackAndForth(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	_, _, err := sess.ApplyNext(QuoteRequest{
		FirstName: "John", LastName: "Smith",
		Email: "john@example.com", Phone: "5551234567",
	})
	require.NoError(t, err)
	require.Equal(t, 1, sess.Step())

	assert.True(t, sess.Back())
	assert.Equal(t, 0, sess.Step())
}

func TestSession_ClosedAfterDone(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()
	sess.MarkDone(42)

	_, _, err := sess.ApplyNext(QuoteRequest{})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.False(t, sess.Back())
	assert.Equal(t, int64(42), sess.LeadID())
}

func TestSession_FailedSubmitAllowsRetry(t *testing.T) {
	store := NewStore(time.Minute)
	sess := store.Create()

	_, _, _ = sess.ApplyNext(QuoteRequest{
		FirstName: "John", LastName: "Smith",
		Email: "john@example.com", Phone: "5551234567",
	})
	_, _, _ = sess.ApplyNext(QuoteRequest{
		Age: "35", Gender: "male", CoverageAmount: "$100,000",
	})
	sess.MarkFailed()

	// user stays on the last step and may resubmit
	assert.Equal(t, SessionFailed, sess.State())
	_, ready, err := sess.ApplyNext(QuoteRequest{
		BestTimeToContact: "evening", ZipCode: "55305",
	})
	require.NoError(t, err)
	assert.True(t, ready)
}

func TestStore_GetUnknownSession(t *testing.T) {
	store := NewStore(time.Minute)
	assert.Nil(t, store.Get("missing"))
}

func TestStore_ExpiredSessionEvicted(t *testing.T) {
	store := NewStore(time.Nanosecond)
	sess := store.Create()

	time.Sleep(time.Millisecond)
	assert.Nil(t, store.Get(sess.ID))
}
