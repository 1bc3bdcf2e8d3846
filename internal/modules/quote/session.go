package quote

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState tracks where a form session is in its lifecycle.
type SessionState string

const (
	SessionActive     SessionState = "active"
	SessionSubmitting SessionState = "submitting"
	SessionDone       SessionState = "done"
	SessionFailed     SessionState = "failed"
)

// Session is the transient server-side state of one multi-step form fill.
// It lives only in memory and is discarded after a successful submit or TTL
// expiry. A failed submit keeps the session on the last step so the user can
// resubmit the same data.
type Session struct {
	ID string

	mu        sync.Mutex
	step      int
	state     SessionState
	record    QuoteRequest
	leadID    int64
	updatedAt time.Time
}

// Step returns the current step index.
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LeadID returns the persisted lead id once the session is done.
func (s *Session) LeadID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leadID
}

// Snapshot returns a copy of the accumulated record.
func (s *Session) Snapshot() QuoteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// ApplyNext merges the current step's fields from patch, validates them and
// advances. It returns field errors when the step is invalid (the index does
// not move), ready=true when the last step validated and the record is ready
// to submit, and ErrSessionClosed once the session has finished.
func (s *Session) ApplyNext(patch QuoteRequest) (FieldErrors, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionDone, SessionSubmitting:
		return nil, false, ErrSessionClosed
	}

	// a retry after a failed submit starts from the last step again
	s.state = SessionActive
	s.touch()

	for _, f := range stepFields[s.step] {
		s.setField(f, patch.fieldValue(f))
	}

	if errs := ValidateStep(s.step, &s.record); errs != nil {
		return errs, false, nil
	}

	if s.step < len(stepFields)-1 {
		s.step++
		return nil, false, nil
	}
	return nil, true, nil
}

// Back moves one step backward. It reports false from step 0 or once
// submission has started.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == 0 {
		return false
	}
	switch s.state {
	case SessionDone, SessionSubmitting:
		return false
	}

	s.state = SessionActive
	s.step--
	s.touch()
	return true
}

// MarkSubmitting flags the session while the coordinator runs.
func (s *Session) MarkSubmitting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionSubmitting
	s.touch()
}

// MarkDone records the persisted lead id and closes the session.
func (s *Session) MarkDone(leadID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionDone
	s.leadID = leadID
	s.touch()
}

// MarkFailed keeps the session on the last step with a retry affordance.
func (s *Session) MarkFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionFailed
	s.touch()
}

func (s *Session) setField(f Field, value string) {
	switch f {
	case FieldFirstName:
		s.record.FirstName = value
	case FieldLastName:
		s.record.LastName = value
	case FieldEmail:
		s.record.Email = value
	case FieldPhone:
		s.record.Phone = value
	case FieldAge:
		s.record.Age = value
	case FieldGender:
		s.record.Gender = value
	case FieldTobaccoUse:
		s.record.TobaccoUse = value
	case FieldCoverageAmount:
		s.record.CoverageAmount = value
	case FieldBestTimeToContact:
		s.record.BestTimeToContact = value
	case FieldZipCode:
		s.record.ZipCode = value
	}
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// Store keeps active form sessions in memory. Sessions are owned by a single
// form fill each; the store only guards its own map.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create opens a new session at step 0.
func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		state:     SessionActive,
		updatedAt: time.Now(),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get returns the session or nil when unknown or expired.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil
	}
	if st.expired(sess) {
		delete(st.sessions, id)
		return nil
	}
	return sess
}

// Janitor evicts expired sessions until ctx is cancelled.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (st *Store) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		if st.expired(sess) {
			delete(st.sessions, id)
		}
	}
}

func (st *Store) expired(sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return time.Since(sess.updatedAt) > st.ttl
}
