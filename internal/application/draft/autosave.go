package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/proposalforge/agency-api/internal/domain/entity"
)

// RecoveryKey is the single slot every draft is saved under. Starting a
// second quote overwrites the first's recovery data; that is a deliberate
// single-slot limitation, not a defect.
const RecoveryKey = "quote:wizard:draft"

// DefaultDebounce is the quiet period after the last mutation before the
// draft is written to the store.
const DefaultDebounce = 3 * time.Second

// Store is the local key-value capability used only for draft recovery.
// Get returns (nil, nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Session owns one draft for its full wizard lifecycle: the aggregate, the
// step position and the debounced autosave.
type Session struct {
	mu        sync.Mutex
	store     Store
	data      entity.QuoteData
	wizard    *Wizard
	debounce  time.Duration
	timer     *time.Timer
	lastSaved time.Time
	recovered bool
}

// NewSession hydrates a session from the recovery slot when a stored draft
// parses, and starts fresh otherwise. A corrupt stored value is discarded
// silently.
func NewSession(store Store, debounce time.Duration) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Session{
		store:    store,
		wizard:   NewWizard(),
		debounce: debounce,
	}
	s.data = NewQuoteData()
	if store != nil {
		if raw, err := store.Get(context.Background(), RecoveryKey); err == nil && len(raw) > 0 {
			var recovered entity.QuoteData
			if err := json.Unmarshal(raw, &recovered); err == nil {
				s.data = recovered
				s.recovered = true
			}
		}
	}
	return s
}

// Data returns a copy of the current draft.
func (s *Session) Data() entity.QuoteData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.data)
}

// Recovered reports whether this session was hydrated from a stored draft.
func (s *Session) Recovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// LastSavedAt returns the wall-clock time of the most recent autosave
// write, zero if nothing has been written yet.
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Apply runs a mutation over the draft, installs the result and schedules
// an autosave. The mutation receives a copy and must return the new value.
func (s *Session) Apply(fn func(entity.QuoteData) entity.QuoteData) entity.QuoteData {
	s.mu.Lock()
	s.data = fn(Clone(s.data))
	out := Clone(s.data)
	s.scheduleLocked()
	s.mu.Unlock()
	return out
}

// Replace swaps in a whole new draft value, as when the client pushes the
// full edited form state.
func (s *Session) Replace(q entity.QuoteData) {
	s.mu.Lock()
	s.data = Clone(q)
	s.scheduleLocked()
	s.mu.Unlock()
}

// Step returns the wizard's current step.
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Current()
}

// StepName returns the wizard's current step name.
func (s *Session) StepName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.StepName()
}

// Next advances the wizard. Step transitions never persist the draft.
func (s *Session) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Next()
}

// Prev moves the wizard back.
func (s *Session) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Prev()
}

// GoTo jumps the wizard to any step.
func (s *Session) GoTo(step int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.GoTo(step)
}

// Flush writes the draft to the store immediately, cancelling any pending
// debounce timer.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.save(ctx)
}

// Clear deletes the recovery slot and resets the session to a fresh draft.
// Called after a successful submission.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.data = NewQuoteData()
	s.recovered = false
	s.wizard = NewWizard()
	store := s.store
	s.mu.Unlock()
	if store == nil {
		return nil
	}
	return store.Delete(ctx, RecoveryKey)
}

// Close drops any pending autosave without writing it. Data inside the
// debounce window is lost, matching the accepted few-second loss window.
func (s *Session) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

// scheduleLocked restarts the debounce timer; the caller holds s.mu.
// Last mutation wins: every mutation cancels the previous timer.
func (s *Session) scheduleLocked() {
	if s.store == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		// Autosave failures are deliberately swallowed; recovery is a
		// best-effort convenience, not durable persistence.
		_ = s.save(context.Background())
	})
}

func (s *Session) save(ctx context.Context) error {
	s.mu.Lock()
	store := s.store
	raw, err := json.Marshal(s.data)
	s.mu.Unlock()
	if store == nil || err != nil {
		return err
	}
	if err := store.Set(ctx, RecoveryKey, raw); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastSaved = time.Now()
	s.mu.Unlock()
	return nil
}
