package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"finanzas/internal/logger"
	"finanzas/internal/metrics"
	"finanzas/internal/models"
)

// SessionConfig tunes the session registry.
type SessionConfig struct {
	SaveDebounce time.Duration
	SaveTimeout  time.Duration
	IdleTTL      time.Duration
}

// session owns one user's working state. Every read and mutation holds mu,
// so recomputation never interleaves with a mutation.
type session struct {
	userID string
	ready  chan struct{}

	mu       sync.Mutex
	state    models.BudgetState
	saver    *Debouncer
	lastSeen time.Time

	// closed is set once the session leaves the registry; a mutation that
	// raced with End must not schedule another save.
	closed atomic.Bool
}

// SessionRegistry holds the working state of every active user and mirrors
// it to the PersistenceGateway through a debounced save.
type SessionRegistry struct {
	gateway PersistenceGateway
	cfg     SessionConfig
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionRegistry creates a SessionRegistry. m may be nil.
func NewSessionRegistry(gateway PersistenceGateway, cfg SessionConfig, m *metrics.Metrics) *SessionRegistry {
	return &SessionRegistry{
		gateway:  gateway,
		cfg:      cfg,
		metrics:  m,
		log:      logger.Named("sessions"),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// View runs fn with the user's state. fn must not retain the state.
func (r *SessionRegistry) View(ctx context.Context, userID string, fn func(*models.BudgetState)) error {
	s, err := r.acquire(ctx, userID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = r.now()
	fn(&s.state)
	return nil
}

// Mutate runs fn with the user's state and, when fn succeeds, restarts the
// save debounce.
func (r *SessionRegistry) Mutate(ctx context.Context, userID string, fn func(*models.BudgetState) error) error {
	s, err := r.acquire(ctx, userID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = r.now()
	if err := fn(&s.state); err != nil {
		return err
	}
	if s.closed.Load() {
		return nil
	}

	r.metrics.IncrSaveScheduled()
	if s.saver.Trigger() {
		r.metrics.IncrSaveCoalesced()
	}
	return nil
}

// End drops the user's session. A pending save is cancelled, not flushed.
func (r *SessionRegistry) End(userID string) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	delete(r.sessions, userID)
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		return
	}
	<-s.ready
	s.closed.Store(true)
	s.saver.Cancel()
	r.metrics.SetSessionsActive(n)
}

// Active returns the number of sessions in memory.
func (r *SessionRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle ends every session not used within the idle TTL and returns how
// many were ended.
func (r *SessionRegistry) EvictIdle() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var idle []string
	for id, s := range r.sessions {
		select {
		case <-s.ready:
		default:
			continue
		}
		s.mu.Lock()
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, id)
		}
		s.mu.Unlock()
	}
	r.mu.Unlock()

	for _, id := range idle {
		r.End(id)
	}
	if len(idle) > 0 {
		r.log.Infow("evicted idle sessions", "count", len(idle))
	}
	return len(idle)
}

// Run evicts idle sessions until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context) error {
	interval := r.cfg.IdleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.EvictIdle()
		}
	}
}

// Shutdown runs every pending save now and drops all sessions.
func (r *SessionRegistry) Shutdown() {
	r.mu.Lock()
	all := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*session)
	r.mu.Unlock()

	flushed := 0
	for _, s := range all {
		<-s.ready
		s.closed.Store(true)
		if s.saver.Flush() {
			flushed++
		}
	}
	r.metrics.SetSessionsActive(0)
	r.log.Infow("sessions shut down", "sessions", len(all), "flushed", flushed)
}

// acquire returns the user's session, loading it on first access. Concurrent
// first requests share one load.
func (r *SessionRegistry) acquire(ctx context.Context, userID string) (*session, error) {
	r.mu.Lock()
	s, ok := r.sessions[userID]
	if !ok {
		s = &session{userID: userID, ready: make(chan struct{})}
		r.sessions[userID] = s
		n := len(r.sessions)
		r.mu.Unlock()

		s.state = r.load(ctx, userID)
		s.saver = NewDebouncer(r.cfg.SaveDebounce, func() { r.flush(s) })
		s.lastSeen = r.now()
		close(s.ready)
		r.metrics.SetSessionsActive(n)
	} else {
		r.mu.Unlock()
	}

	select {
	case <-s.ready:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load fetches the saved state. A missing document or a failed load both
// leave the defaults active; failures are logged only.
func (r *SessionRegistry) load(ctx context.Context, userID string) models.BudgetState {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.SaveTimeout)
	defer cancel()

	doc, err := r.gateway.Load(ctx, userID)
	switch {
	case err != nil:
		r.metrics.IncrLoad("failure")
		r.log.Errorw("failed to load document, using defaults", "user_id", userID, "operation", "load", "error", err)
		return models.DefaultState()
	case doc == nil:
		r.metrics.IncrLoad("absent")
		return models.DefaultState()
	}
	r.metrics.IncrLoad("found")
	return doc.BudgetState.Clone()
}

// flush saves the state as it is when the debounce fires. Failures are
// logged and not retried.
func (r *SessionRegistry) flush(s *session) {
	s.mu.Lock()
	state := s.state.Clone()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.SaveTimeout)
	defer cancel()

	if err := r.gateway.Save(ctx, s.userID, state); err != nil {
		r.log.Errorw("failed to save document",
			"user_id", s.userID,
			"period", state.Period().Key(),
			"operation", "save",
			"error", err,
		)
	}
}
