package services

import (
	"context"
	"errors"
	"sync"

	"finanzas/internal/events"
	"finanzas/internal/models"
)

// recordingGateway is an in-memory PersistenceGateway that records saves.
type recordingGateway struct {
	mu      sync.Mutex
	docs    map[string]*models.Document
	saves   []models.BudgetState
	loadErr error
	saveErr error
	loads   int
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{docs: make(map[string]*models.Document)}
}

func (g *recordingGateway) Load(_ context.Context, userID string) (*models.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loads++
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	doc, ok := g.docs[userID]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.BudgetState = doc.BudgetState.Clone()
	return &cp, nil
}

func (g *recordingGateway) Save(_ context.Context, userID string, state models.BudgetState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, state.Clone())
	if g.saveErr != nil {
		return g.saveErr
	}
	doc, ok := g.docs[userID]
	if !ok {
		doc = &models.Document{PeriodSnapshots: map[string]models.PeriodSnapshot{}}
		g.docs[userID] = doc
	}
	doc.BudgetState = state.Clone()
	doc.PeriodSnapshots[state.Period().Key()] = state.Snapshot()
	return nil
}

func (g *recordingGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.saves)
}

func (g *recordingGateway) lastSave() models.BudgetState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves[len(g.saves)-1]
}

// failingStore is a DocumentStore whose calls all fail.
type failingStore struct {
	mu    sync.Mutex
	calls int
}

var errStoreDown = errors.New("store down")

func (s *failingStore) Get(context.Context, string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil, errStoreDown
}

func (s *failingStore) Merge(context.Context, string, map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errStoreDown
}

// capturePublisher records published messages.
type capturePublisher struct {
	mu   sync.Mutex
	msgs []*events.StateSaved
	err  error
}

func (p *capturePublisher) PublishStateSaved(_ context.Context, msg *events.StateSaved) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }
