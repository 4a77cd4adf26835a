// Package calcsession manages server-side calculator sessions, one engine
// per client, wired to the live rate catalog.
package calcsession

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/konvierte/konvierte/pkg/calculator"
	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/eventbus"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
)

// View is the presentation snapshot of one session.
type View struct {
	ID            uuid.UUID           `json:"id"`
	ForeignAmount string              `json:"foreign_amount"`
	LocalAmount   string              `json:"local_amount"`
	State         calculator.State    `json:"state"`
	LastEdited    calculator.Side     `json:"last_edited"`
	Inverted      bool                `json:"inverted"`
	ActiveRateID  string              `json:"active_rate_id"`
	ActiveRate    domain.ResolvedRate `json:"active_rate"`
}

type session struct {
	mu           sync.Mutex
	engine       *calculator.Engine
	activeRateID string
}

// Service owns the session set. Each session serializes its own mutations,
// so one keystroke runs to completion before the next.
type Service struct {
	rates  *ratesvc.Service
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// New builds the service and subscribes to catalog events: a refresh
// re-derives every session's amounts at the new price, and removing a
// custom rate redirects sessions pointing at it to the baseline rate.
func New(rates *ratesvc.Service, bus eventbus.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		rates:    rates,
		logger:   logger,
		sessions: make(map[uuid.UUID]*session),
	}
	bus.Subscribe("RatesRefreshedEvent", func(ctx context.Context, _ domain.Event) {
		s.repriceAll()
	})
	bus.Subscribe("CustomRateRemovedEvent", func(ctx context.Context, e domain.Event) {
		if removed, ok := e.(domain.CustomRateRemovedEvent); ok {
			s.redirectFrom(removed.ID)
		}
	})
	return s
}

// Create opens a session on the default/favorite rate.
func (s *Service) Create() View {
	id := uuid.New()
	rateID := s.rates.DefaultRateID()
	rate, _ := s.rates.Rate(rateID)

	sess := &session{
		engine:       calculator.New(rate.Price),
		activeRateID: rateID,
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.logger.Debug("calculator session created", "session", id, "rate", rateID)
	return s.view(id, sess)
}

// Close drops a session.
func (s *Service) Close(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Get returns the current snapshot of a session.
func (s *Service) Get(id uuid.UUID) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(id, sess), nil
}

// Focus begins editing one side.
func (s *Service) Focus(id uuid.UUID, side calculator.Side) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.Focus(side)
	})
}

// Unfocus commits the current entry and returns to idle.
func (s *Service) Unfocus(id uuid.UUID) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.Unfocus()
	})
}

// Press applies one keypad token to the focused side.
func (s *Service) Press(id uuid.UUID, key string) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.Press(key)
	})
}

// SetAmount applies a quick-amount shortcut to one side.
func (s *Service) SetAmount(id uuid.UUID, value float64, side calculator.Side) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.SetAmount(value, side)
	})
}

// SelectRate switches the session's active rate and re-derives the
// non-source side, preserving what the user typed.
func (s *Service) SelectRate(id uuid.UUID, rateID string) (View, error) {
	rate, ok := s.rates.Rate(rateID)
	if !ok {
		return View{}, domain.ErrRateNotFound
	}
	return s.update(id, func(sess *session) {
		sess.activeRateID = rateID
		sess.engine.SelectRate(rate.Price)
	})
}

// Swap toggles the display layout.
func (s *Service) Swap(id uuid.UUID) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.Swap()
	})
}

// Reset restores the canonical "1 unit" state.
func (s *Service) Reset(id uuid.UUID) (View, error) {
	return s.update(id, func(sess *session) {
		sess.engine.Reset()
	})
}

func (s *Service) update(id uuid.UUID, mutate func(*session)) (View, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	mutate(sess)
	return s.viewLocked(id, sess), nil
}

func (s *Service) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) view(id uuid.UUID, sess *session) View {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.viewLocked(id, sess)
}

func (s *Service) viewLocked(id uuid.UUID, sess *session) View {
	rate, _ := s.rates.Rate(sess.activeRateID)
	return View{
		ID:            id,
		ForeignAmount: sess.engine.Foreign(),
		LocalAmount:   sess.engine.Local(),
		State:         sess.engine.State(),
		LastEdited:    sess.engine.LastEdited(),
		Inverted:      sess.engine.Inverted(),
		ActiveRateID:  sess.activeRateID,
		ActiveRate:    rate,
	}
}

// repriceAll re-derives every session at its active rate's new price.
func (s *Service) repriceAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		rate, ok := s.rates.Rate(sess.activeRateID)
		if !ok {
			continue
		}
		sess.mu.Lock()
		sess.engine.SelectRate(rate.Price)
		sess.mu.Unlock()
	}
}

// redirectFrom moves sessions off a removed rate onto the baseline rate.
func (s *Service) redirectFrom(removedID string) {
	baseline, _ := s.rates.Rate(domain.BaselineRateID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		sess.mu.Lock()
		if sess.activeRateID == removedID {
			sess.activeRateID = domain.BaselineRateID
			sess.engine.SelectRate(baseline.Price)
		}
		sess.mu.Unlock()
	}
}
