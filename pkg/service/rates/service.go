// Package rates orchestrates the rate catalog: upstream refresh, custom
// rate definitions, display ordering, and the default/favorite marker.
package rates

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/pkg/catalog"
	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/eventbus"
	"github.com/konvierte/konvierte/pkg/ordering"
	"github.com/konvierte/konvierte/pkg/provider/ratesource"
)

// Persistence keys, stable across releases.
const (
	KeyCustomRates = "konvierte:custom_rates"
	KeyRatesOrder  = "konvierte:rates_order"
	KeyDefaultRate = "konvierte:default_rate"
)

// Service holds the live rate state. The resolved map is an immutable
// snapshot, atomically replaced on every recompute: readers always observe
// a complete, previously valid resolution and never a transient zero.
type Service struct {
	source   ratesource.Source
	store    kvstore.Store
	resolver *catalog.Resolver
	ordering *ordering.Store
	bus      eventbus.EventBus
	logger   *slog.Logger

	seq atomic.Uint64 // refresh request sequence, monotonic

	mu        sync.RWMutex
	applied   uint64 // highest refresh sequence applied so far
	prices    domain.SystemPrices
	customs   []domain.CustomRate
	resolved  map[string]domain.ResolvedRate
	lastFetch time.Time
}

// New restores persisted state, reconciles the ordering with the current id
// set, and computes the initial resolution (prices are zero until the first
// refresh). Corrupt persisted blobs are discarded, never fatal.
func New(
	source ratesource.Source,
	store kvstore.Store,
	resolver *catalog.Resolver,
	bus eventbus.EventBus,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		source:   source,
		store:    store,
		resolver: resolver,
		ordering: ordering.New(domain.BaselineRateID),
		bus:      bus,
		logger:   logger,
		prices:   make(domain.SystemPrices),
	}

	ctx := context.Background()
	s.customs = s.loadCustomRates(ctx)
	s.ordering.Restore(s.loadOrder(ctx), s.loadDefault(ctx))
	s.ordering.Reconcile(s.currentIDs())
	s.resolved = s.resolver.Resolve(s.prices, s.customs)
	return s
}

// Refresh fetches upstream prices and applies them last-write-wins: when
// refreshes overlap, only the one that started last may update state, so an
// in-flight stale response can never overwrite newer data. On fetch failure
// the last-known prices stay in effect and the error is returned for the
// presentation layer to surface.
func (s *Service) Refresh(ctx context.Context) error {
	seq := s.seq.Add(1)

	quotes, err := s.source.FetchRates(ctx)
	if err != nil {
		s.logger.Warn("rate refresh failed, keeping last-known prices", "error", err)
		return err
	}

	event, applied := s.apply(seq, quotes)
	if !applied {
		s.logger.Debug("dropping superseded rate refresh", "seq", seq)
		return nil
	}

	s.logger.Info("rates refreshed", "source", s.source.Metadata().Name, "rates", len(quotes))
	return s.bus.Publish(ctx, event)
}

// apply installs a fetch result unless a later request already completed.
func (s *Service) apply(seq uint64, quotes map[string]domain.Quote) (domain.RatesRefreshedEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		return domain.RatesRefreshedEvent{}, false
	}
	s.applied = seq

	prices := make(domain.SystemPrices, len(quotes))
	for id, quote := range quotes {
		prices[id] = quote.Price
	}
	s.prices = prices
	s.lastFetch = time.Now().UTC()
	s.resolved = s.resolver.Resolve(s.prices, s.customs)
	return domain.RatesRefreshedEvent{Prices: s.pricesCopyLocked(), FetchedAt: s.lastFetch}, true
}

// Resolved returns the current resolution snapshot as a copy.
func (s *Service) Resolved() map[string]domain.ResolvedRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.ResolvedRate, len(s.resolved))
	for id, r := range s.resolved {
		out[id] = r
	}
	return out
}

// Rate returns one resolved rate by id.
func (s *Service) Rate(id string) (domain.ResolvedRate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resolved[id]
	return r, ok
}

// CustomRates returns the current custom definitions in creation order.
func (s *Service) CustomRates() []domain.CustomRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.customs)
}

// LastFetchedAt returns when the current prices were applied (zero before
// the first successful refresh).
func (s *Service) LastFetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch
}

// AddCustomRate validates, persists and resolves a new derived rate.
func (s *Service) AddCustomRate(ctx context.Context, name, formula string) (domain.CustomRate, error) {
	name = strings.TrimSpace(name)
	formula = strings.TrimSpace(formula)
	if name == "" || formula == "" {
		return domain.CustomRate{}, domain.ErrInvalidCustomRate
	}

	rate := domain.CustomRate{
		ID:      "custom_" + uuid.NewString(),
		Name:    name,
		Formula: formula,
	}

	s.mu.Lock()
	s.customs = append(s.customs, rate)
	s.ordering.Reconcile(s.currentIDs())
	s.resolved = s.resolver.Resolve(s.prices, s.customs)
	s.mu.Unlock()

	if err := s.persistDurableState(ctx); err != nil {
		return domain.CustomRate{}, err
	}
	s.logger.Info("custom rate added", "id", rate.ID, "name", rate.Name)
	return rate, s.bus.Publish(ctx, domain.CustomRateAddedEvent{Rate: rate})
}

// RemoveCustomRate deletes a derived rate. The ordering drops the id and
// the default reverts to baseline if it pointed at it; consumers holding it
// as the active selection redirect on the published event.
func (s *Service) RemoveCustomRate(ctx context.Context, id string) error {
	if slices.Contains(domain.SystemRateIDs(), id) {
		return domain.ErrSystemRate
	}

	s.mu.Lock()
	before := len(s.customs)
	s.customs = slices.DeleteFunc(s.customs, func(r domain.CustomRate) bool { return r.ID == id })
	if len(s.customs) == before {
		s.mu.Unlock()
		return domain.ErrRateNotFound
	}
	s.ordering.RemoveCustom(id)
	s.resolved = s.resolver.Resolve(s.prices, s.customs)
	s.mu.Unlock()

	if err := s.persistDurableState(ctx); err != nil {
		return err
	}
	s.logger.Info("custom rate removed", "id", id)
	return s.bus.Publish(ctx, domain.CustomRateRemovedEvent{ID: id})
}

// ToggleDefault marks id as favorite, or back to baseline when it already is.
func (s *Service) ToggleDefault(ctx context.Context, id string) error {
	if _, ok := s.Rate(id); !ok {
		return domain.ErrRateNotFound
	}
	s.ordering.ToggleDefault(id)
	return s.persistDefault(ctx)
}

// UpdateOrder replaces the display order after a reorder gesture.
func (s *Service) UpdateOrder(ctx context.Context, order []string) error {
	s.ordering.SetOrder(order)
	return s.persistOrder(ctx)
}

// Order returns the current display order of rate ids.
func (s *Service) Order() []string { return s.ordering.Order() }

// DefaultRateID returns the favorite rate id.
func (s *Service) DefaultRateID() string { return s.ordering.DefaultID() }

func (s *Service) currentIDs() []string {
	ids := domain.SystemRateIDs()
	for _, c := range s.customs {
		ids = append(ids, c.ID)
	}
	return ids
}

func (s *Service) pricesCopyLocked() domain.SystemPrices {
	cp := make(domain.SystemPrices, len(s.prices))
	for id, p := range s.prices {
		cp[id] = p
	}
	return cp
}

// ---- persistence ----

func (s *Service) loadCustomRates(ctx context.Context) []domain.CustomRate {
	raw, ok, err := s.store.Get(ctx, KeyCustomRates)
	if err != nil || !ok {
		return nil
	}
	var parsed []domain.CustomRate
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.logger.Warn("discarding corrupt custom rates blob", "error", err)
		return nil
	}
	// Strict per-entry validation: a malformed entry is dropped, the rest
	// survive.
	valid := parsed[:0]
	for _, r := range parsed {
		if strings.TrimSpace(r.ID) == "" ||
			strings.TrimSpace(r.Name) == "" ||
			strings.TrimSpace(r.Formula) == "" {
			s.logger.Warn("skipping invalid persisted custom rate", "id", r.ID)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

func (s *Service) loadOrder(ctx context.Context) []string {
	raw, ok, err := s.store.Get(ctx, KeyRatesOrder)
	if err != nil || !ok {
		return nil
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		s.logger.Warn("discarding corrupt rates order blob", "error", err)
		return nil
	}
	return order
}

func (s *Service) loadDefault(ctx context.Context) string {
	raw, ok, err := s.store.Get(ctx, KeyDefaultRate)
	if err != nil || !ok {
		return domain.BaselineRateID
	}
	return raw
}

func (s *Service) persistDurableState(ctx context.Context) error {
	data, err := json.Marshal(s.CustomRates())
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyCustomRates, string(data)); err != nil {
		return err
	}
	if err := s.persistOrder(ctx); err != nil {
		return err
	}
	return s.persistDefault(ctx)
}

func (s *Service) persistOrder(ctx context.Context) error {
	data, err := json.Marshal(s.ordering.Order())
	if err != nil {
		return err
	}
	return s.store.Set(ctx, KeyRatesOrder, string(data))
}

func (s *Service) persistDefault(ctx context.Context) error {
	return s.store.Set(ctx, KeyDefaultRate, s.ordering.DefaultID())
}
