// Package ordering keeps the user's display order of rates and the
// default/favorite marker in sync with the live catalog.
package ordering

import (
	"slices"
	"sync"
)

// Store is the user-reorderable sequence of rate ids plus one default id.
// It is pure bookkeeping; persistence is the caller's concern.
type Store struct {
	mu        sync.RWMutex
	order     []string
	defaultID string
	baseline  string
}

// New creates a store whose default falls back to baseline.
func New(baseline string) *Store {
	return &Store{defaultID: baseline, baseline: baseline}
}

// Restore replaces order and default from persisted state. An unknown or
// empty default reverts to baseline once Reconcile runs.
func (s *Store) Restore(order []string, defaultID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = slices.Clone(order)
	if defaultID == "" {
		defaultID = s.baseline
	}
	s.defaultID = defaultID
}

// Reconcile syncs the stored order with the catalog's current id set:
// ids that disappeared are dropped, new ids are appended, survivors keep
// their relative order. Idempotent. Returns whether anything changed.
func (s *Store) Reconcile(currentIDs []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(currentIDs))
	for _, id := range s.order {
		if slices.Contains(currentIDs, id) {
			next = append(next, id)
		}
	}
	for _, id := range currentIDs {
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}

	changed := !slices.Equal(s.order, next)
	s.order = next

	if !slices.Contains(next, s.defaultID) {
		s.defaultID = s.baseline
		changed = true
	}
	return changed
}

// SetOrder replaces the order wholesale after a drag-reorder. The caller
// guarantees newOrder is a permutation of the current id set.
func (s *Store) SetOrder(newOrder []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = slices.Clone(newOrder)
}

// ToggleDefault marks id as the default, or reverts to baseline when id
// already is the default.
func (s *Store) ToggleDefault(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultID == id {
		s.defaultID = s.baseline
	} else {
		s.defaultID = id
	}
}

// RemoveCustom drops id from the order and reverts the default to baseline
// if it pointed at the removed id.
func (s *Store) RemoveCustom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = slices.DeleteFunc(slices.Clone(s.order), func(v string) bool { return v == id })
	if s.defaultID == id {
		s.defaultID = s.baseline
	}
}

// Order returns a copy of the current display order.
func (s *Store) Order() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// DefaultID returns the current default/favorite rate id.
func (s *Store) DefaultID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultID
}
