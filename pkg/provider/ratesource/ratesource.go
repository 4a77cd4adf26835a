// Package ratesource defines the upstream rate provider contract.
package ratesource

import (
	"context"

	"github.com/konvierte/konvierte/pkg/domain"
)

// Metadata identifies a provider implementation.
type Metadata struct {
	Name    string
	Version string
}

// Source supplies a quote per system rate id. Implementations may apply
// their own timeout and retry policy; callers keep last-known prices when a
// fetch fails.
type Source interface {
	// FetchRates returns a quote for every system rate id it could fetch.
	// A partial map with an error is acceptable; the caller decides.
	FetchRates(ctx context.Context) (map[string]domain.Quote, error)

	// CheckHealth reports whether the upstream is reachable.
	CheckHealth(ctx context.Context) error

	Metadata() Metadata
}
