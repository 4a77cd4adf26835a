package ratesource

import (
	"context"
	"sync"
	"time"

	"github.com/konvierte/konvierte/pkg/domain"
)

// Fake is an in-memory Source for tests and local development.
type Fake struct {
	mu     sync.Mutex
	prices map[string]float64
	err    error

	// Gate, when set, blocks FetchRates until it is closed. Lets tests
	// stage out-of-order completions.
	Gate chan struct{}
}

func NewFake(prices map[string]float64) *Fake {
	cp := make(map[string]float64, len(prices))
	for id, p := range prices {
		cp[id] = p
	}
	return &Fake{prices: cp}
}

// SetPrice updates one quote for subsequent fetches.
func (f *Fake) SetPrice(id string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[id] = price
}

// Fail makes subsequent fetches return err (nil restores success).
func (f *Fake) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *Fake) FetchRates(ctx context.Context) (map[string]domain.Quote, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	quotes := make(map[string]domain.Quote, len(f.prices))
	for _, def := range domain.SystemRates {
		quotes[def.ID] = domain.Quote{
			Price:      f.prices[def.ID],
			Symbol:     def.Symbol,
			LastUpdate: time.Now().UTC(),
		}
	}
	return quotes, nil
}

func (f *Fake) CheckHealth(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Fake) Metadata() Metadata {
	return Metadata{Name: "fake", Version: "v1"}
}

var _ Source = (*Fake)(nil)
