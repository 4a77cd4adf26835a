package domain

import "time"

// Event is the marker interface for everything published on the event bus.
type Event interface {
	Type() string
}

// RatesRefreshedEvent is published after a completed upstream fetch has been
// applied and the resolved map replaced.
type RatesRefreshedEvent struct {
	Prices    SystemPrices
	FetchedAt time.Time
}

func (RatesRefreshedEvent) Type() string { return "RatesRefreshedEvent" }

// CustomRateAddedEvent is published when a user saves a new derived rate.
type CustomRateAddedEvent struct {
	Rate CustomRate
}

func (CustomRateAddedEvent) Type() string { return "CustomRateAddedEvent" }

// CustomRateRemovedEvent is published when a derived rate is deleted.
// Consumers holding the id as an active selection must redirect to the
// baseline rate.
type CustomRateRemovedEvent struct {
	ID string
}

func (CustomRateRemovedEvent) Type() string { return "CustomRateRemovedEvent" }
