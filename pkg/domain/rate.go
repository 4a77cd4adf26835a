package domain

import "time"

// BaselineRateID is the rate every fallback path converges on: the BCV
// official dollar. It is always present in the catalog.
const BaselineRateID = "bcv_usd"

// SystemRateDef describes one of the fixed upstream rates. The id set is
// stable across sessions; only prices move.
type SystemRateDef struct {
	ID     string
	Name   string
	Symbol string
	Flag   string
}

// SystemRates lists the upstream rates in display order.
var SystemRates = []SystemRateDef{
	{ID: "bcv_usd", Name: "Dólar BCV", Symbol: "USD", Flag: "us"},
	{ID: "bcv_eur", Name: "Euro BCV", Symbol: "EUR", Flag: "eu"},
	{ID: "binance_usd", Name: "Binance", Symbol: "USDT", Flag: "us"},
}

// SystemRateIDs returns the fixed system rate ids in display order.
func SystemRateIDs() []string {
	ids := make([]string, len(SystemRates))
	for i, def := range SystemRates {
		ids[i] = def.ID
	}
	return ids
}

// SystemPrices maps system rate ids to their latest fetched price in VES.
// A price of 0 means "not fetched yet" and is safe to feed into formula
// bindings.
type SystemPrices map[string]float64

// CustomRate is a user-defined rate derived from the system rates through
// an arithmetic formula. Formulas may reference system rate ids only.
type CustomRate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// ResolvedRate is a catalog entry with its current price. Price 0 signals
// an unresolved formula or missing upstream data, never an error.
type ResolvedRate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Flag  string  `json:"flag"`
}

// Quote is a single upstream price observation.
type Quote struct {
	Price      float64   `json:"price"`
	Symbol     string    `json:"symbol"`
	LastUpdate time.Time `json:"last_update"`
}
