// Package catalog resolves every known rate, fixed and user-defined, to a
// current price in VES.
package catalog

import (
	"log/slog"
	"strings"

	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/formula"
)

// Resolver turns the latest system prices and the current custom-rate
// definitions into a resolved rate map.
type Resolver struct {
	eval   formula.Evaluator
	logger *slog.Logger
}

func NewResolver(eval formula.Evaluator, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{eval: eval, logger: logger}
}

// Resolve is a pure function of its inputs: it never mutates customs and
// never fails. A custom rate whose formula cannot be evaluated resolves to
// price 0 without affecting any other entry.
//
// Custom formulas bind exactly the system prices. Referencing another custom
// rate is a deliberate restriction, not an oversight: it keeps resolution a
// single pass with no cycle detection.
func (r *Resolver) Resolve(prices domain.SystemPrices, customs []domain.CustomRate) map[string]domain.ResolvedRate {
	resolved := make(map[string]domain.ResolvedRate, len(domain.SystemRates)+len(customs))

	bindings := make(map[string]float64, len(domain.SystemRates))
	for _, def := range domain.SystemRates {
		price := prices[def.ID] // missing entries bind as 0, never nil
		bindings[def.ID] = price
		resolved[def.ID] = domain.ResolvedRate{Name: def.Name, Price: price, Flag: def.Flag}
	}

	for _, custom := range customs {
		value, err := r.eval.Evaluate(custom.Formula, bindings)
		if err != nil {
			r.logger.Debug("custom rate did not resolve",
				"id", custom.ID, "formula", custom.Formula, "error", err)
			value = 0
		}
		// A currency rate cannot be negative.
		if value < 0 {
			value = 0
		}
		resolved[custom.ID] = domain.ResolvedRate{
			Name:  custom.Name,
			Price: value,
			Flag:  flagFor(custom.Formula),
		}
	}

	return resolved
}

func flagFor(formula string) string {
	if strings.Contains(strings.ToLower(formula), "eur") {
		return "eu"
	}
	return "us"
}
