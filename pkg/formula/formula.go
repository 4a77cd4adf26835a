// Package formula evaluates the restricted arithmetic expressions behind
// user-defined rates. Formulas reference system rate ids as variables, e.g.
// "bcv_usd * 1.1" or "(bcv_usd + binance_usd) / 2".
package formula

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
)

var (
	ErrEmptyFormula = errors.New("formula is empty")
	ErrNotANumber   = errors.New("formula did not evaluate to a number")
	ErrNotFinite    = errors.New("formula evaluated to a non-finite number")
)

// Evaluator resolves a formula against a set of named numeric bindings.
type Evaluator interface {
	Evaluate(formula string, bindings map[string]float64) (float64, error)
}

// ExprEvaluator evaluates formulas with expr-lang/expr. Formulas are
// lowercased before evaluation so "BCV_USD" and "bcv_usd" bind alike.
type ExprEvaluator struct{}

func NewExprEvaluator() ExprEvaluator { return ExprEvaluator{} }

func (ExprEvaluator) Evaluate(formula string, bindings map[string]float64) (result float64, err error) {
	code := strings.ToLower(strings.TrimSpace(formula))
	if code == "" {
		return 0, ErrEmptyFormula
	}

	env := make(map[string]any, len(bindings))
	for name, value := range bindings {
		env[strings.ToLower(name)] = value
	}

	// expr recovers compile and runtime panics itself, but guard anyway so a
	// bad formula can never take down the catalog.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formula evaluation panicked: %v", r)
		}
	}()

	out, err := expr.Eval(code, env)
	if err != nil {
		return 0, err
	}

	value, ok := toFloat(out)
	if !ok {
		return 0, ErrNotANumber
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrNotFinite
	}
	return value, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
