// Package calculator implements the bidirectional amount calculator: two
// localized text amounts, one of which is always derived from the other via
// the active rate.
package calculator

import (
	"github.com/konvierte/konvierte/pkg/money"
)

// Side identifies one of the two amount fields.
type Side string

const (
	// SideForeign is the amount in the active rate's foreign currency.
	SideForeign Side = "foreign"
	// SideLocal is the amount in bolívares (VES).
	SideLocal Side = "local"
)

// State is the engine's editing state.
type State string

const (
	StateIdle           State = "idle"
	StateEditingForeign State = "editing_foreign"
	StateEditingLocal   State = "editing_local"
)

// Keypad tokens accepted by Press beyond the plain digits.
const (
	KeySeparator = ","
	KeyDelete    = "DELETE"
)

// Engine owns the live amount pair. All methods are synchronous; callers
// serialize access (one keystroke runs to completion before the next).
//
// Focus policy: focusing a field clears both amounts so the user starts a
// fresh entry. This is the policy the product shipped with; the alternative
// (keep the value for appending) was rejected to avoid appending digits to
// a formatted, grouped value.
type Engine struct {
	rate       float64
	foreign    string
	local      string
	state      State
	lastEdited Side
	inverted   bool
	initial    bool
}

// New creates an engine in the canonical initial state: one unit of foreign
// currency, local amount derived from rate. With no usable rate yet the
// local side stays empty.
func New(rate float64) *Engine {
	e := &Engine{state: StateIdle}
	e.rate = rate
	e.resetAmounts()
	return e
}

func (e *Engine) resetAmounts() {
	e.foreign = "1"
	if e.rate > 0 {
		e.local = money.Format(e.rate)
	} else {
		e.local = ""
	}
	e.lastEdited = SideForeign
	e.initial = true
}

// Focus begins editing a side. Both fields are cleared (see the focus
// policy above) and the focused side becomes the source of truth.
func (e *Engine) Focus(side Side) {
	if side == SideLocal {
		e.state = StateEditingLocal
	} else {
		e.state = StateEditingForeign
	}
	e.lastEdited = side
	e.foreign = ""
	e.local = ""
	e.initial = false
}

// Unfocus returns to Idle without touching the amounts.
func (e *Engine) Unfocus() {
	e.state = StateIdle
}

// Press applies one keypad token (digit, decimal separator, or delete) to
// the focused side, then recomputes the other side. Tokens arriving while
// Idle, and anything that is not a recognized token, are ignored; malformed
// input is prevented here rather than rejected later.
func (e *Engine) Press(key string) {
	side, ok := e.activeSide()
	if !ok {
		return
	}
	current := e.text(side)
	next := current

	switch {
	case key == KeyDelete:
		if len(current) <= 1 {
			next = ""
		} else {
			next = current[:len(current)-1]
		}
	case key == KeySeparator:
		// One decimal separator per amount; an empty field gets an
		// implicit leading zero.
		if !containsSeparator(current) {
			if current == "" {
				next = "0,"
			} else {
				next = current + ","
			}
		}
	case isDigit(key):
		next = current + key
	default:
		return
	}

	if next == current {
		return
	}
	e.setText(side, next)
	e.recomputeFrom(side)
}

// SetAmount writes a literal value to one side (quick-amount shortcut),
// recomputes the other side, and commits by returning to Idle.
func (e *Engine) SetAmount(value float64, side Side) {
	e.setText(side, money.Format(value))
	e.lastEdited = side
	e.initial = false
	e.recomputeFrom(side)
	e.state = StateIdle
}

// SelectRate switches the active rate's price and re-derives the non-source
// side from whichever side the user last edited, preserving typed input.
func (e *Engine) SelectRate(price float64) {
	e.rate = price
	e.recomputeFrom(e.lastEdited)
}

// Swap toggles which side is displayed first. Pure presentation: no amount
// changes, no source change.
func (e *Engine) Swap() {
	e.inverted = !e.inverted
}

// Reset restores the canonical state: foreign "1", local derived, Idle.
func (e *Engine) Reset() {
	e.resetAmounts()
	e.state = StateIdle
}

// recomputeFrom derives the side opposite to source. A non-positive rate
// suspends the recomputation: converting through a zero rate is
// meaningless, so the other side keeps its last valid value.
func (e *Engine) recomputeFrom(source Side) {
	if e.rate <= 0 {
		return
	}
	value := money.ParseOrZero(e.text(source))
	if source == SideForeign {
		e.local = money.Format(clampNonNegative(value * e.rate))
	} else {
		e.foreign = money.Format(clampNonNegative(value / e.rate))
	}
}

func (e *Engine) activeSide() (Side, bool) {
	switch e.state {
	case StateEditingForeign:
		return SideForeign, true
	case StateEditingLocal:
		return SideLocal, true
	default:
		return "", false
	}
}

func (e *Engine) text(side Side) string {
	if side == SideLocal {
		return e.local
	}
	return e.foreign
}

func (e *Engine) setText(side Side, text string) {
	if side == SideLocal {
		e.local = text
	} else {
		e.foreign = text
	}
}

// Foreign returns the foreign-currency amount text.
func (e *Engine) Foreign() string { return e.foreign }

// Local returns the VES amount text.
func (e *Engine) Local() string { return e.local }

// State returns the current editing state.
func (e *Engine) State() State { return e.state }

// LastEdited returns the side that is the current source of truth.
func (e *Engine) LastEdited() Side { return e.lastEdited }

// Inverted reports whether the swap toggle is on.
func (e *Engine) Inverted() bool { return e.inverted }

// Initial reports whether the engine still shows the untouched placeholder
// state (fresh start or after Reset).
func (e *Engine) Initial() bool { return e.initial }

// Rate returns the active rate price.
func (e *Engine) Rate() float64 { return e.rate }

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func containsSeparator(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			return true
		}
	}
	return false
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
