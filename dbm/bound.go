package dbm

import "math"

// Inf is the bound value used to represent "no upper constraint" (+∞).
// It is always paired with Strict=true by convention (< +∞).
const Inf = math.MaxInt32

// Bound is one entry of a DBM: the pair (value, strict) encoding the
// constraint xi - xj ≺ value, where ≺ is "<" when Strict is true and "<="
// otherwise. The zero Bound{0, false} encodes xi - xj <= 0.
type Bound struct {
	Value  int32
	Strict bool
}

// LeBound is the non-strict bound (v, false): xi - xj <= v.
func LeBound(v int32) Bound { return Bound{Value: v, Strict: false} }

// LtBound is the strict bound (v, true): xi - xj < v.
func LtBound(v int32) Bound { return Bound{Value: v, Strict: true} }

// infBound is the canonical "unconstrained" bound, (+∞, strict).
var infBound = Bound{Value: Inf, Strict: true}

// isInf reports whether b represents +∞ (no constraint).
func (b Bound) isInf() bool { return b.Value >= Inf }

// add returns the Bound sum used during closure: (a ⊕ b) encodes the bound
// on a composed difference xi - xj via an intermediate xk, i.e.
// (xi - xk ≺1 a) and (xk - xj ≺2 b) implies xi - xj ≺ (a+b), where the
// combined relation is strict iff either operand is strict.
func (a Bound) add(b Bound) Bound {
	if a.isInf() || b.isInf() {
		return infBound
	}

	return Bound{Value: a.Value + b.Value, Strict: a.Strict || b.Strict}
}

// tighter reports whether a is a strictly tighter (more restrictive) bound
// than b: either a smaller value, or an equal value where a is strict and b
// is not (since "<" is tighter than "<=" at the same value).
func (a Bound) tighter(b Bound) bool {
	if a.Value != b.Value {
		return a.Value < b.Value
	}

	return a.Strict && !b.Strict
}

// min returns the tighter (more restrictive) of a and b.
func minBound(a, b Bound) Bound {
	if a.tighter(b) {
		return a
	}

	return b
}

// negate returns the bound for xj - xi implied by a constraint xi - xj ≺ a
// being violated, i.e. the complement used by federation subtraction:
// NOT(xi - xj ≺ a) is equivalent to xj - xi ≺' (-a.Value), where ≺' is the
// opposite strictness (non-strict complements strict and vice versa).
func (a Bound) negate() Bound {
	if a.isInf() {
		// No constraint to violate; complement is the empty/unsatisfiable
		// bound, represented here as the tightest possible: xj - xi < -Inf.
		return Bound{Value: -Inf, Strict: true}
	}

	return Bound{Value: -a.Value, Strict: !a.Strict}
}
