package tsys

import (
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// Transition is the symbolic transition tuple of spec §3: a TransitionID,
// the (always convex) guard zone it requires, the clock resets it applies,
// and the LocationID it moves to. Guard is already embedded in the owning
// TransitionSystem's full clock dimension (spec §4.2).
type Transition struct {
	ID              ta.TransitionID
	Guard           dbm.DBM
	Resets          []ta.Reset
	Target          ta.LocationID
	TargetInvariant ta.Invariant
}

// TransitionSystem is the uniform capability set spec §4.3 requires of every
// node in the tree: a Component leaf, or a Composition/Conjunction/Quotient
// of two children.
type TransitionSystem interface {
	// NextTransitions returns every symbolic transition enabled from loc on
	// action. An empty result (nil, nil) means action is simply not enabled
	// there, not a failure.
	NextTransitions(loc ta.LocationID, action string) ([]Transition, error)

	// InputActions and OutputActions return this node's declared action
	// sets, per the formulas of spec §4.3.1–§4.3.3.
	InputActions() map[string]struct{}
	OutputActions() map[string]struct{}

	// Initial returns the LocationID of this node's initial state.
	Initial() ta.LocationID

	// Invariant returns the invariant holding at loc, the conjunction of
	// every child's invariant along loc's path (spec §3).
	Invariant(loc ta.LocationID) (ta.Invariant, error)

	// Urgent reports whether loc disallows time elapse (spec §3: "urgent
	// locations disallow time elapse"), true if loc or any location along
	// its path is itself urgent.
	Urgent(loc ta.LocationID) (bool, error)

	// MaxBounds returns the per-(global)-clock extrapolation table.
	MaxBounds() dbm.Bounds

	// Dim returns this node's full clock-space dimension.
	Dim() int

	// Children returns this node's direct children (empty for a leaf).
	Children() []TransitionSystem
}

// unionBounds merges two MaxBounds tables into one sized to the larger,
// taking the max entry-wise (two siblings never constrain the same clock,
// since clock ranges are disjoint by construction, so this is really a
// concatenation — entry-wise max is the safe, dimension-robust way to write
// that without assuming which half owns which index).
func unionBounds(l, r dbm.Bounds) dbm.Bounds {
	n := len(l)
	if len(r) > n {
		n = len(r)
	}
	out := make(dbm.Bounds, n)
	for i := 0; i < n; i++ {
		var lv, rv int32
		if i < len(l) {
			lv = l[i]
		}
		if i < len(r) {
			rv = r[i]
		}
		if lv > rv {
			out[i] = lv
		} else {
			out[i] = rv
		}
	}

	return out
}

func maxDim(l, r TransitionSystem) int {
	if l.Dim() > r.Dim() {
		return l.Dim()
	}

	return r.Dim()
}

// actionSet is a convenience constructor for map[string]struct{}.
func actionSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

func hasAction(s map[string]struct{}, a string) bool { _, ok := s[a]; return ok }

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}

	return out
}

func union(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}

	return out
}

func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}

	return out
}

func disjoint(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return false
		}
	}

	return true
}

// declares reports whether ts reacts to action at all, input or output.
func declares(ts TransitionSystem, action string) bool {
	return hasAction(ts.InputActions(), action) || hasAction(ts.OutputActions(), action)
}

// stayTransition builds the "this side does not move" half of a
// composition/conjunction synchronization for an action the other side
// declares but this one does not: an unconstrained self-loop at loc, used so
// the combined guard/reset/target can be built by combine uniformly whether
// or not both sides actually transitioned.
func stayTransition(ts TransitionSystem, loc ta.LocationID, component string) (Transition, error) {
	inv, err := ts.Invariant(loc)
	if err != nil {
		return Transition{}, err
	}
	u, err := dbm.Universe(ts.Dim())
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		ID:              ta.NullTransition{Component: component},
		Guard:           u,
		Resets:          nil,
		Target:          loc,
		TargetInvariant: inv,
	}, nil
}

// combine builds the product of lt and rt under op in a system of dimension
// dim: guards are embedded into dim and intersected, reset lists and target
// invariants are concatenated, and the target LocationID/TransitionID are
// built from op's corresponding constructor (spec §4.3.1/§4.3.2: "intersect
// the guards, union the updates").
func combine(lt, rt Transition, op ta.OpKind, dim int) (Transition, error) {
	lg, err := lt.Guard.Embed(dim)
	if err != nil {
		return Transition{}, err
	}
	rg, err := rt.Guard.Embed(dim)
	if err != nil {
		return Transition{}, err
	}
	guard, err := lg.Intersect(rg)
	if err != nil {
		return Transition{}, err
	}

	resets := make([]ta.Reset, 0, len(lt.Resets)+len(rt.Resets))
	resets = append(resets, lt.Resets...)
	resets = append(resets, rt.Resets...)

	inv := make(ta.Invariant, 0, len(lt.TargetInvariant)+len(rt.TargetInvariant))
	inv = append(inv, lt.TargetInvariant...)
	inv = append(inv, rt.TargetInvariant...)

	var target ta.LocationID
	switch op {
	case ta.OpComposition:
		target = ta.CompositionLocation(lt.Target, rt.Target)
	case ta.OpConjunction:
		target = ta.ConjunctionLocation(lt.Target, rt.Target)
	default:
		target = ta.QuotientLocation(lt.Target, rt.Target)
	}

	return Transition{
		ID:              ta.PairTransition{Op: op, L: lt.ID, R: rt.ID},
		Guard:           guard,
		Resets:          resets,
		Target:          target,
		TargetInvariant: inv,
	}, nil
}
