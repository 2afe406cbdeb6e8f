// Package checks implements spec §4.6's three C4 instantiations that operate
// on a single transition system — local consistency, determinism, and
// reachability — each a different VisitFunc/target predicate layered over
// explore.Explore. Refinement (C5) is a pairwise variant and lives in
// package refine instead.
package checks

import (
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/explore"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// stateNode adapts a ta.State to explore.Node/explore.Subsumer: two states
// at the same LocationID are deduplicated by federation subset, matching
// spec §4.4's passed-list membership test exactly.
type stateNode struct {
	Loc  ta.LocationID
	Zone dbm.Federation
}

func (s stateNode) Key() string { return s.Loc.Key() }

func (s stateNode) SubsumedBy(other explore.Node) (bool, error) {
	o, ok := other.(stateNode)
	if !ok {
		return false, nil
	}

	return s.Zone.SubsetEq(o.Zone)
}

// initialState builds the starting stateNode for ts: its initial location,
// the full-dimension universe zone constrained by the initial location's
// invariant.
func initialState(ts tsys.TransitionSystem) (stateNode, error) {
	loc := ts.Initial()
	u, err := dbm.Universe(ts.Dim())
	if err != nil {
		return stateNode{}, err
	}
	z, err := dbm.Of(u)
	if err != nil {
		return stateNode{}, err
	}
	inv, err := ts.Invariant(loc)
	if err != nil {
		return stateNode{}, err
	}
	z, err = ta.ApplyInvariant(z, ta.Location{Invariant: inv})
	if err != nil {
		return stateNode{}, err
	}

	return stateNode{Loc: loc, Zone: z}, nil
}

// delay applies spec §3's time-elapse step to s: Up on every clock unless
// loc is urgent, then re-intersects the location's invariant. Returns the
// empty federation (not an error) if the invariant rules out every
// resulting valuation.
func delay(ts tsys.TransitionSystem, s stateNode) (dbm.Federation, error) {
	urgent, err := ts.Urgent(s.Loc)
	if err != nil {
		return dbm.Federation{}, err
	}
	z := s.Zone
	if !urgent {
		z, err = z.Map(func(d dbm.DBM) (dbm.DBM, error) { return d.Up(), nil })
		if err != nil {
			return dbm.Federation{}, err
		}
	}
	inv, err := ts.Invariant(s.Loc)
	if err != nil {
		return dbm.Federation{}, err
	}

	return ta.ApplyInvariant(z, ta.Location{Invariant: inv})
}

// advance intersects zone with tr's guard, applies tr's resets, and
// constrains the result by tr's target invariant — the full "fire this
// transition" step spec §4.2/§4.3 describes, short of extrapolation (left to
// the caller, since only a search over many states needs it).
func advance(zone dbm.Federation, tr tsys.Transition) (dbm.Federation, error) {
	guard, err := dbm.Of(tr.Guard)
	if err != nil {
		return dbm.Federation{}, err
	}
	z, err := zone.Intersect(guard)
	if err != nil {
		return dbm.Federation{}, err
	}
	if z.IsEmpty() {
		return z, nil
	}
	z, err = ta.ApplyResetList(z, tr.Resets)
	if err != nil {
		return dbm.Federation{}, err
	}

	return ta.ApplyInvariant(z, ta.Location{Invariant: tr.TargetInvariant})
}

// declaredActions returns the union of ts's input and output action names.
func declaredActions(ts tsys.TransitionSystem) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(ts.InputActions())+len(ts.OutputActions()))
	for a := range ts.InputActions() {
		seen[a] = struct{}{}
	}
	for a := range ts.OutputActions() {
		seen[a] = struct{}{}
	}
	for a := range seen {
		out = append(out, a)
	}

	return out
}

// successors builds the explore.SuccessorFunc shared by all three checks:
// delay, then for every declared action fire every enabled transition,
// extrapolating each resulting zone by ts's max bounds (spec §4.4).
func successors(ts tsys.TransitionSystem) explore.SuccessorFunc {
	actions := declaredActions(ts)
	bounds := ts.MaxBounds()

	return func(n explore.Node) ([]explore.Node, error) {
		s := n.(stateNode)
		delayed, err := delay(ts, s)
		if err != nil {
			return nil, err
		}
		if delayed.IsEmpty() {
			return nil, nil
		}

		var out []explore.Node
		for _, action := range actions {
			trs, err := ts.NextTransitions(s.Loc, action)
			if err != nil {
				return nil, err
			}
			for _, tr := range trs {
				z, err := advance(delayed, tr)
				if err != nil {
					return nil, err
				}
				if z.IsEmpty() {
					continue
				}
				z, err = z.Extrapolate(bounds)
				if err != nil {
					return nil, err
				}
				if z.IsEmpty() {
					continue
				}
				out = append(out, stateNode{Loc: tr.Target, Zone: z})
			}
		}

		return out, nil
	}
}
