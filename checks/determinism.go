package checks

import (
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/explore"
	"github.com/tacheck/tacheck/tsys"
)

// Determinism implements spec §4.6's acceptance predicate "for every pair of
// transitions with the same action, their guard zones are disjoint": at
// each reachable state, for every declared action, no two enabled
// transitions on that action may overlap within the current (delayed)
// zone — an overlap means two continuations are both possible from the same
// valuation, which is a non-deterministic choice.
func Determinism(ts tsys.TransitionSystem, opts ...explore.Option) error {
	init, err := initialState(ts)
	if err != nil {
		return err
	}

	var lastAction string
	var lastZone dbm.Federation

	visit := func(n explore.Node) (explore.Status, error) {
		s := n.(stateNode)
		delayed, err := delay(ts, s)
		if err != nil {
			return explore.Continue, err
		}
		if delayed.IsEmpty() {
			return explore.Continue, nil
		}

		for _, action := range declaredActions(ts) {
			trs, err := ts.NextTransitions(s.Loc, action)
			if err != nil {
				return explore.Continue, err
			}
			var zones []dbm.Federation
			for _, tr := range trs {
				guard, err := dbm.Of(tr.Guard)
				if err != nil {
					return explore.Continue, err
				}
				z, err := delayed.Intersect(guard)
				if err != nil {
					return explore.Continue, err
				}
				if !z.IsEmpty() {
					zones = append(zones, z)
				}
			}
			for i := 0; i < len(zones); i++ {
				for j := i + 1; j < len(zones); j++ {
					overlap, err := zones[i].Intersect(zones[j])
					if err != nil {
						return explore.Continue, err
					}
					if !overlap.IsEmpty() {
						lastAction = action
						lastZone = overlap

						return explore.Reject, nil
					}
				}
			}
		}

		return explore.Continue, nil
	}

	res, err := explore.Explore(init, successors(ts), visit, opts...)
	if err != nil {
		return err
	}
	if res.Status == explore.Reject {
		w := res.Witness.(stateNode)

		return &Failure{Check: "determinism", Loc: w.Loc, Action: lastAction, Zone: lastZone, Reason: ErrNotDeterministic}
	}

	return nil
}
