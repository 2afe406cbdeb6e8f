package checks

import (
	"github.com/tacheck/tacheck/explore"
	"github.com/tacheck/tacheck/tsys"
)

// Consistency implements spec §4.6's acceptance predicate "for every state
// at least one outgoing output or urgent delay is enabled": a reachable
// state is inconsistent exactly when its location is urgent (so it cannot
// simply wait) and no output transition is enabled from it, a deadlock.
// Returns nil if ts is locally consistent everywhere reachable, or a
// *Failure naming the first inconsistent state found (spec §5: depth-first,
// first failure wins).
func Consistency(ts tsys.TransitionSystem, opts ...explore.Option) error {
	init, err := initialState(ts)
	if err != nil {
		return err
	}

	visit := func(n explore.Node) (explore.Status, error) {
		s := n.(stateNode)
		delayed, err := delay(ts, s)
		if err != nil {
			return explore.Continue, err
		}
		if delayed.IsEmpty() {
			return explore.Continue, nil
		}

		for action := range ts.OutputActions() {
			trs, err := ts.NextTransitions(s.Loc, action)
			if err != nil {
				return explore.Continue, err
			}
			for _, tr := range trs {
				z, err := advance(delayed, tr)
				if err != nil {
					return explore.Continue, err
				}
				if !z.IsEmpty() {
					return explore.Continue, nil
				}
			}
		}

		urgent, err := ts.Urgent(s.Loc)
		if err != nil {
			return explore.Continue, err
		}
		if urgent {
			return explore.Reject, nil
		}

		return explore.Continue, nil
	}

	res, err := explore.Explore(init, successors(ts), visit, opts...)
	if err != nil {
		return err
	}
	if res.Status == explore.Reject {
		w := res.Witness.(stateNode)

		return &Failure{Check: "consistency", Loc: w.Loc, Zone: w.Zone, Reason: ErrNotLocallyConsistent}
	}

	return nil
}
