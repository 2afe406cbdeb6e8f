package checks

import (
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/explore"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// TargetFunc reports whether loc/zone match a reachability query's target
// state description (spec §6's <state> grammar); query builds one of these
// from the parsed <ident>.<location> and clock-constraint list, since only
// query knows how component idents map onto a particular tree's LocationIDs.
type TargetFunc func(loc ta.LocationID, zone dbm.Federation) (bool, error)

// Reachable implements spec §4.6's reachability dispatch: explore ts
// depth-first from its initial state until match reports true for some
// reachable (loc, zone), or the state space is exhausted. Returns the
// matching ta.State on success, or an *Failure wrapping ErrUnreachable
// otherwise.
func Reachable(ts tsys.TransitionSystem, match TargetFunc, opts ...explore.Option) (ta.State, error) {
	init, err := initialState(ts)
	if err != nil {
		return ta.State{}, err
	}

	visit := func(n explore.Node) (explore.Status, error) {
		s := n.(stateNode)
		ok, err := match(s.Loc, s.Zone)
		if err != nil {
			return explore.Continue, err
		}
		if ok {
			return explore.Accept, nil
		}

		return explore.Continue, nil
	}

	res, err := explore.Explore(init, successors(ts), visit, opts...)
	if err != nil {
		return ta.State{}, err
	}
	if res.Status != explore.Accept {
		return ta.State{}, &Failure{Check: "reachability", Loc: ts.Initial(), Reason: ErrUnreachable}
	}
	w := res.Witness.(stateNode)

	return ta.State{Loc: w.Loc, Zone: w.Zone}, nil
}
