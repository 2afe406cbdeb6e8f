package query

import (
	"fmt"
	"sort"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// FlattenOptions configures Flatten.
type FlattenOptions struct {
	// ReachableOnly restricts the output to locations reached by following
	// transitions from the initial location; Flatten currently only ever
	// builds the reachable set (spec §4.6's get-component dispatch has no
	// use for an unreachable location), so this is here purely so a future
	// caller can ask for the full product instead without an incompatible
	// signature change.
	ReachableOnly bool
}

// DefaultFlattenOptions returns FlattenOptions{ReachableOnly: true}.
func DefaultFlattenOptions() FlattenOptions { return FlattenOptions{ReachableOnly: true} }

// Flatten implements spec §4.6's get-component dispatch: product-construct
// ts into one concrete ta.Component named name, named after the composed
// tree's own LocationID keys, so a saved component can be fed straight back
// into a loader for a later query. clockNames must list exactly ts.Dim()-1
// clock names in global-index order (CompiledQuery.ClockNames already does).
func Flatten(ts tsys.TransitionSystem, clockNames []string, name string, opts FlattenOptions) (*ta.Component, error) {
	if ts.Dim()-1 != len(clockNames) {
		return nil, fmt.Errorf("query: flatten: %d clocks declared but system has dimension %d", len(clockNames), ts.Dim())
	}

	init := ts.Initial()
	visited := map[string]bool{init.Key(): true}
	queue := []ta.LocationID{init}

	var locs []ta.ParsedLocation
	var edges []ta.ParsedEdge

	inputs, outputs := ts.InputActions(), ts.OutputActions()
	actions := make([]string, 0, len(inputs)+len(outputs))
	for a := range inputs {
		actions = append(actions, a)
	}
	for a := range outputs {
		actions = append(actions, a)
	}

	for len(queue) > 0 {
		loc := queue[0]
		queue = queue[1:]

		inv, err := ts.Invariant(loc)
		if err != nil {
			return nil, err
		}
		urgent, err := ts.Urgent(loc)
		if err != nil {
			return nil, err
		}
		locs = append(locs, ta.ParsedLocation{
			Name:      loc.Key(),
			Initial:   loc.Key() == init.Key(),
			Urgent:    urgent,
			Invariant: invariantToNamed(inv, clockNames),
		})

		for _, action := range actions {
			trs, err := ts.NextTransitions(loc, action)
			if err != nil {
				return nil, err
			}
			kind := ta.Output
			if _, isInput := inputs[action]; isInput {
				kind = ta.Input
			}

			for _, tr := range trs {
				guard := dbmToNamed(tr.Guard, clockNames)
				resets := make([]ta.NamedReset, 0, len(tr.Resets))
				for _, r := range tr.Resets {
					resets = append(resets, ta.NamedReset{Clock: clockName(r.Clock, clockNames), Value: r.Value})
				}
				edges = append(edges, ta.ParsedEdge{
					Source: loc.Key(),
					Target: tr.Target.Key(),
					Action: action,
					Kind:   kind,
					Guard:  guard,
					Resets: resets,
				})

				if !visited[tr.Target.Key()] {
					visited[tr.Target.Key()] = true
					queue = append(queue, tr.Target)
				}
			}
		}
	}

	parsed := ta.ParsedComponent{
		Name:    name,
		Clocks:  clockNames,
		Inputs:  sortedActions(inputs),
		Outputs: sortedActions(outputs),
		Locs:    locs,
		Edges:   edges,
	}

	return ta.Compile(parsed, 0)
}

// clockName returns "" for the reference clock (index 0), else the
// declared name at global index idx.
func clockName(idx int, clockNames []string) string {
	if idx == 0 {
		return ""
	}

	return clockNames[idx-1]
}

// invariantToNamed converts a compiled Invariant back to NamedInvariant form.
func invariantToNamed(inv ta.Invariant, clockNames []string) ta.NamedInvariant {
	out := make(ta.NamedInvariant, len(inv))
	for i, c := range inv {
		out[i] = ta.NamedConstraint{ClockA: clockName(c.I, clockNames), ClockB: clockName(c.J, clockNames), Bound: c.Bound}
	}

	return out
}

// dbmToNamed reads every non-trivial off-diagonal bound out of a closed DBM
// guard and re-expresses it as a NamedConstraint list: the DBM's canonical
// form may carry implied bounds the original edge never wrote explicitly,
// but the resulting constraint list still describes exactly the same zone.
func dbmToNamed(guard dbm.DBM, clockNames []string) []ta.NamedConstraint {
	dim := len(clockNames) + 1
	var out []ta.NamedConstraint
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				continue
			}
			b := guard.At(i, j)
			if b.Value >= dbm.Inf {
				continue
			}
			out = append(out, ta.NamedConstraint{ClockA: clockName(i, clockNames), ClockB: clockName(j, clockNames), Bound: b})
		}
	}

	return out
}

func sortedActions(actions map[string]struct{}) []string {
	out := make([]string, 0, len(actions))
	for a := range actions {
		out = append(out, a)
	}
	sort.Strings(out)

	return out
}
