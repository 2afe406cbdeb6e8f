package refine

import (
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/explore"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// pairNode adapts a ta.StatePair to explore.Node/explore.Subsumer: a pair is
// deduplicated only against another pair at the exact same (left, right)
// location combination, by federation subset, mirroring checks.stateNode.
type pairNode struct {
	Pair ta.StatePair
}

func (p pairNode) Key() string { return p.Pair.Left.Key() + "<=" + p.Pair.Right.Key() }

func (p pairNode) SubsumedBy(other explore.Node) (bool, error) {
	o, ok := other.(pairNode)
	if !ok {
		return false, nil
	}

	return p.Pair.Zone.SubsetEq(o.Pair.Zone)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// Check implements spec §4.5's timed alternating simulation: impl (the
// right-hand, implementation system) refines spec (the left-hand,
// specification system) iff every output impl can produce, spec can match,
// and every input spec accepts, impl can accept, recursively over the
// reachable state pairs. spec and impl must already use disjoint clock
// ranges (as two leaves of one composed system do by construction); query
// is responsible for allocating one shared clock space across both sides of
// a refinement query before calling Check.
//
// Returns nil when the refinement holds, a *SystemFailure if in(spec) ⊄
// in(impl) or out(impl) ⊄ out(spec) even after extra-actions normalization,
// or a *QueryFailure naming the first state pair/action where the two
// systems diverge.
func Check(spec, impl tsys.TransitionSystem, opts ...explore.Option) error {
	s, i, err := normalizeExtraActions(spec, impl)
	if err != nil {
		return err
	}

	if !isSubset(s.InputActions(), i.InputActions()) {
		return &SystemFailure{Reason: ErrInputsNotIncluded}
	}
	if !isSubset(i.OutputActions(), s.OutputActions()) {
		return &SystemFailure{Reason: ErrOutputsNotIncluded}
	}

	dim := maxInt(s.Dim(), i.Dim())

	u, err := dbm.Universe(dim)
	if err != nil {
		return err
	}
	z, err := dbm.Of(u)
	if err != nil {
		return err
	}

	sInv, err := s.Invariant(s.Initial())
	if err != nil {
		return err
	}
	z, err = ta.ApplyInvariant(z, ta.Location{Invariant: sInv})
	if err != nil {
		return err
	}
	iInv, err := i.Invariant(i.Initial())
	if err != nil {
		return err
	}
	z, err = ta.ApplyInvariant(z, ta.Location{Invariant: iInv})
	if err != nil {
		return err
	}

	init := pairNode{Pair: ta.StatePair{Left: s.Initial(), Right: i.Initial(), Zone: z}}

	visit := func(explore.Node) (explore.Status, error) { return explore.Continue, nil }

	_, err = explore.Explore(init, step(s, i, dim), visit, opts...)

	return err
}

// delayPair applies spec §3's time-elapse step to a pair's shared zone: Up
// unless either side is urgent, then re-intersects both sides' invariants.
func delayPair(s, i tsys.TransitionSystem, p ta.StatePair) (dbm.Federation, error) {
	sUrgent, err := s.Urgent(p.Left)
	if err != nil {
		return dbm.Federation{}, err
	}
	iUrgent, err := i.Urgent(p.Right)
	if err != nil {
		return dbm.Federation{}, err
	}

	z := p.Zone
	if !sUrgent && !iUrgent {
		z, err = z.Map(func(d dbm.DBM) (dbm.DBM, error) { return d.Up(), nil })
		if err != nil {
			return dbm.Federation{}, err
		}
	}

	sInv, err := s.Invariant(p.Left)
	if err != nil {
		return dbm.Federation{}, err
	}
	z, err = ta.ApplyInvariant(z, ta.Location{Invariant: sInv})
	if err != nil {
		return dbm.Federation{}, err
	}
	iInv, err := i.Invariant(p.Right)
	if err != nil {
		return dbm.Federation{}, err
	}

	return ta.ApplyInvariant(z, ta.Location{Invariant: iInv})
}

// step builds the explore.SuccessorFunc driving the simulation: delay, then
// check that impl's outputs are matched by spec (bullet 2 of spec §4.5) and
// that spec's inputs are matched by impl (bullet 3), returning the surviving
// pairs as successors. A mismatch aborts the whole search by returning the
// *QueryFailure as an error, rather than reporting it through explore's
// Accept/Reject status, since the failure must be raised the instant it is
// found, not deferred to a visit callback.
func step(s, i tsys.TransitionSystem, dim int) explore.SuccessorFunc {
	bounds := unionMaxBounds(s.MaxBounds(), i.MaxBounds(), dim)

	return func(n explore.Node) ([]explore.Node, error) {
		p := n.(pairNode).Pair

		delayed, err := delayPair(s, i, p)
		if err != nil {
			return nil, err
		}
		if delayed.IsEmpty() {
			return nil, nil
		}

		var out []pairNode

		outSucc, err := matchSide(s, i, dim, bounds, p, delayed, i.OutputActions(), CutsDelaySolutions, false)
		if err != nil {
			return nil, err
		}
		out = append(out, outSucc...)

		inSucc, err := matchSide(s, i, dim, bounds, p, delayed, s.InputActions(), CannotMatch, true)
		if err != nil {
			return nil, err
		}
		out = append(out, inSucc...)

		nodes := make([]explore.Node, len(out))
		for idx, pn := range out {
			nodes[idx] = pn
		}

		return nodes, nil
	}
}

// matchSide checks every action in actions. When leaderIsSpec is false, impl
// leads (its transitions on the action must each be matched by some spec
// transition): this is the output-matching bullet, since impl's outputs are
// the ones spec must be able to follow. When leaderIsSpec is true, spec
// leads: this is the input-matching bullet, since spec's inputs are the ones
// impl must be able to accept.
func matchSide(
	s, i tsys.TransitionSystem,
	dim int,
	bounds dbm.Bounds,
	p ta.StatePair,
	delayed dbm.Federation,
	actions map[string]struct{},
	kind FailureKind,
	leaderIsSpec bool,
) ([]pairNode, error) {
	var out []pairNode

	for action := range actions {
		var leaderTS, followerTS tsys.TransitionSystem
		var leaderLoc, followerLoc ta.LocationID
		if leaderIsSpec {
			leaderTS, followerTS = s, i
			leaderLoc, followerLoc = p.Left, p.Right
		} else {
			leaderTS, followerTS = i, s
			leaderLoc, followerLoc = p.Right, p.Left
		}

		leaderTrs, err := leaderTS.NextTransitions(leaderLoc, action)
		if err != nil {
			return nil, err
		}
		if len(leaderTrs) == 0 {
			continue
		}
		followerTrs, err := followerTS.NextTransitions(followerLoc, action)
		if err != nil {
			return nil, err
		}

		for _, lt := range leaderTrs {
			lg, err := lt.Guard.Embed(dim)
			if err != nil {
				return nil, err
			}
			lgf, err := dbm.Of(lg)
			if err != nil {
				return nil, err
			}
			zPart, err := delayed.Intersect(lgf)
			if err != nil {
				return nil, err
			}
			if zPart.IsEmpty() {
				continue
			}

			var covered dbm.Federation
			for _, ft := range followerTrs {
				fg, err := ft.Guard.Embed(dim)
				if err != nil {
					return nil, err
				}
				covered, err = covered.Add(fg)
				if err != nil {
					return nil, err
				}
			}
			uncovered, err := zPart.FederationSubtract(covered)
			if err != nil {
				return nil, err
			}
			if !uncovered.IsEmpty() {
				pair := ta.StatePair{Left: p.Left, Right: p.Right, Zone: uncovered}

				return nil, &QueryFailure{Kind: kind, Pair: pair, Action: action, Zone: uncovered}
			}

			for _, ft := range followerTrs {
				fg, err := ft.Guard.Embed(dim)
				if err != nil {
					return nil, err
				}
				fgf, err := dbm.Of(fg)
				if err != nil {
					return nil, err
				}
				matched, err := zPart.Intersect(fgf)
				if err != nil {
					return nil, err
				}
				if matched.IsEmpty() {
					continue
				}

				var lTarget, rTarget ta.LocationID
				var resets []ta.Reset
				var invs ta.Invariant
				if leaderIsSpec {
					lTarget, rTarget = lt.Target, ft.Target
				} else {
					lTarget, rTarget = ft.Target, lt.Target
				}
				resets = append(resets, lt.Resets...)
				resets = append(resets, ft.Resets...)
				invs = append(invs, lt.TargetInvariant...)
				invs = append(invs, ft.TargetInvariant...)

				matched, err = ta.ApplyResetList(matched, resets)
				if err != nil {
					return nil, err
				}
				matched, err = ta.ApplyInvariant(matched, ta.Location{Invariant: invs})
				if err != nil {
					return nil, err
				}
				if matched.IsEmpty() {
					continue
				}
				matched, err = matched.Extrapolate(bounds)
				if err != nil {
					return nil, err
				}
				if matched.IsEmpty() {
					continue
				}

				out = append(out, pairNode{Pair: ta.StatePair{Left: lTarget, Right: rTarget, Zone: matched}})
			}
		}
	}

	return out, nil
}

// unionMaxBounds entry-wise merges two MaxBounds tables sized to dim, the
// same shape tsys.unionBounds builds for a composed system — s and i occupy
// disjoint clock ranges, so this is really concatenation written safely.
func unionMaxBounds(l, r dbm.Bounds, dim int) dbm.Bounds {
	out := make(dbm.Bounds, dim)
	for idx := 0; idx < dim; idx++ {
		var lv, rv int32
		if idx < len(l) {
			lv = l[idx]
		}
		if idx < len(r) {
			rv = r[idx]
		}
		if lv > rv {
			out[idx] = lv
		} else {
			out[idx] = rv
		}
	}

	return out
}
