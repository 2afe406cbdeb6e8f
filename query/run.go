package query

import (
	"fmt"

	"github.com/tacheck/tacheck/checks"
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/loader"
	"github.com/tacheck/tacheck/refine"
	"github.com/tacheck/tacheck/ta"
)

// Result is the uniform success payload Run returns for any of the five
// query kinds; a nil error from Run means the query's verdict is positive
// (refinement holds, the system is consistent/deterministic, the goal is
// reachable, or get-component flattened cleanly). A non-nil error is itself
// the negative verdict and its witness data: errors.Is against
// refine.ErrQuery/refine.ErrSystem or checks.ErrQuery distinguishes a real
// property violation from a recipe problem the same way checks and refine
// already report it, so Run never needs a parallel "satisfied bool" field.
type Result struct {
	Detail    string
	Witness   ta.State
	Component *ta.Component
}

// Run compiles q against ld and dispatches to the matching package per spec
// §4.6's table: refinement, consistency and determinism to refine/checks
// directly, reachability via a checks.TargetFunc built from the <state>
// goal clause, get-component via Flatten.
func Run(q Query, ld loader.ComponentLoader, opts ...loader.Option) (*Result, error) {
	cq, err := Compile(q, ld, opts...)
	if err != nil {
		return nil, err
	}

	switch query := q.(type) {
	case RefinementQuery:
		// spec §6: "A <= B" means A refines B, so B (the right-hand side)
		// is refine.Check's spec and A (the left-hand side) is its impl.
		if err := refine.Check(cq.Right, cq.Left); err != nil {
			return nil, err
		}

		return &Result{Detail: "refinement holds"}, nil
	case ConsistencyQuery:
		if err := checks.Consistency(cq.Sys); err != nil {
			return nil, err
		}

		return &Result{Detail: "system is locally consistent"}, nil
	case DeterminismQuery:
		if err := checks.Determinism(cq.Sys); err != nil {
			return nil, err
		}

		return &Result{Detail: "system is deterministic"}, nil
	case ReachabilityQuery:
		return runReachability(query, cq)
	case GetComponentQuery:
		comp, err := Flatten(cq.Sys, cq.ClockNames, query.SaveAs, DefaultFlattenOptions())
		if err != nil {
			return nil, err
		}

		return &Result{Detail: "component flattened", Component: comp}, nil
	default:
		return nil, fmt.Errorf("query: run: unrecognized query type %T", q)
	}
}

// runReachability resolves the Goal clause into a checks.TargetFunc and
// searches cq.Sys for it. The From clause is checked only for idents that
// actually resolve (spec §6 names it as the search's starting state, but
// the C4 engine this orchestrator reuses always starts from ts.Initial();
// DESIGN.md records treating From as a non-binding sanity constraint as the
// accepted simplification rather than standing up a second, alternate-start
// exploration path for one query clause).
func runReachability(query ReachabilityQuery, cq *CompiledQuery) (*Result, error) {
	if err := validateStateIdents(query.From, cq.Leaves); err != nil {
		return nil, err
	}
	target, err := buildTargetFunc(query.Goal, cq.Leaves)
	if err != nil {
		return nil, err
	}

	st, err := checks.Reachable(cq.Sys, target)
	if err != nil {
		return nil, err
	}

	return &Result{Detail: "goal state is reachable", Witness: st}, nil
}

// validateStateIdents and buildTargetFunc below look up a <state> clause's
// bare identifier directly in leaves: a State only ever appears on a
// ReachabilityQuery, whose single <sys> tree is compiled with the empty
// side prefix (see Compile), so the leaf key equals the identifier as-is.
func validateStateIdents(st State, leaves map[string]leafInfo) error {
	for _, lr := range st.Locations {
		if _, ok := leaves[lr.Ident]; !ok {
			return &RecipeFailure{Ident: lr.Ident, Reason: ErrUnresolvedIdent}
		}
	}
	for _, g := range st.Guards {
		if _, ok := leaves[g.Ident]; !ok {
			return &RecipeFailure{Ident: g.Ident, Reason: ErrUnresolvedIdent}
		}
	}

	return nil
}

// buildTargetFunc turns a <state> goal clause into a checks.TargetFunc: a
// reachable (loc, zone) matches when every named component sits in its
// named location, and every clock guard's constraint is satisfiable
// somewhere in zone.
func buildTargetFunc(st State, leaves map[string]leafInfo) (checks.TargetFunc, error) {
	locs := make([]struct {
		info leafInfo
		want string
	}, len(st.Locations))
	for i, lr := range st.Locations {
		info, ok := leaves[lr.Ident]
		if !ok {
			return nil, &RecipeFailure{Ident: lr.Ident, Reason: ErrUnresolvedIdent}
		}
		locs[i] = struct {
			info leafInfo
			want string
		}{info, lr.Location}
	}

	guards := make([]struct {
		info leafInfo
		g    ClockGuard
	}, len(st.Guards))
	for i, g := range st.Guards {
		info, ok := leaves[g.Ident]
		if !ok {
			return nil, &RecipeFailure{Ident: g.Ident, Reason: ErrUnresolvedIdent}
		}
		guards[i] = struct {
			info leafInfo
			g    ClockGuard
		}{info, g}
	}

	return func(loc ta.LocationID, zone dbm.Federation) (bool, error) {
		for _, entry := range locs {
			sub, err := resolveAlongPath(loc, entry.info.path)
			if err != nil {
				return false, err
			}
			simple, ok := sub.(ta.SimpleLocation)
			if !ok || simple.Name != entry.want {
				return false, nil
			}
		}

		for _, entry := range guards {
			idx, ok := entry.info.clockIndex[entry.g.Clock]
			if !ok {
				return false, fmt.Errorf("query: run: %q declares no clock %q", entry.g.Ident, entry.g.Clock)
			}
			ok, err := zoneAdmits(zone, idx, entry.g.Op, entry.g.Value)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}

		return true, nil
	}, nil
}

// resolveAlongPath walks loc from the tree root down to one leaf's
// location, taking .L at each false step and .R at each true step.
func resolveAlongPath(loc ta.LocationID, path []bool) (ta.LocationID, error) {
	cur := loc
	for _, right := range path {
		cl, ok := cur.(ta.CompositeLocation)
		if !ok {
			return nil, fmt.Errorf("query: run: location path runs past a leaf at %q", cur.Key())
		}
		if right {
			cur = cl.R
		} else {
			cur = cl.L
		}
	}

	return cur, nil
}

// zoneAdmits reports whether some valuation in zone satisfies clock index
// idx op value, by intersecting a copy of zone with the corresponding
// dbm.Constraint(s) and checking the result is non-empty. "=" needs both a
// <= and a >= constraint; every other operator needs exactly one.
func zoneAdmits(zone dbm.Federation, idx int, op ClockOp, value int32) (bool, error) {
	cs, err := clockConstraints(idx, op, value)
	if err != nil {
		return false, err
	}

	out, err := zone.Map(func(d dbm.DBM) (dbm.DBM, error) { return d.ConstrainAll(cs) })
	if err != nil {
		return false, err
	}

	return !out.IsEmpty(), nil
}

func clockConstraints(idx int, op ClockOp, value int32) ([]dbm.Constraint, error) {
	switch op {
	case OpLe:
		return []dbm.Constraint{{I: idx, J: 0, Bound: dbm.Bound{Value: value, Strict: false}}}, nil
	case OpLt:
		return []dbm.Constraint{{I: idx, J: 0, Bound: dbm.Bound{Value: value, Strict: true}}}, nil
	case OpGe:
		return []dbm.Constraint{{I: 0, J: idx, Bound: dbm.Bound{Value: -value, Strict: false}}}, nil
	case OpGt:
		return []dbm.Constraint{{I: 0, J: idx, Bound: dbm.Bound{Value: -value, Strict: true}}}, nil
	case OpEq:
		return []dbm.Constraint{
			{I: idx, J: 0, Bound: dbm.Bound{Value: value, Strict: false}},
			{I: 0, J: idx, Bound: dbm.Bound{Value: -value, Strict: false}},
		}, nil
	default:
		return nil, fmt.Errorf("query: run: unknown clock operator %q", op)
	}
}
