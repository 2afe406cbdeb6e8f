package ta

import "github.com/tacheck/tacheck/dbm"

// State is a symbolic state: a LocationID tree paired with the federation
// of clock valuations reachable at it (spec §3). The federation is always
// kept constrained by every invariant on the location path.
type State struct {
	Loc  LocationID
	Zone dbm.Federation
}

// StatePair is a pair of LocationIDs sharing one combined federation, used
// exclusively by the refinement checker (spec §3, C5): the federation lives
// in one shared clock space of dimension max(dimL, dimR), the two sides
// already occupying disjoint clock ranges.
type StatePair struct {
	Left, Right LocationID
	Zone        dbm.Federation
}

// ToConstraint converts a compiled Constraint into the dbm package's
// representation, the one place the two Bound shapes meet.
func (c Constraint) ToConstraint() dbm.Constraint {
	return dbm.Constraint{I: c.I, J: c.J, Bound: dbm.Bound{Value: c.Bound.Value, Strict: c.Bound.Strict}}
}

// ApplyInvariant intersects z with loc's invariant, returning the result
// (possibly empty if the invariant is unsatisfiable in z).
func ApplyInvariant(z dbm.Federation, loc Location) (dbm.Federation, error) {
	if len(loc.Invariant) == 0 {
		return z, nil
	}

	return z.Map(func(d dbm.DBM) (dbm.DBM, error) {
		cs := make([]dbm.Constraint, len(loc.Invariant))
		for i, c := range loc.Invariant {
			cs[i] = c.ToConstraint()
		}

		return d.ConstrainAll(cs)
	})
}

// GuardDBM builds the convex guard zone for a compiled edge's Guard,
// embedded directly in a system of dimension fullDim (spec §4.2:
// "the edge's guard applied to the universe of dimension dim"). Because a
// guard is a conjunction of constraints it is always convex, so a single DBM
// — never a Federation — is the right representation here.
func GuardDBM(fullDim int, guard []Constraint) (dbm.DBM, error) {
	u, err := dbm.Universe(fullDim)
	if err != nil {
		return dbm.DBM{}, err
	}
	cs := make([]dbm.Constraint, len(guard))
	for i, c := range guard {
		cs[i] = c.ToConstraint()
	}

	return u.ConstrainAll(cs)
}

// InvariantConstraints converts an Invariant to dbm.Constraint form.
func InvariantConstraints(inv Invariant) []dbm.Constraint {
	cs := make([]dbm.Constraint, len(inv))
	for i, c := range inv {
		cs[i] = c.ToConstraint()
	}

	return cs
}

// ApplyGuard intersects z with e's guard.
func ApplyGuard(z dbm.Federation, e *Edge) (dbm.Federation, error) {
	if len(e.Guard) == 0 {
		return z, nil
	}

	return z.Map(func(d dbm.DBM) (dbm.DBM, error) {
		cs := make([]dbm.Constraint, len(e.Guard))
		for i, c := range e.Guard {
			cs[i] = c.ToConstraint()
		}

		return d.ConstrainAll(cs)
	})
}

// ApplyResets applies e's resets to every DBM in z, in declaration order.
func ApplyResets(z dbm.Federation, e *Edge) (dbm.Federation, error) {
	return ApplyResetList(z, e.Resets)
}

// ApplyResetList applies resets (already resolved to global clock indices)
// to every DBM in z, in order. Used to thread a composed transition's
// concatenated reset list (spec §4.3.1: "union the update lists") across a
// federation in one pass.
func ApplyResetList(z dbm.Federation, resets []Reset) (dbm.Federation, error) {
	if len(resets) == 0 {
		return z, nil
	}

	return z.Map(func(d dbm.DBM) (dbm.DBM, error) {
		r := d
		for _, rst := range resets {
			var err error
			r, err = r.Reset(rst.Clock, rst.Value)
			if err != nil {
				return dbm.DBM{}, err
			}
		}

		return r, nil
	})
}
