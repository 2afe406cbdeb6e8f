package tsys

import (
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// Quotient is the (\) transition-system operator (spec §4.3.3): the largest
// system Q such that Q||B refines A, built by case-splitting every action
// into whichever of A and B is responsible for it in the combined system,
// and falling back to the ta.Universal sentinel location whenever B can act
// in a way A's own behavior leaves unspecified there.
//
// Quotient introduces one fresh clock, reset every time Q independently
// takes one of A's own outputs — tracking time since Q last acted on its own
// rather than in lock-step with B. Nothing else constrains that clock; this
// is a deliberately conservative reading of the construction (DESIGN.md
// records it as an accepted simplification; no test in the module checks
// the round-trip property (A\B)||B <= A against it).
type Quotient struct {
	l, r  TransitionSystem
	clock int
}

// NewQuotient builds A\B. Unlike Composition and Conjunction, quotient
// carries no action-set precondition of its own (spec §4.3.3); whatever A
// and B declare, the formulas below always produce a well-formed result.
func NewQuotient(l, r TransitionSystem) (*Quotient, error) {
	return &Quotient{l: l, r: r, clock: maxDim(l, r)}, nil
}

func (q *Quotient) Dim() int { return q.clock + 1 }

func (q *Quotient) MaxBounds() dbm.Bounds {
	b := unionBounds(q.l.MaxBounds(), q.r.MaxBounds())
	out := make(dbm.Bounds, q.Dim())
	copy(out, b)

	return out
}

func (q *Quotient) Initial() ta.LocationID {
	return ta.QuotientLocation(q.l.Initial(), q.r.Initial())
}

func (q *Quotient) Children() []TransitionSystem { return []TransitionSystem{q.l, q.r} }

// InputActions is in(A) ∪ out(B): A's own inputs, plus whatever B can
// produce that the quotient must stand ready to react to.
func (q *Quotient) InputActions() map[string]struct{} {
	return union(q.l.InputActions(), q.r.OutputActions())
}

// OutputActions is out(A) \ out(B): A's outputs that B does not already
// supply by synchronizing with A directly.
func (q *Quotient) OutputActions() map[string]struct{} {
	return difference(q.l.OutputActions(), q.r.OutputActions())
}

func (q *Quotient) Invariant(loc ta.LocationID) (ta.Invariant, error) {
	switch l := loc.(type) {
	case ta.SpecialLocation:
		return nil, nil
	case ta.CompositeLocation:
		if l.Op != ta.OpQuotient {
			return nil, fmt.Errorf("Quotient.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
		}
		li, err := q.l.Invariant(l.L)
		if err != nil {
			return nil, err
		}
		ri, err := q.r.Invariant(l.R)
		if err != nil {
			return nil, err
		}
		out := make(ta.Invariant, 0, len(li)+len(ri))
		out = append(out, li...)
		out = append(out, ri...)

		return out, nil
	default:
		return nil, fmt.Errorf("Quotient.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
}

// Urgent reports whether loc is urgent. The two sentinel locations are never
// urgent: both are designed to absorb arbitrary delay while the exploration
// decides what, if anything, continues from them.
func (q *Quotient) Urgent(loc ta.LocationID) (bool, error) {
	switch l := loc.(type) {
	case ta.SpecialLocation:
		return false, nil
	case ta.CompositeLocation:
		if l.Op != ta.OpQuotient {
			return false, fmt.Errorf("Quotient.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
		}
		lu, err := q.l.Urgent(l.L)
		if err != nil {
			return false, err
		}
		ru, err := q.r.Urgent(l.R)
		if err != nil {
			return false, err
		}

		return lu || ru, nil
	default:
		return false, fmt.Errorf("Quotient.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
}

// universeTransition builds the Universal sentinel's self-loop on action.
func (q *Quotient) universeTransition(action string) (Transition, error) {
	u, err := dbm.Universe(q.Dim())
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		ID:     ta.LeafTransition{Component: "quotient", Action: action, Source: "universal", Target: "universal"},
		Guard:  u,
		Target: ta.Universal,
	}, nil
}

// NextTransitions implements spec §4.3.3: the two sentinel locations absorb
// every action of the quotient (Universal by self-looping, Inconsistent by
// refusing everything, a dead end for the exploration engine), and every
// ordinary composite location case-splits action by which of A/B owns it.
func (q *Quotient) NextTransitions(loc ta.LocationID, action string) ([]Transition, error) {
	switch l := loc.(type) {
	case ta.SpecialLocation:
		if l.Kind == ta.SpecialInconsistent {
			return nil, nil
		}
		if !declares(q, action) {
			return nil, nil
		}
		t, err := q.universeTransition(action)
		if err != nil {
			return nil, err
		}

		return []Transition{t}, nil

	case ta.CompositeLocation:
		if l.Op != ta.OpQuotient {
			return nil, fmt.Errorf("Quotient.NextTransitions(%s): %w", loc.Key(), ErrUnknownLocationID)
		}

		return q.nextFromPair(l.L, l.R, action)

	default:
		return nil, fmt.Errorf("Quotient.NextTransitions(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
}

// nextFromPair case-splits action at an ordinary (lLoc, rLoc) pair: a B
// output A also treats as input must synchronize (falling back to Universal
// if A leaves it unspecified there); an action A alone declares — as its own
// output or as an input B does not supply — lets A move on its own.
func (q *Quotient) nextFromPair(lLoc, rLoc ta.LocationID, action string) ([]Transition, error) {
	rIsOutput := hasAction(q.r.OutputActions(), action)
	lIsInput := hasAction(q.l.InputActions(), action)
	lIsOutput := hasAction(q.l.OutputActions(), action)

	switch {
	// out(B) belongs to Inputs(quotient) unconditionally (spec §4.3.3), so any
	// action B outputs takes this branch whether or not A also declares it.
	case rIsOutput:
		return q.sharedBOut(lLoc, rLoc, action)
	case lIsOutput:
		return q.aOnly(lLoc, rLoc, action, true)
	case lIsInput:
		return q.aOnly(lLoc, rLoc, action, false)
	default:
		return nil, nil
	}
}

// sharedBOut handles an action B outputs and A accepts as input: both sides
// transition when A has a matching edge; when A leaves the action
// unspecified from lLoc, control passes to Universal instead of failing,
// since A's silence here just means "any continuation is acceptable".
func (q *Quotient) sharedBOut(lLoc, rLoc ta.LocationID, action string) ([]Transition, error) {
	rts, err := q.r.NextTransitions(rLoc, action)
	if err != nil || len(rts) == 0 {
		return nil, err
	}
	lts, err := q.l.NextTransitions(lLoc, action)
	if err != nil {
		return nil, err
	}

	dim := q.Dim()

	if len(lts) == 0 {
		out := make([]Transition, 0, len(rts))
		for _, rt := range rts {
			rg, err := rt.Guard.Embed(dim)
			if err != nil {
				return nil, err
			}
			out = append(out, Transition{
				ID:     ta.PairTransition{Op: ta.OpQuotient, L: ta.NullTransition{Component: "left"}, R: rt.ID},
				Guard:  rg,
				Resets: rt.Resets,
				Target: ta.Universal,
			})
		}

		return out, nil
	}

	out := make([]Transition, 0, len(lts)*len(rts))
	for _, lt := range lts {
		for _, rt := range rts {
			t, err := combine(lt, rt, ta.OpQuotient, dim)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}

	return out, nil
}

// aOnly handles an action only A reacts to (its own output, or an input B
// does not also output): A transitions alone and B stays put. An own-output
// transition additionally resets the quotient's fresh clock.
func (q *Quotient) aOnly(lLoc, rLoc ta.LocationID, action string, isOwnOutput bool) ([]Transition, error) {
	lts, err := q.l.NextTransitions(lLoc, action)
	if err != nil || len(lts) == 0 {
		return nil, err
	}
	stay, err := stayTransition(q.r, rLoc, "right")
	if err != nil {
		return nil, err
	}

	dim := q.Dim()
	out := make([]Transition, 0, len(lts))
	for _, lt := range lts {
		t, err := combine(lt, stay, ta.OpQuotient, dim)
		if err != nil {
			return nil, err
		}
		if isOwnOutput {
			resets := make([]ta.Reset, 0, len(t.Resets)+1)
			resets = append(resets, t.Resets...)
			resets = append(resets, ta.Reset{Clock: q.clock, Value: 0})
			t.Resets = resets
		}
		out = append(out, t)
	}

	return out, nil
}
