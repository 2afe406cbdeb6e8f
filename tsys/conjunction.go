package tsys

import (
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// Conjunction is the (&&) transition-system operator (spec §4.3.2): the
// intersection of two specifications' behavior. An action declared by both
// sides must be accepted by both at once (their guards intersected, their
// resets both applied); an action declared by only one side passes through
// unconstrained by the other, same shape as Composition's local actions.
//
// Unlike Composition, Conjunction does not require its children to already
// be internally consistent — that is checked separately, once, by the query
// compiler (see query.Compile), so this package never imports checks and no
// cycle is introduced between the transition-system algebra and the
// exploration engine it is built on.
type Conjunction struct {
	l, r TransitionSystem
}

// NewConjunction builds A&&B, enforcing spec §4.3.2's action-compatibility
// precondition: neither side may treat as output an action the other treats
// as input, in either direction — an action conjunction fails closed when
// the interfaces disagree on who controls it.
func NewConjunction(l, r TransitionSystem) (*Conjunction, error) {
	if !disjoint(l.InputActions(), r.OutputActions()) || !disjoint(r.InputActions(), l.OutputActions()) {
		return nil, &RecipeFailure{Op: "&&", Reason: ErrActionsNotEqual}
	}

	return &Conjunction{l: l, r: r}, nil
}

func (c *Conjunction) Dim() int { return maxDim(c.l, c.r) }

func (c *Conjunction) MaxBounds() dbm.Bounds { return unionBounds(c.l.MaxBounds(), c.r.MaxBounds()) }

func (c *Conjunction) Initial() ta.LocationID {
	return ta.ConjunctionLocation(c.l.Initial(), c.r.Initial())
}

func (c *Conjunction) Children() []TransitionSystem { return []TransitionSystem{c.l, c.r} }

func (c *Conjunction) InputActions() map[string]struct{} { return union(c.l.InputActions(), c.r.InputActions()) }

func (c *Conjunction) OutputActions() map[string]struct{} { return union(c.l.OutputActions(), c.r.OutputActions()) }

func (c *Conjunction) Invariant(loc ta.LocationID) (ta.Invariant, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpConjunction {
		return nil, fmt.Errorf("Conjunction.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
	li, err := c.l.Invariant(cl.L)
	if err != nil {
		return nil, err
	}
	ri, err := c.r.Invariant(cl.R)
	if err != nil {
		return nil, err
	}

	out := make(ta.Invariant, 0, len(li)+len(ri))
	out = append(out, li...)
	out = append(out, ri...)

	return out, nil
}

// Urgent reports whether either side's current location is urgent.
func (c *Conjunction) Urgent(loc ta.LocationID) (bool, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpConjunction {
		return false, fmt.Errorf("Conjunction.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
	lu, err := c.l.Urgent(cl.L)
	if err != nil {
		return false, err
	}
	ru, err := c.r.Urgent(cl.R)
	if err != nil {
		return false, err
	}

	return lu || ru, nil
}

// NextTransitions mirrors Composition's shape: a shared action requires both
// sides to transition (an empty result on either side collapses the whole
// product, which is how a conjunction becomes locally inconsistent at a
// reachable state rather than at construction time), a one-sided action lets
// that side move while the other stays put.
func (c *Conjunction) NextTransitions(loc ta.LocationID, action string) ([]Transition, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpConjunction {
		return nil, fmt.Errorf("Conjunction.NextTransitions(%s): %w", loc.Key(), ErrUnknownLocationID)
	}

	lOwns, rOwns := declares(c.l, action), declares(c.r, action)
	if !lOwns && !rOwns {
		return nil, nil
	}

	dim := c.Dim()

	if lOwns && rOwns {
		lts, err := c.l.NextTransitions(cl.L, action)
		if err != nil {
			return nil, err
		}
		rts, err := c.r.NextTransitions(cl.R, action)
		if err != nil || len(lts) == 0 || len(rts) == 0 {
			return nil, err
		}

		out := make([]Transition, 0, len(lts)*len(rts))
		for _, lt := range lts {
			for _, rt := range rts {
				t, err := combine(lt, rt, ta.OpConjunction, dim)
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
		}

		return out, nil
	}

	if lOwns {
		lts, err := c.l.NextTransitions(cl.L, action)
		if err != nil || len(lts) == 0 {
			return nil, err
		}
		stay, err := stayTransition(c.r, cl.R, "right")
		if err != nil {
			return nil, err
		}

		out := make([]Transition, 0, len(lts))
		for _, lt := range lts {
			t, err := combine(lt, stay, ta.OpConjunction, dim)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}

		return out, nil
	}

	rts, err := c.r.NextTransitions(cl.R, action)
	if err != nil || len(rts) == 0 {
		return nil, err
	}
	stay, err := stayTransition(c.l, cl.L, "left")
	if err != nil {
		return nil, err
	}

	out := make([]Transition, 0, len(rts))
	for _, rt := range rts {
		t, err := combine(stay, rt, ta.OpConjunction, dim)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
