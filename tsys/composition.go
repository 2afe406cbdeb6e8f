package tsys

import (
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// Composition is the (||) transition-system operator (spec §4.3.1): two
// systems run side by side, synchronizing on every action one side outputs
// and the other inputs, and interleaving freely on every action only one
// side declares.
type Composition struct {
	l, r TransitionSystem
}

// NewComposition builds A||B, enforcing the one precondition composition
// carries: A and B must not share an output action (spec §4.3.1), since two
// components racing to produce the same output is not a meaningful system.
func NewComposition(l, r TransitionSystem) (*Composition, error) {
	if !disjoint(l.OutputActions(), r.OutputActions()) {
		return nil, &RecipeFailure{Op: "||", Reason: ErrActionsNotDisjoint}
	}

	return &Composition{l: l, r: r}, nil
}

func (c *Composition) Dim() int { return maxDim(c.l, c.r) }

func (c *Composition) MaxBounds() dbm.Bounds { return unionBounds(c.l.MaxBounds(), c.r.MaxBounds()) }

func (c *Composition) Initial() ta.LocationID {
	return ta.CompositionLocation(c.l.Initial(), c.r.Initial())
}

func (c *Composition) Children() []TransitionSystem { return []TransitionSystem{c.l, c.r} }

// InputActions is (in(A) \ out(B)) ∪ (in(B) \ out(A)): an action stays an
// input of the composition unless the other side already produces it.
func (c *Composition) InputActions() map[string]struct{} {
	return union(difference(c.l.InputActions(), c.r.OutputActions()), difference(c.r.InputActions(), c.l.OutputActions()))
}

// OutputActions is out(A) ∪ out(B); disjointness was checked at construction.
func (c *Composition) OutputActions() map[string]struct{} {
	return union(c.l.OutputActions(), c.r.OutputActions())
}

func (c *Composition) Invariant(loc ta.LocationID) (ta.Invariant, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpComposition {
		return nil, fmt.Errorf("Composition.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
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
func (c *Composition) Urgent(loc ta.LocationID) (bool, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpComposition {
		return false, fmt.Errorf("Composition.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
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

// NextTransitions implements spec §4.3.1's three synchronization cases: a
// shared action (declared by both sides) fires only when both sides have a
// transition on it; an action declared by one side alone lets that side move
// freely while the other stays put.
func (c *Composition) NextTransitions(loc ta.LocationID, action string) ([]Transition, error) {
	cl, ok := loc.(ta.CompositeLocation)
	if !ok || cl.Op != ta.OpComposition {
		return nil, fmt.Errorf("Composition.NextTransitions(%s): %w", loc.Key(), ErrUnknownLocationID)
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
				t, err := combine(lt, rt, ta.OpComposition, dim)
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
			t, err := combine(lt, stay, ta.OpComposition, dim)
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
		t, err := combine(stay, rt, ta.OpComposition, dim)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, nil
}
