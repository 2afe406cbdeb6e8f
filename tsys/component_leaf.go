package tsys

import (
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// ComponentLeaf adapts a compiled ta.Component into a TransitionSystem leaf
// (spec §4.3.4): it delegates directly to the component, embedding guards
// in the component's own clock dimension.
type ComponentLeaf struct {
	comp *ta.Component
}

// NewComponentLeaf wraps comp as a transition-system leaf.
func NewComponentLeaf(comp *ta.Component) *ComponentLeaf {
	return &ComponentLeaf{comp: comp}
}

// Component returns the wrapped compiled component.
func (c *ComponentLeaf) Component() *ta.Component { return c.comp }

func (c *ComponentLeaf) Dim() int               { return c.comp.Dim() }
func (c *ComponentLeaf) Children() []TransitionSystem { return nil }
func (c *ComponentLeaf) Initial() ta.LocationID { return ta.SimpleLocation{Name: c.comp.Initial()} }
func (c *ComponentLeaf) MaxBounds() dbm.Bounds  { return c.comp.MaxBounds() }

func (c *ComponentLeaf) InputActions() map[string]struct{} {
	out := make(map[string]struct{}, len(c.comp.Inputs))
	for a := range c.comp.Inputs {
		out[a] = struct{}{}
	}

	return out
}

func (c *ComponentLeaf) OutputActions() map[string]struct{} {
	out := make(map[string]struct{}, len(c.comp.Outputs))
	for a := range c.comp.Outputs {
		out[a] = struct{}{}
	}

	return out
}

// Invariant returns the invariant of the ta.SimpleLocation named by loc.
func (c *ComponentLeaf) Invariant(loc ta.LocationID) (ta.Invariant, error) {
	simple, ok := loc.(ta.SimpleLocation)
	if !ok {
		return nil, fmt.Errorf("ComponentLeaf.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
	l, ok := c.comp.Location(simple.Name)
	if !ok {
		return nil, fmt.Errorf("ComponentLeaf.Invariant(%s): %w", loc.Key(), ErrUnknownLocationID)
	}

	return l.Invariant, nil
}

// Urgent reports whether the ta.SimpleLocation named by loc is urgent.
func (c *ComponentLeaf) Urgent(loc ta.LocationID) (bool, error) {
	simple, ok := loc.(ta.SimpleLocation)
	if !ok {
		return false, fmt.Errorf("ComponentLeaf.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
	}
	l, ok := c.comp.Location(simple.Name)
	if !ok {
		return false, fmt.Errorf("ComponentLeaf.Urgent(%s): %w", loc.Key(), ErrUnknownLocationID)
	}

	return l.Urgent, nil
}

// NextTransitions implements spec §4.2's next_transitions for a single
// compiled component: loc must be a ta.SimpleLocation naming one of the
// component's locations.
func (c *ComponentLeaf) NextTransitions(loc ta.LocationID, action string) ([]Transition, error) {
	simple, ok := loc.(ta.SimpleLocation)
	if !ok {
		return nil, fmt.Errorf("ComponentLeaf.NextTransitions(%s): %w", loc.Key(), ErrUnknownLocationID)
	}

	edges := c.comp.EdgesFromAction(simple.Name, action)
	if len(edges) == 0 {
		return nil, nil
	}

	out := make([]Transition, 0, len(edges))
	for _, e := range edges {
		guard, err := ta.GuardDBM(c.Dim(), e.Guard)
		if err != nil {
			return nil, err
		}
		targetLoc, ok := c.comp.Location(e.Target)
		if !ok {
			return nil, fmt.Errorf("ComponentLeaf.NextTransitions: %w", ErrUnknownLocationID)
		}
		out = append(out, Transition{
			ID: ta.LeafTransition{
				Component: c.comp.Name, Action: action,
				Source: simple.Name, Target: e.Target,
			},
			Guard:           guard,
			Resets:          e.Resets,
			Target:          ta.SimpleLocation{Name: e.Target},
			TargetInvariant: targetLoc.Invariant,
		})
	}

	return out, nil
}
