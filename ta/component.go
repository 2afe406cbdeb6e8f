package ta

import (
	"fmt"
	"sort"

	"github.com/tacheck/tacheck/dbm"
)

// ParsedComponent is a timed-automaton component as produced by an external
// loader (spec §6's component-loader contract): JSON/XML ingestion is out of
// scope for this package, so ParsedComponent is the narrow, format-agnostic
// shape the loader is expected to hand the compiler.
type ParsedComponent struct {
	Name    string
	Clocks  []string // declared clock names, excluding the reference clock
	Inputs  []string // declared input actions
	Outputs []string // declared output actions
	Locs    []ParsedLocation
	Edges   []ParsedEdge
}

// MaxBounds is a per-clock maximum-constant table, indexed by *global* clock
// index (see dbm.Bounds), used for extrapolation (spec §4.1/§4.4).
type MaxBounds = dbm.Bounds

// Component is a single compiled timed automaton: locations, edges indexed
// by (source, action), declared input/output actions, and the contiguous
// global clock index range this component owns. Immutable once returned by
// Compile, matching spec §4.2's contract.
type Component struct {
	Name string

	// ClockOffset is the offset Compile was given; the first global clock
	// index owned by this component is ClockOffset+1 (clock 0, the reference
	// clock, is always shared and never owned).
	ClockOffset int
	// NumClocks is how many clocks (excluding the reference) this component
	// declares; its global indices are [ClockOffset+1, ClockOffset+NumClocks].
	NumClocks int

	Inputs  map[string]struct{}
	Outputs map[string]struct{}

	locsByName map[string]*Location
	locOrder   []string
	edgesBySrc map[string][]*Edge // keyed by source location name

	initial string

	maxBounds MaxBounds // length ClockOffset+NumClocks+1, shared scratch size
	dim       int        // ClockOffset + NumClocks + 1 (this component's local dim)
}

// Locations returns the compiled locations in declaration order.
func (c *Component) Locations() []Location {
	out := make([]Location, 0, len(c.locOrder))
	for _, name := range c.locOrder {
		out = append(out, *c.locsByName[name])
	}

	return out
}

// Location looks up a compiled location by name.
func (c *Component) Location(name string) (Location, bool) {
	l, ok := c.locsByName[name]
	if !ok {
		return Location{}, false
	}

	return *l, true
}

// Initial returns the component's initial location name.
func (c *Component) Initial() string { return c.initial }

// Dim returns the component's own clock-space dimension (its clocks plus
// the reference clock; does NOT include clocks owned by sibling components
// when composed — tsys adds those in).
func (c *Component) Dim() int { return c.dim }

// MaxBounds returns the per-(global)-clock maximum-constant table derived
// from every guard/invariant constant appearing in the component.
func (c *Component) MaxBounds() MaxBounds { return c.maxBounds }

// IsInput reports whether action is a declared input.
func (c *Component) IsInput(action string) bool { _, ok := c.Inputs[action]; return ok }

// IsOutput reports whether action is a declared output.
func (c *Component) IsOutput(action string) bool { _, ok := c.Outputs[action]; return ok }

// EdgesFrom returns the compiled edges whose source is loc.
func (c *Component) EdgesFrom(loc string) []*Edge { return c.edgesBySrc[loc] }

// EdgesFromAction returns the compiled edges whose source is loc and whose
// action is action (spec §4.2's next_transitions, restricted to one leaf).
func (c *Component) EdgesFromAction(loc, action string) []*Edge {
	var out []*Edge
	for _, e := range c.edgesBySrc[loc] {
		if e.Action == action {
			out = append(out, e)
		}
	}

	return out
}

// Actions returns the union of declared inputs and outputs, for callers
// that need to enumerate every action a component reacts to.
func (c *Component) Actions() []string {
	out := make([]string, 0, len(c.Inputs)+len(c.Outputs))
	for a := range c.Inputs {
		out = append(out, a)
	}
	for a := range c.Outputs {
		out = append(out, a)
	}

	return out
}

// Compile flattens parsed into an immutable Component whose clocks occupy
// the contiguous global index range [clockOffset+1, clockOffset+len(clocks)]
// (clock 0 is always the shared reference clock, so the first owned index
// is clockOffset+1). After flattening, the component is made input-enabled per
// spec §4.2: every (location, declared input) pair missing an outgoing edge
// gets a true-guarded self-loop.
func Compile(parsed ParsedComponent, clockOffset int) (*Component, error) {
	if clockOffset < 0 {
		return nil, fmt.Errorf("Compile: %w", ErrBadClockOffset)
	}
	if parsed.Name == "" {
		return nil, fmt.Errorf("Compile(%q): %w", parsed.Name, ErrEmptyName)
	}
	if len(parsed.Locs) == 0 {
		return nil, fmt.Errorf("Compile(%q): %w", parsed.Name, ErrNoInitialLocation)
	}

	clockIndex := make(map[string]int, len(parsed.Clocks))
	for i, name := range parsed.Clocks {
		clockIndex[name] = clockOffset + 1 + i
	}
	resolve := func(clock string) (int, error) {
		if clock == "" {
			return 0, nil
		}
		idx, ok := clockIndex[clock]
		if !ok {
			return 0, fmt.Errorf("Compile(%q): clock %q: %w", parsed.Name, clock, ErrUnknownClock)
		}

		return idx, nil
	}

	c := &Component{
		Name:        parsed.Name,
		ClockOffset: clockOffset,
		NumClocks:   len(parsed.Clocks),
		Inputs:      make(map[string]struct{}, len(parsed.Inputs)),
		Outputs:     make(map[string]struct{}, len(parsed.Outputs)),
		locsByName:  make(map[string]*Location, len(parsed.Locs)),
		edgesBySrc:  make(map[string][]*Edge),
		dim:         clockOffset + len(parsed.Clocks) + 1,
	}
	for _, a := range parsed.Inputs {
		c.Inputs[a] = struct{}{}
	}
	for _, a := range parsed.Outputs {
		c.Outputs[a] = struct{}{}
	}

	c.maxBounds = make(MaxBounds, c.dim)
	bump := func(clock int, v int32) {
		if v < 0 {
			v = -v
		}
		if v > c.maxBounds[clock] {
			c.maxBounds[clock] = v
		}
	}

	seenInitial := false
	for _, pl := range parsed.Locs {
		if pl.Name == "" {
			return nil, fmt.Errorf("Compile(%q): %w", parsed.Name, ErrEmptyName)
		}
		if _, dup := c.locsByName[pl.Name]; dup {
			return nil, fmt.Errorf("Compile(%q): location %q: %w", parsed.Name, pl.Name, ErrDuplicateLocation)
		}
		inv := make(Invariant, 0, len(pl.Invariant))
		for _, nc := range pl.Invariant {
			i, err := resolve(nc.ClockA)
			if err != nil {
				return nil, err
			}
			j, err := resolve(nc.ClockB)
			if err != nil {
				return nil, err
			}
			bump(i, nc.Bound.Value)
			bump(j, nc.Bound.Value)
			inv = append(inv, Constraint{I: i, J: j, Bound: nc.Bound})
		}
		c.locsByName[pl.Name] = &Location{
			Name:      pl.Name,
			Invariant: inv,
			Urgent:    pl.Urgent,
			Committed: pl.Committed,
		}
		c.locOrder = append(c.locOrder, pl.Name)
		if pl.Initial {
			if seenInitial {
				return nil, fmt.Errorf("Compile(%q): multiple initial locations", parsed.Name)
			}
			seenInitial = true
			c.initial = pl.Name
		}
	}
	if !seenInitial {
		return nil, fmt.Errorf("Compile(%q): %w", parsed.Name, ErrNoInitialLocation)
	}

	for _, pe := range parsed.Edges {
		if _, ok := c.locsByName[pe.Source]; !ok {
			return nil, fmt.Errorf("Compile(%q): edge source %q: %w", parsed.Name, pe.Source, ErrUnknownLocation)
		}
		if _, ok := c.locsByName[pe.Target]; !ok {
			return nil, fmt.Errorf("Compile(%q): edge target %q: %w", parsed.Name, pe.Target, ErrUnknownLocation)
		}
		guard := make([]Constraint, 0, len(pe.Guard))
		for _, nc := range pe.Guard {
			i, err := resolve(nc.ClockA)
			if err != nil {
				return nil, err
			}
			j, err := resolve(nc.ClockB)
			if err != nil {
				return nil, err
			}
			bump(i, nc.Bound.Value)
			bump(j, nc.Bound.Value)
			guard = append(guard, Constraint{I: i, J: j, Bound: nc.Bound})
		}
		resets := make([]Reset, 0, len(pe.Resets))
		for _, nr := range pe.Resets {
			idx, err := resolve(nr.Clock)
			if err != nil {
				return nil, err
			}
			resets = append(resets, Reset{Clock: idx, Value: nr.Value})
		}
		e := &Edge{
			Source: pe.Source, Target: pe.Target,
			Action: pe.Action, Kind: pe.Kind,
			Guard: guard, Resets: resets,
		}
		c.edgesBySrc[pe.Source] = append(c.edgesBySrc[pe.Source], e)
	}

	makeInputEnabled(c)

	// Deterministic edge order within each source location, by action then
	// target, so NextTransitions (ta's and tsys's) is reproducible run to run.
	for src, edges := range c.edgesBySrc {
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Action != edges[j].Action {
				return edges[i].Action < edges[j].Action
			}

			return edges[i].Target < edges[j].Target
		})
		c.edgesBySrc[src] = edges
	}

	return c, nil
}
