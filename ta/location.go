package ta

// Invariant is a conjunction of clock constraints attached to a location;
// a nil Invariant means "true" (no restriction).
type Invariant []Constraint

// NamedInvariant is an Invariant expressed over clock names, attached to a
// ParsedLocation before compilation.
type NamedInvariant []NamedConstraint

// ParsedLocation is a location as it appears in an uncompiled component
// definition: its invariant's clocks are referenced by name.
type ParsedLocation struct {
	Name      string
	Initial   bool
	Urgent    bool // urgent locations disallow time elapse (spec §3)
	Committed bool
	Invariant NamedInvariant
}

// Location is a compiled location: its Invariant is already expressed over
// the component's (offset-adjusted) global clock indices.
type Location struct {
	Name      string
	Invariant Invariant
	Urgent    bool
	Committed bool
}
