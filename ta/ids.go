package ta

import "fmt"

// LocationID globally identifies a location within a (possibly composed)
// transition-system tree (spec §3). It is a finite tree, not a graph — see
// spec §9 — represented here as a small tagged sum of comparable struct
// types so LocationID values can be used directly as map keys (no pointer
// identity involved, matching spec §9's "leaf hashing must be stable").
type LocationID interface {
	// Key returns a stable string encoding, used where a LocationID must be
	// serialized (log lines, cache keys) rather than compared by ==.
	Key() string
	locationID()
}

// SimpleLocation identifies a location by name within a single leaf component.
type SimpleLocation struct{ Name string }

func (s SimpleLocation) Key() string { return s.Name }
func (SimpleLocation) locationID()   {}

// OpKind tags which binary operator produced a CompositeLocation or
// PairTransition: Composition (||), Conjunction (&&) or Quotient (\\).
type OpKind int

const (
	OpComposition OpKind = iota
	OpConjunction
	OpQuotient
)

func (k OpKind) sep() string {
	switch k {
	case OpComposition:
		return "||"
	case OpConjunction:
		return "&&"
	default:
		return "\\"
	}
}

// CompositeLocation identifies a location of a Composition, Conjunction or
// Quotient node by its two children's LocationIDs.
type CompositeLocation struct {
	Op   OpKind
	L, R LocationID
}

func (c CompositeLocation) Key() string { return fmt.Sprintf("(%s%s%s)", c.L.Key(), c.Op.sep(), c.R.Key()) }
func (CompositeLocation) locationID()   {}

// CompositionLocation builds the LocationID for a Composition node's location.
func CompositionLocation(l, r LocationID) LocationID { return CompositeLocation{Op: OpComposition, L: l, R: r} }

// ConjunctionLocation builds the LocationID for a Conjunction node's location.
func ConjunctionLocation(l, r LocationID) LocationID { return CompositeLocation{Op: OpConjunction, L: l, R: r} }

// QuotientLocation builds the LocationID for a Quotient node's location.
func QuotientLocation(l, r LocationID) LocationID { return CompositeLocation{Op: OpQuotient, L: l, R: r} }

// specialKind distinguishes the quotient's two sentinel locations (spec §3).
type specialKind int

const (
	// SpecialUniversal is the quotient's accept-everything sink.
	SpecialUniversal specialKind = iota
	// SpecialInconsistent is the quotient's reject sink.
	SpecialInconsistent
)

// SpecialLocation identifies one of the quotient's sentinel locations.
type SpecialLocation struct{ Kind specialKind }

func (s SpecialLocation) Key() string {
	if s.Kind == SpecialUniversal {
		return "universal"
	}

	return "inconsistent"
}
func (SpecialLocation) locationID() {}

// Universal and Inconsistent are the two well-known sentinel LocationIDs a
// Quotient node introduces (spec §3, §4.3.3).
var (
	Universal    LocationID = SpecialLocation{Kind: SpecialUniversal}
	Inconsistent LocationID = SpecialLocation{Kind: SpecialInconsistent}
)

// TransitionID mirrors LocationID's shape but identifies a symbolic
// transition: a recursive tree whose leaves reference compiled-component
// edge identifiers, so a path through a composed system can be decomposed
// back into the per-component edges that produced it (spec §3).
type TransitionID interface {
	Key() string
	transitionID()
}

// LeafTransition identifies a single edge within one leaf component.
type LeafTransition struct {
	Component string
	Action    string
	Source    string
	Target    string
}

func (l LeafTransition) Key() string {
	return fmt.Sprintf("%s/%s:%s->%s", l.Component, l.Action, l.Source, l.Target)
}
func (LeafTransition) transitionID() {}

// NullTransition identifies the "stayed in current location" half of a
// composition/conjunction synchronization where one side does not move.
type NullTransition struct{ Component string }

func (n NullTransition) Key() string { return fmt.Sprintf("null(%s)", n.Component) }
func (NullTransition) transitionID() {}

// PairTransition identifies the product of two child transitions under a
// binary operator (Composition/Conjunction/Quotient).
type PairTransition struct {
	Op   OpKind
	L, R TransitionID
}

func (p PairTransition) Key() string {
	return fmt.Sprintf("(%s%s%s)", p.L.Key(), p.Op.sep(), p.R.Key())
}
func (PairTransition) transitionID() {}
