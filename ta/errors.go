// Package ta defines the compiled-component layer (spec §4.2, C2): parsed
// timed-automaton components are made input-enabled and flattened into
// locations, edges, and a clock index table occupying a contiguous,
// offset-adjusted range of a shared global clock space.
//
// ta mirrors the teacher's core package (Vertex/Edge/Graph, functional
// GraphOption) with Location/Edge/Component in its place; see DESIGN.md.
package ta

import "errors"

// Sentinel errors for ta package operations.
var (
	// ErrEmptyName indicates a component or location was given an empty name.
	ErrEmptyName = errors.New("ta: name is empty")

	// ErrDuplicateLocation indicates two locations in one component share a name.
	ErrDuplicateLocation = errors.New("ta: duplicate location name")

	// ErrUnknownLocation indicates an edge refers to a location absent from
	// the component.
	ErrUnknownLocation = errors.New("ta: unknown location")

	// ErrNoInitialLocation indicates a component declares no initial location.
	ErrNoInitialLocation = errors.New("ta: no initial location")

	// ErrUnknownClock indicates a guard, invariant or reset refers to a clock
	// name absent from the component's declared clocks.
	ErrUnknownClock = errors.New("ta: unknown clock")

	// ErrBadClockOffset indicates a negative clock offset was supplied to Compile.
	ErrBadClockOffset = errors.New("ta: clock offset must be >= 0")
)
