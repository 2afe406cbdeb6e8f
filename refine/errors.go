// Package refine implements spec §4.5's timed alternating simulation (C5):
// the refinement checker between a specification (left, S) and an
// implementation (right, I), layered over explore's passed/waiting engine
// the same way package checks is, but driven by a pairwise simulation step
// instead of a single-system successor function. See DESIGN.md.
package refine

import (
	"errors"
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// ErrSystem is the category sentinel for every *SystemFailure: spec §7's
// "precondition" failure kind, raised before exploration starts.
var ErrSystem = errors.New("refine: system failure")

// Sentinel reasons wrapped inside SystemFailure.
var (
	// ErrInputsNotIncluded: in(S) is not a subset of in(I) even after
	// extra-actions normalization (spec §4.5's well-posedness condition).
	ErrInputsNotIncluded = errors.New("refine: in(spec) is not a subset of in(impl)")

	// ErrOutputsNotIncluded: out(I) is not a subset of out(S) even after
	// extra-actions normalization.
	ErrOutputsNotIncluded = errors.New("refine: out(impl) is not a subset of out(spec)")
)

// SystemFailure is spec §7's precondition failure kind.
type SystemFailure struct{ Reason error }

func (f *SystemFailure) Error() string { return "refine: " + f.Reason.Error() }
func (f *SystemFailure) Unwrap() error { return f.Reason }
func (f *SystemFailure) Is(target error) bool { return target == ErrSystem }

// ErrQuery is the category sentinel for every *QueryFailure: spec §7's
// "during exploration" failure kind.
var ErrQuery = errors.New("refine: query failure")

// Sentinel reasons wrapped inside QueryFailure, one per FailureKind.
var (
	// ErrCannotMatch: a transition exists on one side with no corresponding
	// transition at all on the other, for any part of the current zone.
	ErrCannotMatch = errors.New("refine: no matching transition on the other side")

	// ErrCutsDelaySolutions: a transition is matched only over part of the
	// zone; the remainder describes delay choices the specification's output
	// does not cover.
	ErrCutsDelaySolutions = errors.New("refine: matched transition does not cover the full zone")
)

// FailureKind distinguishes the two witnessed mismatch shapes spec §4.5
// names: an implementation transition with no matching specification
// transition at all ("cannot-match"), and one matched only over part of the
// zone, with the remainder describing valid delay choices the
// specification rules out ("cuts-delay-solutions").
type FailureKind int

const (
	CannotMatch FailureKind = iota
	CutsDelaySolutions
)

func (k FailureKind) String() string {
	if k == CutsDelaySolutions {
		return "cuts-delay-solutions"
	}

	return "cannot-match"
}

func (k FailureKind) reason() error {
	if k == CutsDelaySolutions {
		return ErrCutsDelaySolutions
	}

	return ErrCannotMatch
}

// QueryFailure carries spec §7's witness fields for a refinement mismatch:
// the state pair, the action being matched, and the federation describing
// the part of the zone that could not be matched.
type QueryFailure struct {
	Kind   FailureKind
	Pair   ta.StatePair
	Action string
	Zone   dbm.Federation
}

func (f *QueryFailure) Error() string {
	return fmt.Sprintf("refine: %s at (%s,%s) on action %q", f.Kind, f.Pair.Left.Key(), f.Pair.Right.Key(), f.Action)
}

func (f *QueryFailure) Unwrap() error { return f.Kind.reason() }

// Is lets errors.Is(err, ErrQuery) match any *QueryFailure.
func (f *QueryFailure) Is(target error) bool { return target == ErrQuery }
