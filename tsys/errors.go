// Package tsys implements the transition-system algebra (spec §4.3, C3):
// a uniform TransitionSystem interface over four variants — a Component
// leaf, and the three composition operators Composition (||), Conjunction
// (&&) and Quotient (\\). Every node exposes next_transitions, input/output
// action sets, an initial location and per-clock max bounds, and owns its
// children exclusively (spec §9: "recursive, owning trees").
//
// tsys generalizes the teacher's builder.Constructor/BuildGraph pattern
// (builder/api.go): where BuildGraph applies N constructors to one graph,
// tsys applies one of three binary operators to two transition systems,
// producing a third. See DESIGN.md.
package tsys

import "errors"

// RecipeFailure is spec §7's pre-compilation failure kind: raised while
// building a TransitionSystem tree, before any exploration starts.
type RecipeFailure struct {
	Op     string // "||", "&&", "\\"
	Reason error
}

func (f *RecipeFailure) Error() string { return "tsys: recipe failure in " + f.Op + ": " + f.Reason.Error() }
func (f *RecipeFailure) Unwrap() error { return f.Reason }

// Is lets errors.Is(err, ErrRecipe) match any *RecipeFailure regardless of
// its specific Reason, so callers can branch on failure *kind* (spec §7)
// without enumerating every possible Reason sentinel.
func (f *RecipeFailure) Is(target error) bool { return target == ErrRecipe }

// ErrRecipe is the category sentinel for every RecipeFailure.
var ErrRecipe = errors.New("tsys: recipe failure")

// Sentinel reasons wrapped inside RecipeFailure.
var (
	// ErrActionsNotDisjoint: composition's outputs overlap (spec §4.3.1).
	ErrActionsNotDisjoint = errors.New("tsys: output actions are not disjoint")

	// ErrActionsNotEqual: conjunction's input/output sets are not compatible
	// (spec §4.3.2: in(A)∩out(B)=∅ and in(B)∩out(A)=∅ must hold).
	ErrActionsNotEqual = errors.New("tsys: conjunction action sets are incompatible")

	// ErrInconsistentChild: a conjunction or quotient child fails its own
	// least-consistency check (spec §4.3.2).
	ErrInconsistentChild = errors.New("tsys: child is not locally consistent")

	// ErrUnknownLocationID: NextTransitions was asked about a LocationID not
	// reachable from this node's shape (programmer/compiler error).
	ErrUnknownLocationID = errors.New("tsys: location id does not match this node's shape")
)
