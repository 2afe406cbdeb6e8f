package query

import "errors"

// ErrSyntax is returned by Parse for any malformed query text (spec §7's
// recipe failure: caught before compilation ever begins).
var ErrSyntax = errors.New("query: syntax error")

// RecipeFailure is spec §7's pre-compilation failure kind for everything
// Compile itself can detect, as opposed to the tsys.RecipeFailure a
// composition/conjunction/quotient constructor raises: an unresolvable
// identifier, or an inconsistent conjunction child.
type RecipeFailure struct {
	Ident  string
	Reason error
}

func (f *RecipeFailure) Error() string {
	if f.Ident != "" {
		return "query: recipe failure: " + f.Ident + ": " + f.Reason.Error()
	}

	return "query: recipe failure: " + f.Reason.Error()
}

func (f *RecipeFailure) Unwrap() error { return f.Reason }

func (f *RecipeFailure) Is(target error) bool { return target == ErrRecipe }

// ErrRecipe is the category sentinel for every *RecipeFailure.
var ErrRecipe = errors.New("query: recipe failure")

// ErrUnresolvedIdent: a <state> clause names a component ident the sys
// expression never declared.
var ErrUnresolvedIdent = errors.New("query: state clause references an unknown component identifier")

// ErrUnresolvedLocation: a <state> clause's location (or target match) never
// holds at any reachable state of the compiled system.
var ErrUnresolvedLocation = errors.New("query: location is never reachable")
