package refine

import (
	"sort"

	"github.com/tacheck/tacheck/tsys"
)

// normalizeExtraActions implements SUPPLEMENTED FEATURE #1: spec §4.5
// requires in(S) ⊆ in(I) and out(I) ⊆ out(S) before a refinement check is
// well-posed. Rather than rejecting a query whose two sides simply declare a
// few actions the other side doesn't, extend the narrower side with a stub
// component that self-loops on the missing actions (and, for missing
// inputs, is automatically input-enabled by ta.Compile), so the actions
// exist everywhere without changing any existing behavior.
func normalizeExtraActions(s, i tsys.TransitionSystem) (tsys.TransitionSystem, tsys.TransitionSystem, error) {
	missingInputs := sortedDifference(s.InputActions(), i.InputActions())
	if len(missingInputs) > 0 {
		stub, err := stubComponent("extra_inputs", missingInputs, nil)
		if err != nil {
			return nil, nil, err
		}
		ni, err := tsys.NewComposition(i, tsys.NewComponentLeaf(stub))
		if err != nil {
			return nil, nil, err
		}
		i = ni
	}

	missingOutputs := sortedDifference(i.OutputActions(), s.OutputActions())
	if len(missingOutputs) > 0 {
		stub, err := stubComponent("extra_outputs", nil, missingOutputs)
		if err != nil {
			return nil, nil, err
		}
		ns, err := tsys.NewComposition(s, tsys.NewComponentLeaf(stub))
		if err != nil {
			return nil, nil, err
		}
		s = ns
	}

	return s, i, nil
}

// sortedDifference returns a \ b as a sorted slice, so repeated runs over
// the same action sets build an identical stub component every time.
func sortedDifference(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}

// isSubset reports whether every element of a is also in b.
func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}

	return true
}
