package refine

import "github.com/tacheck/tacheck/ta"

// stubComponent builds the one-location component SUPPLEMENTED FEATURE #1
// (extra-actions normalization) composes onto whichever side of a
// refinement is missing some of the other side's actions: it declares
// exactly inputs/outputs, self-loops on every output (ta.Compile's
// automatic input-enabling already covers the inputs), and never
// constrains or resets anything, so composing it changes no existing
// behavior while extending the declared action set.
func stubComponent(name string, inputs, outputs []string) (*ta.Component, error) {
	edges := make([]ta.ParsedEdge, 0, len(outputs))
	for _, a := range outputs {
		edges = append(edges, ta.ParsedEdge{Source: "stub", Target: "stub", Action: a, Kind: ta.Output})
	}

	return ta.Compile(ta.ParsedComponent{
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
		Locs:    []ta.ParsedLocation{{Name: "stub", Initial: true}},
		Edges:   edges,
	}, 0)
}
