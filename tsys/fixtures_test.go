package tsys

import (
	"testing"

	"github.com/tacheck/tacheck/ta"
)

// button is a clockless component whose sole output "press" is always
// enabled from its single location.
func button(t *testing.T, offset int) *ComponentLeaf {
	t.Helper()
	p := ta.ParsedComponent{
		Name:    "Button",
		Outputs: []string{"press"},
		Locs:    []ta.ParsedLocation{{Name: "Idle", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "Idle", Target: "Idle", Action: "press", Kind: ta.Output}},
	}
	c, err := ta.Compile(p, offset)
	if err != nil {
		t.Fatalf("compile button: %v", err)
	}

	return NewComponentLeaf(c)
}

// lamp is a one-clock component that toggles On/Off on a "press" input.
func lamp(t *testing.T, offset int) *ComponentLeaf {
	t.Helper()
	p := ta.ParsedComponent{
		Name:   "Lamp",
		Clocks: []string{"x"},
		Inputs: []string{"press"},
		Locs: []ta.ParsedLocation{
			{Name: "Off", Initial: true},
			{Name: "On", Invariant: ta.NamedInvariant{{ClockA: "x", Bound: ta.Bound{Value: 10}}}},
		},
		Edges: []ta.ParsedEdge{
			{Source: "Off", Target: "On", Action: "press", Kind: ta.Input, Resets: []ta.NamedReset{{Clock: "x", Value: 0}}},
			{Source: "On", Target: "Off", Action: "press", Kind: ta.Input},
		},
	}
	c, err := ta.Compile(p, offset)
	if err != nil {
		t.Fatalf("compile lamp: %v", err)
	}

	return NewComponentLeaf(c)
}

// emptySpec declares no actions at all and never moves.
func emptySpec(t *testing.T, offset int) *ComponentLeaf {
	t.Helper()
	p := ta.ParsedComponent{
		Name: "Empty",
		Locs: []ta.ParsedLocation{{Name: "S0", Initial: true}},
	}
	c, err := ta.Compile(p, offset)
	if err != nil {
		t.Fatalf("compile empty: %v", err)
	}

	return NewComponentLeaf(c)
}
