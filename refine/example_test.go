package refine_test

import (
	"fmt"

	"github.com/tacheck/tacheck/refine"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// Example checks that a component restricting when it may tick refines one
// that ticks unconditionally.
func Example() {
	spec, err := ta.Compile(ta.ParsedComponent{
		Name:    "Spec",
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "S0", Target: "S0", Action: "tick", Kind: ta.Output}},
	}, 0)
	if err != nil {
		panic(err)
	}

	impl, err := ta.Compile(ta.ParsedComponent{
		Name:    "Impl",
		Clocks:  []string{"x"},
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "I0", Initial: true}},
		Edges: []ta.ParsedEdge{{
			Source: "I0", Target: "I0", Action: "tick", Kind: ta.Output,
			Guard: []ta.NamedConstraint{{ClockA: "x", Bound: ta.Bound{Value: 5}}},
		}},
	}, 0)
	if err != nil {
		panic(err)
	}

	err = refine.Check(tsys.NewComponentLeaf(spec), tsys.NewComponentLeaf(impl))
	fmt.Println(err == nil)
	// Output:
	// true
}
