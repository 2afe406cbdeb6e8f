package query_test

import (
	"fmt"

	"github.com/tacheck/tacheck/loader"
	"github.com/tacheck/tacheck/query"
	"github.com/tacheck/tacheck/ta"
)

// Example parses and runs a refinement query over two loaded components: an
// implementation whose tick is guarded by a clock bound, refining a
// specification that ticks unconditionally.
func Example() {
	spec := ta.ParsedComponent{
		Name:    "Spec",
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "S0", Target: "S0", Action: "tick", Kind: ta.Output}},
	}
	impl := ta.ParsedComponent{
		Name:    "Impl",
		Clocks:  []string{"x"},
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
		Edges: []ta.ParsedEdge{{
			Source: "S0", Target: "S0", Action: "tick", Kind: ta.Output,
			Guard:  []ta.NamedConstraint{{ClockA: "x", Bound: ta.Bound{Value: 5}}},
			Resets: []ta.NamedReset{{Clock: "x", Value: 0}},
		}},
	}
	ld := loader.NewMapLoader(spec, impl)

	q, err := query.Parse("refinement: Impl <= Spec")
	if err != nil {
		panic(err)
	}
	_, err = query.Run(q, ld)
	fmt.Println(err == nil)
	// Output:
	// true
}
