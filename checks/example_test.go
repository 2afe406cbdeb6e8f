package checks_test

import (
	"fmt"

	"github.com/tacheck/tacheck/checks"
	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// Example demonstrates checking local consistency of a single compiled
// component with one self-looping output.
func Example() {
	comp, err := ta.Compile(ta.ParsedComponent{
		Name:    "Tick",
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "S0", Target: "S0", Action: "tick", Kind: ta.Output}},
	}, 0)
	if err != nil {
		panic(err)
	}
	leaf := tsys.NewComponentLeaf(comp)

	fmt.Println(checks.Consistency(leaf) == nil)

	_, err = checks.Reachable(leaf, func(loc ta.LocationID, _ dbm.Federation) (bool, error) {
		return loc == ta.SimpleLocation{Name: "S0"}, nil
	})
	fmt.Println(err == nil)
	// Output:
	// true
	// true
}
