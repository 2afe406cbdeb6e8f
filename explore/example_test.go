package explore_test

import (
	"fmt"

	"github.com/tacheck/tacheck/explore"
)

// node is a trivial Node over a small fixed graph, enough to demonstrate
// Explore's shape without pulling in the zone algebra.
type node int

func (n node) Key() string { return fmt.Sprintf("%d", n) }

func Example() {
	graph := map[node][]node{0: {1, 2}, 1: {2}, 2: {}}
	next := func(n explore.Node) ([]explore.Node, error) {
		var out []explore.Node
		for _, v := range graph[n.(node)] {
			out = append(out, v)
		}

		return out, nil
	}

	res, err := explore.Explore(node(0), next, func(explore.Node) (explore.Status, error) {
		return explore.Continue, nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Status, res.Visited)
	// Output: continue 3
}
