package explore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intNode is the simplest possible Node: successors are its value's
// children in a small fixed graph, built inline per test.
type intNode struct {
	v    int
	next map[int][]int
}

func (n intNode) Key() string { return string(rune('a' + n.v)) }

func chainSuccessors(edges map[int][]int) SuccessorFunc {
	return func(node Node) ([]Node, error) {
		n := node.(intNode)
		var out []Node
		for _, v := range edges[n.v] {
			out = append(out, intNode{v: v, next: edges})
		}

		return out, nil
	}
}

func TestExploreVisitsReachableNodesOnce(t *testing.T) {
	edges := map[int][]int{0: {1, 2}, 1: {2}, 2: {}}
	var visited []int
	visit := func(n Node) (Status, error) {
		visited = append(visited, n.(intNode).v)
		return Continue, nil
	}

	res, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit)
	require.NoError(t, err)
	assert.Equal(t, Continue, res.Status)
	assert.Equal(t, 3, res.Visited)
	assert.ElementsMatch(t, []int{0, 1, 2}, visited)
}

func TestExploreStopsOnReject(t *testing.T) {
	edges := map[int][]int{0: {1, 2}, 1: {}, 2: {}}
	visit := func(n Node) (Status, error) {
		if n.(intNode).v == 1 {
			return Reject, nil
		}

		return Continue, nil
	}

	res, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit)
	require.NoError(t, err)
	assert.Equal(t, Reject, res.Status)
	assert.Equal(t, 1, res.Witness.(intNode).v)
}

func TestExploreStopsOnAccept(t *testing.T) {
	edges := map[int][]int{0: {1}, 1: {2}, 2: {}}
	visit := func(n Node) (Status, error) {
		if n.(intNode).v == 2 {
			return Accept, nil
		}

		return Continue, nil
	}

	res, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit)
	require.NoError(t, err)
	assert.Equal(t, Accept, res.Status)
	assert.Equal(t, 2, res.Witness.(intNode).v)
}

func TestExploreNilRoot(t *testing.T) {
	_, err := Explore(nil, chainSuccessors(nil), func(Node) (Status, error) { return Continue, nil })
	assert.ErrorIs(t, err, ErrRootNil)
}

func TestExploreStateBudgetExceeded(t *testing.T) {
	edges := map[int][]int{0: {1}, 1: {2}, 2: {3}, 3: {}}
	visit := func(Node) (Status, error) { return Continue, nil }

	_, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit, WithMaxStates(2))
	assert.ErrorIs(t, err, ErrStateBudgetExceeded)
}

func TestExplorePropagatesVisitError(t *testing.T) {
	boom := errors.New("boom")
	edges := map[int][]int{0: {}}
	visit := func(Node) (Status, error) { return Continue, boom }

	_, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit)
	assert.ErrorIs(t, err, boom)
}

func TestExploreDoesNotRevisitCycles(t *testing.T) {
	edges := map[int][]int{0: {1}, 1: {0}}
	count := 0
	visit := func(Node) (Status, error) { count++; return Continue, nil }

	res, err := Explore(intNode{v: 0, next: edges}, chainSuccessors(edges), visit)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, res.Visited)
}
