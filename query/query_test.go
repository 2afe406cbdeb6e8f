package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/loader"
	"github.com/tacheck/tacheck/ta"
)

// fixtureLoader builds a tiny two-component project: Spec ticks forever
// unconditionally; Impl ticks only while its clock x stays at most 5,
// resetting x on every tick, so Impl refines Spec but not the reverse.
func fixtureLoader(t *testing.T) *loader.MapLoader {
	t.Helper()

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

	return loader.NewMapLoader(spec, impl)
}

func TestParseRefinementQuery(t *testing.T) {
	q, err := Parse("refinement: Impl <= Spec")
	require.NoError(t, err)
	rq, ok := q.(RefinementQuery)
	require.True(t, ok)
	assert.Equal(t, SysIdent{Name: "Impl"}, rq.Left)
	assert.Equal(t, SysIdent{Name: "Spec"}, rq.Right)
}

func TestParseSysExpressionPrecedence(t *testing.T) {
	// "\\" is loosest, then "||", then "&&" tightest: "A && B || C \\ D"
	// must parse as ((A && B) || C) \\ D.
	q, err := Parse("consistency: A && B || C \\\\ D")
	require.NoError(t, err)
	cq, ok := q.(ConsistencyQuery)
	require.True(t, ok)

	quot, ok := cq.Sys.(SysBinOp)
	require.True(t, ok)
	assert.Equal(t, "\\\\", quot.Op)
	assert.Equal(t, SysIdent{Name: "D"}, quot.Right)

	or, ok := quot.Left.(SysBinOp)
	require.True(t, ok)
	assert.Equal(t, "||", or.Op)
	assert.Equal(t, SysIdent{Name: "C"}, or.Right)

	and, ok := or.Left.(SysBinOp)
	require.True(t, ok)
	assert.Equal(t, "&&", and.Op)
	assert.Equal(t, SysIdent{Name: "A"}, and.Left)
	assert.Equal(t, SysIdent{Name: "B"}, and.Right)
}

func TestParseInstanceSuffix(t *testing.T) {
	q, err := Parse(`consistency: Admin["a"]`)
	_ = q
	require.Error(t, err) // instance names are bare identifiers, not quoted strings

	q, err = Parse("consistency: Admin[a]")
	require.NoError(t, err)
	cq := q.(ConsistencyQuery)
	assert.Equal(t, SysIdent{Name: "Admin", Instance: "a"}, cq.Sys)
}

func TestParseReachabilityQuery(t *testing.T) {
	q, err := Parse("reachability: Impl @ Impl.S0 -> Impl.S0 && Impl.x <= 5")
	require.NoError(t, err)
	rq, ok := q.(ReachabilityQuery)
	require.True(t, ok)
	assert.Equal(t, []LocationRef{{Ident: "Impl", Location: "S0"}}, rq.From.Locations)
	assert.Equal(t, []LocationRef{{Ident: "Impl", Location: "S0"}}, rq.Goal.Locations)
	require.Len(t, rq.Goal.Guards, 1)
	assert.Equal(t, ClockGuard{Ident: "Impl", Clock: "x", Op: OpLe, Value: 5}, rq.Goal.Guards[0])
}

func TestParseGetComponentQuery(t *testing.T) {
	q, err := Parse("get-component: Impl save-as Flat")
	require.NoError(t, err)
	gq, ok := q.(GetComponentQuery)
	require.True(t, ok)
	assert.Equal(t, "Flat", gq.SaveAs)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	_, err := Parse("refinement: Impl Spec")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("frobnicate: Impl")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestRunRefinementHolds(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("refinement: Impl <= Spec")
	require.NoError(t, err)
	res, err := Run(q, ld)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Detail)
}

func TestRunRefinementFailsTheOtherWay(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("refinement: Spec <= Impl")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.Error(t, err)
}

func TestRunConsistencyAndDeterminism(t *testing.T) {
	ld := fixtureLoader(t)

	q, err := Parse("consistency: Impl")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.NoError(t, err)

	q, err = Parse("determinism: Impl")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.NoError(t, err)
}

func TestRunReachabilityFindsGoal(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("reachability: Impl @ Impl.S0 -> Impl.S0")
	require.NoError(t, err)
	res, err := Run(q, ld)
	require.NoError(t, err)
	assert.Equal(t, ta.SimpleLocation{Name: "S0"}, res.Witness.Loc)
}

func TestRunReachabilityReportsUnreachableLocation(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("reachability: Impl @ Impl.S0 -> Impl.Nowhere")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.Error(t, err)
}

func TestRunGetComponentFlattens(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("get-component: Impl save-as Flat")
	require.NoError(t, err)
	res, err := Run(q, ld)
	require.NoError(t, err)
	require.NotNil(t, res.Component)
	assert.Equal(t, "Flat", res.Component.Name)
}

func TestRunRecipeFailureOnUnknownComponent(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("consistency: Ghost")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecipe)
}

func TestRunReachabilityRejectsUnknownIdent(t *testing.T) {
	ld := fixtureLoader(t)
	q, err := Parse("reachability: Impl @ Impl.S0 -> Ghost.S0")
	require.NoError(t, err)
	_, err = Run(q, ld)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecipe)
	assert.ErrorIs(t, err, ErrUnresolvedIdent)
}

func TestReduceClocksDropsUnusedClock(t *testing.T) {
	p := ta.ParsedComponent{
		Name:   "Unused",
		Clocks: []string{"x", "y"},
		Locs:   []ta.ParsedLocation{{Name: "S0", Initial: true}},
	}
	reduced := reduceClocks(p)
	assert.Empty(t, reduced.Clocks)
}

func TestReduceClocksCollapsesAlwaysEqualClocks(t *testing.T) {
	p := ta.ParsedComponent{
		Name:   "Twins",
		Clocks: []string{"x", "y"},
		Locs: []ta.ParsedLocation{
			{Name: "S0", Initial: true, Invariant: ta.NamedInvariant{{ClockA: "x", Bound: ta.Bound{Value: 10}}}},
		},
		Edges: []ta.ParsedEdge{{
			Source: "S0", Target: "S0", Action: "a",
			Guard:  []ta.NamedConstraint{{ClockA: "y", Bound: ta.Bound{Value: 10}}},
			Resets: []ta.NamedReset{{Clock: "x", Value: 0}, {Clock: "y", Value: 0}},
		}},
	}
	reduced := reduceClocks(p)
	require.Len(t, reduced.Clocks, 1)
	assert.Equal(t, "x", reduced.Clocks[0])
	require.Len(t, reduced.Edges[0].Resets, 1)
}
