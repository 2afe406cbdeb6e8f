package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// tickingLeaf builds a single-location component that always outputs tick,
// optionally guarded by the single declared clock x.
func tickingLeaf(t *testing.T, name string, guard []ta.NamedConstraint) *tsys.ComponentLeaf {
	t.Helper()
	c, err := ta.Compile(ta.ParsedComponent{
		Name:    name,
		Clocks:  []string{"x"},
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "S0", Target: "S0", Action: "tick", Kind: ta.Output, Guard: guard}},
	}, 0)
	require.NoError(t, err)

	return tsys.NewComponentLeaf(c)
}

func TestCheckIdentityRefinesItself(t *testing.T) {
	leaf := tickingLeaf(t, "Tick", nil)
	assert.NoError(t, Check(leaf, leaf))
}

func TestCheckImplTighterGuardRefinesLooserSpec(t *testing.T) {
	spec := tickingLeaf(t, "Spec", nil)
	impl := tickingLeaf(t, "Impl", []ta.NamedConstraint{{
		ClockA: "x",
		Bound:  ta.Bound{Value: 5, Strict: false},
	}})

	assert.NoError(t, Check(spec, impl))
}

func TestCheckFailsWhenSpecCannotMatchImplOutput(t *testing.T) {
	spec, err := ta.Compile(ta.ParsedComponent{
		Name:    "Spec",
		Outputs: []string{"tick"},
		Locs:    []ta.ParsedLocation{{Name: "S0", Initial: true}},
	}, 0)
	require.NoError(t, err)
	specLeaf := tsys.NewComponentLeaf(spec)

	implLeaf := tickingLeaf(t, "Impl", nil)

	err = Check(specLeaf, implLeaf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuery)
	assert.ErrorIs(t, err, ErrCutsDelaySolutions)

	var f *QueryFailure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "tick", f.Action)
}

func TestCheckNormalizesMissingImplInput(t *testing.T) {
	spec, err := ta.Compile(ta.ParsedComponent{
		Name:   "Spec",
		Inputs: []string{"coin"},
		Locs:   []ta.ParsedLocation{{Name: "S0", Initial: true}},
	}, 0)
	require.NoError(t, err)
	specLeaf := tsys.NewComponentLeaf(spec)

	impl, err := ta.Compile(ta.ParsedComponent{
		Name: "Impl",
		Locs: []ta.ParsedLocation{{Name: "I0", Initial: true}},
	}, 0)
	require.NoError(t, err)
	implLeaf := tsys.NewComponentLeaf(impl)

	assert.NoError(t, Check(specLeaf, implLeaf))
}

func TestCheckReportsSystemFailureOnDirectionConflict(t *testing.T) {
	spec, err := ta.Compile(ta.ParsedComponent{
		Name:   "Spec",
		Inputs: []string{"x"},
		Locs:   []ta.ParsedLocation{{Name: "S0", Initial: true}},
	}, 0)
	require.NoError(t, err)
	specLeaf := tsys.NewComponentLeaf(spec)

	impl, err := ta.Compile(ta.ParsedComponent{
		Name:    "Impl",
		Outputs: []string{"x"},
		Locs:    []ta.ParsedLocation{{Name: "I0", Initial: true}},
		Edges:   []ta.ParsedEdge{{Source: "I0", Target: "I0", Action: "x", Kind: ta.Output}},
	}, 0)
	require.NoError(t, err)
	implLeaf := tsys.NewComponentLeaf(impl)

	err = Check(specLeaf, implLeaf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSystem)
	assert.ErrorIs(t, err, ErrInputsNotIncluded)
}
