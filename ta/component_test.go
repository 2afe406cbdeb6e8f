package ta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simpleLight is a two-location lamp: Off -[on!]-> On -[off!]-> Off, with a
// single clock x bounding how long On may be held.
func simpleLight() ParsedComponent {
	return ParsedComponent{
		Name:    "Light",
		Clocks:  []string{"x"},
		Inputs:  []string{},
		Outputs: []string{"on", "off"},
		Locs: []ParsedLocation{
			{Name: "Off", Initial: true},
			{Name: "On", Invariant: NamedInvariant{{ClockA: "x", Bound: Bound{Value: 10, Strict: false}}}},
		},
		Edges: []ParsedEdge{
			{Source: "Off", Target: "On", Action: "on", Kind: Output, Resets: []NamedReset{{Clock: "x", Value: 0}}},
			{Source: "On", Target: "Off", Action: "off", Kind: Output},
		},
	}
}

func TestCompileBasic(t *testing.T) {
	c, err := Compile(simpleLight(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Off", c.Initial())
	assert.Equal(t, 2, c.Dim()) // reference + x
	assert.True(t, c.IsOutput("on"))
	assert.False(t, c.IsInput("on"))

	onEdges := c.EdgesFromAction("Off", "on")
	require.Len(t, onEdges, 1)
	assert.Equal(t, "On", onEdges[0].Target)
}

func TestCompileClockOffset(t *testing.T) {
	c, err := Compile(simpleLight(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.ClockOffset)
	// x's global index is offset+1
	loc, ok := c.Location("On")
	require.True(t, ok)
	require.Len(t, loc.Invariant, 1)
	assert.Equal(t, 6, loc.Invariant[0].I)
}

func TestCompileInputEnabled(t *testing.T) {
	p := simpleLight()
	p.Inputs = []string{"reset"}
	c, err := Compile(p, 0)
	require.NoError(t, err)

	for _, locName := range []string{"Off", "On"} {
		edges := c.EdgesFromAction(locName, "reset")
		require.Lenf(t, edges, 1, "location %s should be input-enabled for reset", locName)
		assert.Equal(t, locName, edges[0].Target)
		assert.Empty(t, edges[0].Guard)
	}
}

func TestCompileRejectsUnknownClock(t *testing.T) {
	p := simpleLight()
	p.Edges[0].Resets = []NamedReset{{Clock: "y", Value: 0}}
	_, err := Compile(p, 0)
	assert.ErrorIs(t, err, ErrUnknownClock)
}

func TestCompileRejectsNoInitial(t *testing.T) {
	p := simpleLight()
	p.Locs[0].Initial = false
	_, err := Compile(p, 0)
	assert.ErrorIs(t, err, ErrNoInitialLocation)
}

func TestCompileRejectsDuplicateLocation(t *testing.T) {
	p := simpleLight()
	p.Locs = append(p.Locs, ParsedLocation{Name: "Off"})
	_, err := Compile(p, 0)
	assert.ErrorIs(t, err, ErrDuplicateLocation)
}

func TestLocationIDKeyStable(t *testing.T) {
	a := CompositionLocation(SimpleLocation{Name: "L0"}, SimpleLocation{Name: "M0"})
	b := CompositionLocation(SimpleLocation{Name: "L0"}, SimpleLocation{Name: "M0"})
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a, b) // comparable, usable as a map key directly
}
