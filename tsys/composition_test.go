package tsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/ta"
)

func TestNewCompositionRejectsOverlappingOutputs(t *testing.T) {
	b1 := button(t, 0)
	b2 := button(t, 0)
	_, err := NewComposition(b1, b2)
	assert.ErrorIs(t, err, ErrRecipe)
	assert.ErrorIs(t, err, ErrActionsNotDisjoint)
}

func TestCompositionSyncsSharedAction(t *testing.T) {
	b := button(t, 0)
	l := lamp(t, 1)

	c, err := NewComposition(b, l)
	require.NoError(t, err)
	assert.True(t, hasAction(c.OutputActions(), "press"))
	assert.Empty(t, c.InputActions())

	init := c.Initial().(ta.CompositeLocation)
	ts, err := c.NextTransitions(init, "press")
	require.NoError(t, err)
	require.Len(t, ts, 1)

	target := ts[0].Target.(ta.CompositeLocation)
	assert.Equal(t, ta.SimpleLocation{Name: "Idle"}, target.L)
	assert.Equal(t, ta.SimpleLocation{Name: "On"}, target.R)
	assert.Len(t, ts[0].Resets, 1)
}

func TestCompositionLeavesUnrelatedActionAlone(t *testing.T) {
	b := button(t, 0)
	empty := emptySpec(t, 1)

	c, err := NewComposition(b, empty)
	require.NoError(t, err)

	init := c.Initial().(ta.CompositeLocation)
	ts, err := c.NextTransitions(init, "press")
	require.NoError(t, err)
	require.Len(t, ts, 1)

	target := ts[0].Target.(ta.CompositeLocation)
	assert.Equal(t, ta.SimpleLocation{Name: "Idle"}, target.L)
	assert.Equal(t, empty.Initial(), target.R) // empty stayed put
}
