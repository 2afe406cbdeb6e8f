package tsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/ta"
)

func TestQuotientByEmptyActsLikeDividend(t *testing.T) {
	b := button(t, 0)
	empty := emptySpec(t, 1)

	q, err := NewQuotient(b, empty)
	require.NoError(t, err)
	assert.True(t, hasAction(q.OutputActions(), "press"))
	assert.Equal(t, q.Dim()-1, maxDim(b, empty)) // fresh clock is the last index

	init := q.Initial().(ta.CompositeLocation)
	ts, err := q.NextTransitions(init, "press")
	require.NoError(t, err)
	require.Len(t, ts, 1)

	target := ts[0].Target.(ta.CompositeLocation)
	assert.Equal(t, ta.SimpleLocation{Name: "Idle"}, target.L)
	assert.Equal(t, empty.Initial(), target.R)

	// The quotient's own fresh clock is reset on this independently-taken output.
	found := false
	for _, r := range ts[0].Resets {
		if r.Clock == maxDim(b, empty) {
			found = true
		}
	}
	assert.True(t, found, "expected fresh clock reset, got %+v", ts[0].Resets)
}

func TestQuotientFallsBackToUniversal(t *testing.T) {
	empty := emptySpec(t, 0) // declares no actions, in particular no "press"
	b := button(t, 1)        // outputs "press"

	q, err := NewQuotient(empty, b)
	require.NoError(t, err)

	init := q.Initial().(ta.CompositeLocation)
	ts, err := q.NextTransitions(init, "press")
	require.NoError(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, ta.Universal, ts[0].Target)
}
