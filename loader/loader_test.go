package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacheck/tacheck/ta"
)

func TestMapLoaderRoundTrip(t *testing.T) {
	m := NewMapLoader(ta.ParsedComponent{
		Name:   "Lamp",
		Clocks: []string{"x"},
		Locs:   []ta.ParsedLocation{{Name: "Off", Initial: true}},
	})

	c, err := m.GetComponent("Lamp")
	require.NoError(t, err)
	assert.Equal(t, "Lamp", c.Name)
	assert.Equal(t, []string{"x"}, m.ProjectClocks())
}

func TestMapLoaderUnknownComponent(t *testing.T) {
	m := NewMapLoader()
	_, err := m.GetComponent("Missing")
	var unknown *UnknownComponentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Missing", unknown.Name)
}

func TestApplyOptions(t *testing.T) {
	s := Apply(WithClockReductionDisabled())
	assert.True(t, s.DisableClockReduction)

	assert.False(t, DefaultSettings().DisableClockReduction)
}
