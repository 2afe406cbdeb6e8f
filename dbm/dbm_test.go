package dbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverseAndZero(t *testing.T) {
	u, err := Universe(3)
	require.NoError(t, err)
	assert.False(t, u.IsEmpty())

	z, err := Zero(3)
	require.NoError(t, err)
	assert.False(t, z.IsEmpty())

	// Zero is a subset of Universe but not conversely (unless dim==1).
	ok, err := z.Subset(u)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.Subset(z)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIntersectEmpty(t *testing.T) {
	u, err := Universe(2)
	require.NoError(t, err)

	// x1 < 5
	a, err := u.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(5)})
	require.NoError(t, err)
	// x1 >= 10  <=>  -x1 <= -10  <=>  constraint (0,1) <= -10
	b, err := u.Constrain(Constraint{I: 0, J: 1, Bound: LeBound(-10)})
	require.NoError(t, err)

	both, err := a.Intersect(b)
	require.NoError(t, err)
	assert.True(t, both.IsEmpty())
}

func TestResetAndUp(t *testing.T) {
	u, err := Universe(2)
	require.NoError(t, err)

	r, err := u.Reset(1, 3)
	require.NoError(t, err)
	assert.False(t, r.IsEmpty())
	// After reset x1==3, x1 < 4 must hold and x1 < 3 must not.
	lt4, err := r.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(4)})
	require.NoError(t, err)
	assert.False(t, lt4.IsEmpty())

	lt3, err := r.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(3)})
	require.NoError(t, err)
	assert.True(t, lt3.IsEmpty())

	// Up removes the upper bound so x1 may now exceed 3.
	up := r.Up()
	loose, err := up.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(100)})
	require.NoError(t, err)
	assert.False(t, loose.IsEmpty())
}

func TestSubsetReflexive(t *testing.T) {
	u, err := Universe(4)
	require.NoError(t, err)
	ok, err := u.Subset(u)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCloseIdempotent(t *testing.T) {
	u, err := Universe(3)
	require.NoError(t, err)
	c1 := u.Close()
	c2 := c1.Close()
	assert.Equal(t, c1, c2)
}

func TestExtrapolateIdempotent(t *testing.T) {
	u, err := Universe(2)
	require.NoError(t, err)
	a, err := u.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(50)})
	require.NoError(t, err)

	k := Bounds{0, 10}
	e1, err := a.ExtrapolateMaxBounds(k)
	require.NoError(t, err)
	e2, err := e1.ExtrapolateMaxBounds(k)
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
}

func TestDimensionMismatch(t *testing.T) {
	a, err := Universe(2)
	require.NoError(t, err)
	b, err := Universe(3)
	require.NoError(t, err)

	_, err = a.Intersect(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = a.Subset(b)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEmbed(t *testing.T) {
	u, err := Universe(2)
	require.NoError(t, err)
	a, err := u.Constrain(Constraint{I: 1, J: 0, Bound: LtBound(5)})
	require.NoError(t, err)

	e, err := a.Embed(4)
	require.NoError(t, err)
	assert.Equal(t, 4, e.Dim())
	// Original constraint survives in the top-left block.
	assert.Equal(t, a.At(1, 0), e.At(1, 0))
	// New clocks are unconstrained relative to everything but themselves.
	assert.True(t, e.At(2, 0).isInf())
	assert.True(t, e.At(0, 2).isInf())
	assert.True(t, e.At(3, 2).isInf())
	assert.Equal(t, LeBound(0), e.At(2, 2))
	assert.False(t, e.IsEmpty())

	same, err := a.Embed(2)
	require.NoError(t, err)
	assert.Equal(t, a, same)

	_, err = a.Embed(1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
