package explore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainNode string

func (p plainNode) Key() string { return string(p) }

func TestPassedListPlainKeyEquality(t *testing.T) {
	p := NewPassedList(0, 0)
	a := plainNode("loc1")

	ok, err := p.Contains(a)
	require.NoError(t, err)
	assert.False(t, ok)

	p.Add(a)
	ok, err = p.Contains(a)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, p.Len())
}

type subsumerNode struct {
	loc   string
	bound int
}

func (s subsumerNode) Key() string { return s.loc }
func (s subsumerNode) SubsumedBy(other Node) (bool, error) {
	o, ok := other.(subsumerNode)
	if !ok {
		return false, nil
	}

	return s.bound <= o.bound, nil
}

func TestPassedListSubsumption(t *testing.T) {
	p := NewPassedList(0, 0)
	p.Add(subsumerNode{loc: "L1", bound: 10})

	ok, err := p.Contains(subsumerNode{loc: "L1", bound: 5})
	require.NoError(t, err)
	assert.True(t, ok, "a tighter zone at the same location should be subsumed")

	ok, err = p.Contains(subsumerNode{loc: "L1", bound: 20})
	require.NoError(t, err)
	assert.False(t, ok, "a looser zone should not be considered already passed")
}

func TestWaitingListLIFOOrder(t *testing.T) {
	w := NewWaitingList()
	w.Push(plainNode("a"))
	w.Push(plainNode("b"))
	w.Push(plainNode("c"))

	assert.Equal(t, 3, w.Len())
	n, ok := w.Pop()
	require.True(t, ok)
	assert.Equal(t, plainNode("c"), n)
	n, ok = w.Pop()
	require.True(t, ok)
	assert.Equal(t, plainNode("b"), n)

	assert.Equal(t, 1, w.Len())
}

func TestWaitingListEmpty(t *testing.T) {
	w := NewWaitingList()
	_, ok := w.Pop()
	assert.False(t, ok)
}
