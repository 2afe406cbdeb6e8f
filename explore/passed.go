package explore

import (
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
)

// PassedList is spec §4.4's passed list, generalized from the teacher's
// plain map[string]bool visited set (bfs/bfs.go's walker.visited) into a
// subsumption-aware membership structure: states sharing a Key() are bucketed
// together, and Contains asks each bucket member whether it already covers
// the candidate (via Subsumer.SubsumedBy) before falling back to plain key
// equality for Nodes that don't implement it.
//
// A bloom.BloomFilter (github.com/bits-and-blooms/bloom/v3) fronts the
// bucket map: most Contains calls during a large exploration are "key never
// seen before", and the bloom filter answers that in O(1) with no map
// allocation, grounded on nmxmxh-inos_v1's mesh cache pre-filter pattern
// (see DESIGN.md) of trading a small false-positive rate for skipping an
// expensive lookup path on the common case.
type PassedList struct {
	bloom  *bloom.BloomFilter
	byKey  map[string][]Node
	length int
}

// NewPassedList allocates a PassedList sized for expectedStates entries at
// the given false-positive rate (passed straight to bloom.NewWithEstimates).
func NewPassedList(expectedStates uint, falsePositiveRate float64) *PassedList {
	if expectedStates == 0 {
		expectedStates = 1024
	}
	if falsePositiveRate <= 0 {
		falsePositiveRate = 0.01
	}

	return &PassedList{
		bloom: bloom.NewWithEstimates(expectedStates, falsePositiveRate),
		byKey: make(map[string][]Node),
	}
}

// Len returns the number of Nodes added so far.
func (p *PassedList) Len() int { return p.length }

// Contains reports whether n is already covered by the passed list: either
// an earlier Node with the same Key() (plain equality), or, if n implements
// Subsumer, an earlier Node its SubsumedBy accepts.
func (p *PassedList) Contains(n Node) (bool, error) {
	key := n.Key()
	if !p.bloom.TestString(key) {
		return false, nil
	}

	bucket, ok := p.byKey[key]
	if !ok {
		// Bloom false positive: no bucket was ever created for this key.
		return false, nil
	}

	sub, isSubsumer := n.(Subsumer)
	for _, other := range bucket {
		if !isSubsumer {
			return true, nil // plain Nodes: any same-key member is a match
		}
		covered, err := sub.SubsumedBy(other)
		if err != nil {
			return false, fmt.Errorf("PassedList.Contains(%s): %w", key, err)
		}
		if covered {
			return true, nil
		}
	}

	return false, nil
}

// Add records n as passed.
func (p *PassedList) Add(n Node) {
	key := n.Key()
	p.bloom.AddString(key)
	p.byKey[key] = append(p.byKey[key], n)
	p.length++
}
