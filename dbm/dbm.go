package dbm

import "fmt"

// DBM is a square matrix of Bounds representing one convex zone over dim
// clocks (including the reference clock at index 0, always 0). Entry (i,j)
// encodes xi - xj ≺ Bound. DBMs returned by any public operation in this
// package are always in canonical form: (i,k) ⊕ (k,j) ⊒ (i,j) for every
// triple, and the diagonal is (0, non-strict) unless the zone is empty.
//
// DBM has value semantics at the API boundary: every mutating method here
// takes and returns a DBM, leaving the receiver's backing storage untouched
// by copying into a fresh buffer. Contrast with the teacher's matrix.Dense,
// which mutates in place; DBMs are small and exploration clones zones
// constantly; value semantics removed a whole class of aliasing bugs spec
// §9 flags in the original "option-swap" ownership style.
type DBM struct {
	dim  int
	data []Bound // row-major, len == dim*dim
}

// idx returns the flat offset of (i,j) in data.
func (d DBM) idx(i, j int) int { return i*d.dim + j }

// Dim returns the DBM's dimension (clock count + 1 for the reference clock).
func (d DBM) Dim() int { return d.dim }

// At returns the bound at (i,j).
func (d DBM) At(i, j int) Bound { return d.data[d.idx(i, j)] }

// set assigns the bound at (i,j) in place. Unexported: external callers only
// ever see DBMs produced by the public, value-returning operations below.
func (d *DBM) set(i, j int, b Bound) { d.data[d.idx(i, j)] = b }

// Universe returns the DBM of dimension dim with no constraints beyond the
// implicit xi >= 0 (encoded by the reference clock) and diagonal zero: every
// clock may take any non-negative value.
func Universe(dim int) (DBM, error) {
	if dim < 1 {
		return DBM{}, fmt.Errorf("Universe: dim=%d: %w", dim, ErrBadDimension)
	}

	data := make([]Bound, dim*dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i == j {
				data[i*dim+j] = LeBound(0)
			} else {
				data[i*dim+j] = infBound
			}
		}
	}

	return DBM{dim: dim, data: data}, nil
}

// Zero returns the DBM of dimension dim where every clock equals 0.
func Zero(dim int) (DBM, error) {
	if dim < 1 {
		return DBM{}, fmt.Errorf("Zero: dim=%d: %w", dim, ErrBadDimension)
	}

	data := make([]Bound, dim*dim)
	for i := range data {
		data[i] = LeBound(0)
	}

	return DBM{dim: dim, data: data}, nil
}

// Clone returns an independent deep copy of d.
func (d DBM) Clone() DBM {
	data := make([]Bound, len(d.data))
	copy(data, d.data)

	return DBM{dim: d.dim, data: data}
}

// sameDim reports whether d and o share a dimension, returning a wrapped
// ErrDimensionMismatch naming op otherwise.
func (d DBM) sameDim(o DBM, op string) error {
	if d.dim != o.dim {
		return fmt.Errorf("%s: %d != %d: %w", op, d.dim, o.dim, ErrDimensionMismatch)
	}

	return nil
}

// close runs Floyd–Warshall-style closure over d in place: for every triple
// (i,k,j), tighten (i,j) by (i,k) ⊕ (k,j) if that is more restrictive.
// Deterministic k→i→j loop order, O(dim^3), matching the teacher's
// matrix.FloydWarshall loop order exactly (DESIGN.md).
func (d *DBM) close() {
	n := d.dim
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := d.At(i, k)
			if ik.isInf() {
				continue
			}
			for j := 0; j < n; j++ {
				kj := d.At(k, j)
				if kj.isInf() {
					continue
				}
				cand := ik.add(kj)
				cur := d.At(i, j)
				if cand.tighter(cur) {
					d.set(i, j, cand)
				}
			}
		}
	}
}

// Close returns the canonical form of d: the closure under the triangle
// inequality described in spec §3. Idempotent: Close(Close(z)) == Close(z).
func (d DBM) Close() DBM {
	c := d.Clone()
	c.close()

	return c
}

// IsEmpty reports whether d represents the empty zone: some diagonal entry
// became strictly negative after closure, i.e. a clock was forced to be
// strictly less than itself.
func (d DBM) IsEmpty() bool {
	c := d.Close()
	for i := 0; i < c.dim; i++ {
		diag := c.At(i, i)
		if diag.Value < 0 || (diag.Value == 0 && diag.Strict) {
			return true
		}
	}

	return false
}

// Intersect returns the element-wise tightening of d and o, closed. The
// result is empty (see IsEmpty) if the intersection is unsatisfiable.
func (d DBM) Intersect(o DBM) (DBM, error) {
	if err := d.sameDim(o, "Intersect"); err != nil {
		return DBM{}, err
	}

	r := d.Clone()
	for i := range r.data {
		r.data[i] = minBound(r.data[i], o.data[i])
	}
	r.close()

	return r, nil
}

// Subset reports whether d is contained in o: d ⊑ o. Per spec §3/§4.1 this
// holds exactly when every bound of o is at least as loose as the
// corresponding bound of the closure of d (equivalently: intersecting d with
// o's complement region changes nothing), which for closed DBMs reduces to
// a direct per-entry comparison once both are in canonical form.
func (d DBM) Subset(o DBM) (bool, error) {
	if err := d.sameDim(o, "Subset"); err != nil {
		return false, err
	}
	dc, oc := d.Close(), o.Close()
	if dc.IsEmpty() {
		return true, nil
	}
	if oc.IsEmpty() {
		return false, nil
	}
	for i := range dc.data {
		if oc.data[i].tighter(dc.data[i]) {
			return false, nil
		}
	}

	return true, nil
}

// Up removes every upper bound (xi < c style constraints) on every clock
// except the reference clock, letting time elapse freely: for each i>0, the
// constraint (i,0) becomes (+∞, strict). Lower bounds and clock differences
// are untouched. Not closed automatically by the caller's contract; Up
// closes internally since relaxing (i,0) can invalidate the previous
// closure's tightenings derived through it.
func (d DBM) Up() DBM {
	r := d.Clone()
	for i := 1; i < r.dim; i++ {
		r.set(i, 0, infBound)
	}
	r.close()

	return r
}

// Free sets clock i to an unconstrained value (xi := ?): every bound
// touching i, except (i,i), is relaxed to +∞/-∞ as appropriate, then closed.
func (d DBM) Free(i int) (DBM, error) {
	if i < 0 || i >= d.dim {
		return DBM{}, fmt.Errorf("Free: i=%d dim=%d: %w", i, d.dim, ErrClockIndexOutOfRange)
	}

	r := d.Clone()
	for k := 0; k < r.dim; k++ {
		if k == i {
			continue
		}
		r.set(i, k, infBound)
		r.set(k, i, infBound)
	}
	r.set(i, i, LeBound(0))
	r.close()

	return r, nil
}

// Reset assigns clock i the integer constant v (xi := v), by freeing it and
// then constraining it to equal v relative to the reference clock.
func (d DBM) Reset(i int, v int32) (DBM, error) {
	r, err := d.Free(i)
	if err != nil {
		return DBM{}, fmt.Errorf("Reset: %w", err)
	}
	r.set(i, 0, LeBound(v))
	r.set(0, i, LeBound(-v))
	r.close()

	return r, nil
}

// Constraint is a single clock-difference constraint xi - xj ≺ Bound, the
// atomic unit guards and invariants are conjunctions of (spec §3).
type Constraint struct {
	I, J  int
	Bound Bound
}

// Constrain intersects d with a single Constraint, closing the result.
func (d DBM) Constrain(c Constraint) (DBM, error) {
	if c.I < 0 || c.I >= d.dim || c.J < 0 || c.J >= d.dim {
		return DBM{}, fmt.Errorf("Constrain: %w", ErrClockIndexOutOfRange)
	}

	r := d.Clone()
	cur := r.At(c.I, c.J)
	if c.Bound.tighter(cur) {
		r.set(c.I, c.J, c.Bound)
	}
	r.close()

	return r, nil
}

// ConstrainAll applies every Constraint in cs in turn, short-circuiting
// (without further work, but still returning a valid, possibly-empty DBM)
// once the zone becomes empty.
func (d DBM) ConstrainAll(cs []Constraint) (DBM, error) {
	r := d
	for _, c := range cs {
		var err error
		r, err = r.Constrain(c)
		if err != nil {
			return DBM{}, err
		}
		if r.IsEmpty() {
			return r, nil
		}
	}

	return r, nil
}

// Bounds is a per-clock maximum-constant table, indexed by clock index
// (0..dim), used by ExtrapolateMaxBounds for k-normalization (spec §4.1).
// Index 0 (the reference clock) is unused but kept for direct indexing by
// clock index throughout the codebase (ta.MaxBounds feeds this directly).
type Bounds []int32

// ExtrapolateMaxBounds performs k-normalization: for each clock i with
// max bound k[i], any upper bound on xi exceeding k[i] is relaxed to +∞, and
// any lower bound (xj - xi, i.e. a negative bound on (i,j)) tighter than
// -k[j] is relaxed to -∞ represented as (-k[j], strict), per spec §4.1's
// extrapolation rule; the result is closed. Idempotent.
func (d DBM) ExtrapolateMaxBounds(k Bounds) (DBM, error) {
	if len(k) < d.dim {
		return DBM{}, fmt.Errorf("ExtrapolateMaxBounds: bounds table shorter than dim: %w", ErrDimensionMismatch)
	}

	r := d.Clone()
	for i := 0; i < r.dim; i++ {
		for j := 0; j < r.dim; j++ {
			if i == j {
				continue
			}
			b := r.At(i, j)
			if b.isInf() {
				continue
			}
			switch {
			case b.Value > k[i]:
				r.set(i, j, infBound)
			case -b.Value > k[j]:
				r.set(i, j, Bound{Value: -k[j], Strict: true})
			}
		}
	}
	r.close()

	return r, nil
}

// Embed extends d to a larger dimension newDim, leaving every existing
// constraint untouched and leaving the newly added clocks unconstrained
// (their rows/columns are filled as in Universe). Used to line up two DBMs
// from sibling transition-system nodes whose clock ranges are a prefix
// relation of each other before Intersect (tsys.combine). newDim must be
// >= d.Dim(); newDim == d.Dim() returns a plain Clone.
func (d DBM) Embed(newDim int) (DBM, error) {
	if newDim < d.dim {
		return DBM{}, fmt.Errorf("Embed: newDim=%d < dim=%d: %w", newDim, d.dim, ErrDimensionMismatch)
	}
	if newDim == d.dim {
		return d.Clone(), nil
	}

	data := make([]Bound, newDim*newDim)
	for i := 0; i < newDim; i++ {
		for j := 0; j < newDim; j++ {
			switch {
			case i < d.dim && j < d.dim:
				data[i*newDim+j] = d.At(i, j)
			case i == j:
				data[i*newDim+j] = LeBound(0)
			default:
				data[i*newDim+j] = infBound
			}
		}
	}

	return DBM{dim: newDim, data: data}, nil
}

// String renders d for debugging: one row per line, "inf" for unconstrained.
func (d DBM) String() string {
	s := ""
	for i := 0; i < d.dim; i++ {
		for j := 0; j < d.dim; j++ {
			b := d.At(i, j)
			if b.isInf() {
				s += "  inf"
			} else if b.Strict {
				s += fmt.Sprintf(" <%3d", b.Value)
			} else {
				s += fmt.Sprintf(" <=%2d", b.Value)
			}
		}
		s += "\n"
	}

	return s
}
