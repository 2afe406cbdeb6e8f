package dbm

import "fmt"

// Federation is a finite union of DBMs of equal dimension: a (possibly
// non-convex) zone. The zero value is the empty federation (no DBMs, i.e.
// the empty zone); federations do not themselves record a dimension until
// they hold at least one DBM.
type Federation struct {
	dim  int
	dbms []DBM
}

// Of returns a Federation containing exactly the given DBMs, which must all
// share one dimension.
func Of(dbms ...DBM) (Federation, error) {
	if len(dbms) == 0 {
		return Federation{}, nil
	}
	dim := dbms[0].dim
	for _, z := range dbms[1:] {
		if z.dim != dim {
			return Federation{}, fmt.Errorf("Of: %w", ErrDimensionMismatch)
		}
	}
	cp := make([]DBM, len(dbms))
	copy(cp, dbms)

	return Federation{dim: dim, dbms: cp}, nil
}

// Dim returns the federation's dimension, or 0 if it is empty.
func (f Federation) Dim() int { return f.dim }

// DBMs returns the federation's member DBMs. The returned slice is a copy;
// mutating it does not affect f.
func (f Federation) DBMs() []DBM {
	cp := make([]DBM, len(f.dbms))
	copy(cp, f.dbms)

	return cp
}

// IsEmpty reports whether the federation represents the empty zone: every
// member DBM is empty, or it holds no DBMs at all.
func (f Federation) IsEmpty() bool {
	for _, z := range f.dbms {
		if !z.IsEmpty() {
			return false
		}
	}

	return true
}

// Add unions z into f, without reduction. z must share f's dimension unless
// f is currently empty, in which case f adopts z's dimension.
func (f Federation) Add(z DBM) (Federation, error) {
	if len(f.dbms) > 0 && f.dim != z.dim {
		return Federation{}, fmt.Errorf("Add: %w", ErrDimensionMismatch)
	}
	if z.IsEmpty() {
		return f, nil
	}

	dbms := make([]DBM, len(f.dbms), len(f.dbms)+1)
	copy(dbms, f.dbms)
	dbms = append(dbms, z)

	return Federation{dim: z.dim, dbms: dbms}, nil
}

// Union returns f ∪ o, without reduction (see Reduce for subsumption).
func (f Federation) Union(o Federation) (Federation, error) {
	if len(f.dbms) > 0 && len(o.dbms) > 0 && f.dim != o.dim {
		return Federation{}, fmt.Errorf("Union: %w", ErrDimensionMismatch)
	}
	r := f
	for _, z := range o.dbms {
		var err error
		r, err = r.Add(z)
		if err != nil {
			return Federation{}, err
		}
	}

	return r, nil
}

// Intersect returns f ∩ o: the pairwise DBM intersection of every member of
// f with every member of o, dropping empty results, per spec §4.1.
func (f Federation) Intersect(o Federation) (Federation, error) {
	if len(f.dbms) == 0 || len(o.dbms) == 0 {
		return Federation{}, nil
	}
	if f.dim != o.dim {
		return Federation{}, fmt.Errorf("Intersect: %w", ErrDimensionMismatch)
	}

	var out Federation
	for _, a := range f.dbms {
		for _, b := range o.dbms {
			z, err := a.Intersect(b)
			if err != nil {
				return Federation{}, err
			}
			if !z.IsEmpty() {
				out, err = out.Add(z)
				if err != nil {
					return Federation{}, err
				}
			}
		}
	}

	return out, nil
}

// Subtract returns minuend minus subtrahend: every finite constraint of
// subtrahend is complemented and intersected with minuend, giving at most
// dim*(dim-1) DBMs (unconstrained entries contribute none), per
// spec §4.1's Subtraction algorithm. Used by the quotient construction
// (tsys.Quotient) to carve out the part of a zone not covered by a guard.
func Subtract(minuend, subtrahend DBM) ([]DBM, error) {
	if err := minuend.sameDim(subtrahend, "Subtract"); err != nil {
		return nil, err
	}

	n := minuend.dim
	out := make([]DBM, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			b := subtrahend.At(i, j)
			if b.isInf() {
				// An unconstrained entry has an empty complement.
				continue
			}
			comp := Constraint{I: j, J: i, Bound: b.negate()}
			cand, err := minuend.Constrain(comp)
			if err != nil {
				return nil, err
			}
			if !cand.IsEmpty() {
				out = append(out, cand)
			}
		}
	}

	return out, nil
}

// FederationSubtract returns f with every DBM of o subtracted out in turn,
// unioning the per-subtrahend remainders and reducing the result.
func (f Federation) FederationSubtract(o Federation) (Federation, error) {
	remaining := f
	for _, sub := range o.dbms {
		var next Federation
		for _, z := range remaining.dbms {
			pieces, err := Subtract(z, sub)
			if err != nil {
				return Federation{}, err
			}
			for _, p := range pieces {
				next, err = next.Add(p)
				if err != nil {
					return Federation{}, err
				}
			}
		}
		remaining = next
	}

	return remaining.Reduce(), nil
}

// Reduce removes every DBM from f that is contained in some single other
// surviving member (spec §4.1's "expensive reduce"): a pairwise subset
// check, O(n^2) DBM-subset tests over the member count. A DBM covered only
// by the union of several others is kept. Order of the surviving members
// follows their original order in f.
func (f Federation) Reduce() Federation {
	if len(f.dbms) <= 1 {
		return f
	}

	keep := make([]bool, len(f.dbms))
	for i := range keep {
		keep[i] = true
	}
	for i, a := range f.dbms {
		if !keep[i] {
			continue
		}
		for j, b := range f.dbms {
			if i == j || !keep[j] {
				continue
			}
			// a is redundant if it is a subset of some other surviving DBM.
			if ok, err := a.Subset(b); err == nil && ok {
				keep[i] = false
				break
			}
		}
	}

	out := make([]DBM, 0, len(f.dbms))
	for i, z := range f.dbms {
		if keep[i] {
			out = append(out, z)
		}
	}

	return Federation{dim: f.dim, dbms: out}
}

// SubsetEq reports whether every DBM of f is contained in the union of o's
// DBMs (spec §4.1's federation subset test): for each member of f, some
// single member of o must contain it. This is the sound, syntactic
// approximation of federation containment the original C4 passed-list
// membership test relies on (a DBM split across several o-members without
// one dominating is conservatively reported as not-contained).
func (f Federation) SubsetEq(o Federation) (bool, error) {
	for _, a := range f.dbms {
		if a.IsEmpty() {
			continue
		}
		covered := false
		for _, b := range o.dbms {
			ok, err := a.Subset(b)
			if err != nil {
				return false, err
			}
			if ok {
				covered = true
				break
			}
		}
		if !covered {
			return false, nil
		}
	}

	return true, nil
}

// Extrapolate applies DBM.ExtrapolateMaxBounds to every member of f and
// reduces the result, per spec §4.4 ("extrapolate their zones by the local
// max bounds"). Idempotent, same as the underlying DBM operation.
func (f Federation) Extrapolate(k Bounds) (Federation, error) {
	var out Federation
	for _, z := range f.dbms {
		e, err := z.ExtrapolateMaxBounds(k)
		if err != nil {
			return Federation{}, err
		}
		out, err = out.Add(e)
		if err != nil {
			return Federation{}, err
		}
	}

	return out.Reduce(), nil
}

// Map applies fn to every member DBM, dropping any empty results; the
// remainder is not reduced. Used throughout tsys to thread Up/Free/Reset/
// Constrain across a whole federation instead of a single DBM.
func (f Federation) Map(fn func(DBM) (DBM, error)) (Federation, error) {
	var out Federation
	for _, z := range f.dbms {
		r, err := fn(z)
		if err != nil {
			return Federation{}, err
		}
		out, err = out.Add(r)
		if err != nil {
			return Federation{}, err
		}
	}

	return out, nil
}
