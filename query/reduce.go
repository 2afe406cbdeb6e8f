package query

import "github.com/tacheck/tacheck/ta"

// reduceClocks implements spec §4.6 step 3's two conservative clock-reduction
// passes over one parsed component, run before compilation: drop any clock
// that never appears in a guard or invariant, then collapse any pair of
// remaining clocks that are provably always equal.
//
// Neither pass attempts the general dataflow analysis a from-the-literature
// reduction would: both only fire when a purely syntactic, sufficient
// condition holds, and leave a clock alone otherwise (DESIGN.md records this
// as the accepted reading of "conservative").
func reduceClocks(p ta.ParsedComponent) ta.ParsedComponent {
	p = dropUnusedClocks(p)
	p = collapseEquivalentClocks(p)

	return p
}

func dropUnusedClocks(p ta.ParsedComponent) ta.ParsedComponent {
	used := make(map[string]bool, len(p.Clocks))
	for _, e := range p.Edges {
		for _, g := range e.Guard {
			used[g.ClockA] = true
			used[g.ClockB] = true
		}
	}
	for _, l := range p.Locs {
		for _, g := range l.Invariant {
			used[g.ClockA] = true
			used[g.ClockB] = true
		}
	}

	kept := make([]string, 0, len(p.Clocks))
	for _, c := range p.Clocks {
		if used[c] {
			kept = append(kept, c)
		}
	}
	p.Clocks = kept

	edges := make([]ta.ParsedEdge, len(p.Edges))
	for i, e := range p.Edges {
		var resets []ta.NamedReset
		for _, r := range e.Resets {
			if used[r.Clock] {
				resets = append(resets, r)
			}
		}
		e.Resets = resets
		edges[i] = e
	}
	p.Edges = edges

	return p
}

// collapseEquivalentClocks merges clock b into clock a whenever every edge
// that resets either one resets both, to the same constant, in the same
// edge: since both start at 0 and only ever move together, xa-xb is 0 at
// every reachable state, so every reference to b can be rewritten to a and b
// dropped.
func collapseEquivalentClocks(p ta.ParsedComponent) ta.ParsedComponent {
	merge := map[string]string{}

	for i := 0; i < len(p.Clocks); i++ {
		a := p.Clocks[i]
		if _, already := merge[a]; already {
			continue
		}
		for j := i + 1; j < len(p.Clocks); j++ {
			b := p.Clocks[j]
			if _, already := merge[b]; already {
				continue
			}
			if alwaysResetTogether(p, a, b) {
				merge[b] = a
			}
		}
	}

	if len(merge) == 0 {
		return p
	}

	return rewriteClocks(p, merge)
}

// alwaysResetTogether reports whether every edge resetting a also resets b
// to the same constant in that same edge, and vice versa.
func alwaysResetTogether(p ta.ParsedComponent, a, b string) bool {
	found := false

	for _, e := range p.Edges {
		var va, vb *int32
		for _, r := range e.Resets {
			switch r.Clock {
			case a:
				v := r.Value
				va = &v
			case b:
				v := r.Value
				vb = &v
			}
		}
		switch {
		case va == nil && vb == nil:
			continue
		case va == nil || vb == nil:
			return false
		case *va != *vb:
			return false
		default:
			found = true
		}
	}

	return found
}

// rewriteClocks drops every clock named as a merge source, and renames every
// Guard/Invariant/Reset reference from a merged-away clock to its surviving
// name, deduplicating any reset that would otherwise fire twice on one edge.
func rewriteClocks(p ta.ParsedComponent, merge map[string]string) ta.ParsedComponent {
	rename := func(c string) string {
		if c == "" {
			return c
		}
		if to, ok := merge[c]; ok {
			return to
		}

		return c
	}

	kept := make([]string, 0, len(p.Clocks))
	for _, c := range p.Clocks {
		if _, dropped := merge[c]; !dropped {
			kept = append(kept, c)
		}
	}
	p.Clocks = kept

	locs := make([]ta.ParsedLocation, len(p.Locs))
	for i, l := range p.Locs {
		l.Invariant = renameConstraints(l.Invariant, rename)
		locs[i] = l
	}
	p.Locs = locs

	edges := make([]ta.ParsedEdge, len(p.Edges))
	for i, e := range p.Edges {
		e.Guard = renameConstraints(e.Guard, rename)
		e.Resets = dedupResets(e.Resets, rename)
		edges[i] = e
	}
	p.Edges = edges

	return p
}

func renameConstraints(cs []ta.NamedConstraint, rename func(string) string) []ta.NamedConstraint {
	if cs == nil {
		return nil
	}
	out := make([]ta.NamedConstraint, len(cs))
	for i, c := range cs {
		c.ClockA = rename(c.ClockA)
		c.ClockB = rename(c.ClockB)
		out[i] = c
	}

	return out
}

func dedupResets(rs []ta.NamedReset, rename func(string) string) []ta.NamedReset {
	if rs == nil {
		return nil
	}
	seen := make(map[string]bool, len(rs))
	out := make([]ta.NamedReset, 0, len(rs))
	for _, r := range rs {
		r.Clock = rename(r.Clock)
		if seen[r.Clock] {
			continue
		}
		seen[r.Clock] = true
		out = append(out, r)
	}

	return out
}
