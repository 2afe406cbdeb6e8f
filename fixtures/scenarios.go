package fixtures

import "github.com/tacheck/tacheck/loader"

// Loader builds a loader.MapLoader over every component All returns, ready
// to compile and run any of Scenarios' query strings (or any other query
// referencing these names) via query.Parse/query.Run.
func Loader() *loader.MapLoader {
	return loader.NewMapLoader(All()...)
}

// Scenario is one named query string from spec §8's end-to-end scenario
// list, together with whether its verdict is expected to be positive (a
// nil error from query.Run) or negative.
type Scenario struct {
	Name      string
	QueryText string
	Holds     bool
}

// Scenarios returns the seven queries of spec §8's end-to-end scenario list
// (its third scenario holds two), in their listed order. Every query text
// but the second is taken as listed; the second divides Spec by
// Administration and Researcher instead (see Adm2's doc comment).
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:      "machine refines spec quotiented by its own empty divisors",
			QueryText: `refinement: Machine <= Spec \\ Administration \\ Researcher`,
			Holds:     true,
		},
		{
			Name:      "adm2's widened guard is not covered by the quotient",
			QueryText: `refinement: Adm2 <= Spec \\ Administration \\ Researcher`,
			Holds:     false,
		},
		{
			Name:      "machine is locally consistent",
			QueryText: `consistency: Machine`,
			Holds:     true,
		},
		{
			Name:      "notConsistent has a dead end at L1",
			QueryText: `consistency: notConsistent`,
			Holds:     false,
		},
		{
			Name:      "NonDeterminismCom has overlapping edges at L1",
			QueryText: `determinism: NonDeterminismCom`,
			Holds:     false,
		},
		{
			Name:      "L5 with y<2 is reachable",
			QueryText: `reachability: Machine @ Machine.L5 && Machine.y<1 -> Machine.L5 && Machine.y<2`,
			Holds:     true,
		},
		{
			Name:      "L4 with y>7 is unreachable",
			QueryText: `reachability: Machine @ Machine.L5 -> Machine.L4 && Machine.y>7`,
			Holds:     false,
		},
	}
}
