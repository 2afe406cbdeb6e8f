package query

import (
	"fmt"

	"github.com/tacheck/tacheck/checks"
	"github.com/tacheck/tacheck/loader"
	"github.com/tacheck/tacheck/ta"
	"github.com/tacheck/tacheck/tsys"
)

// leafInfo records where one SysIdent ended up after compilation: the
// compiled leaf (so a repeated bare identifier resolves to the very same
// instance rather than a fresh copy), the root-to-leaf path of left/right
// choices through the binary-operator tree, and its own clock-name table —
// used by run.go to translate a <state> clause's
// "<ident>.<location>"/"<ident>.<clock>" into the combined tree's LocationID
// and global clock index.
type leafInfo struct {
	ts   tsys.TransitionSystem
	path []bool // false = .L, true = .R, in root-to-leaf order

	// clockIndex maps this leaf's own (post-reduction) clock names to their
	// global clock index, so a <state> clause's "<ident>.<clock>" resolves
	// without the caller needing to know this leaf's clock offset.
	clockIndex map[string]int
}

// CompiledQuery is query.Compile's result: the concrete TransitionSystem
// tree (Sys for every query kind but refinement, which compiles Left/Right
// as two trees sharing one clock space per spec §4.5), the leaf table used
// to resolve <state> idents, and the global clock-name table (ClockNames[i]
// names global clock index i+1; index 0 is the implicit reference clock).
type CompiledQuery struct {
	Sys         tsys.TransitionSystem
	Left, Right tsys.TransitionSystem
	Leaves      map[string]leafInfo
	ClockNames  []string
}

// compiler tracks the running clock assignment across however many SysExpr
// trees one Compile call builds (one, or two for a refinement query), so
// that spec/impl occupy disjoint clock ranges by construction rather than
// each starting over at clock 0 (refine.Check requires this; see
// DESIGN.md's note on refine.go).
type compiler struct {
	ld         loader.ComponentLoader
	settings   loader.Settings
	nextOffset int
	clockNames []string
	leaves     map[string]leafInfo
}

func identKey(side string, id SysIdent) string {
	if id.Instance == "" {
		return side + id.Name
	}

	return side + id.Name + "#" + id.Instance
}

// Compile implements spec §4.6 steps 1-4: resolve every identifier in q's
// <sys> expression(s) through ld, assign each a disjoint clock range
// (reducing clocks first unless settings disable it), apply the binary
// operators, and return the resulting tree(s) ready for refine/checks.
func Compile(q Query, ld loader.ComponentLoader, opts ...loader.Option) (*CompiledQuery, error) {
	settings := ld.DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	c := &compiler{ld: ld, settings: settings, leaves: make(map[string]leafInfo)}

	switch query := q.(type) {
	case RefinementQuery:
		left, err := c.compileSys(query.Left, nil, "L:")
		if err != nil {
			return nil, err
		}
		right, err := c.compileSys(query.Right, nil, "R:")
		if err != nil {
			return nil, err
		}

		return &CompiledQuery{Left: left, Right: right, Leaves: c.leaves, ClockNames: c.clockNames}, nil
	case ConsistencyQuery:
		sys, err := c.compileSys(query.Sys, nil, "")
		if err != nil {
			return nil, err
		}

		return &CompiledQuery{Sys: sys, Leaves: c.leaves, ClockNames: c.clockNames}, nil
	case DeterminismQuery:
		sys, err := c.compileSys(query.Sys, nil, "")
		if err != nil {
			return nil, err
		}

		return &CompiledQuery{Sys: sys, Leaves: c.leaves, ClockNames: c.clockNames}, nil
	case ReachabilityQuery:
		sys, err := c.compileSys(query.Sys, nil, "")
		if err != nil {
			return nil, err
		}

		return &CompiledQuery{Sys: sys, Leaves: c.leaves, ClockNames: c.clockNames}, nil
	case GetComponentQuery:
		sys, err := c.compileSys(query.Sys, nil, "")
		if err != nil {
			return nil, err
		}

		return &CompiledQuery{Sys: sys, Leaves: c.leaves, ClockNames: c.clockNames}, nil
	default:
		return nil, fmt.Errorf("query: compile: unrecognized query type %T", q)
	}
}

func (c *compiler) compileSys(expr SysExpr, path []bool, side string) (tsys.TransitionSystem, error) {
	switch e := expr.(type) {
	case SysIdent:
		return c.compileIdent(e, path, side)
	case SysBinOp:
		leftPath := append(append([]bool{}, path...), false)
		left, err := c.compileSys(e.Left, leftPath, side)
		if err != nil {
			return nil, err
		}
		rightPath := append(append([]bool{}, path...), true)
		right, err := c.compileSys(e.Right, rightPath, side)
		if err != nil {
			return nil, err
		}

		return c.applyOp(e.Op, left, right)
	default:
		return nil, fmt.Errorf("query: compile: unrecognized sys expression %T", expr)
	}
}

// compileIdent resolves one SysIdent. A bare identifier reused without an
// [instance] suffix refers to the very same automaton each time (spec §8's
// "A && A <= A" and the quotient round-trip "(A \\ B) || B <= A" both depend
// on this: the second "B" must be the identical clock-sharing instance, not
// a fresh copy with its own clock range), so a repeat lookup returns the
// already-compiled leaf straight from the cache instead of recompiling.
// [instance] exists precisely for the other case, where two uses really do
// need independent clocks (two instances of the same component type).
func (c *compiler) compileIdent(e SysIdent, path []bool, side string) (tsys.TransitionSystem, error) {
	key := identKey(side, e)
	if info, ok := c.leaves[key]; ok {
		return info.ts, nil
	}

	parsed, err := c.ld.GetComponent(e.Name)
	if err != nil {
		return nil, &RecipeFailure{Ident: e.Name, Reason: err}
	}
	if !c.settings.DisableClockReduction {
		parsed = reduceClocks(parsed)
	}

	comp, err := ta.Compile(parsed, c.nextOffset)
	if err != nil {
		return nil, &RecipeFailure{Ident: e.Name, Reason: err}
	}

	leaf := tsys.NewComponentLeaf(comp)
	clockIndex := make(map[string]int, len(parsed.Clocks))
	for i, name := range parsed.Clocks {
		clockIndex[name] = c.nextOffset + 1 + i
	}
	c.nextOffset += len(parsed.Clocks)
	c.clockNames = append(c.clockNames, parsed.Clocks...)
	c.leaves[key] = leafInfo{ts: leaf, path: append([]bool(nil), path...), clockIndex: clockIndex}

	return leaf, nil
}

// applyOp builds one binary-operator node and resyncs the compiler's clock
// bookkeeping to the node's actual Dim(), since Quotient introduces one
// fresh clock beyond maxDim(l, r) that no SysIdent ever declared.
func (c *compiler) applyOp(op string, l, r tsys.TransitionSystem) (tsys.TransitionSystem, error) {
	var out tsys.TransitionSystem
	var err error

	switch op {
	case "||":
		out, err = tsys.NewComposition(l, r)
	case "&&":
		if cErr := checks.Consistency(l); cErr != nil {
			return nil, &RecipeFailure{Reason: fmt.Errorf("left operand of &&: %w", cErr)}
		}
		if cErr := checks.Consistency(r); cErr != nil {
			return nil, &RecipeFailure{Reason: fmt.Errorf("right operand of &&: %w", cErr)}
		}
		out, err = tsys.NewConjunction(l, r)
	case "\\\\", "\\":
		out, err = tsys.NewQuotient(l, r)
	default:
		return nil, fmt.Errorf("query: compile: unknown operator %q", op)
	}
	if err != nil {
		return nil, err
	}

	c.resync(out)

	return out, nil
}

// resync pads clockNames (naming any clock a Quotient introduced) and
// advances nextOffset to out's true clock count, so the next sibling
// subtree's identifiers start past every clock already claimed.
func (c *compiler) resync(out tsys.TransitionSystem) {
	total := out.Dim() - 1
	for i := len(c.clockNames); i < total; i++ {
		c.clockNames = append(c.clockNames, fmt.Sprintf("$quotient%d", i))
	}
	if total > c.nextOffset {
		c.nextOffset = total
	}
}
