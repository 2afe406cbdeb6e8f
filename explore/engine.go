package explore

import "fmt"

// Status is the outcome a VisitFunc reports for one popped Node.
type Status int

const (
	// Continue means n was unremarkable: enumerate its successors and keep
	// going.
	Continue Status = iota
	// Accept means n is what the search was looking for (spec §4.6's
	// reachability target); Explore stops immediately and reports n as the
	// witness.
	Accept
	// Reject means n violates whatever property is being checked
	// (consistency, determinism, or a refinement mismatch folded into the
	// SuccessorFunc); Explore stops immediately and reports n as the
	// witness, per spec §5's "first failure wins and short-circuits".
	Reject
)

func (s Status) String() string {
	switch s {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "continue"
	}
}

// SuccessorFunc expands a Node into the Nodes reachable from it in one step.
// Callers own everything zone-specific (time elapse, invariants, guards,
// resets, extrapolation) — explore only ever sees the resulting Nodes.
type SuccessorFunc func(Node) ([]Node, error)

// VisitFunc is called exactly once per newly-passed Node, in the order it is
// popped from the waiting list. An error aborts Explore immediately (a
// genuine failure, not a found witness); a non-Continue Status stops the
// search and reports n as the witness via Result.
type VisitFunc func(Node) (Status, error)

// Options tunes one Explore run.
type Options struct {
	// MaxStates bounds the passed list's size; 0 means unbounded. Exceeding
	// it returns ErrStateBudgetExceeded rather than looping forever on a
	// state space whose extrapolation was expected to be finite but isn't
	// (e.g. a programmer error in a caller-supplied SuccessorFunc).
	MaxStates int

	// ExpectedStates sizes the passed list's bloom filter; purely a
	// performance hint (see NewPassedList).
	ExpectedStates uint
}

// Option configures one Explore run via functional arguments, mirroring the
// teacher's bfs.Option/BFSOptions shape.
type Option func(*Options)

// DefaultOptions returns the zero-value Options (no state budget, default
// bloom filter sizing).
func DefaultOptions() Options { return Options{} }

// WithMaxStates bounds the number of passed states Explore will record
// before giving up with ErrStateBudgetExceeded.
func WithMaxStates(n int) Option {
	return func(o *Options) { o.MaxStates = n }
}

// WithExpectedStates sizes the passed list's bloom filter ahead of time.
func WithExpectedStates(n uint) Option {
	return func(o *Options) { o.ExpectedStates = n }
}

// Result is the outcome of one Explore run.
type Result struct {
	// Status is Continue if the waiting list emptied with no Accept/Reject
	// ever reported (the search space was exhausted); otherwise the Status
	// the VisitFunc returned for Witness.
	Status Status
	// Witness is the Node that produced a non-Continue Status. Nil when
	// Status is Continue.
	Witness Node
	// Visited is the number of distinct (by PassedList membership) Nodes
	// recorded as passed.
	Visited int
}

// Explore runs spec §4.4's generic passed/waiting-list search from root:
// pop the most recently discovered Node, skip it if a passed Node already
// subsumes it, otherwise record it as passed and call visit. A Continue
// status enumerates that Node's successors via next and pushes them; any other
// status — or an error from either callback — stops the search immediately.
//
// Depth-first order and first-failure short-circuiting both follow directly
// from this shape (spec §5): the waiting list is a stack, and a non-Continue
// Status returns before any further Nodes are popped.
func Explore(root Node, next SuccessorFunc, visit VisitFunc, opts ...Option) (Result, error) {
	if root == nil {
		return Result{}, ErrRootNil
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	passed := NewPassedList(o.ExpectedStates, 0)
	waiting := NewWaitingList()
	waiting.Push(root)

	for {
		n, ok := waiting.Pop()
		if !ok {
			return Result{Status: Continue, Visited: passed.Len()}, nil
		}

		seen, err := passed.Contains(n)
		if err != nil {
			return Result{}, fmt.Errorf("Explore: %w", err)
		}
		if seen {
			continue
		}
		passed.Add(n)

		if o.MaxStates > 0 && passed.Len() > o.MaxStates {
			return Result{}, ErrStateBudgetExceeded
		}

		status, err := visit(n)
		if err != nil {
			return Result{}, err
		}
		if status != Continue {
			return Result{Status: status, Witness: n, Visited: passed.Len()}, nil
		}

		succs, err := next(n)
		if err != nil {
			return Result{}, err
		}
		for _, s := range succs {
			waiting.Push(s)
		}
	}
}
