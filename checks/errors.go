package checks

import (
	"errors"
	"fmt"

	"github.com/tacheck/tacheck/dbm"
	"github.com/tacheck/tacheck/ta"
)

// ErrQuery is the category sentinel for every *Failure (spec §7's "query
// failure" kind: raised during exploration, not at compile time).
var ErrQuery = errors.New("checks: query failure")

// Sentinel reasons wrapped inside Failure.
var (
	// ErrNotLocallyConsistent: a reachable state is urgent with no enabled
	// output (spec §4.6's consistency acceptance predicate violated).
	ErrNotLocallyConsistent = errors.New("checks: state is urgent with no enabled output")

	// ErrNotDeterministic: two transitions on the same action have
	// overlapping guard zones at a reachable state.
	ErrNotDeterministic = errors.New("checks: two transitions share an action and overlap")

	// ErrUnreachable: the waiting list emptied without ever matching the
	// reachability target.
	ErrUnreachable = errors.New("checks: target state is not reachable")
)

// Failure carries spec §7's witness fields for a query failure found during
// one of this package's checks: the failing location, the action involved
// (empty for reachability), and the federation where the violation was
// observed.
type Failure struct {
	Check  string // "consistency", "determinism", or "reachability"
	Loc    ta.LocationID
	Action string
	Zone   dbm.Federation
	Reason error
}

func (f *Failure) Error() string {
	if f.Action != "" {
		return fmt.Sprintf("checks: %s failed at %s on action %q: %v", f.Check, f.Loc.Key(), f.Action, f.Reason)
	}

	return fmt.Sprintf("checks: %s failed at %s: %v", f.Check, f.Loc.Key(), f.Reason)
}

func (f *Failure) Unwrap() error { return f.Reason }

// Is lets errors.Is(err, ErrQuery) match any *Failure regardless of Reason.
func (f *Failure) Is(target error) bool { return target == ErrQuery }
