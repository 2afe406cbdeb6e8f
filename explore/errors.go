// Package explore implements the generic passed/waiting-list exploration
// engine spec §4.4 (C4) describes once and reuses for refinement checking,
// consistency, determinism and reachability (spec §4.5/§4.6): a walker over
// an abstract Node, driven by a caller-supplied successor function, with a
// subsumption-aware passed list standing in for BFS's plain visited set.
//
// explore generalizes the teacher's bfs.walker/bfs.Option shape
// (bfs/bfs.go, bfs/types.go): BFSOptions becomes Options, the fixed
// core.Graph/NeighborIDs dependency becomes the caller-supplied Successor
// function, and the plain map[string]bool visited set becomes a PassedList
// that consults Node.SubsumedBy when a Node opts into it. See DESIGN.md.
package explore

import "errors"

// ErrRootNil is returned when Explore is called with a nil root node.
var ErrRootNil = errors.New("explore: root node is nil")

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("explore: invalid option supplied")

// ErrStateBudgetExceeded is returned as soon as recording a newly passed
// state brings the passed list past MaxStates entries (spec §4.4's
// "do not loop forever on a genuinely infinite state space" safeguard).
var ErrStateBudgetExceeded = errors.New("explore: state budget exceeded")
