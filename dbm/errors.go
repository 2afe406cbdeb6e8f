// Package dbm implements the zone algebra: Difference Bound Matrices (DBMs)
// and federations (finite unions of DBMs) over an integer clock space.
//
// A DBM of dimension n represents a convex set of clock valuations via an
// n×n matrix of Bounds, entry (i,j) encoding the constraint xi - xj ≺ bound.
// Index 0 is the reference clock, always equal to 0. A Federation is a
// non-convex zone: a finite slice of DBMs whose union is the represented set.
//
// All public operations on DBM and Federation consume and return a value
// (never aliasing internal storage across calls), matching the contract in
// spec §4.1 and §9 ("take a federation by value, mutate, and return it").
package dbm

import "errors"

// Sentinel errors for dbm package operations. Every message is prefixed
// "dbm: ..." for consistent grepping across logs, matching the error
// discipline of lvlath's matrix package.
var (
	// ErrDimensionMismatch indicates two DBMs or a DBM and a Federation were
	// combined despite having different dimensions. This is a programmer
	// error (mismatched clock spaces), distinct from "the result is empty".
	ErrDimensionMismatch = errors.New("dbm: dimension mismatch")

	// ErrBadDimension indicates a requested dimension is non-positive.
	ErrBadDimension = errors.New("dbm: dimension must be >= 1")

	// ErrClockIndexOutOfRange indicates a clock index outside [0, dim).
	ErrClockIndexOutOfRange = errors.New("dbm: clock index out of range")

	// ErrEmptyFederation indicates an operation required at least one DBM
	// but the federation held none.
	ErrEmptyFederation = errors.New("dbm: federation has no DBMs")
)
