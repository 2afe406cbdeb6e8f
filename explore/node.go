package explore

// Node is the abstract unit of exploration: anything with a stable string
// key identifying it (spec §9: "leaf hashing must be stable"). refine/checks
// wrap ta.State and ta.StatePair to satisfy it.
type Node interface {
	Key() string
}

// Subsumer lets a Node participate in subsumption-based passed-list
// membership (spec §4.4: a state whose zone is covered by a zone already
// passed at the same location need not be re-explored) instead of the
// coarser plain key-equality dedup every Node gets for free.
type Subsumer interface {
	Node
	SubsumedBy(other Node) (bool, error)
}
