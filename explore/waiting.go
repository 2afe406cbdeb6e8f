package explore

// WaitingList is spec §4.4's waiting list: a LIFO stack of Nodes pending
// exploration, giving the depth-first ordering the spec requires (pop the
// most recently discovered Node first).
type WaitingList struct {
	stack []Node
}

// NewWaitingList returns an empty WaitingList.
func NewWaitingList() *WaitingList { return &WaitingList{} }

// Push adds n to the top of the stack.
func (w *WaitingList) Push(n Node) { w.stack = append(w.stack, n) }

// Pop removes and returns the top of the stack, or (nil, false) if empty.
func (w *WaitingList) Pop() (Node, bool) {
	if len(w.stack) == 0 {
		return nil, false
	}
	n := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	return n, true
}

// Len returns the number of Nodes currently waiting.
func (w *WaitingList) Len() int { return len(w.stack) }
