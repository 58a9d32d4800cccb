package history

// DefaultMaxDepth is the snapshot capacity used when none is given.
const DefaultMaxDepth = 1000

// History is a bounded, insertion-ordered list of snapshots. Every
// operation returns a new History and leaves the receiver untouched.
type History struct {
	snapshots []Snapshot
	maxDepth  int
}

// New creates an empty history. A non-positive maxDepth selects
// DefaultMaxDepth.
func New(maxDepth int) History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return History{snapshots: []Snapshot{}, maxDepth: maxDepth}
}

// MaxDepth returns the capacity.
func (h History) MaxDepth() int {
	if h.maxDepth <= 0 {
		return DefaultMaxDepth
	}
	return h.maxDepth
}

// Add appends a snapshot, evicting the oldest entries beyond capacity.
// Frames are expected to be non-decreasing; they are not re-sorted.
func (h History) Add(s Snapshot) History {
	depth := h.MaxDepth()
	start := 0
	if n := len(h.snapshots) + 1; n > depth {
		start = n - depth
	}

	kept := h.snapshots[min(start, len(h.snapshots)):]
	next := make([]Snapshot, 0, len(kept)+1)
	next = append(next, kept...)
	next = append(next, s)
	return History{snapshots: next, maxDepth: depth}
}

// AtFrame returns the newest snapshot whose frame is at or before frame.
func (h History) AtFrame(frame int) (Snapshot, bool) {
	for i := len(h.snapshots) - 1; i >= 0; i-- {
		if h.snapshots[i].Frame <= frame {
			return h.snapshots[i], true
		}
	}
	return Snapshot{}, false
}

// Range returns the snapshots with start <= frame <= end in storage order.
func (h History) Range(start, end int) []Snapshot {
	out := []Snapshot{}
	for _, s := range h.snapshots {
		if s.Frame >= start && s.Frame <= end {
			out = append(out, s)
		}
	}
	return out
}

// Latest returns the most recently added snapshot.
func (h History) Latest() (Snapshot, bool) {
	if len(h.snapshots) == 0 {
		return Snapshot{}, false
	}
	return h.snapshots[len(h.snapshots)-1], true
}

// Count returns the number of stored snapshots.
func (h History) Count() int {
	return len(h.snapshots)
}

// Clear returns an empty history with the same capacity.
func (h History) Clear() History {
	return New(h.MaxDepth())
}

// Until returns a history holding only snapshots at or before frame.
// Used after a rewind so later snapshots do not outlive the timeline
// they belonged to.
func (h History) Until(frame int) History {
	next := make([]Snapshot, 0, len(h.snapshots))
	for _, s := range h.snapshots {
		if s.Frame <= frame {
			next = append(next, s)
		}
	}
	return History{snapshots: next, maxDepth: h.MaxDepth()}
}

// Snapshots returns a copy of the stored snapshots, oldest first.
func (h History) Snapshots() []Snapshot {
	return cloneSlice(h.snapshots)
}
