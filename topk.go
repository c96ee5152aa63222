package blaze

import "container/heap"

// scoredEntry is one candidate result: a document id and its score.
type scoredEntry struct {
	id       uint32
	priority float64
}

// entryHeap is a container/heap min-heap ordered by ascending priority, with
// NaN treated as equal to everything so a stray NaN score never panics or
// breaks the heap invariant.
type entryHeap []scoredEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	a, b := h[i].priority, h[j].priority
	if a != a || b != b { // either side is NaN
		return false
	}
	return a < b
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(scoredEntry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopKSelector keeps the capacity highest-scoring entries seen via Push,
// using a bounded min-heap so memory never exceeds capacity regardless of
// how many candidates are pushed.
type TopKSelector struct {
	heap     entryHeap
	capacity int
}

// NewTopKSelector returns a selector that retains at most capacity entries.
func NewTopKSelector(capacity int) *TopKSelector {
	return &TopKSelector{capacity: capacity}
}

// Push adds (id, score) to the selector, evicting the current minimum if
// the selector is now over capacity.
func (s *TopKSelector) Push(id uint32, score float64) {
	heap.Push(&s.heap, scoredEntry{id: id, priority: score})
	if s.heap.Len() > s.capacity {
		heap.Pop(&s.heap)
	}
}

// Len returns the number of entries currently retained.
func (s *TopKSelector) Len() int {
	return s.heap.Len()
}

// SortedIDPriorityPairs drains the selector and returns its entries in
// descending score order. The selector is empty after this call.
func (s *TopKSelector) SortedIDPriorityPairs() []ScoredID {
	res := make([]ScoredID, 0, s.heap.Len())
	for s.heap.Len() > 0 {
		e := heap.Pop(&s.heap).(scoredEntry)
		res = append(res, ScoredID{ID: e.id, Score: e.priority})
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// ScoredID pairs a document id with its computed score.
type ScoredID struct {
	ID    uint32
	Score float64
}
