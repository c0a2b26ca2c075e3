package vapor

// Eliminated is the slot of an item which has been popped from an
// IndexedHeap.
const Eliminated = -1

// An IndexedHeap is a binary max-heap over a fixed set of weighted items
// identified by index.
//
// A slot map tracks the heap position of every item, so that the weight of
// any live item can be lowered in O(log n) without searching.
//
// Ties are never reordered: a parent is only swapped with a child of
// strictly greater weight.
type IndexedHeap struct {
	weights []float64
	heap    []int
	slots   []int
}

// NewIndexedHeap creates a heap containing every index of weights.
//
// The heap takes ownership of weights and updates it in place.
func NewIndexedHeap(weights []float64) *IndexedHeap {
	h := &IndexedHeap{
		weights: weights,
		heap:    make([]int, len(weights)),
		slots:   make([]int, len(weights)),
	}
	for i := range weights {
		h.heap[i] = i
		h.slots[i] = i
	}
	for i := len(h.heap)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
	return h
}

// Len returns the number of live items.
func (h *IndexedHeap) Len() int {
	return len(h.heap)
}

// Weight returns the current weight of an item.
func (h *IndexedHeap) Weight(i int) float64 {
	return h.weights[i]
}

// Slot returns the heap position of an item, or Eliminated.
func (h *IndexedHeap) Slot(i int) int {
	return h.slots[i]
}

// Live checks if an item has not been popped yet.
func (h *IndexedHeap) Live(i int) bool {
	return h.slots[i] != Eliminated
}

// PeekMax returns the item with the greatest weight without removing it.
// The heap must not be empty.
func (h *IndexedHeap) PeekMax() int {
	return h.heap[0]
}

// PopMax removes and returns the item with the greatest weight.
// The heap must not be empty.
func (h *IndexedHeap) PopMax() int {
	top := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.slots[top] = Eliminated
	if last > 0 {
		h.siftDown(0)
	}
	return top
}

// Decrease lowers the weight of a live item and restores the heap.
// The amount must not be negative.
func (h *IndexedHeap) Decrease(i int, amount float64) {
	h.weights[i] -= amount
	h.Fix(i)
}

// Fix restores the heap after the weight of a live item was lowered
// directly.
func (h *IndexedHeap) Fix(i int) {
	slot := h.slots[i]
	if slot == Eliminated {
		panic("cannot fix an eliminated item")
	}
	h.siftDown(slot)
}

func (h *IndexedHeap) siftDown(slot int) {
	n := len(h.heap)
	for {
		largest := slot
		w := h.weights[h.heap[slot]]
		left := 2*slot + 1
		if left < n {
			if lw := h.weights[h.heap[left]]; lw > w {
				largest = left
				w = lw
			}
			right := left + 1
			if right < n && h.weights[h.heap[right]] > w {
				largest = right
			}
		}
		if largest == slot {
			return
		}
		h.swap(slot, largest)
		slot = largest
	}
}

func (h *IndexedHeap) swap(i, j int) {
	a, b := h.heap[i], h.heap[j]
	h.heap[i], h.heap[j] = b, a
	h.slots[a] = j
	h.slots[b] = i
}
