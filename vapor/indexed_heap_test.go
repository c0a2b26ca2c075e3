package vapor

import (
	"math/rand"
	"testing"
)

func TestIndexedHeap(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	weights := make([]float64, 500)
	for i := range weights {
		// Quantized weights produce ties.
		weights[i] = float64(r.Intn(50))
	}
	h := NewIndexedHeap(weights)
	checkIndexedHeap(t, h)

	popped := map[int]bool{}
	for h.Len() > 0 {
		if r.Intn(3) == 0 {
			top := h.PeekMax()
			if i := h.PopMax(); i != top {
				t.Fatalf("PeekMax gave %d but PopMax gave %d", top, i)
			}
			if h.Live(top) || h.Slot(top) != Eliminated {
				t.Fatalf("popped item %d is still live", top)
			}
			popped[top] = true
		} else {
			var i int
			for {
				i = r.Intn(len(weights))
				if h.Live(i) {
					break
				}
			}
			h.Decrease(i, r.Float64()*10)
		}
		checkIndexedHeap(t, h)
	}
	if len(popped) != len(weights) {
		t.Errorf("expected %d pops but got %d", len(weights), len(popped))
	}
}

func TestIndexedHeapFix(t *testing.T) {
	weights := []float64{5, 4, 3, 2, 1}
	h := NewIndexedHeap(weights)
	weights[0] = 0
	h.Fix(0)
	checkIndexedHeap(t, h)
	if h.PeekMax() != 1 {
		t.Errorf("expected max 1 but got %d", h.PeekMax())
	}
}

func TestIndexedHeapTies(t *testing.T) {
	h := NewIndexedHeap([]float64{1, 1, 1, 1})
	// With all weights equal, the heap array is never reordered.
	if i := h.PopMax(); i != 0 {
		t.Errorf("expected first pop to be 0 but got %d", i)
	}
	if i := h.PopMax(); i != 3 {
		t.Errorf("expected second pop to be 3 but got %d", i)
	}
}

func checkIndexedHeap(t *testing.T, h *IndexedHeap) {
	for slot, i := range h.heap {
		if h.slots[i] != slot {
			t.Fatalf("item %d is at slot %d but maps to %d", i, slot, h.slots[i])
		}
		for _, child := range []int{2*slot + 1, 2*slot + 2} {
			if child < len(h.heap) && h.weights[h.heap[child]] > h.weights[i] {
				t.Fatalf("slot %d is lighter than child slot %d", slot, child)
			}
		}
	}
	if h.Len() == 0 {
		return
	}
	maxWeight := h.Weight(h.PeekMax())
	var live int
	for i := range h.weights {
		if h.Live(i) {
			live++
			if w := h.Weight(i); w > maxWeight {
				t.Fatalf("live item %d has weight %f above max %f", i, w, maxWeight)
			}
		}
	}
	if live != h.Len() {
		t.Fatalf("expected %d live items but got %d", h.Len(), live)
	}
}
