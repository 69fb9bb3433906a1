// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import "container/heap"

// scored pairs an ID with its score and the order it was offered in.
type scored struct {
	id    int
	score float64
	order int
}

// scoredHeap is a min-heap ordered by score, with later insertions
// evicted first among equal scores so the earliest offer wins ties.
type scoredHeap []scored

func (h scoredHeap) Len() int { return len(h) }

func (h scoredHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score < h[j].score
	}
	return h[i].order > h[j].order
}

func (h scoredHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoredHeap) Push(x any) { *h = append(*h, x.(scored)) }

func (h *scoredHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topK keeps the k highest-scored entries seen so far without sorting
// the whole candidate set. Ties break toward the earlier offer, which
// keeps selection deterministic when candidates arrive in a fixed order.
type topK struct {
	limit int
	next  int
	h     scoredHeap
}

func newTopK(limit int) *topK {
	return &topK{limit: limit, h: make(scoredHeap, 0, limit)}
}

func (t *topK) Add(id int, score float64) {
	s := scored{id: id, score: score, order: t.next}
	t.next++

	if t.h.Len() < t.limit {
		heap.Push(&t.h, s)
		return
	}
	// Equal scores never displace an earlier entry.
	if score <= t.h[0].score {
		return
	}
	t.h[0] = s
	heap.Fix(&t.h, 0)
}

// Sorted drains the heap, returning entries by descending score with
// ties in insertion order. The accumulator is spent afterwards.
func (t *topK) Sorted() []scored {
	out := make([]scored, t.h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&t.h).(scored)
	}
	return out
}
