// Package sched runs deferred callbacks against a tick-driven clock.
//
// Nothing here reads the wall clock: time only moves when Advance is
// called with the frame delta, so callers and tests control it fully.
package sched

import "container/heap"

type item struct {
	due float64
	seq uint64 // Insertion order, breaks ties between equal due times
	fn  func()
}

type itemHeap []item

func (h itemHeap) Len() int { return len(h) }
func (h itemHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any) { *h = append(*h, x.(item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = item{}
	*h = old[:n-1]
	return it
}

// Queue is a single-threaded timer wheel keyed by absolute due time
type Queue struct {
	now   float64
	seq   uint64
	items itemHeap
}

// NewQueue creates an empty queue at time 0
func NewQueue() *Queue {
	return &Queue{}
}

// At schedules fn to run once the clock reaches due. A due time in the
// past runs on the next Advance.
func (q *Queue) At(due float64, fn func()) {
	q.seq++
	heap.Push(&q.items, item{due: due, seq: q.seq, fn: fn})
}

// After schedules fn to run delay seconds from now
func (q *Queue) After(delay float64, fn func()) {
	q.At(q.now+delay, fn)
}

// Advance moves the clock forward by dt and runs everything now due, in
// due order. Callbacks scheduled while firing run in the same call if
// they are already due. Returns the number of callbacks run.
func (q *Queue) Advance(dt float64) int {
	if dt > 0 {
		q.now += dt
	}
	fired := 0
	for len(q.items) > 0 && q.items[0].due <= q.now {
		it := heap.Pop(&q.items).(item)
		it.fn()
		fired++
	}
	return fired
}

// Now returns the current clock time
func (q *Queue) Now() float64 { return q.now }

// Len returns the number of pending callbacks
func (q *Queue) Len() int { return len(q.items) }

// NextDue returns the earliest pending due time
func (q *Queue) NextDue() (float64, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0].due, true
}

// Reset drops every pending callback and rewinds the clock to 0
func (q *Queue) Reset() {
	q.items = nil
	q.now = 0
}
