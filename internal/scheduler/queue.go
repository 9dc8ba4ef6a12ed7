package scheduler

import "github.com/SeamusWaldron/cubeengine/internal/movetable"

// queue is an unbounded FIFO of pending symbols.
type queue struct {
	items []movetable.Symbol
	head  int
}

func (q *queue) push(s movetable.Symbol) {
	q.items = append(q.items, s)
}

func (q *queue) pop() (movetable.Symbol, bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	s := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return s, true
}

func (q *queue) len() int {
	return len(q.items) - q.head
}
