package game

import "time"

// FrameFunc receives a monotonically increasing timestamp.
type FrameFunc func(now time.Duration)

type FrameHandle uint64

// FrameScheduler delivers one callback per request on the host's next
// display refresh.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	// CancelFrame is a no-op for unknown, fired or already cancelled handles.
	CancelFrame(h FrameHandle)
}

// FrameQueue is a FrameScheduler pumped by the host: each Fire delivers
// the callbacks requested before it. Not safe for concurrent use; the host
// fires from the same goroutine that handles input.
type FrameQueue struct {
	next    FrameHandle
	pending map[FrameHandle]FrameFunc
	order   []FrameHandle
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameHandle]FrameFunc)}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameHandle {
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	delete(q.pending, h)
}

// Pending is the number of outstanding requests.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Fire runs every callback requested before the call. Requests made by the
// callbacks themselves wait for the next Fire.
func (q *FrameQueue) Fire(now time.Duration) int {
	batch := q.order
	q.order = nil
	fired := 0
	for _, h := range batch {
		fn, ok := q.pending[h]
		if !ok {
			continue
		}
		delete(q.pending, h)
		fn(now)
		fired++
	}
	return fired
}
