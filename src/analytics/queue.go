package analytics

import "sync"

// Queue is an append-only list of tracker command tuples, drained by whoever owns it.
type Queue struct {
	mu    sync.Mutex
	items [][]any
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(args ...any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, args)
}

// Items returns a snapshot of everything pushed so far.
func (q *Queue) Items() [][]any {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([][]any, len(q.items))
	copy(out, q.items)
	return out
}

// QueueSink pushes tuples onto a queue that may be absent; a nil queue drops everything.
type QueueSink struct {
	queue *Queue
}

func NewQueueSink(queue *Queue) *QueueSink {
	return &QueueSink{queue: queue}
}

func (s *QueueSink) TrackEvent(event Event) {
	s.push(eventArgs(event))
}

func (s *QueueSink) TrackSearch(search Search) {
	s.push(searchArgs(search))
}

func (s *QueueSink) push(args []any) {
	if s == nil || s.queue == nil {
		return
	}
	s.queue.Push(args...)
}
