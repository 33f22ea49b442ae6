package timer

import (
	"container/heap"
	"time"
)

// VirtualScheduler is an Executor on simulated time. Nothing happens until
// Advance is called; Post runs its function immediately. It is meant for
// tests and dry runs and is not safe for concurrent use.
type VirtualScheduler struct {
	start time.Time
	now   time.Time
	seq   uint64
	queue virtualQueue
}

func NewVirtualScheduler() *VirtualScheduler {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &VirtualScheduler{start: start, now: start}
}

func (s *VirtualScheduler) Now() time.Time {
	return s.now
}

// Elapsed returns the simulated time since the scheduler was created.
func (s *VirtualScheduler) Elapsed() time.Duration {
	return s.now.Sub(s.start)
}

func (s *VirtualScheduler) Post(fn func()) {
	fn()
}

func (s *VirtualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.seq++
	e := &virtualEntry{due: s.now.Add(clampDelay(d)), seq: s.seq, fn: fn}
	heap.Push(&s.queue, e)
	return &virtualTimer{sched: s, entry: e}
}

// Advance moves simulated time forward by d, running every callback whose
// due time falls inside the window, earliest first. Callbacks scheduled while
// advancing run too if they come due before the window ends. Advance(0) runs
// callbacks due right now.
func (s *VirtualScheduler) Advance(d time.Duration) {
	target := s.now.Add(clampDelay(d))
	for s.queue.Len() > 0 && !s.queue[0].due.After(target) {
		e := heap.Pop(&s.queue).(*virtualEntry)
		s.now = e.due
		e.done = true
		e.fn()
	}
	s.now = target
}

// AdvanceSeconds is Advance for whole seconds.
func (s *VirtualScheduler) AdvanceSeconds(n int) {
	s.Advance(time.Duration(n) * time.Second)
}

// PendingCount returns the number of callbacks waiting to run.
func (s *VirtualScheduler) PendingCount() int {
	return s.queue.Len()
}

// NextDue returns how long until the next callback, and false if none is pending.
func (s *VirtualScheduler) NextDue() (time.Duration, bool) {
	if s.queue.Len() == 0 {
		return 0, false
	}
	return s.queue[0].due.Sub(s.now), true
}

type virtualEntry struct {
	due   time.Time
	seq   uint64
	fn    func()
	index int
	done  bool
}

type virtualTimer struct {
	sched *VirtualScheduler
	entry *virtualEntry
}

func (t *virtualTimer) Stop() bool {
	if t.entry.done {
		return false
	}
	t.entry.done = true
	if t.entry.index >= 0 {
		heap.Remove(&t.sched.queue, t.entry.index)
	}
	return true
}

// virtualQueue orders entries by due time, then by scheduling order.
type virtualQueue []*virtualEntry

func (q virtualQueue) Len() int { return len(q) }

func (q virtualQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q virtualQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *virtualQueue) Push(x any) {
	e := x.(*virtualEntry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *virtualQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
