package sim

import (
	"container/heap"
	"time"
)

// Time is a point on the simulation clock, expressed as an offset from
// the start of the run.
type Time time.Duration

// Seconds returns the time as fractional seconds.
func (t Time) Seconds() float64 { return time.Duration(t).Seconds() }

// Minutes returns the time as fractional minutes.
func (t Time) Minutes() float64 { return time.Duration(t).Minutes() }

func (t Time) String() string { return time.Duration(t).String() }

// Event is a scheduled callback. It can be cancelled before it fires.
type Event struct {
	at       Time
	seq      uint64
	fn       func()
	index    int
	canceled bool
}

// Cancel prevents the event from firing. Cancelling an already fired or
// already cancelled event is a no-op.
func (e *Event) Cancel() {
	if e != nil {
		e.canceled = true
	}
}

// Scheduler is a single-threaded discrete-event scheduler. All callbacks
// run synchronously inside Step, Run or RunUntil, so scheduled code may
// mutate shared state without locking.
type Scheduler struct {
	now     Time
	queue   eventQueue
	seq     uint64
	stopped bool
}

// NewScheduler returns a scheduler with the clock at zero.
func NewScheduler() *Scheduler { return &Scheduler{} }

// Now returns the current simulation time.
func (s *Scheduler) Now() Time { return s.now }

// Schedule registers fn to run after the given delay. Events scheduled
// for the same instant fire in scheduling order.
func (s *Scheduler) Schedule(after time.Duration, fn func()) *Event {
	if after < 0 {
		after = 0
	}
	s.seq++
	ev := &Event{at: s.now + Time(after), seq: s.seq, fn: fn}
	heap.Push(&s.queue, ev)
	return ev
}

// Pending reports the number of live events in the queue.
func (s *Scheduler) Pending() int {
	n := 0
	for _, ev := range s.queue {
		if !ev.canceled {
			n++
		}
	}
	return n
}

// NextAt returns the timestamp of the next live event, if any.
func (s *Scheduler) NextAt() (Time, bool) {
	for len(s.queue) > 0 {
		if s.queue[0].canceled {
			heap.Pop(&s.queue)
			continue
		}
		return s.queue[0].at, true
	}
	return 0, false
}

// Step fires the next event, advancing the clock to its timestamp.
// It returns false when the queue is empty or the scheduler is stopped.
func (s *Scheduler) Step() bool {
	for len(s.queue) > 0 && !s.stopped {
		ev := heap.Pop(&s.queue).(*Event)
		if ev.canceled {
			continue
		}
		s.now = ev.at
		ev.fn()
		return true
	}
	return false
}

// Run fires events until the queue drains or Stop is called.
func (s *Scheduler) Run() {
	for s.Step() {
	}
}

// RunUntil fires every event scheduled at or before t, then advances the
// clock to t. Events beyond t stay queued.
func (s *Scheduler) RunUntil(t Time) {
	for len(s.queue) > 0 && !s.stopped {
		next := s.queue[0]
		if next.canceled {
			heap.Pop(&s.queue)
			continue
		}
		if next.at > t {
			break
		}
		s.Step()
	}
	if !s.stopped && s.now < t {
		s.now = t
	}
}

// Stop halts event processing. Queued events are kept but will not fire.
func (s *Scheduler) Stop() { s.stopped = true }

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool { return s.stopped }

type eventQueue []*Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *eventQueue) Push(x any) {
	ev := x.(*Event)
	ev.index = len(*q)
	*q = append(*q, ev)
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}
