package sim

import "time"

// task is one pending callback on the simulation clock.
type task struct {
	id int
	at time.Duration
	fn func()
}

// Queue is the engine's pending-action queue: every delayed callback in the
// simulation (effect expiry, delayed ability hits, multi-hit bursts) is keyed
// to the tick clock and drained by Advance, so nothing in the engine ever
// touches the wall clock. Implements effect.Scheduler.
// Not safe for concurrent use.
type Queue struct {
	now    time.Duration
	nextID int
	tasks  []*task
}

// NewQueue creates an empty queue at clock zero.
func NewQueue() *Queue { return &Queue{} }

// Now returns the current simulation time.
func (q *Queue) Now() time.Duration { return q.now }

// After schedules fn to run once delay has elapsed on the simulation clock.
// The returned cancel drops the task; cancelling a fired task is a no-op.
// A non-positive delay fires on the next Advance.
func (q *Queue) After(delay time.Duration, fn func()) (cancel func()) {
	q.nextID++
	t := &task{id: q.nextID, at: q.now + delay, fn: fn}
	q.tasks = append(q.tasks, t)
	id := t.id
	return func() {
		for i, pending := range q.tasks {
			if pending.id == id {
				q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
				return
			}
		}
	}
}

// Advance moves the clock forward by elapsed, firing every due task in
// (fire-time, schedule-order) order. Tasks scheduled by a firing callback
// run in the same Advance if they come due before the target time.
//
// Postcondition: Now() has advanced by exactly elapsed.
func (q *Queue) Advance(elapsed time.Duration) {
	target := q.now + elapsed
	for {
		due := q.takeDue(target)
		if due == nil {
			break
		}
		if due.at > q.now {
			q.now = due.at
		}
		due.fn()
	}
	q.now = target
}

// takeDue removes and returns the earliest task at or before target,
// breaking time ties by schedule order. Returns nil when none is due.
func (q *Queue) takeDue(target time.Duration) *task {
	best := -1
	for i, t := range q.tasks {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < q.tasks[best].at || (t.at == q.tasks[best].at && t.id < q.tasks[best].id) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := q.tasks[best]
	q.tasks = append(q.tasks[:best], q.tasks[best+1:]...)
	return t
}

// Clear synchronously drops every pending task without firing it. The clock
// keeps its value so effect timestamps stay monotonic across run resets.
func (q *Queue) Clear() {
	q.tasks = nil
}

// Pending returns how many tasks are waiting, for tests and diagnostics.
func (q *Queue) Pending() int { return len(q.tasks) }
