package game

import "time"

// Scheduler holds timed resumptions that run on the game goroutine.
// Tasks cannot be cancelled; each task re-checks game state when it runs
// and does nothing if the situation it was queued for has passed.
type Scheduler struct {
	tasks []task
	seq   uint64
}

type task struct {
	at  time.Time
	seq uint64
	fn  func(now time.Time)
}

// At queues fn to run on the first RunDue call at or after t.
func (s *Scheduler) At(t time.Time, fn func(now time.Time)) {
	s.seq++
	s.tasks = append(s.tasks, task{at: t, seq: s.seq, fn: fn})
}

// RunDue runs every task due at now, earliest first. Tasks queued by a
// running task are considered in the same call.
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	for {
		due := -1
		for i, t := range s.tasks {
			if t.at.After(now) {
				continue
			}
			if due < 0 || t.at.Before(s.tasks[due].at) ||
				(t.at.Equal(s.tasks[due].at) && t.seq < s.tasks[due].seq) {
				due = i
			}
		}
		if due < 0 {
			return ran
		}
		t := s.tasks[due]
		s.tasks = append(s.tasks[:due], s.tasks[due+1:]...)
		t.fn(now)
		ran++
	}
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
