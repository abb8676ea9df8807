package game

import (
	"testing"
	"time"
)

func TestScheduler_RunDue(t *testing.T) {
	var s Scheduler
	var order []string

	s.At(at(300), func(time.Time) { order = append(order, "c") })
	s.At(at(100), func(time.Time) { order = append(order, "a") })
	s.At(at(200), func(time.Time) { order = append(order, "b") })
	s.At(at(100), func(time.Time) { order = append(order, "a2") })

	if n := s.RunDue(at(50)); n != 0 {
		t.Errorf("RunDue before any deadline ran %d tasks", n)
	}
	if n := s.RunDue(at(200)); n != 3 {
		t.Errorf("RunDue(200ms) ran %d tasks, want 3", n)
	}
	want := []string{"a", "a2", "b"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}
}

func TestScheduler_TaskQueuedByTask(t *testing.T) {
	var s Scheduler
	ran := 0

	s.At(at(100), func(now time.Time) {
		ran++
		s.At(now, func(time.Time) { ran++ })
		s.At(now.Add(time.Second), func(time.Time) { ran++ })
	})

	if n := s.RunDue(at(100)); n != 2 {
		t.Errorf("RunDue ran %d tasks, want 2", n)
	}
	if ran != 2 || s.Pending() != 1 {
		t.Errorf("ran = %d pending = %d, want 2 and 1", ran, s.Pending())
	}
}

func TestScheduler_PassesRunTime(t *testing.T) {
	var s Scheduler
	var got time.Time

	s.At(at(100), func(now time.Time) { got = now })
	s.RunDue(at(250))

	if !got.Equal(at(250)) {
		t.Errorf("task saw %v, want run time %v", got, at(250))
	}
}
