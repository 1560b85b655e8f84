package progress

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu       sync.Mutex
	percents []int
	messages []string
}

func (r *recorder) Progress(p int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percents = append(r.percents, p)
}

func (r *recorder) Status(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func TestMonotonic(t *testing.T) {
	rec := &recorder{}
	m := Monotonic(rec)

	for _, p := range []int{-5, 10, 40, 30, 40, 120, 99} {
		m.Progress(p)
	}

	want := []int{0, 10, 40, 40, 100}
	if len(rec.percents) != len(want) {
		t.Fatalf("got %v, want %v", rec.percents, want)
	}
	for i := range want {
		if rec.percents[i] != want[i] {
			t.Fatalf("got %v, want %v", rec.percents, want)
		}
	}
}

func TestMonotonic_Idempotent(t *testing.T) {
	m := Monotonic(Nop{})
	if Monotonic(m) != m {
		t.Error("wrapping a monotonic reporter twice should return it unchanged")
	}
	if Monotonic(nil) == nil {
		t.Error("Monotonic(nil) should return a usable reporter")
	}
}

func TestMonotonic_Concurrent(t *testing.T) {
	rec := &recorder{}
	m := Monotonic(rec)

	var wg sync.WaitGroup
	for i := 0; i <= 100; i++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			m.Progress(p)
			m.Status("tick")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(rec.percents); i++ {
		if rec.percents[i] < rec.percents[i-1] {
			t.Fatalf("progress decreased: %v", rec.percents)
		}
	}
	if len(rec.messages) != 101 {
		t.Errorf("got %d status messages, want 101", len(rec.messages))
	}
}

func TestFuncs(t *testing.T) {
	var gotP int
	var gotS string
	r := Funcs{
		OnProgress: func(p int) { gotP = p },
		OnStatus:   func(s string) { gotS = s },
	}
	r.Progress(42)
	r.Status("hashing")
	if gotP != 42 || gotS != "hashing" {
		t.Errorf("got (%d, %q)", gotP, gotS)
	}

	// Nil callbacks must not panic.
	Funcs{}.Progress(1)
	Funcs{}.Status("x")
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total, want int
	}{
		{0, 0, 100},
		{0, 4, 0},
		{1, 3, 33},
		{3, 3, 100},
		{5, 3, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.done, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestSink(t *testing.T) {
	s := NewSink(4)

	go func() {
		s.Status("starting")
		s.Progress(50)
		s.Progress(100)
		s.Close()
	}()

	var events []Event
	for ev := range s.Events() {
		events = append(events, ev)
	}

	var last int
	var sawStatus bool
	for _, ev := range events {
		switch ev.Kind {
		case KindProgress:
			last = ev.Percent
		case KindStatus:
			sawStatus = true
		}
	}
	if last != 100 {
		t.Errorf("last progress = %d, want 100", last)
	}
	if !sawStatus {
		t.Error("status event missing")
	}

	// Reporting after Close is a no-op.
	s.Progress(1)
	s.Status("late")
}

func TestSink_StopUnblocksProducer(t *testing.T) {
	s := NewSink(1)
	s.Progress(1) // fills the buffer

	finished := make(chan struct{})
	go func() {
		s.Progress(2) // would block without Stop
		close(finished)
	}()

	s.Stop()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("producer still blocked after Stop")
	}
	s.Close()
}
