// Package progress defines the observability contract shared by every scan:
// a percentage channel and an advisory free-text status channel.
package progress

import "sync"

// Reporter receives scan progress. Percent values are 0..100. Status
// messages are advisory and must not drive control flow.
type Reporter interface {
	Progress(percent int)
	Status(message string)
}

// Funcs adapts a pair of callbacks to a Reporter. Nil callbacks are ignored.
type Funcs struct {
	OnProgress func(percent int)
	OnStatus   func(message string)
}

func (f Funcs) Progress(percent int) {
	if f.OnProgress != nil {
		f.OnProgress(percent)
	}
}

func (f Funcs) Status(message string) {
	if f.OnStatus != nil {
		f.OnStatus(message)
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Progress(int)   {}
func (Nop) Status(string) {}

// monotonic guards a Reporter so that observed progress never decreases.
type monotonic struct {
	mu   sync.Mutex
	next Reporter
	last int
	sent bool
}

// Monotonic wraps r so that percentages are clamped to 0..100 and values lower
// than the last forwarded one are dropped. Repeated equal values are forwarded.
// The wrapper serializes calls and is safe for concurrent use. A nil r yields
// a Nop-backed reporter.
func Monotonic(r Reporter) Reporter {
	if r == nil {
		r = Nop{}
	}
	if m, ok := r.(*monotonic); ok {
		return m
	}
	return &monotonic{next: r}
}

func (m *monotonic) Progress(percent int) {
	percent = clamp(percent)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent && percent < m.last {
		return
	}
	m.last = percent
	m.sent = true
	m.next.Progress(percent)
}

func (m *monotonic) Status(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next.Status(message)
}

func clamp(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Percent returns done/total as an integer percentage. A zero total is 100%.
func Percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return clamp(done * 100 / total)
}
