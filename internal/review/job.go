package review

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

// sinkBuffer bounds the events queued between a job and the UI.
const sinkBuffer = 64

// job runs one background operation and streams its progress to the UI.
type job struct {
	id     int
	sink   *progress.Sink
	cancel context.CancelFunc
	done   chan any
}

// ─── Messages ────────────────────────────────────────────────────────────────

type jobEventMsg struct {
	id    int
	event progress.Event
}

type jobDoneMsg struct {
	id     int
	result any
}

// startJob runs fn in a goroutine. The result is buffered before the sink is
// closed, so a waiter that sees the closed stream always finds it.
func startJob(id int, fn func(ctx context.Context, rep progress.Reporter) any) *job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{
		id:     id,
		sink:   progress.NewSink(sinkBuffer),
		cancel: cancel,
		done:   make(chan any, 1),
	}
	go func() {
		j.done <- fn(ctx, j.sink)
		j.sink.Close()
	}()
	return j
}

// wait returns a command yielding the next event or the final result.
func (j *job) wait() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-j.sink.Events()
		if !ok {
			return jobDoneMsg{id: j.id, result: <-j.done}
		}
		return jobEventMsg{id: j.id, event: ev}
	}
}

// abandon cancels the job and releases a producer blocked on the UI.
func (j *job) abandon() {
	j.cancel()
	j.sink.Stop()
}
