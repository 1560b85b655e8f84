package status

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// historyLen caps the free-space sparkline per volume.
const historyLen = 60

// ─── Messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type volumesMsg struct {
	volumes []Volume
	err     error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for the live volume dashboard.
type Model struct {
	Volumes  []Volume
	Selected int
	Width    int
	Height   int
	Err      error

	// Baseline is the free space seen on the first refresh, keyed by path.
	Baseline map[string]uint64
	// FreeHistory holds recent free-space readings, keyed by path.
	FreeHistory map[string][]uint64

	refreshInterval time.Duration
	collect         func(context.Context) ([]Volume, error)
	quitting        bool
}

// NewModel creates a Model refreshing at the given cadence.
func NewModel(refreshInterval time.Duration) Model {
	if refreshInterval <= 0 {
		refreshInterval = 2 * time.Second
	}
	return Model{
		Width:           80,
		Height:          24,
		Baseline:        make(map[string]uint64),
		FreeHistory:     make(map[string][]uint64),
		refreshInterval: refreshInterval,
		collect:         Volumes,
	}
}

func (m Model) doTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) collectVolumes() tea.Cmd {
	collect := m.collect
	timeout := m.refreshInterval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		vols, err := collect(ctx)
		return volumesMsg{volumes: vols, err: err}
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	// The first volumesMsg starts the tick loop, keeping collection and
	// display sequential.
	return m.collectVolumes()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if m.Selected < len(m.Volumes)-1 {
				m.Selected++
			}
		case "r":
			return m, m.collectVolumes()
		}
		return m, nil

	case tickMsg:
		return m, m.collectVolumes()

	case volumesMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, m.doTick()
		}
		m.Err = nil
		m.Volumes = msg.volumes
		for _, v := range msg.volumes {
			if _, ok := m.Baseline[v.Path]; !ok {
				m.Baseline[v.Path] = v.Free
			}
			m.FreeHistory[v.Path] = appendU64(m.FreeHistory[v.Path], v.Free, historyLen)
		}
		if m.Selected >= len(m.Volumes) {
			m.Selected = max(len(m.Volumes)-1, 0)
		}
		return m, m.doTick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}

// Reclaimed is the free space gained on path since the first refresh.
// Space consumed since then reports as zero.
func (m Model) Reclaimed(path string) uint64 {
	base, ok := m.Baseline[path]
	if !ok {
		return 0
	}
	for _, v := range m.Volumes {
		if v.Path == path && v.Free > base {
			return v.Free - base
		}
	}
	return 0
}

// ─── History helpers ─────────────────────────────────────────────────────────

func appendU64(h []uint64, v uint64, maxLen int) []uint64 {
	h = append(h, v)
	if len(h) > maxLen {
		h = h[1:]
	}
	return h
}
