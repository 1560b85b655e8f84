// Package review is the interactive front end: pick a category, watch the
// scan, select what to remove, confirm, and read the summary.
package review

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	reporter "github.com/lakshaymaurya-felt/pcclean/internal/progress"
	"github.com/lakshaymaurya-felt/pcclean/internal/ui"
)

// ScanFunc scans one category.
type ScanFunc func(ctx context.Context, category clean.Category, rep reporter.Reporter) ([]clean.Item, error)

// DeleteFunc removes the confirmed items.
type DeleteFunc func(ctx context.Context, items []clean.Item, rep reporter.Reporter) clean.Summary

// Screen identifies the current step of the flow.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenScanning
	ScreenResults
	ScreenConfirm
	ScreenDeleting
	ScreenSummary
)

type scanResult struct {
	items []clean.Item
	err   error
}

// Model is the bubbletea Model for the cleaning flow.
type Model struct {
	scan       ScanFunc
	remove     DeleteFunc
	categories []clean.Category

	screen   Screen
	category clean.Category
	cursor   int
	offset   int
	width    int
	height   int
	quitting bool

	job     *job
	jobSeq  int
	percent int
	status  string
	spinner spinner.Model
	bar     progress.Model

	items    []clean.Item
	selected []bool
	summary  clean.Summary
	err      error
}

// New creates a Model. When start is non-empty the menu is skipped and that
// category is scanned immediately.
func New(scan ScanFunc, remove DeleteFunc, start clean.Category) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(ui.ColorPrimary)

	return Model{
		scan:       scan,
		remove:     remove,
		categories: clean.Categories,
		width:      80,
		height:     24,
		spinner:    sp,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		category:   start,
	}
}

type startMsg struct{ category clean.Category }

func (m Model) Init() tea.Cmd {
	if m.category == "" {
		return nil
	}
	category := m.category
	return func() tea.Msg { return startMsg{category: category} }
}

// ─── Update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(msg.Width-20, 20), 60)
		return m, nil

	case startMsg:
		cmd := m.startScan(msg.category)
		return m, cmd

	case spinner.TickMsg:
		if m.job == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobEventMsg:
		if m.job == nil || msg.id != m.job.id {
			return m, nil
		}
		switch msg.event.Kind {
		case reporter.KindProgress:
			m.percent = msg.event.Percent
		case reporter.KindStatus:
			m.status = msg.event.Message
		}
		return m, m.job.wait()

	case jobDoneMsg:
		if m.job == nil || msg.id != m.job.id {
			return m, nil
		}
		m.job = nil
		return m.finishJob(msg.result), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) finishJob(result any) Model {
	switch r := result.(type) {
	case scanResult:
		m.err = r.err
		m.items = r.items
		m.selected = make([]bool, len(r.items))
		m.cursor, m.offset = 0, 0
		m.screen = ScreenResults
	case clean.Summary:
		m.summary = r
		m.screen = ScreenSummary
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.job != nil {
			m.job.abandon()
			m.job = nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenMenu:
		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.categories)-1 {
				m.cursor++
			}
		case "enter":
			cmd := m.startScan(m.categories[m.cursor])
			return m, cmd
		}

	case ScreenScanning:
		if msg.String() == "esc" {
			// Partial results are discarded.
			m.job.abandon()
			m.job = nil
			m.items, m.selected = nil, nil
			m.screen = ScreenMenu
		}

	case ScreenResults:
		switch msg.String() {
		case "q", "esc":
			m.screen = ScreenMenu
			m.cursor = m.categoryIndex()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.ensureVisible()
			}
		case " ", "space":
			if m.cursor < len(m.selected) {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "a":
			m.selectAll(true)
		case "n":
			m.selectAll(false)
		case "enter":
			if len(m.Selected()) > 0 {
				m.screen = ScreenConfirm
			}
		}

	case ScreenConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			return m, m.startDelete()
		case "n", "N", "esc", "q":
			m.screen = ScreenResults
		}

	case ScreenSummary:
		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.screen = ScreenMenu
			m.cursor = m.categoryIndex()
			m.items, m.selected = nil, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderView()
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

func (m *Model) startScan(category clean.Category) tea.Cmd {
	scan := m.scan
	m.category = category
	m.screen = ScreenScanning
	m.percent = 0
	m.status = "Starting..."
	m.err = nil
	m.jobSeq++
	m.job = startJob(m.jobSeq, func(ctx context.Context, rep reporter.Reporter) any {
		if scan == nil {
			return scanResult{err: errors.New("no scanner configured")}
		}
		items, err := scan(ctx, category, rep)
		return scanResult{items: items, err: err}
	})
	return tea.Batch(m.job.wait(), m.spinner.Tick)
}

func (m *Model) startDelete() tea.Cmd {
	remove := m.remove
	items := m.Selected()
	m.screen = ScreenDeleting
	m.percent = 0
	m.status = "Deleting..."
	m.jobSeq++
	m.job = startJob(m.jobSeq, func(ctx context.Context, rep reporter.Reporter) any {
		if remove == nil {
			return clean.Summary{}
		}
		return remove(ctx, items, rep)
	})
	return tea.Batch(m.job.wait(), m.spinner.Tick)
}

// ─── Selection ───────────────────────────────────────────────────────────────

// Selected returns the checked items in list order.
func (m Model) Selected() []clean.Item {
	var out []clean.Item
	for i, on := range m.selected {
		if on {
			out = append(out, m.items[i])
		}
	}
	return out
}

func (m *Model) selectAll(on bool) {
	for i := range m.selected {
		m.selected[i] = on
	}
}

func (m Model) categoryIndex() int {
	for i, c := range m.categories {
		if c == m.category {
			return i
		}
	}
	return 0
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	return max(m.height-8, 1)
}
