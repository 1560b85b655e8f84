package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
	"github.com/lakshaymaurya-felt/pcclean/internal/ui"
)

// ─── Top-level renderer ─────────────────────────────────────────────────────

func (m Model) renderView() string {
	w := max(m.Width, 50)

	var s strings.Builder
	s.WriteString(ui.TitleStyle().Render("  " + ui.IconDiamond + " Disk Status"))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("─", w)))
	s.WriteString("\n")

	if m.Volumes == nil {
		s.WriteString(lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  Reading volumes…"))
		s.WriteString("\n")
		s.WriteString(m.renderFooter())
		return s.String()
	}

	s.WriteString(m.renderVolumes(w))
	s.WriteString("\n")
	s.WriteString(m.renderDetail())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Volume list ─────────────────────────────────────────────────────────────

func (m Model) renderVolumes(w int) string {
	barW := 24
	if w > 110 {
		barW = 40
	}
	nameW := 16

	var lines []string
	for i, v := range m.Volumes {
		cursor := "  "
		nameStyle := lipgloss.NewStyle().Foreground(ui.ColorText)
		if i == m.Selected {
			cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Render(ui.IconChevron + " ")
			nameStyle = nameStyle.Bold(true).Foreground(ui.ColorPrimary)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s  %5.1f%%  %s free",
			cursor,
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncate(shortPath(v.Path), nameW))),
			ui.SeverityBar(v.UsedPercent, barW),
			v.UsedPercent,
			core.FormatSize(int64(v.Free))))
	}

	total, free := Totals(m.Volumes)
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(
		fmt.Sprintf("  %s free of %s across %d volumes",
			core.FormatSize(int64(free)), core.FormatSize(int64(total)), len(m.Volumes))))
	return strings.Join(lines, "\n")
}

// ─── Selected volume ─────────────────────────────────────────────────────────

func (m Model) renderDetail() string {
	if m.Selected >= len(m.Volumes) {
		return ""
	}
	v := m.Volumes[m.Selected]

	lines := []string{
		fmt.Sprintf("  Device     %s", v.Device),
		fmt.Sprintf("  Type       %s", v.Fstype),
		fmt.Sprintf("  Used       %s / %s", core.FormatSize(int64(v.Used)), core.FormatSize(int64(v.Total))),
		fmt.Sprintf("  Reclaimed  %s", core.FormatSize(int64(m.Reclaimed(v.Path)))),
	}
	if h := m.FreeHistory[v.Path]; len(h) > 1 {
		lines = append(lines, "  Free       "+sparkline(h, 30))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorSecondary).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	footer := ui.Hints("↑/↓ select", "r refresh", "q quit")
	if m.Err != nil {
		errStr := lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Render("  " + ui.IconError + " " + m.Err.Error())
		return errStr + "\n" + footer
	}
	return footer
}

// ─── Drawing primitives ─────────────────────────────────────────────────────

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders the last width readings scaled between their minimum
// and maximum, padded with the lowest block.
func sparkline(data []uint64, width int) string {
	d := data
	if len(d) > width {
		d = d[len(d)-width:]
	}

	var lo, hi uint64
	for i, v := range d {
		if i == 0 || v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range d {
		idx := 0
		if span > 0 {
			idx = int(float64(v-lo) / float64(span) * 7)
		}
		b.WriteRune(sparkBlocks[min(idx, 7)])
	}
	for i := len(d); i < width; i++ {
		b.WriteRune(sparkBlocks[0])
	}
	return lipgloss.NewStyle().Foreground(ui.ColorSecondary).Render(b.String())
}
