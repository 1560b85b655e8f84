package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	"github.com/lakshaymaurya-felt/pcclean/internal/core"
	"github.com/lakshaymaurya-felt/pcclean/internal/ui"
)

// maxErrors caps the failures listed on the summary screen.
const maxErrors = 5

func (m Model) renderView() string {
	w := max(m.width, 40)

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")

	switch m.screen {
	case ScreenMenu:
		s.WriteString(m.renderMenu())
	case ScreenScanning, ScreenDeleting:
		s.WriteString(m.renderProgress())
	case ScreenResults:
		s.WriteString(m.renderResults(w))
	case ScreenConfirm:
		s.WriteString(m.renderConfirm())
	case ScreenSummary:
		s.WriteString(m.renderSummary())
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	title := ui.TitleStyle().Render("  " + ui.IconDiamond + " PC Cleaner")
	sub := "Choose what to clean"
	if m.screen != ScreenMenu {
		sub = m.category.Title()
	}
	subLine := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render("  " + sub)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, subLine))
}

// ─── Menu ────────────────────────────────────────────────────────────────────

func (m Model) renderMenu() string {
	var lines []string
	for i, c := range m.categories {
		label := fmt.Sprintf("%d. %s", i+1, c.Title())
		if i == m.cursor {
			cursor := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(ui.IconBlock)
			lines = append(lines, " "+cursor+" "+lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Render(label))
			continue
		}
		lines = append(lines, "   "+lipgloss.NewStyle().Foreground(ui.ColorText).Render(label))
	}
	return strings.Join(lines, "\n")
}

// ─── Scanning / deleting ─────────────────────────────────────────────────────

func (m Model) renderProgress() string {
	verb := "Scanning"
	if m.screen == ScreenDeleting {
		verb = "Deleting"
	}
	status := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(m.status)
	return fmt.Sprintf("  %s %s...\n\n  %s\n\n  %s",
		m.spinner.View(), verb,
		m.bar.ViewAs(float64(m.percent)/100),
		status)
}

// ─── Results ─────────────────────────────────────────────────────────────────

func (m Model) renderResults(w int) string {
	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Render("  " + ui.IconError + " " + m.err.Error())
	}
	if len(m.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorSuccess).
			Render("  " + ui.IconCheck + " Nothing to clean")
	}

	vh := m.viewportHeight()
	var lines []string
	for i := m.offset; i < len(m.items) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderItem(i, w))
	}

	selected := m.Selected()
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(
		fmt.Sprintf("  %d items, %s total  %s  %d selected, %s",
			len(m.items), core.FormatSize(clean.TotalSize(m.items)), ui.IconPipe,
			len(selected), core.FormatSize(clean.TotalSize(selected)))))
	return strings.Join(lines, "\n")
}

func (m Model) renderItem(i, w int) string {
	it := m.items[i]

	box := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(ui.IconEmpty)
	if m.selected[i] {
		box = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(ui.IconSelected)
	}

	size := fmt.Sprintf("%10s", core.FormatSize(it.Size))
	if it.Kind == clean.KindRegistry {
		size = fmt.Sprintf("%10s", "registry")
	}

	detail := it.Description
	if it.DuplicateOf != "" {
		detail = "dup of " + it.DuplicateOf
	}
	maxPath := max(w-len(size)-12, 16)
	path := shorten(it.Path, maxPath)

	line := fmt.Sprintf("  %s %s  %s", box, size, lipgloss.NewStyle().Foreground(ui.ColorText).Render(path))
	if detail != "" {
		line += "  " + lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(shorten(detail, maxPath/2))
	}
	if i == m.cursor {
		cursor := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(ui.IconBlock)
		line = " " + cursor + line[2:]
	}
	return line
}

// ─── Confirm / summary ───────────────────────────────────────────────────────

func (m Model) renderConfirm() string {
	selected := m.Selected()
	warn := lipgloss.NewStyle().Foreground(ui.ColorWarning).Bold(true).Render("  " + ui.IconWarning + " ")
	return warn + fmt.Sprintf("Delete %d items (%s)? This cannot be undone. [y/N]",
		len(selected), core.FormatSize(clean.TotalSize(selected)))
}

func (m Model) renderSummary() string {
	lines := []string{
		lipgloss.NewStyle().Foreground(ui.ColorSuccess).Bold(true).Render("  " + ui.IconCheck + " " + m.summary.String()),
	}
	if m.summary.Failed > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(ui.ColorError).Render(
			fmt.Sprintf("  %d items could not be deleted:", m.summary.Failed)))
		for i, r := range m.summary.Errors() {
			if i == maxErrors {
				lines = append(lines, fmt.Sprintf("    %s and %d more", ui.IconBullet, m.summary.Failed-maxErrors))
				break
			}
			lines = append(lines, fmt.Sprintf("    %s %s: %v", ui.IconBullet, shorten(r.Item.Path, 60), r.Err))
		}
	}
	return strings.Join(lines, "\n")
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter() string {
	switch m.screen {
	case ScreenMenu:
		return ui.Hints("↑↓ nav", "Enter scan", "q quit")
	case ScreenScanning:
		return ui.Hints("Esc cancel")
	case ScreenResults:
		return ui.Hints("↑↓ nav", "Space toggle", "a all", "n none", "Enter delete", "Esc back")
	case ScreenConfirm:
		return ui.Hints("y confirm", "n cancel")
	case ScreenSummary:
		return ui.Hints("Enter menu", "q quit")
	}
	return ""
}

// shorten keeps the tail of s within n runes.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
