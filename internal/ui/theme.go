// Package ui holds the shared terminal palette, icons and progress output.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorCoral     = lipgloss.AdaptiveColor{Light: "#e11d48", Dark: "#fb7185"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
	ColorText      = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim   = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconBlock    = "▌"
	IconBullet   = "•"
	IconCheck    = "✓"
	IconChevron  = "›"
	IconDiamond  = "◆"
	IconError    = "✗"
	IconPipe     = "│"
	IconWarning  = "⚠"
	IconSelected = "[x]"
	IconEmpty    = "[ ]"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

// HintBarStyle renders key binding hints.
func HintBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
}

// TagWarningStyle renders a small highlighted tag.
func TagWarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1f2937")).
		Background(ColorWarning).
		Bold(true)
}

// TitleStyle renders a screen title.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
}

// Hints joins key hints with the pipe separator.
func Hints(hints ...string) string {
	return HintBarStyle().Render("  " + strings.Join(hints, " "+IconPipe+" "))
}

// SeverityBar renders a ████░░░░ bar colored by how full it is.
func SeverityBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	barColor := ColorSuccess
	switch {
	case pct >= 90:
		barColor = ColorError
	case pct >= 75:
		barColor = ColorCoral
	case pct >= 50:
		barColor = ColorWarning
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}
