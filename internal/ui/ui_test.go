package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainProgress(&buf)
	p.Status("Building file list...")
	p.Progress(40)
	if p.Current() != 40 {
		t.Errorf("Current = %d", p.Current())
	}
	p.Status(strings.Repeat("x", 100))
	p.Progress(100)
	p.Finish()

	if p.Current() != 100 {
		t.Errorf("Current = %d", p.Current())
	}
}

func TestSeverityBar_Width(t *testing.T) {
	for _, pct := range []float64{-5, 0, 42, 99, 150} {
		bar := SeverityBar(pct, 20)
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 20 {
			t.Errorf("SeverityBar(%v) has %d cells", pct, got)
		}
	}
}
