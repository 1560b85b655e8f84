package review

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

// maxRows limits the plain table; the JSON report is never truncated.
const maxRows = 50

// Report is the machine-readable result of one scan.
type Report struct {
	ScanID    string         `json:"scan_id"`
	Category  clean.Category `json:"category"`
	Items     []clean.Item   `json:"items"`
	TotalSize int64          `json:"total_size"`
}

// NewReport builds a Report. Items is never nil so it encodes as [].
func NewReport(scanID string, category clean.Category, items []clean.Item) Report {
	if items == nil {
		items = []clean.Item{}
	}
	return Report{
		ScanID:    scanID,
		Category:  category,
		Items:     items,
		TotalSize: clean.TotalSize(items),
	}
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteTable prints r as a plain list in scanner order.
func WriteTable(w io.Writer, r Report) {
	fmt.Fprintf(w, "  %s\n", r.Category.Title())
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))

	if len(r.Items) == 0 {
		fmt.Fprintln(w, "  Nothing to clean.")
		return
	}

	shown := r.Items
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, it := range shown {
		size := core.FormatSize(it.Size)
		if it.Kind == clean.KindRegistry {
			size = "registry"
		}
		line := fmt.Sprintf("  %10s  %s", size, it.Path)
		switch {
		case it.DuplicateOf != "":
			line += "  (dup of " + it.DuplicateOf + ")"
		case it.Description != "":
			line += "  (" + it.Description + ")"
		}
		fmt.Fprintln(w, line)
	}
	if rest := len(r.Items) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  ... and %d more items\n", rest)
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  Total: %d items, %s\n", len(r.Items), core.FormatSize(r.TotalSize))
}

// WriteSummary prints a deletion summary and its failures.
func WriteSummary(w io.Writer, s clean.Summary) {
	fmt.Fprintln(w, s.String())
	for _, r := range s.Errors() {
		fmt.Fprintf(w, "  failed: %s: %v\n", r.Item.Path, r.Err)
	}
}

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
