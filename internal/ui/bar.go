package ui

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const barTemplate = `{{bar . "[" "=" ">" " " "]"}} {{percent . "%3.0f%%"}} {{string . "status"}}`

// maxStatus keeps the bar on one line in narrow terminals.
const maxStatus = 48

// PlainProgress renders scan progress as a single text bar. It implements
// progress.Reporter and is safe for concurrent use.
type PlainProgress struct {
	bar *pb.ProgressBar
}

// NewPlainProgress starts a bar writing to w.
func NewPlainProgress(w io.Writer) *PlainProgress {
	bar := pb.ProgressBarTemplate(barTemplate).New(100)
	bar.SetWriter(w)
	bar.Set("status", "")
	bar.Start()
	return &PlainProgress{bar: bar}
}

func (p *PlainProgress) Progress(percent int) {
	p.bar.SetCurrent(int64(percent))
}

func (p *PlainProgress) Status(message string) {
	runes := []rune(message)
	if len(runes) > maxStatus {
		message = string(runes[:maxStatus-3]) + "..."
	}
	p.bar.Set("status", message)
}

// Current returns the last reported percentage.
func (p *PlainProgress) Current() int {
	return int(p.bar.Current())
}

// Finish renders the final state and stops refreshing.
func (p *PlainProgress) Finish() {
	p.bar.Finish()
}
