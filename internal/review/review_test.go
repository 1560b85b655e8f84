package review

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
)

func testItems() []clean.Item {
	return []clean.Item{
		{Path: "/tmp/a.tmp", Name: "a.tmp", Size: 100, Category: clean.CategoryTemp},
		{Path: "/tmp/b.tmp", Name: "b.tmp", Size: 200, Category: clean.CategoryTemp},
		{Path: "/tmp/c.tmp", Name: "c.tmp", Size: 300, Category: clean.CategoryTemp},
	}
}

func fakeScan(items []clean.Item, err error) ScanFunc {
	return func(ctx context.Context, _ clean.Category, rep progress.Reporter) ([]clean.Item, error) {
		rep.Status("Scanning: /tmp")
		rep.Progress(50)
		rep.Progress(100)
		return items, err
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

// pump feeds job messages back into the model until the job finishes.
func pump(t *testing.T, m Model) Model {
	t.Helper()
	for range 1000 {
		if m.job == nil {
			return m
		}
		next, _ := m.Update(m.job.wait()())
		m = next.(Model)
	}
	t.Fatal("job did not finish")
	return m
}

func TestFlow_ScanSelectDelete(t *testing.T) {
	var deleted []clean.Item
	remove := func(_ context.Context, items []clean.Item, rep progress.Reporter) clean.Summary {
		deleted = items
		rep.Progress(100)
		return clean.Summary{Deleted: len(items), Freed: clean.TotalSize(items)}
	}
	m := New(fakeScan(testItems(), nil), remove, "")

	m = press(t, m, "enter")
	if m.screen != ScreenScanning || m.category != clean.CategoryTemp {
		t.Fatalf("screen = %v, category = %q", m.screen, m.category)
	}
	m = pump(t, m)
	if m.screen != ScreenResults || len(m.items) != 3 {
		t.Fatalf("screen = %v, items = %d", m.screen, len(m.items))
	}
	if m.percent != 100 || m.status != "Scanning: /tmp" {
		t.Errorf("percent = %d, status = %q", m.percent, m.status)
	}

	// Nothing selected: enter stays on results.
	m = press(t, m, "enter")
	if m.screen != ScreenResults {
		t.Fatalf("enter with no selection moved to %v", m.screen)
	}

	m = press(t, m, "down", "space")
	if got := m.Selected(); len(got) != 1 || got[0].Path != "/tmp/b.tmp" {
		t.Fatalf("Selected = %v", got)
	}
	m = press(t, m, "a")
	if len(m.Selected()) != 3 {
		t.Fatalf("a selected %d", len(m.Selected()))
	}
	m = press(t, m, "n", "space", "enter")
	if m.screen != ScreenConfirm {
		t.Fatalf("screen = %v, want confirm", m.screen)
	}
	if !strings.Contains(m.View(), "Delete 1 items") {
		t.Errorf("confirm view:\n%s", m.View())
	}

	m = press(t, m, "y")
	m = pump(t, m)
	if m.screen != ScreenSummary {
		t.Fatalf("screen = %v, want summary", m.screen)
	}
	if len(deleted) != 1 || deleted[0].Path != "/tmp/b.tmp" {
		t.Errorf("deleted = %v", deleted)
	}
	if !strings.Contains(m.View(), "Deletion complete: 1 items deleted") {
		t.Errorf("summary view:\n%s", m.View())
	}

	m = press(t, m, "enter")
	if m.screen != ScreenMenu || m.items != nil {
		t.Errorf("screen = %v after summary", m.screen)
	}
}

func TestFlow_ConfirmDeclined(t *testing.T) {
	called := false
	remove := func(context.Context, []clean.Item, progress.Reporter) clean.Summary {
		called = true
		return clean.Summary{}
	}
	m := New(fakeScan(testItems(), nil), remove, "")
	m = pump(t, press(t, m, "enter"))
	m = press(t, m, "a", "enter", "n")
	if m.screen != ScreenResults || called {
		t.Errorf("screen = %v, delete called = %v", m.screen, called)
	}
}

func TestFlow_CancelDiscardsResults(t *testing.T) {
	var cancelled atomic.Bool
	scan := func(ctx context.Context, _ clean.Category, rep progress.Reporter) ([]clean.Item, error) {
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				cancelled.Store(true)
				return testItems(), ctx.Err()
			default:
			}
			rep.Progress(i % 100)
		}
	}
	m := New(scan, nil, "")
	m = press(t, m, "enter")
	j := m.job

	// Let the scan make some progress first.
	next, _ := m.Update(j.wait()())
	m = next.(Model)

	m = press(t, m, "esc")
	if m.screen != ScreenMenu || m.job != nil || m.items != nil {
		t.Fatalf("screen = %v, job = %v, items = %d", m.screen, m.job, len(m.items))
	}

	// The abandoned job winds down and its late messages are ignored.
	var last tea.Msg
	for {
		last = j.wait()()
		if _, ok := last.(jobDoneMsg); ok {
			break
		}
	}
	if !cancelled.Load() {
		t.Error("scan context was not cancelled")
	}
	next, _ = m.Update(last)
	if next.(Model).screen != ScreenMenu {
		t.Error("late result changed the screen")
	}
}

func TestFlow_ScanError(t *testing.T) {
	m := New(fakeScan(nil, errors.New("root not found")), nil, "")
	m = pump(t, press(t, m, "enter"))
	if m.screen != ScreenResults || m.err == nil {
		t.Fatalf("screen = %v, err = %v", m.screen, m.err)
	}
	if !strings.Contains(m.View(), "root not found") {
		t.Errorf("view does not show the error:\n%s", m.View())
	}
}

func TestInit_StartCategory(t *testing.T) {
	m := New(fakeScan(testItems(), nil), nil, clean.CategoryDuplicates)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned nil")
	}
	next, _ := m.Update(cmd())
	m = pump(t, next.(Model))
	if m.screen != ScreenResults || m.category != clean.CategoryDuplicates {
		t.Errorf("screen = %v, category = %q", m.screen, m.category)
	}

	if New(nil, nil, "").Init() != nil {
		t.Error("Init without a start category should do nothing")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewReport("id-1", clean.CategoryTemp, testItems())); err != nil {
		t.Fatal(err)
	}
	var got struct {
		ScanID    string           `json:"scan_id"`
		Category  string           `json:"category"`
		Items     []map[string]any `json:"items"`
		TotalSize int64            `json:"total_size"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ScanID != "id-1" || got.Category != "temp" || got.TotalSize != 600 || len(got.Items) != 3 {
		t.Errorf("report = %+v", got)
	}
	if got.Items[0]["kind"] != "file" {
		t.Errorf("kind = %v", got.Items[0]["kind"])
	}
	if _, ok := got.Items[0]["modified"]; ok {
		t.Error("zero ModTime should be omitted")
	}

	buf.Reset()
	if err := WriteJSON(&buf, NewReport("id-2", clean.CategoryJunk, nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"items": []`) {
		t.Errorf("empty report:\n%s", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	items := append(testItems(), clean.Item{Path: "/x/copy.txt", Size: 5, DuplicateOf: "/x/orig.txt"})
	var buf bytes.Buffer
	WriteTable(&buf, NewReport("id", clean.CategoryDuplicates, items))
	out := buf.String()
	for _, want := range []string{"Duplicate Files", "/tmp/c.tmp", "(dup of /x/orig.txt)", "Total: 4 items"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := Confirm(strings.NewReader(tt.input), &out, "Delete?"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Delete? [y/N]") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}
