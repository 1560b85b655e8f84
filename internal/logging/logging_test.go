package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/pcclean/internal/config"
)

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pcclean.log")
	log, err := New(config.LoggingSettings{File: path, Level: "info", Format: "json"}, false)
	if err != nil {
		t.Fatal(err)
	}

	log.WithField("scan_id", "abc").Info("scan complete")
	log.Debug("hidden")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "scan complete" || entry["scan_id"] != "abc" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	log, err := New(config.LoggingSettings{Level: "error", Format: "text"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
	if err := log.Close(); err != nil {
		t.Errorf("Close without file: %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(config.LoggingSettings{Level: "loud", Format: "text"}, false); err == nil {
		t.Error("expected level error")
	}
	if _, err := New(config.LoggingSettings{Level: "info", Format: "xml"}, false); err == nil {
		t.Error("expected format error")
	}
}
