package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/lakshaymaurya-felt/pcclean/internal/core"
)

// Settings is the user configuration file.
type Settings struct {
	LargeFiles LargeFileSettings `yaml:"large_files"`
	Videos     VideoSettings     `yaml:"videos"`
	Junk       JunkSettings      `yaml:"junk"`
	Registry   RegistrySettings  `yaml:"registry"`
	Duplicates DuplicateSettings `yaml:"duplicates"`
	Logging    LoggingSettings   `yaml:"logging"`

	// Protected paths are refused by the deleter in addition to NeverDeletePaths.
	Protected []string `yaml:"protected"`
}

// LargeFileSettings configures the large-file scan.
type LargeFileSettings struct {
	MinSize  string `yaml:"min_size"` // e.g. "100MB"
	MaxDepth int    `yaml:"max_depth"`
}

// VideoSettings configures the stale-video scan.
type VideoSettings struct {
	MinAgeDays int      `yaml:"min_age_days"`
	MaxDepth   int      `yaml:"max_depth"`
	Extensions []string `yaml:"extensions"`
}

// JunkSettings configures the junk-file scan.
type JunkSettings struct {
	Extensions []string `yaml:"extensions"`
	MaxDepth   int      `yaml:"max_depth"`
}

// RegistrySettings configures registry cleaning.
type RegistrySettings struct {
	Backup    bool   `yaml:"backup"`
	BackupDir string `yaml:"backup_dir"` // empty = working directory
}

// DuplicateSettings configures the duplicate finder.
type DuplicateSettings struct {
	Workers   int      `yaml:"workers"` // 0 = auto
	ChunkSize int      `yaml:"chunk_size"`
	Exclude   []string `yaml:"exclude"`
}

// LoggingSettings configures the log file.
type LoggingSettings struct {
	File   string `yaml:"file"`   // empty = no log file
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text" or "json"
}

const (
	minLargeFileSize = 10 * humanize.MiByte
	maxLargeFileSize = 10000 * humanize.MiByte
	minVideoAgeDays  = 30
	maxVideoAgeDays  = 3650
)

// ValidationError reports one invalid settings field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		LargeFiles: LargeFileSettings{
			MinSize:  "100MB",
			MaxDepth: 4,
		},
		Videos: VideoSettings{
			MinAgeDays: 365,
			MaxDepth:   3,
			Extensions: []string{
				".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv",
				".webm", ".m4v", ".mpg", ".mpeg", ".3gp", ".f4v",
			},
		},
		Junk: JunkSettings{
			Extensions: []string{
				".tmp", ".temp", ".log", ".bak", ".old", ".~",
				".dmp", ".cache", ".chk", ".gid", ".dir",
			},
			MaxDepth: 3,
		},
		Registry: RegistrySettings{
			Backup: true,
		},
		Duplicates: DuplicateSettings{
			ChunkSize: 8192,
			Exclude:   []string{".git", "node_modules"},
		},
		Logging: LoggingSettings{
			File:   defaultLogFile(),
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pcclean", "pcclean.log")
}

// LargeFileThreshold parses LargeFiles.MinSize; "100MB" is 100 MiB.
func (s *Settings) LargeFileThreshold() (int64, error) {
	size, err := core.ParseSize(s.LargeFiles.MinSize)
	if err != nil {
		return 0, &ValidationError{Field: "large_files.min_size", Message: err.Error()}
	}
	return size, nil
}

// Validate checks if the settings are valid.
func (s *Settings) Validate() error {
	size, err := s.LargeFileThreshold()
	if err != nil {
		return err
	}
	if size < minLargeFileSize || size > maxLargeFileSize {
		return &ValidationError{
			Field:   "large_files.min_size",
			Message: "must be between 10MB and 10000MB",
		}
	}

	if s.Videos.MinAgeDays < minVideoAgeDays || s.Videos.MinAgeDays > maxVideoAgeDays {
		return &ValidationError{
			Field:   "videos.min_age_days",
			Message: fmt.Sprintf("must be between %d and %d", minVideoAgeDays, maxVideoAgeDays),
		}
	}

	for field, depth := range map[string]int{
		"large_files.max_depth": s.LargeFiles.MaxDepth,
		"videos.max_depth":      s.Videos.MaxDepth,
		"junk.max_depth":        s.Junk.MaxDepth,
	} {
		if depth < 1 {
			return &ValidationError{Field: field, Message: "must be at least 1"}
		}
	}

	if s.Duplicates.Workers < 0 {
		return &ValidationError{Field: "duplicates.workers", Message: "must not be negative"}
	}
	if s.Duplicates.ChunkSize < 512 {
		return &ValidationError{Field: "duplicates.chunk_size", Message: "must be at least 512 bytes"}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[s.Logging.Format] {
		return &ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[s.Logging.Level] {
		return &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes settings to path, creating parent directories.
func Save(cfg *Settings, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "pcclean", "config.yaml"), nil
}

// LoadDefault loads settings from DefaultPath.
func LoadDefault() (*Settings, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
