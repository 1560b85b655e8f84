package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	"github.com/lakshaymaurya-felt/pcclean/internal/config"
	"github.com/lakshaymaurya-felt/pcclean/internal/logging"
)

var (
	// Global flags
	debug      bool
	configPath string

	// Populated by setup before any command runs
	settings *config.Settings
	logger   = logging.Discard()
	catalog  config.Catalog

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "pcclean",
	Short: "Find and remove files you no longer need",
	Long: `PCClean - find and remove files you no longer need.

Scans temp folders, junk files, application caches, large and old files,
duplicate files and stale registry entries, then lets you pick what to
delete.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without a subcommand, show the interactive menu.
		if !interactive() {
			return cmd.Help()
		}
		return runReview(scanner().Scan, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug-level logs")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default is the user config directory)")

	for _, c := range []struct {
		category clean.Category
		short    string
	}{
		{clean.CategoryTemp, "Find temporary files"},
		{clean.CategoryJunk, "Find junk files (logs, backups, dumps) in your home directory"},
		{clean.CategoryAdobe, "Find Adobe temp and cache files"},
		{clean.CategorySystem, "Find Windows update, prefetch and log files plus old installers"},
		{clean.CategoryRegistry, "Find registry entries pointing at missing programs"},
	} {
		rootCmd.AddCommand(newCategoryCmd(c.category, c.short))
	}

	rootCmd.AddCommand(largeCmd)
	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(duplicatesCmd)
	rootCmd.AddCommand(dnsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads settings and opens the log file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		settings, err = config.Load(configPath)
	} else {
		settings, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	log, err := logging.New(settings.Logging, debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	logger = log
	catalog = config.DefaultCatalog()

	logger.WithField("command", cmd.CommandPath()).Debug("starting")
	return nil
}

// interactive reports whether stdout is a terminal.
func interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func scanner() *clean.Scanner {
	return clean.NewScanner(catalog, settings, clean.WithScanLogger(logger))
}
