package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/pcclean/internal/clean"
	"github.com/lakshaymaurya-felt/pcclean/internal/config"
	"github.com/lakshaymaurya-felt/pcclean/internal/core"
	"github.com/lakshaymaurya-felt/pcclean/internal/progress"
	"github.com/lakshaymaurya-felt/pcclean/internal/registry"
	"github.com/lakshaymaurya-felt/pcclean/internal/review"
	"github.com/lakshaymaurya-felt/pcclean/internal/status"
	"github.com/lakshaymaurya-felt/pcclean/internal/ui"
)

// Shared scan flags
var (
	dryRun     bool
	deleteAll  bool
	assumeYes  bool
	jsonOutput bool
)

func addScanFlags(c *cobra.Command) {
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be freed without deleting")
	c.Flags().BoolVar(&deleteAll, "delete", false, "Delete every item found (asks first unless --yes)")
	c.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask before deleting")
	c.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

func newCategoryCmd(category clean.Category, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(category),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategory(cmd, category, scanner().Scan)
		},
	}
	addScanFlags(c)
	return c
}

var largeCmd = &cobra.Command{
	Use:   "large",
	Short: "Find large files in your home directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("min-size") {
			settings.LargeFiles.MinSize, _ = cmd.Flags().GetString("min-size")
		}
		if cmd.Flags().Changed("max-depth") {
			settings.LargeFiles.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
		}
		if err := settings.Validate(); err != nil {
			return err
		}
		return runCategory(cmd, clean.CategoryLarge, scanner().Scan)
	},
}

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "Find video files you have not touched in a long time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("min-age") {
			settings.Videos.MinAgeDays, _ = cmd.Flags().GetInt("min-age")
		}
		if err := settings.Validate(); err != nil {
			return err
		}
		return runCategory(cmd, clean.CategoryVideos, scanner().Scan)
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates [path]",
	Short: "Find files with identical content",
	Long: `Find files with identical content below path (default: your home directory).

Files are grouped by size, then hashed. In every group the first file found
is kept as the original and the rest are reported as duplicates of it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := catalog.Home
		if len(args) == 1 {
			root = args[0]
		}
		if cmd.Flags().Changed("workers") {
			settings.Duplicates.Workers, _ = cmd.Flags().GetInt("workers")
		}
		if cmd.Flags().Changed("exclude") {
			settings.Duplicates.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		s := scanner()
		scan := func(ctx context.Context, category clean.Category, rep progress.Reporter) ([]clean.Item, error) {
			if category == clean.CategoryDuplicates {
				return s.ScanDuplicates(ctx, root, rep)
			}
			return s.Scan(ctx, category, rep)
		}
		return runCategory(cmd, clean.CategoryDuplicates, scan)
	},
}

func init() {
	largeCmd.Flags().String("min-size", "", "Minimum file size, e.g. 500MB (10MB to 10000MB)")
	largeCmd.Flags().Int("max-depth", 0, "How many directory levels to descend")
	videosCmd.Flags().Int("min-age", 0, "Minimum age in days (30 to 3650)")
	duplicatesCmd.Flags().Int("workers", 0, "Parallel hashing workers (0 = auto)")
	duplicatesCmd.Flags().StringSlice("exclude", nil, "Directory names to skip")

	for _, c := range []*cobra.Command{largeCmd, videosCmd, duplicatesCmd} {
		addScanFlags(c)
	}
}

// runCategory shows the interactive review on a terminal, plain output
// otherwise.
func runCategory(cmd *cobra.Command, category clean.Category, scan review.ScanFunc) error {
	if interactive() && !jsonOutput && !deleteAll {
		return runReview(scan, category)
	}
	return runPlain(cmd, category, scan)
}

func runReview(scan review.ScanFunc, category clean.Category) error {
	p := tea.NewProgram(review.New(scan, deleteItems, category), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func runPlain(cmd *cobra.Command, category clean.Category, scan review.ScanFunc) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	scanID := uuid.NewString()
	log := logger.WithFields(logrus.Fields{"scan_id": scanID, "category": string(category)})

	var rep progress.Reporter = progress.Nop{}
	var bar *ui.PlainProgress
	if !jsonOutput {
		bar = ui.NewPlainProgress(cmd.ErrOrStderr())
		rep = bar
	}
	items, err := scan(ctx, category, rep)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.WithError(err).Error("scan failed")
		return err
	}
	log.WithField("items", len(items)).Info("scan finished")

	report := review.NewReport(scanID, category, items)
	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := review.WriteJSON(out, report); err != nil {
			return err
		}
		// Keep stdout valid JSON.
		out = cmd.ErrOrStderr()
	} else {
		review.WriteTable(out, report)
	}

	if !deleteAll || len(items) == 0 {
		return nil
	}
	question := fmt.Sprintf("Delete %d items (%s)?", len(items), core.FormatSize(report.TotalSize))
	if !assumeYes && !review.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question) {
		fmt.Fprintln(out, "Nothing deleted.")
		return nil
	}

	before, freeErr := status.FreeSpace(ctx, catalog.Home)
	summary := deleteItems(ctx, items, progress.Nop{})
	review.WriteSummary(out, summary)
	if after, err := status.FreeSpace(ctx, catalog.Home); freeErr == nil && err == nil {
		fmt.Fprintf(out, "Free space: %s (was %s)\n", core.FormatSize(int64(after)), core.FormatSize(int64(before)))
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d items could not be deleted", summary.Failed)
	}
	return nil
}

// deleteItems removes items, backing up the registry first when any
// registry value is among them. If the backup fails no registry value is
// touched.
func deleteItems(ctx context.Context, items []clean.Item, rep progress.Reporter) clean.Summary {
	var files, values []clean.Item
	for _, it := range items {
		if it.Kind == clean.KindRegistry {
			values = append(values, it)
		} else {
			files = append(files, it)
		}
	}

	var backupErr error
	if len(values) > 0 && settings.Registry.Backup && !dryRun {
		rep.Status("Backing up registry...")
		file, err := registry.Backup(ctx, settings.Registry.BackupDir)
		if err != nil {
			backupErr = err
			logger.WithError(err).Error("registry backup failed, skipping registry values")
		} else {
			logger.WithField("file", file).Info("registry backed up")
		}
	}
	if backupErr == nil {
		files = append(files, values...)
	}

	protected := append(config.NeverDeletePaths(), settings.Protected...)
	d := clean.NewDeleter(protected,
		clean.WithDryRun(dryRun),
		clean.WithRegistry(registry.Editor{}),
		clean.WithDeleteLogger(logger))
	summary := d.Delete(ctx, files, rep)

	if backupErr != nil {
		for _, it := range values {
			summary.Failed++
			summary.Results = append(summary.Results, clean.Result{Item: it, Err: fmt.Errorf("registry backup failed: %w", backupErr)})
		}
	}
	return summary
}
