package main

import (
	"fmt"
	"io"
	"time"

	"keep-notes-be/internal/bootstrap"
	"keep-notes-be/internal/config"
	"keep-notes-be/internal/dto"
	"keep-notes-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var dryRun bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Permanently delete notes trashed more than 7 days ago",
	Long: `Runs the trash retention sweep once, for every user.

The sweep shares its lock with running servers, so it is safe to schedule
from cron alongside TRASH_SWEEP_INTERVAL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := openDB(cfg)
		if err != nil {
			return err
		}

		container := bootstrap.NewContainerWithLogger(db, cfg, logger.NewNopLogger())
		defer container.Close()

		if dryRun {
			preview, err := container.NoteService.PreviewCleanup(cmd.Context())
			if err != nil {
				return fmt.Errorf("sweep preview failed: %w", err)
			}
			printPreview(cmd.OutOrStdout(), preview)
			return nil
		}

		res, err := container.NoteService.CleanupTrash(cmd.Context())
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		printSweep(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only count the notes a sweep would delete")
}

func printPreview(w io.Writer, preview *dto.TrashSweepPreview) {
	color.New(color.FgCyan).Fprintf(w, "%d trashed notes would be deleted (cutoff %s)\n",
		preview.Expired, preview.Cutoff.UTC().Format(time.RFC3339))
}

func printSweep(w io.Writer, res *dto.CleanupTrashResponse) {
	cutoff := res.Cutoff.UTC().Format(time.RFC3339)
	switch {
	case res.Skipped:
		color.New(color.FgYellow).Fprintf(w, "Another sweep is running, nothing done (cutoff %s)\n", cutoff)
	case res.Removed == 0:
		color.New(color.FgCyan).Fprintf(w, "No old trashed notes to clean up (cutoff %s)\n", cutoff)
	default:
		color.New(color.FgGreen).Fprintf(w, "Cleaned up %d old trashed notes (cutoff %s)\n", res.Removed, cutoff)
	}
}
