// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every measurement from the active store into a new one.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/config"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateTo     string
	migrateDest   string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data to another storage backend",
	Long: `Copy every measurement from the active store into another backend.

The active store (from config or --backend/--data-dir) is the source and is
left untouched. Measurements are copied oldest first; the destination assigns
new IDs.

IMPORTANT:

  - The destination directory must be empty unless --force is given
  - Run with --dry-run first to see what would be copied
  - Update ~/.config/bmi/config.json afterwards to switch backends

EXAMPLES:

  bmi migrate --to markdown --dest ~/notes/bmi --dry-run
  bmi migrate --to markdown --dest ~/notes/bmi
  bmi migrate --backend markdown --data-dir ~/notes/bmi --to sqlite --dest ~/.local/share/bmi2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDest == "" {
			return fmt.Errorf("--dest is required")
		}
		dest := config.ExpandPath(migrateDest)

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()

			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}
			people := make(map[string]bool)
			for _, m := range data.Measurements {
				people[m.Name] = true
			}
			fmt.Printf("Would copy %d measurements for %d people\n", len(data.Measurements), len(people))
			fmt.Printf("  from %s (%s)\n", cfg.GetDataDir(), cfg.GetBackend())
			fmt.Printf("  to   %s (%s)\n", dest, migrateTo)
			return nil
		}

		nonEmpty, err := storage.IsDirNonEmpty(dest)
		if err != nil {
			return err
		}
		if nonEmpty && !migrateForce {
			return fmt.Errorf("destination %s is not empty (use --force to append)", dest)
		}

		dst, err := config.OpenBackend(migrateTo, dest)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrated measurements",
			zap.Int("measurements", summary.Measurements),
			zap.Int("people", summary.People),
			zap.String("to", migrateTo))

		color.Green("✓ Migrated %d measurements for %d people to %s", summary.Measurements, summary.People, dest)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendMarkdown, "destination backend: sqlite or markdown")
	migrateCmd.Flags().StringVar(&migrateDest, "dest", "", "destination data directory")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
