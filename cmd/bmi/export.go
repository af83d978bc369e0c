// ABOUTME: CLI commands for exporting and importing BMI data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportName   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export BMI data",
	Long: `Export BMI data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by person (human-readable)
  markdown   Markdown tables per person (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --name         Only include one person (markdown only)
  --since        Only include data since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  bmi export json                        # Export all data as JSON
  bmi export json -o backup.json         # Save to file
  bmi export yaml                        # Export as YAML
  bmi export markdown --name Ada         # Ada's history as Markdown
  bmi export markdown --since 2025-01-01 # Data from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown":
			var name *string
			if exportName != "" {
				name = &exportName
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			md, err := storage.ExportMarkdown(repo, name, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import BMI data from JSON",
	Long: `Import BMI data from a JSON backup file created by 'bmi export json'.

Measurements are appended; the store assigns new IDs, so importing the same
file twice stores every measurement twice. Records whose BMI or category do
not match their weight and height are rejected.

EXAMPLES:

  bmi import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		before, err := repo.CountMeasurements()
		if err != nil {
			return fmt.Errorf("failed to count measurements: %w", err)
		}
		if err := storage.ImportJSON(repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		after, err := repo.CountMeasurements()
		if err != nil {
			return fmt.Errorf("failed to count measurements: %w", err)
		}

		color.Green("✓ Imported %d measurements from %s", after-before, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportName, "name", "", "filter by exact name (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
