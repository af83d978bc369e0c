// ABOUTME: CLI commands for listing stored measurements and people.
// ABOUTME: Supports filtering by exact name and limiting results.
package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/models"
	"github.com/spf13/cobra"
)

var (
	listName  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List stored measurements",
	Long: `List stored BMI measurements, newest first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  NAME  BMI  CATEGORY  WEIGHT  HEIGHT  AGE

EXAMPLES:

  bmi list                  # Last 20 measurements for everyone
  bmi list --name Ada       # Only Ada (exact, case-sensitive)
  bmi list -n 100           # Last 100 measurements`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var name *string
		if listName != "" {
			name = &listName
		}

		measurements, err := repo.ListMeasurements(name, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}

		if len(measurements) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range measurements {
			fmt.Printf("%s %s %s %6s %s %g kg  %g m  %s\n",
				faint.Sprintf("%5d", m.ID),
				faint.Sprint(m.RecordedAt.Format("2006-01-02 15:04")),
				padRight(truncate(m.Name, 20), 20),
				models.FormatBMI(m.BMI),
				padRight(string(m.Category), 11),
				m.WeightKg,
				m.HeightM,
				faint.Sprintf("age %d", m.Age))
		}

		return nil
	},
}

var peopleCmd = &cobra.Command{
	Use:     "people",
	Aliases: []string{"names"},
	Short:   "List everyone with stored measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := repo.ListNames()
		if err != nil {
			return fmt.Errorf("failed to list people: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No people found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, name := range names {
			n := name
			ms, err := repo.ListMeasurements(&n, 0)
			if err != nil {
				return fmt.Errorf("failed to list measurements for %s: %w", name, err)
			}
			if len(ms) == 0 {
				continue
			}
			fmt.Printf("%s %s %s\n",
				padRight(truncate(name, 24), 24),
				faint.Sprintf("%3d measurements", len(ms)),
				fmt.Sprintf("latest %s (%s)", models.FormatBMI(ms[0].BMI), ms[0].Category))
		}
		return nil
	},
}

// truncate and padRight count runes so names are never cut mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	listCmd.Flags().StringVar(&listName, "name", "", "filter by exact name")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(peopleCmd)
}
