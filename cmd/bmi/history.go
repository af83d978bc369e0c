// ABOUTME: CLI command for charting a person's BMI history.
// ABOUTME: Writes a PNG line chart and prints the points it plotted.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/chart"
	"github.com/harperreed/bmi/internal/form"
	"github.com/harperreed/bmi/internal/models"
	"github.com/spf13/cobra"
)

var (
	historyOutput string
	historyOpen   bool
)

var historyCmd = &cobra.Command{
	Use:     "history <name>",
	Aliases: []string{"h", "chart"},
	Short:   "Chart a person's BMI history",
	Long: `Chart every stored BMI for an exact name, oldest first, as a PNG line chart.

The chart is written to <chart_dir>/<name>-bmi-history.png unless --output
is given. chart_dir defaults to ~/.local/share/bmi/charts.

EXAMPLES:

  bmi history Ada
  bmi history "Grace Hopper" -o grace.png
  bmi history Ada --open        # Also open the chart in the default viewer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &cliForm{fields: form.Fields{Name: strings.Join(args, " ")}}
		renderer := &chart.FileRenderer{
			Dir:  cfg.GetChartDir(),
			Path: historyOutput,
			Open: historyOpen,
			Log:  log,
		}
		ctrl := form.NewController(f, repo, newTerminalNotifier(), renderer, log)

		points, err := ctrl.ViewHistory()
		if errors.Is(err, form.ErrNoHistory) {
			return nil
		}
		if err != nil {
			return err
		}

		printPoints(points)
		color.Green("✓ Chart written to %s", renderer.LastPath)
		return nil
	},
}

func printPoints(points []models.HistoryPoint) {
	faint := color.New(color.Faint)
	for _, p := range points {
		fmt.Printf("  %s  %6s  %s\n",
			faint.Sprint(p.RecordedAt.Format("2006-01-02 15:04")),
			models.FormatBMI(p.BMI),
			p.Category)
	}
}

func init() {
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "chart file path (default: <chart_dir>/<name>-bmi-history.png)")
	historyCmd.Flags().BoolVar(&historyOpen, "open", false, "open the chart in the default image viewer")
	rootCmd.AddCommand(historyCmd)
}
