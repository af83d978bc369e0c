// ABOUTME: CLI command for recording a BMI measurement.
// ABOUTME: Accepts the four form fields as arguments or flags.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/form"
	"github.com/spf13/cobra"
)

var (
	calcName   string
	calcAge    string
	calcWeight string
	calcHeight string
)

var calcCmd = &cobra.Command{
	Use:     "calc [name age weight height]",
	Aliases: []string{"add", "c"},
	Short:   "Calculate and store a BMI measurement",
	Long: `Calculate a BMI from weight (kg) and height (m), classify it, and store it
under the given name with the current time.

All four values are required. Name must not be blank; age must be a positive
whole number; weight and height must be positive numbers.

EXAMPLES:

  bmi calc Ada 36 70 1.75
  bmi calc --name "Grace Hopper" --age 45 --weight 90 --height 1.80`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 4 {
			return fmt.Errorf("expected 4 arguments (name age weight height), got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := form.Fields{Name: calcName, Age: calcAge, Weight: calcWeight, Height: calcHeight}
		if len(args) == 4 {
			fields = form.Fields{Name: args[0], Age: args[1], Weight: args[2], Height: args[3]}
		}

		f := &cliForm{fields: fields}
		ctrl := form.NewController(f, repo, newTerminalNotifier(), noRender{}, log)

		m, err := ctrl.Submit()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("  %s %s  %s, age %d, %g kg, %g m\n",
			faint.Sprintf("#%d", m.ID),
			faint.Sprint(m.RecordedAt.Format("2006-01-02 15:04")),
			m.Name, m.Age, m.WeightKg, m.HeightM)
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVar(&calcName, "name", "", "person's name")
	calcCmd.Flags().StringVar(&calcAge, "age", "", "age in years")
	calcCmd.Flags().StringVar(&calcWeight, "weight", "", "weight in kg")
	calcCmd.Flags().StringVar(&calcHeight, "height", "", "height in m")
	rootCmd.AddCommand(calcCmd)
}
