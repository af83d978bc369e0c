// ABOUTME: CLI command for opening the desktop BMI form.
// ABOUTME: Starts the Fyne app and blocks until the window closes.
package main

import (
	"fyne.io/fyne/v2/app"
	"github.com/harperreed/bmi/internal/gui"
	"github.com/spf13/cobra"
)

// appID identifies the desktop app to Fyne's preferences store.
const appID = "com.harperreed.bmi"

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the BMI Calculator window",
	Long: `Open the desktop form: enter name, age, weight (kg), and height (m), then
"Calculate BMI" to store a measurement or "View BMI History" to chart every
stored measurement for that name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.NewWithID(appID)
		gui.New(a, repo, log).ShowAndRun()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
