// ABOUTME: Entry point for bmi CLI.
// ABOUTME: Invokes the root Cobra command and maps errors to exit codes.
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/bmi/internal/form"
)

func main() {
	err := Execute()
	closeStorage()
	if err != nil {
		// Notices were already shown to the user
		if !form.IsNotice(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
