// ABOUTME: Terminal implementations of the form controller's collaborators.
// ABOUTME: Reads fields from arguments and prints notices with color.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/bmi/internal/form"
	"github.com/harperreed/bmi/internal/models"
)

// cliForm holds fields parsed from the command line.
type cliForm struct {
	fields   form.Fields
	feedback string
}

func (f *cliForm) Fields() form.Fields { return f.fields }

func (f *cliForm) Clear() { f.fields = form.Fields{} }

func (f *cliForm) SetFeedback(text string) {
	f.feedback = text
	color.Green("✓ %s", text)
}

// terminalNotifier prints notices to stderr, colored by severity.
type terminalNotifier struct {
	out io.Writer
}

func newTerminalNotifier() *terminalNotifier {
	return &terminalNotifier{out: os.Stderr}
}

func (n *terminalNotifier) Error(title, message string) {
	n.print(color.New(color.FgRed, color.Bold), title, message)
}

func (n *terminalNotifier) Warning(title, message string) {
	n.print(color.New(color.FgYellow, color.Bold), title, message)
}

func (n *terminalNotifier) Info(title, message string) {
	n.print(color.New(color.FgCyan, color.Bold), title, message)
}

func (n *terminalNotifier) print(c *color.Color, title, message string) {
	fmt.Fprintf(n.out, "%s %s\n", c.Sprintf("%s:", title), message)
}

// noRender is used by commands that never draw a chart.
type noRender struct{}

func (noRender) RenderHistory(string, []models.HistoryPoint) error { return nil }
