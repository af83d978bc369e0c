// ABOUTME: Fyne desktop form for entering BMI data and viewing history charts.
// ABOUTME: Implements the form controller's Form, Notifier, and Renderer with widgets.
package gui

import (
	"fmt"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/harperreed/bmi/internal/chart"
	"github.com/harperreed/bmi/internal/form"
	"github.com/harperreed/bmi/internal/models"
	"go.uber.org/zap"
)

// WindowTitle is the main window's title.
const WindowTitle = "BMI Calculator"

// App is the BMI form window and its controller.
type App struct {
	fyneApp fyne.App
	Window  fyne.Window

	name     *widget.Entry
	age      *widget.Entry
	weight   *widget.Entry
	height   *widget.Entry
	feedback *widget.Label
	submit   *widget.Button
	history  *widget.Button

	controller *form.Controller
	log        *zap.Logger
}

// New builds the main window on a and wires it to store.
func New(a fyne.App, store form.Store, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	u := &App{
		fyneApp: a,
		Window:  a.NewWindow(WindowTitle),
		name:    widget.NewEntry(),
		age:     widget.NewEntry(),
		weight:  widget.NewEntry(),
		height:  widget.NewEntry(),
		log:     log,
	}

	u.feedback = widget.NewLabel("")
	u.feedback.Importance = widget.HighImportance
	u.feedback.Alignment = fyne.TextAlignCenter

	u.controller = form.NewController(u, store, &dialogNotifier{win: u.Window}, &chartWindows{app: a, log: log}, log)

	u.submit = widget.NewButton("Calculate BMI", func() { _, _ = u.controller.Submit() })
	u.submit.Importance = widget.SuccessImportance
	u.history = widget.NewButton("View BMI History", func() { _, _ = u.controller.ViewHistory() })
	u.history.Importance = widget.HighImportance

	u.Window.SetContent(container.NewPadded(container.NewVBox(
		widget.NewLabel("Name:"), u.name,
		widget.NewLabel("Age:"), u.age,
		widget.NewLabel("Weight (kg):"), u.weight,
		widget.NewLabel("Height (m):"), u.height,
		u.submit,
		u.history,
		u.feedback,
	)))
	u.Window.Resize(fyne.NewSize(400, 420))
	u.Window.SetFixedSize(true)
	u.Window.SetMaster()

	return u
}

// ShowAndRun displays the window and blocks until the app quits.
func (u *App) ShowAndRun() {
	u.log.Debug("starting gui")
	u.Window.ShowAndRun()
}

// Fields returns the current text of the four inputs.
func (u *App) Fields() form.Fields {
	return form.Fields{
		Name:   u.name.Text,
		Age:    u.age.Text,
		Weight: u.weight.Text,
		Height: u.height.Text,
	}
}

// Clear empties all four inputs.
func (u *App) Clear() {
	for _, e := range []*widget.Entry{u.name, u.age, u.weight, u.height} {
		e.SetText("")
	}
}

// SetFeedback shows the result line under the buttons.
func (u *App) SetFeedback(text string) {
	u.feedback.SetText(text)
}

// dialogNotifier shows notices as modal dialogs on the main window.
type dialogNotifier struct {
	win fyne.Window
}

func (n *dialogNotifier) Error(title, message string) {
	dialog.ShowInformation(title, message, n.win)
}

func (n *dialogNotifier) Warning(title, message string) {
	dialog.ShowInformation(title, message, n.win)
}

func (n *dialogNotifier) Info(title, message string) {
	dialog.ShowInformation(title, message, n.win)
}

// chartWindows opens each history chart in its own window.
type chartWindows struct {
	app fyne.App
	log *zap.Logger
}

func (c *chartWindows) RenderHistory(name string, points []models.HistoryPoint) error {
	img, err := chart.RenderImage(name, points)
	if err != nil {
		return err
	}

	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(chart.Width, chart.Height))

	w := c.app.NewWindow(chart.Title(strings.TrimSpace(name)))
	w.SetContent(container.NewBorder(nil,
		widget.NewLabel(fmt.Sprintf("%d measurements", len(points))),
		nil, nil, view))
	w.Resize(fyne.NewSize(chart.Width, chart.Height+40))
	w.Show()

	c.log.Debug("opened chart window", zap.String("name", name))
	return nil
}
