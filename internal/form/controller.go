// ABOUTME: Form controller orchestrating BMI submission and history viewing.
// ABOUTME: Owns the form, store, notifier, and renderer for one UI instance.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/bmi/internal/models"
	"go.uber.org/zap"
)

// Notices shown to the user. None of them are faults.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNameRequired = errors.New("name required")
	ErrNoHistory    = errors.New("no history")
)

// Notice titles and messages.
const (
	TitleInputError  = "Input Error"
	TitleInputNeeded = "Input Needed"
	TitleNoData      = "No Data"
	TitleFailure     = "Error"

	MsgInvalidInput = "Please enter valid inputs!"
	MsgNameRequired = "Enter your name to view history."
	MsgNoHistory    = "No history found for this user."
)

// IsNotice reports whether err is a user-facing notice rather than a fault.
func IsNotice(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNoHistory)
}

// Form gives the controller access to the on-screen inputs.
type Form interface {
	Fields() Fields
	Clear()
	SetFeedback(text string)
}

// Notifier displays a blocking request/acknowledge message to the user.
type Notifier interface {
	Error(title, message string)
	Warning(title, message string)
	Info(title, message string)
}

// Store is the subset of storage the controller writes and reads.
type Store interface {
	AppendMeasurement(m *models.Measurement) error
	QueryByName(name string) ([]models.HistoryPoint, error)
}

// Renderer draws a person's BMI history.
type Renderer interface {
	RenderHistory(name string, points []models.HistoryPoint) error
}

// Controller handles the two form actions. It keeps no state of its own
// beyond its collaborators; the form holds the current field values.
type Controller struct {
	form     Form
	store    Store
	notifier Notifier
	renderer Renderer
	log      *zap.Logger
	now      func() time.Time
}

// NewController wires a controller to its collaborators.
func NewController(form Form, store Store, notifier Notifier, renderer Renderer, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		form:     form,
		store:    store,
		notifier: notifier,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock used for recorded_at.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// Submit validates the form, stores a new measurement, shows the result,
// and clears the inputs. On invalid input nothing is written and the
// fields are left as they were.
func (c *Controller) Submit() (*models.Measurement, error) {
	in, err := ParseInput(c.form.Fields())
	if err != nil {
		c.log.Debug("rejected submission", zap.Error(err))
		c.notifier.Error(TitleInputError, MsgInvalidInput)
		return nil, err
	}

	m := models.NewMeasurement(in.Name, in.Age, in.WeightKg, in.HeightM).WithRecordedAt(c.now())
	if err := c.store.AppendMeasurement(m); err != nil {
		c.log.Error("store measurement failed", zap.String("name", m.Name), zap.Error(err))
		c.notifier.Error(TitleFailure, fmt.Sprintf("Could not save measurement: %v", err))
		return nil, fmt.Errorf("submit: %w", err)
	}

	c.form.SetFeedback(Feedback(m))
	c.log.Info("stored measurement",
		zap.Int64("id", m.ID),
		zap.String("name", m.Name),
		zap.Float64("bmi", m.BMI),
		zap.String("category", string(m.Category)))
	c.form.Clear()

	return m, nil
}

// ViewHistory renders the stored BMI history for the name in the form.
func (c *Controller) ViewHistory() ([]models.HistoryPoint, error) {
	name := strings.TrimSpace(c.form.Fields().Name)
	if name == "" {
		c.notifier.Warning(TitleInputNeeded, MsgNameRequired)
		return nil, ErrNameRequired
	}

	points, err := c.store.QueryByName(name)
	if err != nil {
		c.log.Error("query history failed", zap.String("name", name), zap.Error(err))
		c.notifier.Error(TitleFailure, fmt.Sprintf("Could not load history: %v", err))
		return nil, fmt.Errorf("view history: %w", err)
	}
	if len(points) == 0 {
		c.notifier.Info(TitleNoData, MsgNoHistory)
		return nil, ErrNoHistory
	}

	if err := c.renderer.RenderHistory(name, points); err != nil {
		c.log.Error("render history failed", zap.String("name", name), zap.Error(err))
		c.notifier.Error(TitleFailure, fmt.Sprintf("Could not draw chart: %v", err))
		return points, fmt.Errorf("render history: %w", err)
	}

	c.log.Debug("rendered history", zap.String("name", name), zap.Int("points", len(points)))
	return points, nil
}

// Feedback is the result line shown after a successful submission.
func Feedback(m *models.Measurement) string {
	return fmt.Sprintf("BMI: %s (%s)", models.FormatBMI(m.BMI), m.Category)
}
