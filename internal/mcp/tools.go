// ABOUTME: MCP tool implementations for BMI measurements.
// ABOUTME: Provides calculate, record, history, and people tools.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/bmi/internal/chart"
	"github.com/harperreed/bmi/internal/form"
	"github.com/harperreed/bmi/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	// calculate_bmi
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_bmi",
		Description: "Calculate and classify a BMI without storing it",
	}, s.handleCalculateBMI)

	// record_bmi
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_bmi",
		Description: "Record a person's weight and height and store the resulting BMI",
	}, s.handleRecordBMI)

	// bmi_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "bmi_history",
		Description: "Get a person's BMI history in chronological order, optionally with a PNG chart",
	}, s.handleBMIHistory)

	// list_people
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_people",
		Description: "List every name that has stored measurements",
	}, s.handleListPeople)
}

// Tool input/output types

type calculateInput struct {
	WeightKg float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	HeightM  float64 `json:"height_m" jsonschema:"Height in metres"`
}

type calculateOutput struct {
	BMI      float64         `json:"bmi"`
	Category models.Category `json:"category"`
	Message  string          `json:"message"`
}

type recordInput struct {
	Name       string  `json:"name" jsonschema:"Person's name, matched exactly when reading history"`
	Age        int     `json:"age" jsonschema:"Age in whole years"`
	WeightKg   float64 `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	HeightM    float64 `json:"height_m" jsonschema:"Height in metres"`
	RecordedAt string  `json:"recorded_at,omitempty" jsonschema:"Timestamp (RFC 3339 or YYYY-MM-DD HH:MM:SS), defaults to now"`
}

type recordOutput struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	BMI        float64         `json:"bmi"`
	Category   models.Category `json:"category"`
	RecordedAt string          `json:"recorded_at"`
	Message    string          `json:"message"`
}

type historyInput struct {
	Name         string `json:"name" jsonschema:"Person's name"`
	IncludeChart bool   `json:"include_chart,omitempty" jsonschema:"Attach the history chart as a PNG image"`
}

type historyPoint struct {
	RecordedAt string          `json:"recorded_at"`
	BMI        float64         `json:"bmi"`
	Category   models.Category `json:"category"`
}

type historyOutput struct {
	Name    string         `json:"name"`
	Count   int            `json:"count"`
	Points  []historyPoint `json:"points"`
	Message string         `json:"message"`
}

type listPeopleInput struct{}

type listPeopleOutput struct {
	People []string `json:"people"`
	Count  int      `json:"count"`
}

// Tool handlers

func (s *Server) handleCalculateBMI(ctx context.Context, req *mcp.CallToolRequest, input calculateInput) (*mcp.CallToolResult, calculateOutput, error) {
	if err := form.ValidateBody(input.WeightKg, input.HeightM); err != nil {
		return nil, calculateOutput{}, err
	}

	bmi, category := models.Evaluate(input.WeightKg, input.HeightM)
	return nil, calculateOutput{
		BMI:      bmi,
		Category: category,
		Message:  fmt.Sprintf("BMI: %s (%s)", models.FormatBMI(bmi), category),
	}, nil
}

func (s *Server) handleRecordBMI(ctx context.Context, req *mcp.CallToolRequest, input recordInput) (*mcp.CallToolResult, recordOutput, error) {
	in := form.Input{
		Name:     strings.TrimSpace(input.Name),
		Age:      input.Age,
		WeightKg: input.WeightKg,
		HeightM:  input.HeightM,
	}
	if err := in.Validate(); err != nil {
		return nil, recordOutput{}, err
	}

	recordedAt := s.now()
	if input.RecordedAt != "" {
		t, err := parseTimestamp(input.RecordedAt)
		if err != nil {
			return nil, recordOutput{}, err
		}
		recordedAt = t
	}

	m := models.NewMeasurement(in.Name, in.Age, in.WeightKg, in.HeightM).WithRecordedAt(recordedAt)
	if err := s.repo.AppendMeasurement(m); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to record measurement: %w", err)
	}
	s.log.Info("stored measurement",
		zap.Int64("id", m.ID),
		zap.String("name", m.Name),
		zap.Float64("bmi", m.BMI),
		zap.String("category", string(m.Category)),
		zap.String("via", "mcp"))

	return nil, recordOutput{
		ID:         m.ID,
		Name:       m.Name,
		BMI:        m.BMI,
		Category:   m.Category,
		RecordedAt: models.FormatTime(m.RecordedAt),
		Message:    form.Feedback(m),
	}, nil
}

func (s *Server) handleBMIHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, historyOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, historyOutput{}, errors.New(form.MsgNameRequired)
	}

	points, err := s.repo.QueryByName(name)
	if err != nil {
		return nil, historyOutput{}, fmt.Errorf("failed to query history: %w", err)
	}

	out := historyOutput{Name: name, Count: len(points), Points: make([]historyPoint, 0, len(points))}
	for _, p := range points {
		out.Points = append(out.Points, historyPoint{
			RecordedAt: models.FormatTime(p.RecordedAt),
			BMI:        p.BMI,
			Category:   p.Category,
		})
	}
	if len(points) == 0 {
		out.Message = form.MsgNoHistory
		return nil, out, nil
	}
	out.Message = fmt.Sprintf("%d measurements for %s", len(points), name)

	if !input.IncludeChart {
		return nil, out, nil
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, name, points); err != nil {
		return nil, historyOutput{}, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: out.Message},
			&mcp.ImageContent{Data: buf.Bytes(), MIMEType: "image/png"},
		},
	}, out, nil
}

func (s *Server) handleListPeople(ctx context.Context, req *mcp.CallToolRequest, input listPeopleInput) (*mcp.CallToolResult, listPeopleOutput, error) {
	names, err := s.repo.ListNames()
	if err != nil {
		return nil, listPeopleOutput{}, fmt.Errorf("failed to list people: %w", err)
	}
	return nil, listPeopleOutput{People: names, Count: len(names)}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := models.ParseTime(s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid recorded_at %q: use RFC 3339 or YYYY-MM-DD HH:MM:SS", s)
}
