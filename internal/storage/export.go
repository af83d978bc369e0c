// ABOUTME: Export and import functionality for BMI data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats for any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/bmi/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for BMI data.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	Measurements []*models.Measurement `json:"measurements" yaml:"measurements"`
}

// GetAllData retrieves all data for export, oldest first.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectAllData(d)
}

// ImportData appends every measurement in data. IDs are reassigned.
func (d *DB) ImportData(data *ExportData) error {
	return importAll(d, data)
}

// GetAllData retrieves all data for export, oldest first.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return collectAllData(s)
}

// ImportData appends every measurement in data. IDs are reassigned.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return importAll(s, data)
}

func collectAllData(r Repository) (*ExportData, error) {
	measurements, err := r.ListMeasurements(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}

	// Export in insertion-friendly order so a re-import keeps the timeline.
	for i, j := 0, len(measurements)-1; i < j; i, j = i+1, j-1 {
		measurements[i], measurements[j] = measurements[j], measurements[i]
	}
	if measurements == nil {
		measurements = []*models.Measurement{}
	}

	return &ExportData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		Tool:         "bmi",
		Measurements: measurements,
	}, nil
}

func importAll(r Repository, data *ExportData) error {
	for _, m := range data.Measurements {
		if err := validateImported(m); err != nil {
			return fmt.Errorf("import measurement %d: %w", m.ID, err)
		}
		copied := *m
		copied.ID = 0
		if err := r.AppendMeasurement(&copied); err != nil {
			return fmt.Errorf("import measurement: %w", err)
		}
	}
	return nil
}

// validateImported rejects records that could never have been written by
// the form, keeping the stored bmi/category consistent with weight/height.
func validateImported(m *models.Measurement) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("empty name")
	}
	if m.Age <= 0 || m.WeightKg <= 0 || m.HeightM <= 0 {
		return fmt.Errorf("non-positive age, weight or height")
	}
	if m.RecordedAt.IsZero() {
		return fmt.Errorf("missing recorded_at")
	}
	bmi, category := models.Evaluate(m.WeightKg, m.HeightM)
	if bmi != m.BMI || category != m.Category {
		return fmt.Errorf("bmi %v (%s) does not match weight/height (%v %s)", m.BMI, m.Category, bmi, category)
	}
	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&data)
}

type yamlMeasurement struct {
	ID         int64   `yaml:"id"`
	Age        int     `yaml:"age"`
	WeightKg   float64 `yaml:"weight_kg"`
	HeightM    float64 `yaml:"height_m"`
	BMI        float64 `yaml:"bmi"`
	Category   string  `yaml:"category"`
	RecordedAt string  `yaml:"recorded_at"`
}

// ExportYAML exports all data as YAML with measurements grouped by name.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                       `yaml:"version"`
		ExportedAt string                       `yaml:"exported_at"`
		Tool       string                       `yaml:"tool"`
		People     map[string][]yamlMeasurement `yaml:"people"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		People:     make(map[string][]yamlMeasurement),
	}

	for _, m := range data.Measurements {
		yamlData.People[m.Name] = append(yamlData.People[m.Name], yamlMeasurement{
			ID:         m.ID,
			Age:        m.Age,
			WeightKg:   m.WeightKg,
			HeightM:    m.HeightM,
			BMI:        m.BMI,
			Category:   string(m.Category),
			RecordedAt: models.FormatTime(m.RecordedAt),
		})
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports measurements as one table per person, oldest first.
// When name is set only that person's section is written.
func ExportMarkdown(r Repository, name *string, since *time.Time) (string, error) {
	measurements, err := r.ListMeasurements(name, 0)
	if err != nil {
		return "", err
	}

	grouped := make(map[string][]*models.Measurement)
	for i := len(measurements) - 1; i >= 0; i-- {
		m := measurements[i]
		if since != nil && m.RecordedAt.Before(*since) {
			continue
		}
		grouped[m.Name] = append(grouped[m.Name], m)
	}

	names := make([]string, 0, len(grouped))
	for n := range grouped {
		names = append(names, n)
	}
	sort.Strings(names)

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# BMI Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, n := range names {
		sb.WriteString(fmt.Sprintf("## %s\n\n", n))
		sb.WriteString("| Date | BMI | Category | Weight | Height | Age |\n")
		sb.WriteString("|------|-----|----------|--------|--------|-----|\n")
		for _, m := range grouped[n] {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %g kg | %g m | %d |\n",
				models.FormatTime(m.RecordedAt),
				models.FormatBMI(m.BMI),
				m.Category,
				m.WeightKg,
				m.HeightM,
				m.Age))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
