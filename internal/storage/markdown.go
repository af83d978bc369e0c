// ABOUTME: MarkdownStore for file-based BMI storage, one markdown file per measurement.
// ABOUTME: Frontmatter carries the record; files are written atomically and never rewritten.

package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/harperreed/bmi/internal/models"
	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// yamlFrontmatter decodes with yaml.v3, the same encoder renderFrontmatter uses.
var yamlFrontmatter = frontmatter.NewFormat(frontmatterDelim, frontmatterDelim, yaml.Unmarshal)

// MarkdownStore provides file-based storage for measurements using markdown files.
type MarkdownStore struct {
	dataDir string
	nextID  int64
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
// The next ID continues after the highest ID already on disk.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &MarkdownStore{dataDir: dataDir}

	var maxID int64
	err := s.walkMeasurementFiles(func(_ string, m *models.Measurement) error {
		if m.ID > maxID {
			maxID = m.ID
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan measurements: %w", err)
	}
	s.nextID = maxID + 1

	return s, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

// measurementsDir returns the path to the measurements directory.
func (s *MarkdownStore) measurementsDir() string {
	return filepath.Join(s.dataDir, "measurements")
}

// measurementFilePath returns the path for a measurement file.
// Format: measurements/<name-slug>/YYYY-MM-DD-HHMMSS-<id>.md.
func (s *MarkdownStore) measurementFilePath(m *models.Measurement) string {
	stamp := m.RecordedAt.Format("2006-01-02-150405")
	return filepath.Join(s.measurementsDir(), Slugify(m.Name),
		fmt.Sprintf("%s-%d.md", stamp, m.ID))
}

// measurementFrontmatter holds the YAML frontmatter of a measurement file.
type measurementFrontmatter struct {
	ID         int64   `yaml:"id"`
	Name       string  `yaml:"name"`
	Age        int     `yaml:"age"`
	WeightKg   float64 `yaml:"weight_kg"`
	HeightM    float64 `yaml:"height_m"`
	BMI        float64 `yaml:"bmi"`
	Category   string  `yaml:"category"`
	RecordedAt string  `yaml:"recorded_at"`
}

func measurementToFrontmatter(m *models.Measurement) measurementFrontmatter {
	return measurementFrontmatter{
		ID:         m.ID,
		Name:       m.Name,
		Age:        m.Age,
		WeightKg:   m.WeightKg,
		HeightM:    m.HeightM,
		BMI:        m.BMI,
		Category:   string(m.Category),
		RecordedAt: models.FormatTime(m.RecordedAt),
	}
}

func measurementFromFrontmatter(fm *measurementFrontmatter) (*models.Measurement, error) {
	recordedAt, err := models.ParseTime(fm.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at %q: %w", fm.RecordedAt, err)
	}
	return &models.Measurement{
		ID:         fm.ID,
		Name:       fm.Name,
		Age:        fm.Age,
		WeightKg:   fm.WeightKg,
		HeightM:    fm.HeightM,
		BMI:        fm.BMI,
		Category:   models.Category(fm.Category),
		RecordedAt: recordedAt,
	}, nil
}

// AppendMeasurement writes a new measurement file and assigns its ID.
func (s *MarkdownStore) AppendMeasurement(m *models.Measurement) error {
	m.ID = s.nextID

	fm := measurementToFrontmatter(m)
	body := fmt.Sprintf("\nBMI %s (%s)\n", models.FormatBMI(m.BMI), m.Category)
	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		m.ID = 0
		return fmt.Errorf("render measurement file: %w", err)
	}

	path := s.measurementFilePath(m)
	if err := atomicWrite(path, content); err != nil {
		m.ID = 0
		return fmt.Errorf("append measurement: %w", err)
	}

	s.nextID++
	return nil
}

// QueryByName returns the BMI history for an exact name, oldest first.
func (s *MarkdownStore) QueryByName(name string) ([]models.HistoryPoint, error) {
	measurements, err := s.collect(&name)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	sortAscending(measurements)

	points := make([]models.HistoryPoint, 0, len(measurements))
	for _, m := range measurements {
		points = append(points, m.Point())
	}
	return points, nil
}

// ListMeasurements returns measurements newest first, optionally by name.
func (s *MarkdownStore) ListMeasurements(name *string, limit int) ([]*models.Measurement, error) {
	measurements, err := s.collect(name)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	sortAscending(measurements)

	// Reverse into newest first
	for i, j := 0, len(measurements)-1; i < j; i, j = i+1, j-1 {
		measurements[i], measurements[j] = measurements[j], measurements[i]
	}

	if limit > 0 && len(measurements) > limit {
		measurements = measurements[:limit]
	}
	return measurements, nil
}

// ListNames returns the distinct names found in measurement files, sorted.
func (s *MarkdownStore) ListNames() ([]string, error) {
	seen := make(map[string]bool)
	err := s.walkMeasurementFiles(func(_ string, m *models.Measurement) error {
		seen[m.Name] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CountMeasurements returns the number of measurement files.
func (s *MarkdownStore) CountMeasurements() (int, error) {
	n := 0
	err := s.walkMeasurementFiles(func(_ string, _ *models.Measurement) error {
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count measurements: %w", err)
	}
	return n, nil
}

// collect reads every measurement, keeping only exact name matches when
// name is set. Slugs can collide, so the frontmatter name is authoritative.
func (s *MarkdownStore) collect(name *string) ([]*models.Measurement, error) {
	var out []*models.Measurement
	err := s.walkMeasurementFiles(func(_ string, m *models.Measurement) error {
		if name != nil && m.Name != *name {
			return nil
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

// walkMeasurementFiles walks all measurement markdown files and calls fn for each.
func (s *MarkdownStore) walkMeasurementFiles(fn func(path string, m *models.Measurement) error) error {
	dir := s.measurementsDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		m, err := readMeasurementFile(path)
		if err != nil {
			return err
		}
		return fn(path, m)
	})
}

// readMeasurementFile reads a measurement from a markdown file.
func readMeasurementFile(path string) (*models.Measurement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fm measurementFrontmatter
	if _, err := parseFrontmatter(data, &fm); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, fmt.Errorf("no frontmatter in %s", path)
		}
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}

	return measurementFromFrontmatter(&fm)
}

func sortAscending(ms []*models.Measurement) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].RecordedAt.Equal(ms[j].RecordedAt) {
			return ms[i].ID < ms[j].ID
		}
		return ms[i].RecordedAt.Before(ms[j].RecordedAt)
	})
}

// parseFrontmatter decodes the YAML frontmatter of doc into v and returns
// the body. A document without frontmatter yields frontmatter.ErrNotFound.
func parseFrontmatter(doc []byte, v interface{}) ([]byte, error) {
	return frontmatter.MustParse(bytes.NewReader(doc), v, yamlFrontmatter)
}

// renderFrontmatter renders v as YAML frontmatter followed by body.
func renderFrontmatter(v interface{}, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString(frontmatterDelim + "\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// atomicWrite writes data to a temp file in the target directory, syncs it,
// and renames it into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("set file permissions: %w", err)
	}
	return os.Rename(tmpName, path)
}

// Slugify lower-cases s and replaces every run of non-alphanumeric
// characters with a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "unnamed"
	}
	return slug
}
