// ABOUTME: Measurement operations for SQLite storage.
// ABOUTME: Implements Repository append and read methods against bmi_data.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/bmi/internal/models"
)

// AppendMeasurement stores a new measurement and writes the assigned ID back.
func (d *DB) AppendMeasurement(m *models.Measurement) error {
	query := `
		INSERT INTO bmi_data (name, age, weight, height, bmi, category, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := d.db.Exec(query,
		m.Name,
		m.Age,
		m.WeightKg,
		m.HeightM,
		m.BMI,
		string(m.Category),
		models.FormatTime(m.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("append measurement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("append measurement: %w", err)
	}
	m.ID = id
	return nil
}

// QueryByName returns the BMI history for an exact name, oldest first.
func (d *DB) QueryByName(name string) ([]models.HistoryPoint, error) {
	query := `
		SELECT date, bmi, category
		FROM bmi_data
		WHERE name = ?
		ORDER BY date ASC, id ASC
	`
	rows, err := d.db.Query(query, name)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	points := []models.HistoryPoint{}
	for rows.Next() {
		var date string
		var category sql.NullString
		var p models.HistoryPoint
		if err := rows.Scan(&date, &p.BMI, &category); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		p.Category = models.Category(category.String)
		p.RecordedAt, err = models.ParseTime(date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// ListMeasurements retrieves measurements with optional filtering by name.
// Results are sorted by date descending (most recent first).
func (d *DB) ListMeasurements(name *string, limit int) ([]*models.Measurement, error) {
	var query string
	var args []interface{}

	if name != nil {
		query = `
			SELECT id, name, age, weight, height, bmi, category, date
			FROM bmi_data
			WHERE name = ?
			ORDER BY date DESC, id DESC
		`
		args = append(args, *name)
	} else {
		query = `
			SELECT id, name, age, weight, height, bmi, category, date
			FROM bmi_data
			ORDER BY date DESC, id DESC
		`
	}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	return scanMeasurements(rows)
}

// ListNames returns every distinct name in the table, sorted.
func (d *DB) ListNames() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT name FROM bmi_data ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	return names, rows.Err()
}

// CountMeasurements returns the number of stored rows.
func (d *DB) CountMeasurements() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM bmi_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count measurements: %w", err)
	}
	return n, nil
}

// scanMeasurements scans multiple rows into a slice of Measurements.
// Nullable columns tolerate rows written by older tools.
func scanMeasurements(rows *sql.Rows) ([]*models.Measurement, error) {
	var measurements []*models.Measurement

	for rows.Next() {
		var m models.Measurement
		var name, category, date sql.NullString
		var age sql.NullInt64
		var weight, height, bmi sql.NullFloat64

		err := rows.Scan(&m.ID, &name, &age, &weight, &height, &bmi, &category, &date)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}

		m.Name = name.String
		m.Age = int(age.Int64)
		m.WeightKg = weight.Float64
		m.HeightM = height.Float64
		m.BMI = bmi.Float64
		m.Category = models.Category(category.String)
		if date.Valid {
			m.RecordedAt, _ = models.ParseTime(date.String)
		}

		measurements = append(measurements, &m)
	}

	return measurements, rows.Err()
}
