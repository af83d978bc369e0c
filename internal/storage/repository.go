// ABOUTME: Repository interface for BMI measurement storage.
// ABOUTME: Defines the append-only contract shared by SQLite and markdown backends.
package storage

import (
	"github.com/harperreed/bmi/internal/models"
)

// Repository defines the storage interface for measurements.
// Records are only ever appended; there is no update or delete.
type Repository interface {
	// AppendMeasurement assigns the next ID to m and persists it.
	// The record is durable once the call returns.
	AppendMeasurement(m *models.Measurement) error

	// QueryByName returns every (recorded_at, bmi) pair for an exact name,
	// oldest first. An unknown name yields an empty slice.
	QueryByName(name string) ([]models.HistoryPoint, error)

	// ListMeasurements returns full records, newest first, optionally
	// filtered by exact name. A limit <= 0 means no limit.
	ListMeasurements(name *string, limit int) ([]*models.Measurement, error)

	// ListNames returns the distinct names with at least one record, sorted.
	ListNames() ([]string, error)

	// CountMeasurements returns the total number of stored records.
	CountMeasurements() (int, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
