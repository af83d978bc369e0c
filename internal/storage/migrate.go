// ABOUTME: Data migration between BMI storage backends.
// ABOUTME: Copies measurements from source to destination in timeline order.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Measurements int
	People       int
}

// MigrateData copies all measurements from src to dst storage, oldest first,
// so the destination assigns IDs in the same order as the timeline. The
// destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source measurements: %w", err)
	}

	people := make(map[string]bool)
	for _, m := range data.Measurements {
		copied := *m
		copied.ID = 0
		if err := dst.AppendMeasurement(&copied); err != nil {
			return nil, fmt.Errorf("append measurement %d: %w", m.ID, err)
		}
		people[m.Name] = true
		summary.Measurements++
	}
	summary.People = len(people)

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
