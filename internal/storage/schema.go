// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the bmi_data table holding one row per measurement.
package storage

// initSchema creates the schema if it does not exist yet. The table layout
// matches files written by earlier versions, so it is never migrated.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bmi_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		age INTEGER,
		weight REAL,
		height REAL,
		bmi REAL,
		category TEXT,
		date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_bmi_data_name_date ON bmi_data(name, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
