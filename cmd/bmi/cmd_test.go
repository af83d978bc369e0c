// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests command flags, aliases, and end-to-end runs against temp stores.
package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/bmi/internal/form"
	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"Ada", 10, "Ada"},
		{"Grace", 5, "Grace"},
		{"Ada Lovelace of London", 10, "Ada Lov..."},
		{"Zoë Ångström-Müller", 10, "Zoë Ång..."},
		{"李小龍王大明", 5, "李小..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Ada", 6); got != "Ada   " {
		t.Errorf("padRight = %q, want %q", got, "Ada   ")
	}
	if got := padRight("Lovelace", 3); got != "Lovelace" {
		t.Errorf("padRight = %q, want %q", got, "Lovelace")
	}
	if got := padRight("Zoë", 5); got != "Zoë  " {
		t.Errorf("padRight = %q, want %q", got, "Zoë  ")
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "bmi" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "bmi")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}

	for _, name := range []string{"data-dir", "backend", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"calc", "history", "list", "people", "export", "import", "migrate", "gui", "mcp", "version"}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestCalcCmdFlags(t *testing.T) {
	for _, name := range []string{"name", "age", "weight", "height"} {
		if calcCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on calc command", name)
		}
	}
}

func TestCalcCmdAliases(t *testing.T) {
	aliases := map[string]bool{}
	for _, a := range calcCmd.Aliases {
		aliases[a] = true
	}
	if !aliases["add"] || !aliases["c"] {
		t.Errorf("calc aliases = %v, want add and c", calcCmd.Aliases)
	}
}

func TestListCmdFlags(t *testing.T) {
	limitFlag := listCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on list command")
	}
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
	if listCmd.Flags().Lookup("name") == nil {
		t.Error("Expected --name flag on list command")
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": true, "yaml": true, "markdown": true}
	if len(exportCmd.ValidArgs) != len(expected) {
		t.Fatalf("ValidArgs = %v", exportCmd.ValidArgs)
	}
	for _, arg := range exportCmd.ValidArgs {
		if !expected[arg] {
			t.Errorf("Unexpected valid arg %q", arg)
		}
	}
}

// resetFlags restores every package-level flag variable to its default.
func resetFlags() {
	dataDirFlag, backendFlag, verboseFlag = "", "", false
	calcName, calcAge, calcWeight, calcHeight = "", "", "", ""
	historyOutput, historyOpen = "", false
	listName, listLimit = "", 20
	exportOutput, exportName, exportSince = "", "", ""
	migrateTo, migrateDest, migrateDryRun, migrateForce = "markdown", "", false, false
}

// setupTestCLI sets up a test database for CLI testing.
// It points XDG_DATA_HOME and XDG_CONFIG_HOME at a temp directory.
func setupTestCLI(t *testing.T) (*storage.DB, string) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bmi-cli-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	resetFlags()

	// Pre-open the database to create the schema
	testDB, err := storage.Open(filepath.Join(tmpDir, "bmi", storage.DBFileName))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to open database: %v", err)
	}

	t.Cleanup(func() {
		closeStorage()
		testDB.Close()
		os.RemoveAll(tmpDir)
	})

	return testDB, tmpDir
}

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCalcCmdWithDB(t *testing.T) {
	testDB, _ := setupTestCLI(t)

	if err := run("calc", "Ada", "36", "70", "1.75"); err != nil {
		t.Fatalf("calc command failed: %v", err)
	}

	ms, err := testDB.ListMeasurements(nil, 0)
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(ms))
	}
	if ms[0].BMI != 22.86 || ms[0].Category != models.CategoryNormal {
		t.Errorf("stored %v %s, want 22.86 Normal", ms[0].BMI, ms[0].Category)
	}
}

func TestCalcCmdWithFlags(t *testing.T) {
	testDB, _ := setupTestCLI(t)

	err := run("calc", "--name", "Grace Hopper", "--age", "45", "--weight", "90", "--height", "1.80")
	if err != nil {
		t.Fatalf("calc command failed: %v", err)
	}

	points, err := testDB.QueryByName("Grace Hopper")
	if err != nil {
		t.Fatalf("QueryByName failed: %v", err)
	}
	if len(points) != 1 || points[0].BMI != 27.78 {
		t.Errorf("points = %v, want one point at 27.78", points)
	}
}

func TestCalcCmdInvalidInput(t *testing.T) {
	testDB, _ := setupTestCLI(t)

	err := run("calc", "Ada", "thirty", "70", "1.75")
	if !errors.Is(err, form.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	n, _ := testDB.CountMeasurements()
	if n != 0 {
		t.Errorf("Expected 0 measurements after invalid input, got %d", n)
	}
}

func TestCalcCmdWrongArgCount(t *testing.T) {
	setupTestCLI(t)

	if err := run("calc", "Ada", "36"); err == nil {
		t.Error("Expected error for two positional arguments")
	}
}

func TestHistoryCmdWritesChart(t *testing.T) {
	testDB, tmpDir := setupTestCLI(t)

	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	for i, w := range []float64{70, 69, 68} {
		m := models.NewMeasurement("Ada", 36, w, 1.75).WithRecordedAt(base.Add(time.Duration(i) * 24 * time.Hour))
		if err := testDB.AppendMeasurement(m); err != nil {
			t.Fatalf("AppendMeasurement failed: %v", err)
		}
	}

	out := filepath.Join(tmpDir, "ada.png")
	if err := run("history", "Ada", "-o", out); err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected chart file: %v", err)
	}
}

func TestHistoryCmdSameSecondRecords(t *testing.T) {
	testDB, tmpDir := setupTestCLI(t)

	at := time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local)
	for _, w := range []float64{70, 71} {
		if err := testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, w, 1.75).WithRecordedAt(at)); err != nil {
			t.Fatalf("AppendMeasurement failed: %v", err)
		}
	}

	out := filepath.Join(tmpDir, "ada.png")
	if err := run("history", "Ada", "-o", out); err != nil {
		t.Fatalf("history command failed for same-second records: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected chart file: %v", err)
	}
}

func TestHistoryCmdDefaultChartDir(t *testing.T) {
	testDB, tmpDir := setupTestCLI(t)

	if err := testDB.AppendMeasurement(models.NewMeasurement("Ada Lovelace", 36, 70, 1.75)); err != nil {
		t.Fatalf("AppendMeasurement failed: %v", err)
	}

	if err := run("history", "Ada", "Lovelace"); err != nil {
		t.Fatalf("history command failed: %v", err)
	}

	want := filepath.Join(tmpDir, "bmi", "charts", "ada-lovelace-bmi-history.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Expected chart at %s: %v", want, err)
	}
}

func TestHistoryCmdNoData(t *testing.T) {
	setupTestCLI(t)

	if err := run("history", "Nobody"); err != nil {
		t.Errorf("No Data should not be an error, got %v", err)
	}
}

func TestHistoryCmdRequiresName(t *testing.T) {
	setupTestCLI(t)

	err := run("history")
	if !errors.Is(err, form.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestListAndPeopleCmdWithDB(t *testing.T) {
	testDB, _ := setupTestCLI(t)

	testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, 70, 1.75))
	testDB.AppendMeasurement(models.NewMeasurement("Grace", 45, 90, 1.80))

	if err := run("list"); err != nil {
		t.Errorf("list command failed: %v", err)
	}
	if err := run("list", "--name", "Ada", "-n", "1"); err != nil {
		t.Errorf("list --name command failed: %v", err)
	}
	if err := run("people"); err != nil {
		t.Errorf("people command failed: %v", err)
	}
}

func TestListCmdEmptyDB(t *testing.T) {
	setupTestCLI(t)

	if err := run("list"); err != nil {
		t.Errorf("list on empty db failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	testDB, tmpDir := setupTestCLI(t)

	testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, 70, 1.75))
	testDB.AppendMeasurement(models.NewMeasurement("Grace", 45, 90, 1.80))

	backup := filepath.Join(tmpDir, "backup.json")
	if err := run("export", "json", "--output", backup); err != nil {
		t.Fatalf("export command failed: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("Expected export file: %v", err)
	}

	exportOutput = ""
	other := filepath.Join(tmpDir, "other")
	if err := run("import", backup, "--data-dir", other); err != nil {
		t.Fatalf("import command failed: %v", err)
	}

	imported, err := storage.Open(filepath.Join(other, storage.DBFileName))
	if err != nil {
		t.Fatalf("Failed to open imported db: %v", err)
	}
	defer imported.Close()

	n, _ := imported.CountMeasurements()
	if n != 2 {
		t.Errorf("Expected 2 imported measurements, got %d", n)
	}
}

func TestExportFormats(t *testing.T) {
	testDB, _ := setupTestCLI(t)
	testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, 70, 1.75))

	for _, args := range [][]string{
		{"export", "yaml"},
		{"export", "markdown"},
		{"export", "markdown", "--name", "Ada", "--since", "2020-01-01"},
	} {
		if err := run(args...); err != nil {
			t.Errorf("%v failed: %v", args, err)
		}
		resetFlags()
	}
}

func TestExportInvalidFormat(t *testing.T) {
	setupTestCLI(t)

	if err := run("export", "invalid"); err == nil {
		t.Error("Expected error for invalid export format")
	}
}

func TestExportMarkdownWithInvalidSince(t *testing.T) {
	setupTestCLI(t)

	if err := run("export", "markdown", "--since", "01/01/2025"); err == nil {
		t.Error("Expected error for invalid --since date")
	}
}

func TestImportCmdFileNotFound(t *testing.T) {
	setupTestCLI(t)

	if err := run("import", "/nonexistent/backup.json"); err == nil {
		t.Error("Expected error for missing import file")
	}
}

func TestMigrateCmdToMarkdown(t *testing.T) {
	testDB, tmpDir := setupTestCLI(t)

	testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, 70, 1.75))
	testDB.AppendMeasurement(models.NewMeasurement("Ada", 36, 71, 1.75))

	dest := filepath.Join(tmpDir, "notes")
	if err := run("migrate", "--to", "markdown", "--dest", dest); err != nil {
		t.Fatalf("migrate command failed: %v", err)
	}

	md, err := storage.NewMarkdownStore(dest)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	n, _ := md.CountMeasurements()
	if n != 2 {
		t.Errorf("Expected 2 migrated measurements, got %d", n)
	}
}

func TestMigrateCmdDryRun(t *testing.T) {
	_, tmpDir := setupTestCLI(t)

	dest := filepath.Join(tmpDir, "notes")
	if err := run("migrate", "--dest", dest, "--dry-run"); err != nil {
		t.Fatalf("migrate --dry-run failed: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Dry run should not create the destination")
	}
}

func TestMigrateCmdRefusesNonEmptyDest(t *testing.T) {
	_, tmpDir := setupTestCLI(t)

	dest := filepath.Join(tmpDir, "notes")
	os.MkdirAll(dest, 0750)
	os.WriteFile(filepath.Join(dest, "keep.txt"), []byte("x"), 0600)

	if err := run("migrate", "--dest", dest); err == nil {
		t.Error("Expected error for non-empty destination")
	}
}

func TestMigrateCmdRequiresDest(t *testing.T) {
	setupTestCLI(t)

	if err := run("migrate"); err == nil {
		t.Error("Expected error without --dest")
	}
}

func TestMarkdownBackendFlag(t *testing.T) {
	_, tmpDir := setupTestCLI(t)

	dir := filepath.Join(tmpDir, "md")
	if err := run("calc", "Ada", "36", "70", "1.75", "--backend", "markdown", "--data-dir", dir); err != nil {
		t.Fatalf("calc with markdown backend failed: %v", err)
	}

	md, err := storage.NewMarkdownStore(dir)
	if err != nil {
		t.Fatalf("NewMarkdownStore failed: %v", err)
	}
	points, _ := md.QueryByName("Ada")
	if len(points) != 1 || points[0].BMI != 22.86 {
		t.Errorf("points = %v, want one point at 22.86", points)
	}
}

func TestUnknownBackendFlag(t *testing.T) {
	setupTestCLI(t)

	if err := run("list", "--backend", "postgres"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestVersionCmdSkipsStorage(t *testing.T) {
	setupTestCLI(t)

	if err := run("version"); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if repo != nil {
		t.Error("version should not open storage")
	}
}
