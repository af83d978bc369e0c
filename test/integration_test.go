// ABOUTME: Integration tests for bmi CLI.
// ABOUTME: Tests full workflow and exit codes from CLI commands.
package test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	bmiBinary := filepath.Join(projectRoot, "bmi")

	buildCmd := exec.Command("go", "build", "-o", bmiBinary, "./cmd/bmi")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(bmiBinary)

	// Use temp data and config directories
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	run := func(args ...string) (string, int, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(bmiBinary, fullArgs...)
		cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"))
		output, err := cmd.CombinedOutput()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitCode(), nil
		}
		return string(output), 0, err
	}

	// Record measurements
	output, code, err := run("calc", "Ada", "36", "70", "1.75")
	if err != nil || code != 0 {
		t.Fatalf("Failed to calc: %v (exit %d)\n%s", err, code, output)
	}
	if !strings.Contains(output, "BMI: 22.86 (Normal)") {
		t.Errorf("Expected 'BMI: 22.86 (Normal)' in output, got: %s", output)
	}

	output, code, _ = run("calc", "Grace", "45", "90", "1.80")
	if code != 0 || !strings.Contains(output, "BMI: 27.78 (Overweight)") {
		t.Errorf("Expected 'BMI: 27.78 (Overweight)', got exit %d: %s", code, output)
	}

	// Invalid input is a notice with exit 1 and no duplicate error line
	output, code, _ = run("calc", "Ada", "abc", "70", "1.75")
	if code != 1 {
		t.Errorf("Expected exit 1 for invalid input, got %d", code)
	}
	if !strings.Contains(output, "Input Error") || strings.Contains(output, "Error: invalid input") {
		t.Errorf("Unexpected invalid input output: %s", output)
	}

	// Unknown name reports No Data and exits 0
	output, code, _ = run("history", "Nobody")
	if code != 0 || !strings.Contains(output, "No history found for this user.") {
		t.Errorf("Expected No Data notice with exit 0, got exit %d: %s", code, output)
	}

	// History writes a chart
	chartPath := filepath.Join(tmpDir, "ada.png")
	output, code, _ = run("history", "Ada", "-o", chartPath)
	if code != 0 {
		t.Fatalf("Failed to chart history (exit %d): %s", code, output)
	}
	if _, err := os.Stat(chartPath); err != nil {
		t.Errorf("Expected chart file at %s: %v", chartPath, err)
	}

	// Listing
	output, code, _ = run("list")
	if code != 0 || !strings.Contains(output, "Grace") || !strings.Contains(output, "Ada") {
		t.Errorf("Expected both names in list output, got exit %d: %s", code, output)
	}

	output, _, _ = run("people")
	if !strings.Contains(output, "Ada") || !strings.Contains(output, "Grace") {
		t.Errorf("Expected both names in people output, got: %s", output)
	}

	// Store file keeps its historical name
	if _, err := os.Stat(filepath.Join(dataDir, "bmi_users.db")); err != nil {
		t.Errorf("Expected bmi_users.db in data dir: %v", err)
	}
}
