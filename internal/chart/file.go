// ABOUTME: Renderer that writes history charts to PNG files on disk.
// ABOUTME: Optionally hands the file to the desktop's default image viewer.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/storage"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// FileName is the default chart file name for a person.
func FileName(name string) string {
	return storage.Slugify(name) + "-bmi-history.png"
}

// FileRenderer writes each rendered chart into Dir, or to Path when set.
type FileRenderer struct {
	Dir  string
	Path string
	Open bool
	Log  *zap.Logger

	// LastPath is the file written by the most recent RenderHistory.
	LastPath string

	opener func(path string) error
}

// RenderHistory renders points to a PNG file.
func (r *FileRenderer) RenderHistory(name string, points []models.HistoryPoint) error {
	path := r.Path
	if path == "" {
		path = filepath.Join(r.Dir, FileName(name))
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create chart directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Render(f, name, points); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	r.LastPath = path

	if r.Log != nil {
		r.Log.Debug("wrote chart", zap.String("path", path), zap.Int("points", len(points)))
	}

	if r.Open {
		open := r.opener
		if open == nil {
			open = OpenFile
		}
		if err := open(path); err != nil {
			return fmt.Errorf("open chart: %w", err)
		}
	}
	return nil
}

// OpenFile hands path to the desktop's default viewer. Launcher output is
// discarded so it does not interleave with the CLI's own output.
func OpenFile(path string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenFile(path)
}
