// Package export serializes parsed sections to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mskaar/ordrecsv/internal/order"
)

// CombinedFileName is the aggregate output holding every section's rows.
const CombinedFileName = "combined_data.csv"

// utf8BOM is prepended to new files so spreadsheet tools detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"Pos", "Antall", "Navn"}

// Writer writes per-section and combined CSV files into one directory.
type Writer struct {
	outDir string
}

// NewWriter creates a CSV writer targeting the given directory.
func NewWriter(outDir string) *Writer {
	return &Writer{outDir: outDir}
}

// WriteSections writes one CSV per section that has rows, then the combined
// file. A section file that already exists (prior run, repeated section
// name) is appended to without a second header; the combined file is always
// rewritten from scratch. Zero sections is valid and yields a header-only
// combined file. Returns the paths of the written per-section files.
func (w *Writer) WriteSections(sections []order.Section) ([]string, error) {
	var written []string

	for i := range sections {
		if !sections[i].HasRows() {
			continue
		}
		path, err := w.writeSectionFile(&sections[i])
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if err := w.writeCombined(sections); err != nil {
		return written, err
	}

	return written, nil
}

// CombinedPath returns the location of the combined output file.
func (w *Writer) CombinedPath() string {
	return filepath.Join(w.outDir, CombinedFileName)
}

func (w *Writer) writeSectionFile(section *order.Section) (string, error) {
	name := SanitizeFilename(section.Name+"_data") + ".csv"
	path := filepath.Join(w.outDir, name)

	_, statErr := os.Stat(path)
	exists := statErr == nil

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if !exists {
		if _, err := f.Write(utf8BOM); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	cw := csv.NewWriter(f)
	if !exists {
		if err := cw.Write(header); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := writeRows(cw, section); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) writeCombined(sections []order.Section) error {
	path := w.CombinedPath()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	for i := range sections {
		if err := writeRows(cw, &sections[i]); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeRows(cw *csv.Writer, section *order.Section) error {
	for _, table := range section.Tables {
		for _, row := range table.Rows {
			if err := cw.Write([]string{row.Pos, row.Quantity, row.Name}); err != nil {
				return err
			}
		}
	}
	return nil
}

// SanitizeFilename replaces every rune other than letters, digits, spaces,
// and underscores with an underscore and trims surrounding whitespace.
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			return r
		}
		return '_'
	}, name)
	return strings.TrimSpace(sanitized)
}
