package sensitivity

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultFileName is the CSV produced by the sensitivity comparison run.
const DefaultFileName = "tariff_sensitivity_comparison.csv"

// DemoSource is the Source string reported when the built-in table is used.
const DemoSource = "built-in demo dataset"

// MissingColumnsError reports required columns absent from a CSV header.
// It is the only fatal load failure; everything else falls back or
// recovers locally.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns in data: [%s]", strings.Join(e.Columns, ", "))
}

// Demo returns the fixed six-row fallback table used when no CSV can be
// found. Values match the published sensitivity comparison run.
func Demo() *Table {
	return &Table{
		Source: DemoSource,
		Records: []CategoryRecord{
			{Category: "Transportation", PreModelCorrelation: 0.12, PostModelImportance: 0.28},
			{Category: "Food", PreModelCorrelation: 0.08, PostModelImportance: 0.21},
			{Category: "Housing", PreModelCorrelation: 0.03, PostModelImportance: 0.18},
			{Category: "Apparel", PreModelCorrelation: 0.10, PostModelImportance: 0.14},
			{Category: "Medical", PreModelCorrelation: 0.02, PostModelImportance: 0.08},
			{Category: "All Other Services Goods", PreModelCorrelation: 0.06, PostModelImportance: 0.11},
		},
	}
}

// CandidatePaths lists the locations probed, in order, before falling
// back to an explicit path or the demo table.
func CandidatePaths(baseDir string) []string {
	return []string{
		filepath.Join(baseDir, "results", DefaultFileName),
		filepath.Join(baseDir, DefaultFileName),
		filepath.Join(baseDir, "figures", DefaultFileName),
	}
}

// Load resolves the sensitivity table: candidate paths under baseDir
// first, then explicitPath (a user-chosen file), then the demo table.
// A file that exists but lacks required columns is a hard error; a file
// that simply isn't there is not.
func Load(baseDir, explicitPath string) (*Table, error) {
	defer TimeTrack(time.Now(), "sensitivity load")
	for _, p := range CandidatePaths(baseDir) {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return LoadFile(p)
	}
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err == nil {
			return LoadFile(explicitPath)
		}
		Warnf("sensitivity file %s not readable; using demo data", explicitPath)
	}
	return Demo(), nil
}

// LoadFile reads and parses a single CSV file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, path)
}

// parse cache keyed by content hash and source description; repeated
// loads of the same file (every slider move re-runs the pipeline) skip
// re-parsing, while editing a CSV in place changes the key.
type cacheKey struct {
	sum    [32]byte
	source string
}

var (
	cacheMu sync.RWMutex
	cache   = map[cacheKey]*Table{}
)

// Parse parses CSV bytes into a Table. source is a human-readable
// description carried into Table.Source.
func Parse(data []byte, source string) (*Table, error) {
	key := cacheKey{sum: sha256.Sum256(data), source: source}
	cacheMu.RLock()
	t, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		Debugf("parse cache hit for %s", source)
		return t, nil
	}

	t, err := parseCSV(data, source)
	if err != nil {
		return nil, err
	}
	cacheMu.Lock()
	cache[key] = t
	cacheMu.Unlock()
	return t, nil
}

func parseCSV(data []byte, source string) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: []string{ColCategory, ColCorrelation, ColImportance}}
	}

	header := rows[0]
	// An unnamed or pandas-style "Unnamed: 0" first column is the category index.
	if len(header) > 0 && (header[0] == "" || strings.HasPrefix(header[0], "Unnamed")) {
		header[0] = ColCategory
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, need := range []string{ColCategory, ColCorrelation, ColImportance} {
		if _, ok := idx[need]; !ok {
			missing = append(missing, need)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	ci, pi, ii := idx[ColCategory], idx[ColCorrelation], idx[ColImportance]
	recs := make([]CategoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		recs = append(recs, CategoryRecord{
			Category:            cell(row, ci),
			PreModelCorrelation: coerceFloat(cell(row, pi), source),
			PostModelImportance: coerceFloat(cell(row, ii), source),
		})
	}
	Infof("loaded %d sensitivity rows from %s", len(recs), source)
	return &Table{Records: recs, Source: source}, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// coerceFloat treats unparseable numeric cells as 0.0; recovery is
// local and silent apart from a debug line.
func coerceFloat(s, source string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		Debugf("unparseable numeric cell %q in %s; using 0.0", s, source)
		return 0
	}
	return v
}
