package sensitivity

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Category,Pre-Model Correlation,Post-Model Importance (RF)
Transportation,0.12,0.28
Food,0.08,0.21
`

func TestParseBasic(t *testing.T) {
	tbl, err := Parse([]byte(sampleCSV), "test.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(tbl.Records))
	}
	r := tbl.Records[0]
	if r.Category != "Transportation" || r.PreModelCorrelation != 0.12 || r.PostModelImportance != 0.28 {
		t.Fatalf("unexpected first record: %+v", r)
	}
	if tbl.Source != "test.csv" {
		t.Fatalf("source not carried: %q", tbl.Source)
	}
}

func TestParseUnnamedFirstColumn(t *testing.T) {
	for _, header := range []string{
		",Pre-Model Correlation,Post-Model Importance (RF)",
		"Unnamed: 0,Pre-Model Correlation,Post-Model Importance (RF)",
	} {
		csvData := header + "\nFood,0.08,0.21\n"
		tbl, err := Parse([]byte(csvData), "unnamed.csv")
		if err != nil {
			t.Fatalf("header %q: %v", header, err)
		}
		if len(tbl.Records) != 1 || tbl.Records[0].Category != "Food" {
			t.Fatalf("header %q: unexpected records %+v", header, tbl.Records)
		}
	}
}

func TestParseMissingColumnsIsFatal(t *testing.T) {
	csvData := "Category,Pre-Model Correlation\nFood,0.08\n"
	_, err := Parse([]byte(csvData), "short.csv")
	if err == nil {
		t.Fatalf("expected error for missing column")
	}
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnsError, got %T: %v", err, err)
	}
	if len(mce.Columns) != 1 || mce.Columns[0] != ColImportance {
		t.Fatalf("expected missing %q, got %v", ColImportance, mce.Columns)
	}
	if !strings.Contains(err.Error(), ColImportance) {
		t.Fatalf("error message should name the column: %q", err.Error())
	}
}

func TestParseUnparseableNumericBecomesZero(t *testing.T) {
	csvData := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nFood,n/a,0.21\nHousing,0.03,\n"
	tbl, err := Parse([]byte(csvData), "dirty.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Records[0].PreModelCorrelation != 0 {
		t.Fatalf("expected coerced 0, got %v", tbl.Records[0].PreModelCorrelation)
	}
	if tbl.Records[1].PostModelImportance != 0 {
		t.Fatalf("expected coerced 0, got %v", tbl.Records[1].PostModelImportance)
	}
}

func TestParseIgnoresExtraColumns(t *testing.T) {
	csvData := "Category,Extra,Pre-Model Correlation,Post-Model Importance (RF),More\nFood,x,0.08,0.21,y\n"
	tbl, err := Parse([]byte(csvData), "extra.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := tbl.Records[0]
	if r.PreModelCorrelation != 0.08 || r.PostModelImportance != 0.21 {
		t.Fatalf("wrong columns picked: %+v", r)
	}
}

func TestParseCacheByContent(t *testing.T) {
	a, err := Parse([]byte(sampleCSV), "cache.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse([]byte(sampleCSV), "cache.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a != b {
		t.Fatalf("expected cache hit to return the same table")
	}
	// same bytes under a new name parse independently with that source
	c, err := Parse([]byte(sampleCSV), "renamed.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Source != "renamed.csv" {
		t.Fatalf("expected renamed source, got %q", c.Source)
	}
	if len(c.Records) != len(a.Records) {
		t.Fatalf("records diverged across sources")
	}
}

func TestParseCacheUnaffectedByOtherSources(t *testing.T) {
	// caching the same bytes under one name must not change what a
	// repeated load under another name returns
	csvData := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nMedical,0.02,0.08\n"
	if _, err := Parse([]byte(csvData), "first.csv"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, err := Parse([]byte(csvData), "second.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse([]byte(csvData), "second.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a != b {
		t.Fatalf("repeated load of the same source should hit the cache")
	}
	if a.Source != "second.csv" {
		t.Fatalf("source not carried: %q", a.Source)
	}
}

func TestParseCacheEditedContentReparses(t *testing.T) {
	one := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nFood,0.08,0.21\n"
	two := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nFood,0.08,0.33\n"
	a, err := Parse([]byte(one), "edited.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	b, err := Parse([]byte(two), "edited.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a == b {
		t.Fatalf("changed bytes must not hit the cache")
	}
	if b.Records[0].PostModelImportance != 0.33 {
		t.Fatalf("stale records after edit: %+v", b.Records[0])
	}
}

func TestDemoTable(t *testing.T) {
	d := Demo()
	if len(d.Records) != 6 {
		t.Fatalf("expected 6 demo rows, got %d", len(d.Records))
	}
	if d.Source != DemoSource {
		t.Fatalf("unexpected demo source %q", d.Source)
	}
	if got := d.MaxImportance(); got != 0.28 {
		t.Fatalf("expected max importance 0.28, got %v", got)
	}
}

func TestLoadFallsBackToDemo(t *testing.T) {
	tbl, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Source != DemoSource {
		t.Fatalf("expected demo fallback, got %q", tbl.Source)
	}
}

func TestLoadCandidateOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "results"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "figures"), 0o755); err != nil {
		t.Fatal(err)
	}
	resultsCSV := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nFromResults,0.1,0.2\n"
	figuresCSV := "Category,Pre-Model Correlation,Post-Model Importance (RF)\nFromFigures,0.1,0.2\n"
	if err := os.WriteFile(filepath.Join(dir, "results", DefaultFileName), []byte(resultsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "figures", DefaultFileName), []byte(figuresCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl.Records) != 1 || tbl.Records[0].Category != "FromResults" {
		t.Fatalf("expected results/ to win, got %+v", tbl.Records)
	}
}

func TestLoadExplicitPathAfterCandidates(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "upload.csv")
	if err := os.WriteFile(explicit, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(dir, explicit)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Source != explicit {
		t.Fatalf("expected explicit file to load, got %q", tbl.Source)
	}
}

func TestLoadFileMissingColumnsSurfaces(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "results")
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	bad := "Category,Pre-Model Correlation\nFood,0.08\n"
	if err := os.WriteFile(filepath.Join(p, DefaultFileName), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir, "")
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("expected MissingColumnsError from candidate file, got %v", err)
	}
}
