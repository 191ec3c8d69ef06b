// tariffreport prints the tariff impact summary headlessly: data
// source, headline and the sorted per-category table.
package main

import (
	"flag"
	"fmt"
	"os"

	"tariffsim/src/impact"
	"tariffsim/src/layout"
	"tariffsim/src/sensitivity"
)

func main() {
	var file, base, layoutPath, logLevel string
	var tariff float64
	flag.StringVar(&file, "file", "", "Path to a sensitivity CSV (default: probe the standard locations)")
	flag.StringVar(&base, "base", ".", "Base directory for the standard CSV locations")
	flag.StringVar(&layoutPath, "layout", "layout.toml", "Optional layout override file")
	flag.Float64Var(&tariff, "tariff", impact.TariffDefault, "Tariff change in percent, clamped to [-10, 10]")
	flag.StringVar(&logLevel, "loglevel", "warn", "Log level: debug|info|warn|error")
	flag.Parse()
	sensitivity.SetLogLevel(logLevel)

	var (
		tbl *sensitivity.Table
		err error
	)
	if file != "" {
		tbl, err = sensitivity.LoadFile(file)
	} else {
		tbl, err = sensitivity.Load(base, "")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lay, err := layout.Load(layoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	rows := impact.Compute(impact.ClampTariff(tariff), tbl)
	for _, line := range reportLines(tbl.Source, rows, lay) {
		fmt.Println(line)
	}
}

// reportLines renders the report as plain text lines.
func reportLines(source string, rows []impact.Row, lay *layout.Layout) []string {
	out := []string{
		fmt.Sprintf("Data source: %s", source),
		impact.Headline(rows),
		"",
		fmt.Sprintf("%-28s %12s %12s", "Category", "Change (pp)", "Importance"),
	}
	for _, r := range impact.Summary(rows) {
		name := lay.GlyphFor(r.Category) + " " + lay.DisplayName(r.Category)
		out = append(out, fmt.Sprintf("%-28s %+12.2f %12.4f", name, r.EstimatedChangePP, r.PostModelImportance))
	}
	return out
}
