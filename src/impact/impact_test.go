package impact

import (
	"math"
	"strings"
	"testing"

	"tariffsim/src/sensitivity"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func findRow(t *testing.T, rows []Row, category string) Row {
	t.Helper()
	for _, r := range rows {
		if r.Category == category {
			return r
		}
	}
	t.Fatalf("category %q not in rows", category)
	return Row{}
}

func TestComputeAllZeroSensitivities(t *testing.T) {
	tbl := &sensitivity.Table{Records: []sensitivity.CategoryRecord{
		{Category: "A", PreModelCorrelation: 0.5, PostModelImportance: 0},
		{Category: "B", PreModelCorrelation: -0.5, PostModelImportance: 0},
	}}
	for _, tariff := range []float64{-10, -3.5, 0, 0.5, 10} {
		for _, r := range Compute(tariff, tbl) {
			if r.EstimatedChangePP != 0 {
				t.Fatalf("tariff %v: expected 0 pp, got %v", tariff, r.EstimatedChangePP)
			}
			if r.BubbleSize != BubbleMin {
				t.Fatalf("tariff %v: expected bubble %v, got %v", tariff, BubbleMin, r.BubbleSize)
			}
		}
	}
}

func TestNeutralBandZeroesImpact(t *testing.T) {
	tbl := &sensitivity.Table{Records: []sensitivity.CategoryRecord{
		{Category: "Low", PreModelCorrelation: 0.019, PostModelImportance: 0.9},
		{Category: "NegLow", PreModelCorrelation: -0.0199, PostModelImportance: 0.9},
		{Category: "Zero", PreModelCorrelation: 0, PostModelImportance: 0.9},
	}}
	for _, tariff := range []float64{-10, -1, 2, 10} {
		for _, r := range Compute(tariff, tbl) {
			if r.Sign != 0 {
				t.Fatalf("%s: expected neutral sign, got %d", r.Category, r.Sign)
			}
			if r.EstimatedChangePP != 0 {
				t.Fatalf("%s: expected 0 pp at tariff %v, got %v", r.Category, tariff, r.EstimatedChangePP)
			}
		}
	}
}

func TestThresholdBoundaryIsNotNeutral(t *testing.T) {
	// |corr| == threshold is outside the neutral band
	if got := CorrelationSign(NeutralThreshold); got != 1 {
		t.Fatalf("expected +1 at threshold, got %d", got)
	}
	if got := CorrelationSign(-NeutralThreshold); got != -1 {
		t.Fatalf("expected -1 at -threshold, got %d", got)
	}
}

func TestLinearityInTariff(t *testing.T) {
	tbl := sensitivity.Demo()
	for _, tariff := range []float64{0.5, 1.5, 3, 5} {
		once := Compute(tariff, tbl)
		twice := Compute(2*tariff, tbl)
		for i := range once {
			if !approx(twice[i].EstimatedChangePP, 2*once[i].EstimatedChangePP) {
				t.Fatalf("%s: doubling tariff did not double pp: %v vs %v",
					once[i].Category, once[i].EstimatedChangePP, twice[i].EstimatedChangePP)
			}
			if once[i].Sign != twice[i].Sign {
				t.Fatalf("%s: sign changed with tariff magnitude", once[i].Category)
			}
		}
	}
}

func TestBubbleSizeBounds(t *testing.T) {
	tbl := sensitivity.Demo()
	for _, tariff := range []float64{-10, -5, 0, 2, 10} {
		for _, r := range Compute(tariff, tbl) {
			if r.BubbleSize < BubbleMin || r.BubbleSize > BubbleMax {
				t.Fatalf("bubble %v out of [%v,%v]", r.BubbleSize, BubbleMin, BubbleMax)
			}
			if r.EstimatedChangePP == 0 && r.BubbleSize != BubbleMin {
				t.Fatalf("zero impact should give minimal bubble, got %v", r.BubbleSize)
			}
			if r.BubbleSize == BubbleMin && r.EstimatedChangePP != 0 {
				t.Fatalf("nonzero impact %v should give bubble > %v", r.EstimatedChangePP, BubbleMin)
			}
		}
	}
	// slider extreme: the most important category hits the cap exactly
	rows := Compute(TariffMax, tbl)
	top := findRow(t, rows, "Transportation")
	if !approx(top.BubbleSize, BubbleMax) {
		t.Fatalf("expected %v at extreme, got %v", BubbleMax, top.BubbleSize)
	}
}

func TestDemoExamples(t *testing.T) {
	tbl := sensitivity.Demo()

	rows := Compute(2.0, tbl)
	tr := findRow(t, rows, "Transportation")
	if tr.Sign != 1 || !approx(tr.EstimatedChangePP, 0.56) {
		t.Fatalf("Transportation at +2.0: sign=%d pp=%v", tr.Sign, tr.EstimatedChangePP)
	}

	rows = Compute(-5.0, tbl)
	food := findRow(t, rows, "Food")
	if food.Sign != 1 || !approx(food.EstimatedChangePP, -1.05) {
		t.Fatalf("Food at -5.0: sign=%d pp=%v", food.Sign, food.EstimatedChangePP)
	}
}

func TestSummarySortedDescending(t *testing.T) {
	rows := Compute(2.0, sensitivity.Demo())
	sorted := Summary(rows)
	if len(sorted) != len(rows) {
		t.Fatalf("summary changed row count: %d vs %d", len(sorted), len(rows))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].EstimatedChangePP > sorted[i-1].EstimatedChangePP {
			t.Fatalf("summary not descending at %d: %v > %v", i, sorted[i].EstimatedChangePP, sorted[i-1].EstimatedChangePP)
		}
	}
	// original order untouched
	if rows[0].Category != "Transportation" {
		t.Fatalf("Compute order mutated: first row %q", rows[0].Category)
	}
}

func TestHeadlineClassification(t *testing.T) {
	tbl := sensitivity.Demo()
	up := Headline(Compute(2.0, tbl))
	if !strings.Contains(up, "price pressure up") || !strings.Contains(up, "+") {
		t.Fatalf("unexpected up headline: %q", up)
	}
	down := Headline(Compute(-2.0, tbl))
	if !strings.Contains(down, "price pressure down") {
		t.Fatalf("unexpected down headline: %q", down)
	}
	neutral := Headline(Compute(0, tbl))
	if !strings.Contains(neutral, "neutral") || !strings.Contains(neutral, "0.00 pp") {
		t.Fatalf("unexpected neutral headline: %q", neutral)
	}
}

func TestMeanEmptyRows(t *testing.T) {
	if Mean(nil) != 0 {
		t.Fatalf("mean of no rows should be 0")
	}
	if got := Headline(nil); !strings.Contains(got, "neutral") {
		t.Fatalf("headline of no rows should be neutral, got %q", got)
	}
}

func TestClampTariff(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-11, -10}, {-10, -10}, {0, 0}, {2.5, 2.5}, {10, 10}, {99, 10},
	}
	for _, c := range cases {
		if got := ClampTariff(c.in); got != c.want {
			t.Fatalf("ClampTariff(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
