// Package impact derives per-category CPI impact estimates from a
// sensitivity table and a tariff-change scalar.
package impact

import (
	"fmt"
	"math"
	"sort"

	"tariffsim/src/sensitivity"
)

// Tariff slider bounds. Bubble sizing normalizes against the
// theoretical maximum impact at the slider extreme.
const (
	TariffMin     = -10.0
	TariffMax     = 10.0
	TariffStep    = 0.5
	TariffDefault = 2.0
)

// NeutralThreshold is the correlation band treated as "no effect".
// Hand-authored constant; it defines visible behavior and must not be
// derived.
const NeutralThreshold = 0.02

// Bubble size bounds in marker units (not pixels).
const (
	BubbleMin = 40.0
	BubbleMax = 160.0
)

// Row is a CategoryRecord plus its derived impact values.
type Row struct {
	sensitivity.CategoryRecord
	// Sign is -1, 0 or +1; 0 inside the neutral correlation band.
	Sign int
	// EstimatedChangePP is the estimated CPI change in percentage points.
	EstimatedChangePP float64
	// BubbleSize is in [BubbleMin, BubbleMax].
	BubbleSize float64
}

// ClampTariff forces a tariff value into the supported range.
func ClampTariff(v float64) float64 {
	if v < TariffMin {
		return TariffMin
	}
	if v > TariffMax {
		return TariffMax
	}
	return v
}

// CorrelationSign classifies a correlation: 0 inside the neutral band,
// otherwise the sign of the coefficient.
func CorrelationSign(corr float64) int {
	if math.Abs(corr) < NeutralThreshold {
		return 0
	}
	if corr < 0 {
		return -1
	}
	return 1
}

// Compute derives one Row per table record for the given tariff change.
// Row order matches table order; the rendered set is exactly the loaded
// set.
func Compute(tariffChange float64, tbl *sensitivity.Table) []Row {
	maxImportance := tbl.MaxImportance()
	maxPossible := math.Max(math.Abs(TariffMin), math.Abs(TariffMax)) * maxImportance
	rows := make([]Row, 0, len(tbl.Records))
	for _, rec := range tbl.Records {
		sign := CorrelationSign(rec.PreModelCorrelation)
		pp := tariffChange * rec.PostModelImportance * float64(sign)
		rows = append(rows, Row{
			CategoryRecord:    rec,
			Sign:              sign,
			EstimatedChangePP: pp,
			BubbleSize:        bubbleSize(pp, maxPossible),
		})
	}
	return rows
}

// bubbleSize scales |pp| linearly against the theoretical maximum
// impact, degenerating to BubbleMin when that maximum is zero.
func bubbleSize(pp, maxPossible float64) float64 {
	if maxPossible <= 0 {
		return BubbleMin
	}
	scale := math.Abs(pp) / maxPossible
	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}
	return BubbleMin + scale*(BubbleMax-BubbleMin)
}

// Summary returns a copy of rows sorted descending by estimated change,
// for tabular display.
func Summary(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedChangePP > out[j].EstimatedChangePP
	})
	return out
}

// Mean returns the mean estimated change across rows (0 for no rows).
func Mean(rows []Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += r.EstimatedChangePP
	}
	return sum / float64(len(rows))
}

// Headline phrases the aggregate effect. Classification follows the
// sign of the mean: >0 up, <0 down, exactly 0 neutral.
func Headline(rows []Row) string {
	avg := Mean(rows)
	switch {
	case avg > 0:
		return fmt.Sprintf("Average effect right now: +%.2f pp (price pressure up)", avg)
	case avg < 0:
		return fmt.Sprintf("Average effect right now: %.2f pp (price pressure down)", avg)
	default:
		return "Average effect right now: 0.00 pp (neutral)"
	}
}
