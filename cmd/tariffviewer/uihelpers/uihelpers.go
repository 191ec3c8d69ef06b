package uihelpers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ReferenceChartHeight is the chart height at which bubble marker units
// map 1:1 to pixels of diameter.
const ReferenceChartHeight = 620

// ComputeChartDimensions applies the width/height clamp rules used for
// the bubble chart. Input: desired raw width (e.g. canvas width).
// Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 760 {
		w = 760
	}
	h := int(float32(w) * 0.56)
	if h < 360 {
		h = 360
	}
	if h > 700 {
		h = 700
	}
	return w, h
}

// BubbleRadiusPx converts a bubble size in marker units ([40,160]) to a
// pixel radius for a chart of the given height. Sizes are diameters at
// the reference height; small charts keep a readable minimum.
func BubbleRadiusPx(sizeUnits float64, chartH int) float64 {
	if chartH <= 0 {
		chartH = ReferenceChartHeight
	}
	r := sizeUnits / 2 * float64(chartH) / ReferenceChartHeight
	if r < 6 {
		r = 6
	}
	return r
}

// FormatSignedPP renders an estimated CPI change as a signed
// percentage-point string, e.g. "+0.56 pp".
func FormatSignedPP(v float64) string {
	return fmt.Sprintf("%+.2f pp", v)
}

// ComputeTableColumnWidths returns the 3 summary-table column widths
// for a window width. Order: Category, Estimated change, Importance.
func ComputeTableColumnWidths(winW float32) [3]int {
	const compactBreakpoint = 700
	if winW < compactBreakpoint {
		return [3]int{170, 130, 110}
	}
	return [3]int{260, 190, 170}
}

// ParseHexColor parses "#rrggbb" (or "rrggbb") into RGB components.
// Malformed input yields the neutral gray so a bad layout override
// never breaks rendering.
func ParseHexColor(s string) (r, g, b uint8) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0x7f, 0x7f, 0x7f
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0x7f, 0x7f, 0x7f
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// PlotMapper maps data coordinates into pixel coordinates of a rendered
// chart image, accounting for the chart paddings. The same mapping is
// used for on-image labels and the hover overlay so they stay aligned.
type PlotMapper struct {
	ImgW, ImgH             float64
	PadL, PadR, PadT, PadB float64
	MinX, MaxX, MinY, MaxY float64
}

// Pixel converts a data point to image pixel coordinates. Y grows
// downward in image space.
func (m PlotMapper) Pixel(x, y float64) (float64, float64) {
	plotW := m.ImgW - m.PadL - m.PadR
	plotH := m.ImgH - m.PadT - m.PadB
	if plotW <= 0 || plotH <= 0 || m.MaxX <= m.MinX || m.MaxY <= m.MinY {
		return 0, 0
	}
	px := m.PadL + (x-m.MinX)/(m.MaxX-m.MinX)*plotW
	py := m.PadT + (m.MaxY-y)/(m.MaxY-m.MinY)*plotH
	return px, py
}

// Nearest returns the index of the point whose mapped pixel position is
// closest to (px, py), or -1 for an empty slice.
func (m PlotMapper) Nearest(xs, ys []float64, px, py float64) int {
	best := -1
	bestD := math.MaxFloat64
	for i := range xs {
		cx, cy := m.Pixel(xs[i], ys[i])
		d := (cx-px)*(cx-px) + (cy-py)*(cy-py)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}
