package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tariffsim/cmd/tariffviewer/uihelpers"
	"tariffsim/src/impact"
	"tariffsim/src/layout"
	"tariffsim/src/sensitivity"
)

// chart paddings in image pixel space. The hover overlay and the label
// pass rely on these matching what the renderer hands to go-chart.
const (
	chartPadL = 16
	chartPadR = 12
	chartPadT = 34
	chartPadB = 28
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string // explicit file (flag, dialog, recent); empty = candidate paths
	baseDir  string

	tariff float64
	layout *layout.Layout
	table  *sensitivity.Table
	rows   []impact.Row
	sorted []impact.Row // descending by estimated change, for the table

	// toggles
	showHints    bool
	hoverEnabled bool

	// widgets
	summaryTable  *widget.Table
	chartImg      *canvas.Image
	hoverOverlay  *bubbleOverlay
	headlineLabel *widget.Label
	sourceLabel   *widget.Label
	tariffLabel   *widget.Label
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, layoutFlag, logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to a sensitivity CSV (overrides the default locations)")
	flag.StringVar(&layoutFlag, "layout", "layout.toml", "Optional layout override file")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug|info|warn|error")
	flag.Parse()
	sensitivity.SetLogLevel(logLevel)

	a := app.NewWithID("com.tariffsim.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Tariff Bubble Simulator")
	w.Resize(fyne.NewSize(1100, 820))

	state := &uiState{
		app:      a,
		window:   w,
		filePath: fileFlag,
		baseDir:  ".",
		tariff:   impact.TariffDefault,
	}
	lay, err := layout.Load(layoutFlag)
	if err != nil {
		sensitivity.Warnf("layout overrides ignored: %v", err)
		lay = layout.Default()
	}
	state.layout = lay
	// Load toggles early so the checkboxes reflect them on creation
	state.showHints = a.Preferences().BoolWithFallback("showHints", false)
	state.hoverEnabled = a.Preferences().BoolWithFallback("hoverTips", true)

	// top bar controls
	state.sourceLabel = widget.NewLabel("")
	state.tariffLabel = widget.NewLabel(formatTariff(state.tariff))
	slider := widget.NewSlider(impact.TariffMin, impact.TariffMax)
	slider.Step = impact.TariffStep
	slider.SetValue(state.tariff)

	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)
	hoverChk := widget.NewCheck("Hover Tips", nil)
	hoverChk.SetChecked(state.hoverEnabled)

	// summary table ("numbers behind the bubbles")
	state.summaryTable = widget.NewTable(
		// size provider: 1 header row + data rows; 3 columns
		func() (int, int) {
			rows := len(state.sorted) + 1
			if rows < 1 {
				rows = 1
			}
			return rows, 3
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Row == 0 {
				switch id.Col {
				case 0:
					lbl.SetText("Category")
				case 1:
					lbl.SetText("Estimated CPI change (pp)")
				case 2:
					lbl.SetText("Importance (RF)")
				}
				return
			}
			rix := id.Row - 1
			if rix < 0 || rix >= len(state.sorted) {
				lbl.SetText("")
				return
			}
			r := state.sorted[rix]
			switch id.Col {
			case 0:
				lbl.SetText(state.layout.GlyphFor(r.Category) + " " + state.layout.DisplayName(r.Category))
			case 1:
				lbl.SetText(uihelpers.FormatSignedPP(r.EstimatedChangePP))
			case 2:
				lbl.SetText(fmt.Sprintf("%.4f", r.PostModelImportance))
			}
		},
	)
	applyTableColumnWidths(state)

	// chart placeholder + hover overlay
	state.chartImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(900, 520))
	state.hoverOverlay = newBubbleOverlay(state)

	state.headlineLabel = widget.NewLabel("")
	state.headlineLabel.Alignment = fyne.TextAlignCenter
	state.headlineLabel.TextStyle = fyne.TextStyle{Bold: true}

	top := container.NewVBox(
		container.NewHBox(
			widget.NewButton("Open…", func() { openFileDialog(state) }),
			widget.NewButton("Reload", func() { loadAll(state) }),
			hintsChk, hoverChk,
			widget.NewLabel("Data:"), state.sourceLabel,
		),
		container.NewBorder(nil, nil, widget.NewLabel("Tariff change (%):"), state.tariffLabel, slider),
	)

	chartStack := container.NewStack(state.chartImg, state.hoverOverlay)
	bubblesPage := container.NewBorder(nil, state.headlineLabel, nil, nil, chartStack)
	tabs := container.NewAppTabs(
		container.NewTabItem("Bubbles", bubblesPage),
		container.NewTabItem("Numbers", state.summaryTable),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		if state.app != nil {
			state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
		}
	}
	w.SetContent(container.NewBorder(top, nil, nil, nil, tabs))

	// Redraw the chart on window resize so it scales with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() {
							applyTableColumnWidths(state)
							redrawChart(state)
						})
					}
				}
			}
		}()
	}

	// Now that canvases exist, wire the callbacks
	slider.OnChanged = func(v float64) {
		state.tariff = impact.ClampTariff(v)
		state.tariffLabel.SetText(formatTariff(state.tariff))
		savePrefs(state)
		recompute(state)
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawChart(state)
	}
	hoverChk.OnChanged = func(b bool) {
		state.hoverEnabled = b
		savePrefs(state)
		state.hoverOverlay.enabled = b
		state.hoverOverlay.Refresh()
	}

	buildMenus(state)
	loadPrefs(state, slider, tabs)
	state.hoverOverlay.enabled = state.hoverEnabled
	loadAll(state)

	w.ShowAndRun()
}

func formatTariff(v float64) string { return fmt.Sprintf("%+.1f%%", v) }

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.filePath = f
			savePrefs(state)
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Bubble Chart…", func() { exportChartPNG(state, state.chartImg, "tariff_bubbles.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog; this is the "upload" control
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		addRecentFile(state, state.filePath)
		savePrefs(state)
		buildMenus(state)
		loadAll(state)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
	d.Show()
}

// loadAll resolves the sensitivity table and re-runs the pipeline.
func loadAll(state *uiState) {
	var (
		tbl *sensitivity.Table
		err error
	)
	if state.filePath != "" {
		if _, statErr := os.Stat(state.filePath); statErr != nil {
			sensitivity.Warnf("%s not readable; falling back to default locations", state.filePath)
			state.filePath = ""
		}
	}
	if state.filePath != "" {
		tbl, err = sensitivity.LoadFile(state.filePath)
	} else {
		tbl, err = sensitivity.Load(state.baseDir, "")
	}
	if err != nil {
		var mce *sensitivity.MissingColumnsError
		if errors.As(err, &mce) {
			sensitivity.Errorf("load failed: %v", err)
		}
		// Fatal for rendering: surface the error and clear everything
		state.table = nil
		state.rows = nil
		state.sorted = nil
		if state.summaryTable != nil {
			state.summaryTable.Refresh()
		}
		if state.chartImg != nil {
			cw, chh := chartSize(state)
			state.chartImg.Image = blank(cw, chh)
			state.chartImg.Refresh()
		}
		if state.headlineLabel != nil {
			state.headlineLabel.SetText("")
		}
		if state.window != nil {
			dialog.ShowError(err, state.window)
		}
		return
	}
	state.table = tbl
	if state.sourceLabel != nil {
		state.sourceLabel.SetText(truncatePath(tbl.Source, 60))
	}
	recompute(state)
}

// recompute re-derives impacts for the current tariff and refreshes the
// chart, table and headline. The whole pipeline re-executes on every
// slider change; the loader's parse cache absorbs the file read.
func recompute(state *uiState) {
	if state.table == nil {
		return
	}
	state.rows = impact.Compute(state.tariff, state.table)
	state.sorted = impact.Summary(state.rows)
	if state.summaryTable != nil {
		state.summaryTable.Refresh()
	}
	if state.headlineLabel != nil {
		state.headlineLabel.SetText(impact.Headline(state.rows))
	}
	redrawChart(state)
}

func redrawChart(state *uiState) {
	if state.chartImg == nil {
		return
	}
	cw, chh := chartSize(state)
	img := renderBubbleChart(state.rows, state.layout, cw, chh, state.showHints)
	state.chartImg.Image = img
	state.chartImg.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
	state.chartImg.Refresh()
	if state.hoverOverlay != nil {
		state.hoverOverlay.Refresh()
	}
}

// chartSize computes the chart size from the current window width.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 1100, 620
	}
	sz := state.window.Canvas().Size()
	return uihelpers.ComputeChartDimensions(int(sz.Width*0.95) - 12)
}

func applyTableColumnWidths(state *uiState) {
	if state == nil || state.summaryTable == nil {
		return
	}
	winW := float32(1100)
	if state.window != nil && state.window.Canvas() != nil {
		winW = state.window.Canvas().Size().Width
	}
	widths := uihelpers.ComputeTableColumnWidths(winW)
	for i, cw := range widths {
		state.summaryTable.SetColumnWidth(i, float32(cw))
	}
	state.summaryTable.Refresh()
}

// plotMapper returns the data→pixel mapping for a chart of the given
// image size, matching the padding handed to go-chart.
func plotMapper(imgW, imgH int) uihelpers.PlotMapper {
	return uihelpers.PlotMapper{
		ImgW: float64(imgW), ImgH: float64(imgH),
		PadL: chartPadL, PadR: chartPadR, PadT: chartPadT, PadB: chartPadB,
		MinX: layout.PlotMinX, MaxX: layout.PlotMaxX,
		MinY: layout.PlotMinY, MaxY: layout.PlotMaxY,
	}
}

// bubbleFillColor maps the sign of the estimated change to the
// direction color, at 0.85 alpha to match the published chart.
func bubbleFillColor(r impact.Row, lay *layout.Layout) drawing.Color {
	var sign int
	if r.EstimatedChangePP > 0 {
		sign = 1
	} else if r.EstimatedChangePP < 0 {
		sign = -1
	}
	cr, cg, cb := uihelpers.ParseHexColor(lay.DirectionColor(sign))
	return drawing.Color{R: cr, G: cg, B: cb, A: 217}
}

// bubbleLabel is the text drawn inside a bubble.
func bubbleLabel(r impact.Row, lay *layout.Layout) string {
	return lay.DisplayName(r.Category) + " " + uihelpers.FormatSignedPP(r.EstimatedChangePP)
}

// hoverLines is the tooltip content for a bubble.
func hoverLines(r impact.Row, lay *layout.Layout) []string {
	return []string{
		lay.GlyphFor(r.Category) + " " + lay.DisplayName(r.Category),
		"Estimated CPI change: " + uihelpers.FormatSignedPP(r.EstimatedChangePP),
		fmt.Sprintf("Sensitivity (RF): %.4f", r.PostModelImportance),
	}
}

// renderBubbleChart draws one marker per category on the fixed grid.
// Size encodes |estimated change|, color its direction; labels are
// drawn onto the PNG afterwards.
func renderBubbleChart(rows []impact.Row, lay *layout.Layout, w, h int, showHints bool) image.Image {
	if len(rows) == 0 {
		return blank(w, h)
	}
	series := make([]chart.Series, 0, len(rows))
	for _, r := range rows {
		pos := lay.PositionFor(r.Category)
		st := chart.Style{
			StrokeWidth: 0,
			DotWidth:    uihelpers.BubbleRadiusPx(r.BubbleSize, h),
			DotColor:    bubbleFillColor(r, lay),
		}
		series = append(series, chart.ContinuousSeries{
			Name:    lay.DisplayName(r.Category),
			XValues: []float64{pos.X},
			YValues: []float64{pos.Y},
			Style:   st,
		})
	}
	ch := chart.Chart{
		Title:      "Category Bubbles: Bigger = Bigger Estimated Impact",
		Background: chart.Style{Padding: chart.Box{Top: chartPadT, Left: chartPadL, Right: chartPadR, Bottom: chartPadB}},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: layout.PlotMinX, Max: layout.PlotMaxX},
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: layout.PlotMinY, Max: layout.PlotMaxY},
		},
		Series: series,
	}
	ch.Width = w
	ch.Height = h

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		sensitivity.Errorf("bubble chart render error: %v; showing blank fallback", err)
		return blank(w, h)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		sensitivity.Errorf("bubble chart decode error: %v; showing blank fallback", err)
		return blank(w, h)
	}
	labeled := drawBubbleLabels(img, rows, lay)
	if showHints {
		return drawHint(labeled, "Hint: Move the tariff slider. Each bubble is one category; bigger circle = bigger estimated effect.")
	}
	return labeled
}

// drawBubbleLabels writes "Name +X.XX pp" centered on each bubble.
func drawBubbleLabels(img image.Image, rows []impact.Row, lay *layout.Layout) image.Image {
	if img == nil || len(rows) == 0 {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	m := plotMapper(b.Dx(), b.Dy())
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	for _, r := range rows {
		pos := lay.PositionFor(r.Category)
		px, py := m.Pixel(pos.X, pos.Y)
		text := bubbleLabel(r, lay)
		dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
		tw := dr.MeasureString(text).Ceil()
		x := int(px) - tw/2
		y := int(py) + face.Metrics().Ascent.Ceil()/2
		drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
		drShadow.DrawString(text)
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
		dr.DrawString(text)
	}
	return rgba
}

// drawHint draws a small hint string near the bottom-left of the image.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	// subtle background
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	prefs := state.app.Preferences()
	raw := prefs.StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetFloat("tariffChange", state.tariff)
	prefs.SetBool("showHints", state.showHints)
	prefs.SetBool("hoverTips", state.hoverEnabled)
}

func loadPrefs(state *uiState, slider *widget.Slider, tabs *container.AppTabs) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if state.filePath == "" {
		state.filePath = prefs.StringWithFallback("lastFile", "")
	}
	state.tariff = impact.ClampTariff(prefs.FloatWithFallback("tariffChange", state.tariff))
	if slider != nil {
		slider.SetValue(state.tariff)
	}
	if state.tariffLabel != nil {
		state.tariffLabel.SetText(formatTariff(state.tariff))
	}
	state.showHints = prefs.BoolWithFallback("showHints", state.showHints)
	state.hoverEnabled = prefs.BoolWithFallback("hoverTips", state.hoverEnabled)
	if tabs != nil {
		idx := prefs.IntWithFallback("selectedTabIndex", 0)
		if idx >= 0 && idx < len(tabs.Items) {
			tabs.SelectIndex(idx)
		}
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
