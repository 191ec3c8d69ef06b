package main

import (
	"image/color"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hoverPickRadius is how close (in view pixels) the cursor must be to a
// bubble center before the tooltip shows.
const hoverPickRadius = 120

// bubbleOverlay shows a tooltip for the bubble nearest the cursor. It
// sits on top of the chart image and tracks mouse position.
type bubbleOverlay struct {
	widget.BaseWidget
	state    *uiState
	enabled  bool
	mouse    fyne.Position
	hovering bool
}

func newBubbleOverlay(state *uiState) *bubbleOverlay {
	o := &bubbleOverlay{state: state, enabled: state != nil && state.hoverEnabled}
	o.ExtendBaseWidget(o)
	return o
}

func (o *bubbleOverlay) CreateRenderer() fyne.WidgetRenderer {
	// background to ensure a full hit-area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	ring := canvas.NewCircle(color.RGBA{})
	ring.StrokeColor = color.RGBA{R: 240, G: 240, B: 240, A: 220}
	ring.StrokeWidth = 2
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	objs := []fyne.CanvasObject{bg, ring, labelBG, label}
	return &bubbleOverlayRenderer{o: o, bg: bg, ring: ring, labelBG: labelBG, label: label, objs: objs}
}

type bubbleOverlayRenderer struct {
	o       *bubbleOverlay
	bg      *canvas.Rectangle
	ring    *canvas.Circle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *bubbleOverlayRenderer) Destroy() {}

func (r *bubbleOverlayRenderer) hide() {
	r.ring.Resize(fyne.NewSize(0, 0))
	r.ring.Move(fyne.NewPos(-1000, -1000))
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *bubbleOverlayRenderer) Layout(size fyne.Size) {
	if r.o == nil {
		return
	}
	if r.bg != nil {
		r.bg.Resize(size)
		r.bg.Move(fyne.NewPos(0, 0))
	}
	st := r.o.state
	if !r.o.enabled || !r.o.hovering || st == nil || len(st.rows) == 0 {
		r.hide()
		return
	}
	// The chart image is contain-fit inside this overlay; map view
	// coordinates back into image pixel space before picking.
	var imgW, imgH float32
	if st.chartImg != nil && st.chartImg.Image != nil {
		b := st.chartImg.Image.Bounds()
		imgW = float32(b.Dx())
		imgH = float32(b.Dy())
	}
	if imgW <= 0 || imgH <= 0 {
		r.hide()
		return
	}
	sx := size.Width / imgW
	sy := size.Height / imgH
	scale := sx
	if sy < sx {
		scale = sy
	}
	drawW := imgW * scale
	drawH := imgH * scale
	drawX := (size.Width - drawW) / 2
	drawY := (size.Height - drawH) / 2
	mx, my := r.o.mouse.X, r.o.mouse.Y
	if mx < drawX || mx > drawX+drawW || my < drawY || my > drawY+drawH {
		r.hide()
		return
	}
	imgX := float64((mx - drawX) / scale)
	imgY := float64((my - drawY) / scale)

	m := plotMapper(int(imgW), int(imgH))
	xs := make([]float64, len(st.rows))
	ys := make([]float64, len(st.rows))
	for i, row := range st.rows {
		pos := st.layout.PositionFor(row.Category)
		xs[i] = pos.X
		ys[i] = pos.Y
	}
	idx := m.Nearest(xs, ys, imgX, imgY)
	if idx < 0 {
		r.hide()
		return
	}
	cxImg, cyImg := m.Pixel(xs[idx], ys[idx])
	cx := drawX + float32(cxImg)*scale
	cy := drawY + float32(cyImg)*scale
	dx, dy := mx-cx, my-cy
	if dx*dx+dy*dy > hoverPickRadius*hoverPickRadius {
		r.hide()
		return
	}

	row := st.rows[idx]
	ringR := float32(8)
	r.ring.Resize(fyne.NewSize(ringR*2, ringR*2))
	r.ring.Move(fyne.NewPos(cx-ringR, cy-ringR))

	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: strings.Join(hoverLines(row, st.layout), "\n")}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := mx+8, my+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *bubbleOverlayRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *bubbleOverlayRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *bubbleOverlayRenderer) Refresh() {
	r.Layout(r.o.Size())
	if r.bg != nil {
		r.bg.Refresh()
	}
	r.ring.Refresh()
	if r.labelBG != nil {
		r.labelBG.Refresh()
	}
	r.label.Refresh()
}

func (o *bubbleOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !o.enabled {
		return
	}
	o.hovering = true
	o.mouse = ev.Position
	o.Refresh()
}
func (o *bubbleOverlay) MouseIn(ev *desktop.MouseEvent) { o.hovering = true; o.Refresh() }
func (o *bubbleOverlay) MouseOut()                      { o.hovering = false; o.Refresh() }

var _ desktop.Hoverable = (*bubbleOverlay)(nil)
