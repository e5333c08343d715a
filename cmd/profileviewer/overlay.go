package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/ElevationProfile/src/profile"
)

// hoverAt resolves a pointer position inside the overlay into a chart hover. It returns nil
// when the pointer is outside the drawn image or nothing is rendered.
func hoverAt(c *profile.Chart, rect containRect, pos fyne.Position) *profile.Hover {
	if c == nil || !rect.contains(pos) {
		return nil
	}
	ix, _ := rect.toImage(pos)
	h, err := c.HoverAtPixel(ix)
	if err != nil {
		return nil
	}
	return &h
}

// markerGeometry is the hover marker in view coordinates.
type markerGeometry struct {
	ShowGuide   bool
	GuideTop    fyne.Position
	GuideBottom fyne.Position
	Dot         fyne.Position
	Label       string
	LabelAnchor fyne.Position
}

// layoutMarker places the guide line, the focus dot and the label for h.
func layoutMarker(h *profile.Hover, sc *profile.Scene, rect containRect, unitLabel string) markerGeometry {
	g := markerGeometry{
		Dot:   rect.toView(h.ScreenX, h.ScreenY),
		Label: h.Label + "\n" + profile.FormatDistance(h.Sample.Distance) + " " + unitLabel,
	}
	if h.LineX >= 0 && sc != nil {
		g.ShowGuide = true
		g.GuideTop = rect.toView(h.LineX, sc.GuideTop)
		g.GuideBottom = rect.toView(h.LineX, sc.GuideBottom)
	}
	g.LabelAnchor = fyne.NewPos(g.Dot.X+8, g.Dot.Y+8)
	return g
}

// hoverOverlay sits on top of the chart image and turns pointer movement into chart hovers.
type hoverOverlay struct {
	widget.BaseWidget
	state    *uiState
	mouse    fyne.Position
	hovering bool
	hover    *profile.Hover
}

func newHoverOverlay(state *uiState) *hoverOverlay {
	o := &hoverOverlay{state: state}
	o.ExtendBaseWidget(o)
	return o
}

func (o *hoverOverlay) rect() containRect {
	size := o.Size()
	var imgW, imgH float32
	if o.state != nil && o.state.imgCanvas != nil && o.state.imgCanvas.Image != nil {
		b := o.state.imgCanvas.Image.Bounds()
		imgW, imgH = float32(b.Dx()), float32(b.Dy())
	}
	return computeContainRect(imgW, imgH, size.Width, size.Height)
}

func (o *hoverOverlay) update() {
	o.hover = nil
	if o.state == nil || o.state.chart == nil {
		return
	}
	if o.hovering {
		o.hover = hoverAt(o.state.chart, o.rect(), o.mouse)
	}
	if o.hover == nil {
		o.state.chart.HideFocus()
	}
}

func (o *hoverOverlay) MouseMoved(ev *desktop.MouseEvent) {
	o.hovering = true
	o.mouse = ev.Position
	o.update()
	o.Refresh()
}

func (o *hoverOverlay) MouseIn(ev *desktop.MouseEvent) {
	o.hovering = true
	o.mouse = ev.Position
	o.update()
	o.Refresh()
}

func (o *hoverOverlay) MouseOut() {
	o.hovering = false
	o.update()
	o.Refresh()
}

// reset drops the marker after the chart was rendered again.
func (o *hoverOverlay) reset() {
	o.hover = nil
	o.Refresh()
}

var _ desktop.Hoverable = (*hoverOverlay)(nil)

func (o *hoverOverlay) CreateRenderer() fyne.WidgetRenderer {
	// transparent background keeps the full hit area for hover events
	bg := canvas.NewRectangle(color.RGBA{})
	guide := canvas.NewLine(theme.Color(theme.ColorNameDisabled))
	guide.StrokeWidth = 1
	dot := canvas.NewCircle(color.RGBA{R: 192, G: 57, B: 43, A: 230})
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	return &hoverRenderer{o: o, bg: bg, guide: guide, dot: dot, label: label, labelBG: labelBG,
		objs: []fyne.CanvasObject{bg, guide, dot, labelBG, label}}
}

type hoverRenderer struct {
	o       *hoverOverlay
	bg      *canvas.Rectangle
	guide   *canvas.Line
	dot     *canvas.Circle
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *hoverRenderer) hide() {
	off := fyne.NewPos(-1000, -1000)
	r.guide.Position1, r.guide.Position2 = off, off
	r.dot.Move(off)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(off)
	r.label.Move(off)
}

func (r *hoverRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	h := r.o.hover
	if h == nil || r.o.state == nil || r.o.state.chart == nil {
		r.hide()
		return
	}
	c := r.o.state.chart
	g := layoutMarker(h, c.Scene(), r.o.rect(), string(c.Unit()))
	if g.ShowGuide {
		r.guide.Position1, r.guide.Position2 = g.GuideTop, g.GuideBottom
	} else {
		off := fyne.NewPos(-1000, -1000)
		r.guide.Position1, r.guide.Position2 = off, off
	}
	r.dot.Resize(fyne.NewSize(9, 9))
	r.dot.Move(fyne.NewPos(g.Dot.X-4.5, g.Dot.Y-4.5))

	r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: g.Label}}
	r.label.Refresh()
	pad := float32(6)
	ts := r.label.MinSize()
	bgW, bgH := ts.Width+2*pad, ts.Height+2*pad
	tx, ty := g.LabelAnchor.X, g.LabelAnchor.Y
	if tx+bgW > size.Width {
		tx = g.Dot.X - 8 - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *hoverRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *hoverRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *hoverRenderer) Destroy()                     {}
func (r *hoverRenderer) Refresh() {
	r.Layout(r.o.Size())
	r.guide.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.bg.Refresh()
	r.guide.Refresh()
	r.dot.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
}
