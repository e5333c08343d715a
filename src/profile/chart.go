// Package profile turns an elevation/distance Series into a chart scene, paints it through
// go-chart renderers and answers nearest-sample queries for hover feedback.
//
// All methods are expected to run on the UI goroutine; a Chart does no locking.
package profile

import (
	"errors"

	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/types"
)

var (
	// ErrEmptySeries is returned by Render when there is nothing to plot. The chart is left untouched.
	ErrEmptySeries = errors.New("profile: empty series")
	// ErrNotRendered is returned by nearest-sample queries issued before any successful Render.
	ErrNotRendered = errors.New("profile: chart has no rendered series")
)

var log = logging.For("chart")

// Margins around the plotting area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves room for the axis labels and titles.
func DefaultMargins() Margins { return Margins{Top: 20, Right: 20, Bottom: 40, Left: 60} }

// Viewport is the chart's pixel size plus margins.
type Viewport struct {
	Width, Height float64
	Margins       Margins
}

// NewViewport returns a viewport with the default margins.
func NewViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Margins: DefaultMargins()}
}

// PlotWidth is the horizontal extent between the left and right margins.
func (v Viewport) PlotWidth() float64 { return v.Width - v.Margins.Left - v.Margins.Right }

// PlotHeight is the vertical extent between the top and bottom margins.
func (v Viewport) PlotHeight() float64 { return v.Height - v.Margins.Top - v.Margins.Bottom }

// Degenerate reports a viewport with no plotting area; such charts render nothing.
func (v Viewport) Degenerate() bool { return v.PlotWidth() <= 0 || v.PlotHeight() <= 0 }

// yTranslate shifts the inverted y range so the data maximum lands on the top margin.
func (v Viewport) yTranslate() float64 { return v.Margins.Top - v.Margins.Bottom }

// View is the capability an embedding application drives: data in, size in, hover in.
type View interface {
	Render(series Series) error
	SetViewport(viewport Viewport)
	OnHover(cursorDistance float64) (Hover, error)
}

// MarkerSink receives the map location of the hovered sample.
type MarkerSink func(x, y float64)

// Hover describes the focus marker for one pointer position.
type Hover struct {
	Index  int
	Sample Sample
	// ScreenX/ScreenY are chart-local pixel coordinates of the focus marker.
	ScreenX, ScreenY float64
	// LineX is where the vertical guide goes; -1 when the pointer is left of the y axis.
	LineX float64
	Label string
}

// Option configures a Chart.
type Option func(*Chart)

// WithUnit sets the display unit used for axis titles and the focus label.
func WithUnit(unit types.Unit) Option { return func(c *Chart) { c.unit = unit } }

// WithMarkerSink forwards every hover result's map location to fn.
func WithMarkerSink(fn MarkerSink) Option { return func(c *Chart) { c.sink = fn } }

// Chart is the concrete View.
type Chart struct {
	viewport Viewport
	x, y     Scale
	unit     types.Unit
	series   Series
	scene    *Scene
	focus    *Hover
	sink     MarkerSink

	unsubscribe func()
}

var _ View = (*Chart)(nil)

// NewChart creates an empty chart sized to vp.
func NewChart(vp Viewport, opts ...Option) *Chart {
	c := &Chart{unit: types.Miles}
	for _, o := range opts {
		o(c)
	}
	c.SetViewport(vp)
	return c
}

// Unit returns the display unit the chart labels with.
func (c *Chart) Unit() types.Unit { return c.unit }

// SetUnit changes the display unit for titles and labels. The caller re-converts the
// series from meters and renders again.
func (c *Chart) SetUnit(unit types.Unit) { c.unit = unit }

// Viewport returns the current viewport.
func (c *Chart) Viewport() Viewport { return c.viewport }

// XScale and YScale expose the current scales, e.g. to inverse-map pointer pixels.
func (c *Chart) XScale() Scale { return c.x }
func (c *Chart) YScale() Scale { return c.y }

// Series returns the rendered series, nil when nothing is rendered.
func (c *Chart) Series() Series { return c.series }

// Scene returns the current scene, nil when nothing is rendered.
func (c *Chart) Scene() *Scene { return c.scene }

// SetViewport recomputes both scale ranges. A rendered series is laid out again at the new size.
func (c *Chart) SetViewport(vp Viewport) {
	c.viewport = vp
	c.x.SetRange(vp.Margins.Left, vp.Width-vp.Margins.Right)
	c.y.SetRange(vp.Height-vp.Margins.Top, vp.Margins.Bottom)
	if vp.Degenerate() {
		log.Debugf("degenerate viewport %.0fx%.0f; nothing will be drawn", vp.Width, vp.Height)
	}
	if len(c.series) > 0 {
		c.scene = buildScene(c.series, c.viewport, c.x, c.y, c.unit)
		c.focus = nil
	}
}

// Render replaces the chart contents with series. An empty series is logged and ignored.
func (c *Chart) Render(series Series) error {
	if len(series) == 0 {
		log.Warnf("render called without samples; nothing to plot")
		return ErrEmptySeries
	}
	c.Clear()
	c.series = series
	c.x.SetDomain(series.DistanceExtent())
	c.y.SetDomain(series.ElevationExtent())
	c.scene = buildScene(series, c.viewport, c.x, c.y, c.unit)
	log.Debugf("rendered %d samples, distance [%g,%g]", len(series), c.scene.XDomain[0], c.scene.XDomain[1])
	return nil
}

// FindNearest returns the index of the rendered sample closest to cursorDistance.
func (c *Chart) FindNearest(cursorDistance float64) (int, error) {
	if len(c.series) == 0 {
		return -1, ErrNotRendered
	}
	return NearestIndex(c.series, cursorDistance), nil
}

// OnHover positions the focus marker on the sample nearest to cursorDistance and reports it
// to the marker sink. The series itself is never modified.
func (c *Chart) OnHover(cursorDistance float64) (Hover, error) {
	i, err := c.FindNearest(cursorDistance)
	if err != nil {
		return Hover{Index: -1, LineX: -1}, err
	}
	s := c.series[i]
	h := Hover{
		Index:   i,
		Sample:  s,
		ScreenX: c.x.Apply(s.Distance),
		ScreenY: c.y.Apply(s.Elevation) + c.viewport.yTranslate(),
		LineX:   c.x.Apply(cursorDistance),
		Label:   formatElevation(s.Elevation) + " " + unitOrDefault(c.unit).ElevationUnit(),
	}
	if h.LineX < c.viewport.Margins.Left {
		h.LineX = -1
	}
	c.focus = &h
	if c.sink != nil {
		c.sink(s.LocationX, s.LocationY)
	}
	return h, nil
}

// HoverAtPixel inverse-maps a chart-local x pixel through the x scale and hovers there.
func (c *Chart) HoverAtPixel(px float64) (Hover, error) {
	if len(c.series) == 0 {
		return Hover{Index: -1, LineX: -1}, ErrNotRendered
	}
	return c.OnHover(c.x.Invert(px))
}

// Focus returns the last hover result, nil when the pointer has not hovered since Render.
func (c *Chart) Focus() *Hover { return c.focus }

// HideFocus removes the focus marker, e.g. when the pointer leaves the chart.
func (c *Chart) HideFocus() { c.focus = nil }

// Clear drops the rendered scene and empties both scale domains. Calling it twice is harmless.
func (c *Chart) Clear() {
	c.series = nil
	c.scene = nil
	c.focus = nil
	c.x.Reset()
	c.y.Reset()
}

// Attach subscribes the chart to viewport changes from n, replacing any earlier subscription.
func (c *Chart) Attach(n *ResizeNotifier) {
	c.Detach()
	c.unsubscribe = n.Subscribe(c.SetViewport)
}

// Detach drops the resize subscription made by Attach.
func (c *Chart) Detach() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}
