package profile

import (
	"github.com/iafilius/ElevationProfile/src/types"
)

// Point is a chart-local pixel position.
type Point struct {
	X, Y float64
}

// Tick is one labelled axis tick. Pos is the pixel position along the axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis is a baseline with its ticks and caption.
type Axis struct {
	From, To Point
	Ticks    []Tick
	Title    string
	TitleAt  Point
	// Vertical titles are drawn rotated by -90°.
	Vertical bool
}

// Scene is the resolved, renderer-independent drawing of one series.
type Scene struct {
	Width, Height float64
	XDomain       [2]float64
	YDomain       [2]float64
	XAxis, YAxis  Axis
	// Line is the profile polyline.
	Line []Point
	// AreaAbove and AreaBelow are closed polygons filling the plot above and below the line.
	AreaAbove []Point
	AreaBelow []Point
	// Dot marks a single-sample series, whose line would be invisible.
	Dot *Point
	// Guide is the vertical extent of the hover line.
	GuideTop, GuideBottom float64
}

// Empty reports a scene with nothing to draw (degenerate viewport).
func (s *Scene) Empty() bool { return s == nil || len(s.Line) == 0 }

func buildScene(series Series, vp Viewport, x, y Scale, unit types.Unit) *Scene {
	sc := &Scene{Width: vp.Width, Height: vp.Height}
	sc.XDomain[0], sc.XDomain[1] = x.Domain()
	sc.YDomain[0], sc.YDomain[1] = y.Domain()
	if vp.Degenerate() || len(series) == 0 {
		return sc
	}
	m := vp.Margins
	dy := vp.yTranslate()
	top := m.Top
	bottom := vp.Height - m.Bottom

	sc.Line = make([]Point, len(series))
	for i, s := range series {
		sc.Line[i] = Point{X: x.Apply(s.Distance), Y: y.Apply(s.Elevation) + dy}
	}
	if len(series) == 1 {
		p := sc.Line[0]
		sc.Dot = &p
	}

	first, last := sc.Line[0], sc.Line[len(sc.Line)-1]
	sc.AreaAbove = make([]Point, 0, len(sc.Line)+2)
	sc.AreaAbove = append(sc.AreaAbove, Point{X: first.X, Y: top})
	sc.AreaAbove = append(sc.AreaAbove, sc.Line...)
	sc.AreaAbove = append(sc.AreaAbove, Point{X: last.X, Y: top})

	sc.AreaBelow = make([]Point, 0, len(sc.Line)+2)
	sc.AreaBelow = append(sc.AreaBelow, Point{X: first.X, Y: bottom})
	sc.AreaBelow = append(sc.AreaBelow, sc.Line...)
	sc.AreaBelow = append(sc.AreaBelow, Point{X: last.X, Y: bottom})

	xr0, xr1 := x.Range()
	sc.XAxis = Axis{
		From:    Point{X: xr0, Y: bottom},
		To:      Point{X: xr1, Y: bottom},
		Title:   DistanceTitle(unit),
		TitleAt: Point{X: vp.Width / 2, Y: vp.Height - 3},
	}
	for _, v := range x.Ticks(tickCount(vp.PlotWidth(), 80)) {
		sc.XAxis.Ticks = append(sc.XAxis.Ticks, Tick{Value: v, Pos: x.Apply(v), Label: formatDistance(v)})
	}

	sc.YAxis = Axis{
		From:     Point{X: m.Left, Y: top},
		To:       Point{X: m.Left, Y: bottom},
		Title:    ElevationTitle(unit),
		TitleAt:  Point{X: m.Left/3 - 2, Y: vp.Height / 2},
		Vertical: true,
	}
	for _, v := range y.Ticks(tickCount(vp.PlotHeight(), 40)) {
		sc.YAxis.Ticks = append(sc.YAxis.Ticks, Tick{Value: v, Pos: y.Apply(v) + dy, Label: formatElevation(v)})
	}

	sc.GuideTop = top
	sc.GuideBottom = bottom
	return sc
}
