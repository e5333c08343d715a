package profile

import (
	"fmt"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorBackground = drawing.ColorWhite
	colorLine       = drawing.ColorFromHex("192a64")
	colorAreaAbove  = drawing.ColorFromHex("e3eef8")
	colorAreaBelow  = drawing.ColorFromHex("9fb58a")
	colorAxis       = drawing.ColorFromHex("404040")
	colorGuide      = drawing.ColorFromHex("8c8c8c")
	colorFocus      = drawing.ColorFromHex("c0392b")
)

// profileCSS styles the class names the SVG renderer emits instead of inline styles.
const profileCSS = `.background{fill:#ffffff;stroke:none}
.areaAbove{fill:#e3eef8;stroke:none}
.areaBelow{fill:#9fb58a;stroke:none}
.line{fill:none;stroke:#192a64;stroke-width:2}
.dot{fill:#192a64;stroke:#192a64}
.axis{fill:none;stroke:#404040;stroke-width:1}
.tick{fill:#404040;stroke:none;font-size:11px;font-family:sans-serif}
.title{fill:#404040;stroke:none;font-size:12px;font-family:sans-serif}
.yLine{fill:none;stroke:#8c8c8c;stroke-width:1}
.focus{fill:#c0392b;stroke:#c0392b}
.focusText{fill:#c0392b;stroke:none;font-size:12px;font-family:sans-serif}`

const (
	tickLen       = 4
	tickFontSize  = 8.5
	titleFontSize = 9.5
	focusRadius   = 4.5
)

// Draw paints the current scene, and the focus marker when one is set, onto r.
// A chart without a scene, or with a degenerate viewport, paints only its background.
func (c *Chart) Draw(r chart.Renderer) error {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load chart font: %w", err)
	}
	vp := c.viewport
	fillPolygon(r, "background", colorBackground, []Point{{0, 0}, {vp.Width, 0}, {vp.Width, vp.Height}, {0, vp.Height}})

	sc := c.scene
	if sc.Empty() {
		return nil
	}
	fillPolygon(r, "areaAbove", colorAreaAbove, sc.AreaAbove)
	fillPolygon(r, "areaBelow", colorAreaBelow, sc.AreaBelow)
	strokePolyline(r, "line", colorLine, 2, sc.Line)
	if sc.Dot != nil {
		chart.Style{ClassName: "dot", StrokeColor: colorLine, FillColor: colorLine, StrokeWidth: 1}.WriteDrawingOptionsToRenderer(r)
		r.Circle(focusRadius, px(sc.Dot.X), px(sc.Dot.Y))
		r.FillStroke()
	}
	drawXAxis(r, font, sc.XAxis)
	drawYAxis(r, font, sc.YAxis)

	if f := c.focus; f != nil {
		if f.LineX >= 0 {
			strokePolyline(r, "yLine", colorGuide, 1, []Point{{f.LineX, sc.GuideTop}, {f.LineX, sc.GuideBottom}})
		}
		chart.Style{ClassName: "focus", StrokeColor: colorFocus, FillColor: colorFocus, StrokeWidth: 1}.WriteDrawingOptionsToRenderer(r)
		r.Circle(focusRadius, px(f.ScreenX), px(f.ScreenY))
		r.FillStroke()
		setText(r, font, "focusText", titleFontSize, colorFocus)
		r.Text(f.Label, px(f.ScreenX+8), px(f.ScreenY-8))
	}
	return nil
}

func drawXAxis(r chart.Renderer, font *truetype.Font, a Axis) {
	strokePolyline(r, "axis", colorAxis, 1, []Point{a.From, a.To})
	for _, t := range a.Ticks {
		strokePolyline(r, "axis", colorAxis, 1, []Point{{t.Pos, a.From.Y}, {t.Pos, a.From.Y + tickLen}})
	}
	setText(r, font, "tick", tickFontSize, colorAxis)
	for _, t := range a.Ticks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, px(t.Pos)-box.Width()/2, px(a.From.Y+tickLen)+box.Height()+2)
	}
	setText(r, font, "title", titleFontSize, colorAxis)
	box := r.MeasureText(a.Title)
	r.Text(a.Title, px(a.TitleAt.X)-box.Width()/2, px(a.TitleAt.Y))
}

func drawYAxis(r chart.Renderer, font *truetype.Font, a Axis) {
	strokePolyline(r, "axis", colorAxis, 1, []Point{a.From, a.To})
	for _, t := range a.Ticks {
		strokePolyline(r, "axis", colorAxis, 1, []Point{{a.From.X - tickLen, t.Pos}, {a.From.X, t.Pos}})
	}
	setText(r, font, "tick", tickFontSize, colorAxis)
	for _, t := range a.Ticks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, px(a.From.X-tickLen-2)-box.Width(), px(t.Pos)+box.Height()/2)
	}
	setText(r, font, "title", titleFontSize, colorAxis)
	box := r.MeasureText(a.Title)
	r.SetTextRotation(-math.Pi / 2)
	r.Text(a.Title, px(a.TitleAt.X), px(a.TitleAt.Y)+box.Width()/2)
	r.ClearTextRotation()
}

func setText(r chart.Renderer, font *truetype.Font, class string, size float64, col drawing.Color) {
	chart.Style{ClassName: class, Font: font, FontSize: size, FontColor: col}.WriteTextOptionsToRenderer(r)
}

func fillPolygon(r chart.Renderer, class string, col drawing.Color, pts []Point) {
	if len(pts) < 3 {
		return
	}
	chart.Style{ClassName: class, FillColor: col}.WriteDrawingOptionsToRenderer(r)
	r.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(px(p.X), px(p.Y))
	}
	r.Close()
	r.Fill()
}

func strokePolyline(r chart.Renderer, class string, col drawing.Color, width float64, pts []Point) {
	if len(pts) < 2 {
		return
	}
	chart.Style{ClassName: class, StrokeColor: col, StrokeWidth: width}.WriteDrawingOptionsToRenderer(r)
	r.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(px(p.X), px(p.Y))
	}
	r.Stroke()
}

func px(v float64) int { return int(math.Round(v)) }

// WritePNG renders the chart as a PNG image of the viewport's size.
func (c *Chart) WritePNG(w io.Writer) error {
	return c.write(w, chart.PNG)
}

// WriteSVG renders the chart as an SVG document styled by class names.
func (c *Chart) WriteSVG(w io.Writer) error {
	return c.write(w, chart.SVGWithCSS(profileCSS, ""))
}

func (c *Chart) write(w io.Writer, provider chart.RendererProvider) error {
	width, height := px(c.viewport.Width), px(c.viewport.Height)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("profile: cannot export a %dx%d chart", width, height)
	}
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	if err := c.Draw(r); err != nil {
		return err
	}
	return r.Save(w)
}
