package profile

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/iafilius/ElevationProfile/src/types"
)

func scenario() Series { return series(0, 100, 10, 200, 20, 150) }

func TestChart_ViewportRanges(t *testing.T) {
	vp := Viewport{Width: 800, Height: 400, Margins: Margins{Top: 20, Right: 20, Bottom: 40, Left: 60}}
	c := NewChart(NewViewport(100, 100))
	c.SetViewport(vp)
	if err := c.Render(scenario()); err != nil {
		t.Fatalf("render: %v", err)
	}
	if lo, hi := c.XScale().Range(); lo != 60 || hi != 780 {
		t.Fatalf("x range = [%v,%v] want [60,780]", lo, hi)
	}
	if lo, hi := c.YScale().Range(); lo != 380 || hi != 40 {
		t.Fatalf("y range = [%v,%v] want [380,40]", lo, hi)
	}
	if lo, hi := c.XScale().Domain(); lo != 0 || hi != 20 {
		t.Fatalf("x domain = [%v,%v]", lo, hi)
	}
	if lo, hi := c.YScale().Domain(); lo != 100 || hi != 200 {
		t.Fatalf("y domain = [%v,%v]", lo, hi)
	}
}

func TestChart_SceneGeometry(t *testing.T) {
	c := NewChart(NewViewport(800, 400))
	if err := c.Render(scenario()); err != nil {
		t.Fatalf("render: %v", err)
	}
	sc := c.Scene()
	if len(sc.Line) != 3 {
		t.Fatalf("line has %d points", len(sc.Line))
	}
	// min elevation sits on the x axis, max elevation on the top margin
	if sc.Line[0].Y != 360 || sc.Line[1].Y != 20 {
		t.Fatalf("unexpected line y values: %+v", sc.Line)
	}
	if sc.Line[0].X != 60 || sc.Line[2].X != 780 {
		t.Fatalf("unexpected line x values: %+v", sc.Line)
	}
	if n := len(sc.AreaAbove); n != 5 || sc.AreaAbove[0].Y != 20 || sc.AreaAbove[n-1].Y != 20 {
		t.Fatalf("area above not closed on the top margin: %+v", sc.AreaAbove)
	}
	if n := len(sc.AreaBelow); n != 5 || sc.AreaBelow[0].Y != 360 || sc.AreaBelow[n-1].Y != 360 {
		t.Fatalf("area below not closed on the x axis: %+v", sc.AreaBelow)
	}
	if sc.XAxis.Title != "Distance in Miles" || sc.YAxis.Title != "Elevation in feet" {
		t.Fatalf("titles = %q / %q", sc.XAxis.Title, sc.YAxis.Title)
	}
	if len(sc.XAxis.Ticks) < 2 || len(sc.YAxis.Ticks) < 2 {
		t.Fatalf("expected ticks on both axes")
	}
	for _, tk := range sc.XAxis.Ticks {
		if !strings.Contains(tk.Label, ".") || len(strings.SplitN(tk.Label, ".", 2)[1]) != 2 {
			t.Fatalf("distance tick %q should carry two decimals", tk.Label)
		}
	}
	for _, tk := range sc.YAxis.Ticks {
		if strings.Contains(tk.Label, ".") {
			t.Fatalf("elevation tick %q should have no decimals", tk.Label)
		}
		if tk.Pos < 20-1e-9 || tk.Pos > 360+1e-9 {
			t.Fatalf("elevation tick %v at %v outside the plot", tk.Value, tk.Pos)
		}
	}
	if sc.Dot != nil {
		t.Fatalf("multi-sample series should not draw a dot")
	}
}

func TestChart_RenderEmptyIsNoOp(t *testing.T) {
	c := NewChart(NewViewport(800, 400))
	if err := c.Render(nil); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("nil series err=%v", err)
	}
	if c.Scene() != nil || !c.XScale().Empty() {
		t.Fatalf("empty render must not create a scene")
	}
	_ = c.Render(scenario())
	before := c.Scene()
	if err := c.Render(Series{}); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("empty series err=%v", err)
	}
	if c.Scene() != before || len(c.Series()) != 3 {
		t.Fatalf("failed render must leave the previous chart in place")
	}
}

func TestChart_FindNearestBeforeRender(t *testing.T) {
	c := NewChart(NewViewport(800, 400))
	if _, err := c.FindNearest(3); !errors.Is(err, ErrNotRendered) {
		t.Fatalf("FindNearest before render err=%v", err)
	}
	if _, err := c.OnHover(3); !errors.Is(err, ErrNotRendered) {
		t.Fatalf("OnHover before render err=%v", err)
	}
	if _, err := c.HoverAtPixel(100); !errors.Is(err, ErrNotRendered) {
		t.Fatalf("HoverAtPixel before render err=%v", err)
	}
	_ = c.Render(scenario())
	c.Clear()
	if _, err := c.FindNearest(3); !errors.Is(err, ErrNotRendered) {
		t.Fatalf("FindNearest after clear err=%v", err)
	}
}

func TestChart_FindNearestScenario(t *testing.T) {
	c := NewChart(NewViewport(800, 400))
	_ = c.Render(scenario())
	for cursor, want := range map[float64]int{11: 1, 15: 1, 16: 2, 0: 0} {
		got, err := c.FindNearest(cursor)
		if err != nil || got != want {
			t.Fatalf("FindNearest(%v) = %d, %v want %d", cursor, got, err, want)
		}
	}
}

func TestChart_OnHover(t *testing.T) {
	var sunkX, sunkY float64
	calls := 0
	s := Series{
		{Distance: 0, Elevation: 100, LocationX: 1, LocationY: 2},
		{Distance: 10, Elevation: 200, LocationX: 3, LocationY: 4},
		{Distance: 20, Elevation: 150, LocationX: 5, LocationY: 6},
	}
	c := NewChart(NewViewport(800, 400), WithMarkerSink(func(x, y float64) { sunkX, sunkY = x, y; calls++ }))
	_ = c.Render(s)
	h, err := c.OnHover(11)
	if err != nil {
		t.Fatalf("hover: %v", err)
	}
	if h.Index != 1 || h.Sample != s[1] {
		t.Fatalf("hover picked %d %+v", h.Index, h.Sample)
	}
	if h.ScreenX != 420 || h.ScreenY != 20 {
		t.Fatalf("focus at (%v,%v) want (420,20)", h.ScreenX, h.ScreenY)
	}
	if math.Abs(h.LineX-456) > 1e-9 {
		t.Fatalf("guide line at %v want 456", h.LineX)
	}
	if h.Label != "200 feet" {
		t.Fatalf("label %q", h.Label)
	}
	if calls != 1 || sunkX != 3 || sunkY != 4 {
		t.Fatalf("marker sink got (%v,%v) after %d calls", sunkX, sunkY, calls)
	}
	if c.Focus() == nil || c.Focus().Index != 1 {
		t.Fatalf("focus not recorded")
	}
	if !reflect.DeepEqual(c.Series(), s) {
		t.Fatalf("hover must not modify the series")
	}

	left, _ := c.OnHover(-5)
	if left.LineX != -1 || left.Index != 0 {
		t.Fatalf("pointer left of the axis: %+v", left)
	}
	c.HideFocus()
	if c.Focus() != nil {
		t.Fatalf("focus should be hidden")
	}
}

func TestChart_HoverAtPixel(t *testing.T) {
	c := NewChart(NewViewport(800, 400), WithUnit(types.Kilometers))
	_ = c.Render(scenario())
	h, err := c.HoverAtPixel(780)
	if err != nil {
		t.Fatalf("hover: %v", err)
	}
	if h.Index != 2 || h.Label != "150 meters" {
		t.Fatalf("pixel 780 => %+v", h)
	}
	h, _ = c.HoverAtPixel(60 + 0.75*720) // distance 15: tie, earlier sample wins
	if h.Index != 1 {
		t.Fatalf("tie at pixel => index %d want 1", h.Index)
	}
}

func TestChart_ClearThenRenderMatchesFresh(t *testing.T) {
	s := scenario()
	fresh := NewChart(NewViewport(800, 400))
	_ = fresh.Render(s)

	reused := NewChart(NewViewport(800, 400))
	_ = reused.Render(series(0, 1, 3, 9, 7, 4, 100, 50))
	_, _ = reused.OnHover(3)
	reused.Clear()
	reused.Clear()
	if reused.Scene() != nil || reused.Focus() != nil || !reused.XScale().Empty() || !reused.YScale().Empty() {
		t.Fatalf("clear left state behind")
	}
	_ = reused.Render(s)

	if !reflect.DeepEqual(fresh.Scene(), reused.Scene()) {
		t.Fatalf("clear+render differs from fresh render")
	}
	if fresh.XScale() != reused.XScale() || fresh.YScale() != reused.YScale() {
		t.Fatalf("scales differ after clear+render")
	}
	var a, b bytes.Buffer
	if err := fresh.WriteSVG(&a); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if err := reused.WriteSVG(&b); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("svg output differs after clear+render")
	}
}

func TestChart_SingleSample(t *testing.T) {
	c := NewChart(NewViewport(400, 200))
	if err := c.Render(series(5, 5)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if lo, hi := c.XScale().Domain(); lo != 4 || hi != 6 {
		t.Fatalf("x domain = [%v,%v] want [4,6]", lo, hi)
	}
	if lo, hi := c.YScale().Domain(); lo != 4 || hi != 6 {
		t.Fatalf("y domain = [%v,%v] want [4,6]", lo, hi)
	}
	sc := c.Scene()
	if sc.Dot == nil {
		t.Fatalf("single sample should draw a dot")
	}
	if sc.Dot.X != 220 { // middle of [60,380]
		t.Fatalf("dot x = %v want 220", sc.Dot.X)
	}
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestChart_DegenerateViewportRendersNothing(t *testing.T) {
	c := NewChart(Viewport{Width: 80, Height: 60, Margins: DefaultMargins()})
	if err := c.Render(scenario()); err != nil {
		t.Fatalf("degenerate viewport must still accept data: %v", err)
	}
	if !c.Scene().Empty() {
		t.Fatalf("degenerate viewport should produce an empty scene")
	}
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if strings.Contains(buf.String(), `class="areaAbove`) {
		t.Fatalf("nothing but the background should be drawn")
	}
	// growing the viewport lays the series out again
	c.SetViewport(NewViewport(800, 400))
	if c.Scene().Empty() {
		t.Fatalf("resize should rebuild the scene")
	}
}

func TestChart_WriteSVG(t *testing.T) {
	c := NewChart(NewViewport(800, 400))
	_ = c.Render(scenario())
	_, _ = c.OnHover(11)
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", `class="areaAbove`, `class="areaBelow`, `class="line`, `class="yLine`, `class="focus`, "Distance in Miles", "Elevation in feet", "200 feet", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if err := NewChart(Viewport{}).WriteSVG(&buf); err == nil {
		t.Fatalf("zero-size export should fail")
	}
}
