package main

import (
	"math"
	"strings"
	"testing"

	"fyne.io/fyne/v2"

	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

func renderedChart(t *testing.T) *profile.Chart {
	t.Helper()
	c := profile.NewChart(profile.NewViewport(800, 400), profile.WithUnit(types.Kilometers))
	if err := c.Render(profile.ConvertFromMeters(sampleRecord().Points, types.Kilometers)); err != nil {
		t.Fatalf("render: %v", err)
	}
	return c
}

func TestHoverAt_MapsViewThroughContainRect(t *testing.T) {
	c := renderedChart(t)
	// 800x400 image shown at 1.25x in a 1000x1000 view, letterboxed by 250px.
	rect := computeContainRect(800, 400, 1000, 1000)
	// x range is [60,780] for distances [0,2] km; image x 780 is the last sample.
	h := hoverAt(c, rect, rect.toView(780, 200))
	if h == nil || h.Index != 2 {
		t.Fatalf("expected last sample, got %+v", h)
	}
	h = hoverAt(c, rect, rect.toView(420, 200))
	if h == nil || h.Index != 1 || h.Label != "250 meters" {
		t.Fatalf("expected middle sample, got %+v", h)
	}
	if hoverAt(c, rect, fyne.NewPos(500, 100)) != nil {
		t.Fatalf("pointer in the letterbox band should not hover")
	}
	if hoverAt(profile.NewChart(profile.NewViewport(800, 400)), rect, rect.toView(420, 200)) != nil {
		t.Fatalf("unrendered chart should not hover")
	}
}

func TestLayoutMarker_GuideAndLabel(t *testing.T) {
	c := renderedChart(t)
	rect := computeContainRect(800, 400, 800, 400)
	h, err := c.OnHover(1)
	if err != nil {
		t.Fatalf("hover: %v", err)
	}
	g := layoutMarker(&h, c.Scene(), rect, string(c.Unit()))
	if !g.ShowGuide || g.GuideTop.Y != 20 || g.GuideBottom.Y != 360 || math.Abs(float64(g.GuideTop.X)-420) > 1e-3 {
		t.Fatalf("unexpected guide %+v", g)
	}
	if math.Abs(float64(g.Dot.X)-420) > 1e-3 || math.Abs(float64(g.Dot.Y)-20) > 1e-3 {
		t.Fatalf("dot should sit on the 250 m sample at the top margin, got %v", g.Dot)
	}
	if !strings.HasPrefix(g.Label, "250 meters\n1.00 Kilometers") {
		t.Fatalf("unexpected label %q", g.Label)
	}

	h, _ = c.OnHover(-5)
	if g := layoutMarker(&h, c.Scene(), rect, "Kilometers"); g.ShowGuide {
		t.Fatalf("guide should be hidden left of the y axis")
	}
}
