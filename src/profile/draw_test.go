package profile

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/iafilius/ElevationProfile/src/types"
)

func TestWritePNG_Size(t *testing.T) {
	c := NewChart(NewViewport(640, 320))
	if err := c.Render(scenario()); err != nil {
		t.Fatalf("render: %v", err)
	}
	_, _ = c.OnHover(4)
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 320 {
		t.Fatalf("png is %dx%d want 640x320", b.Dx(), b.Dy())
	}
}

func TestWritePNG_EmptyChartPaintsBackground(t *testing.T) {
	c := NewChart(NewViewport(200, 100))
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, _ := img.At(100, 50).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("expected white background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestWriteSVG_KilometerTitles(t *testing.T) {
	c := NewChart(NewViewport(800, 400), WithUnit(types.Kilometers))
	_ = c.Render(series(0, 1000, 2.5, 1250))
	var buf bytes.Buffer
	if err := c.WriteSVG(&buf); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Distance in Kilometers", "Elevation in meters", "1,000", "rotate(-90.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if strings.Contains(out, "feet") {
		t.Fatalf("kilometer chart must not mention feet")
	}
}
