package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/ElevationProfile/src/analysis"
	"github.com/iafilius/ElevationProfile/src/elevation"
	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

type screenshotOptions struct {
	Unit          types.Unit
	Width, Height int
	Max           int
	// HoverAt places the focus marker at this distance; negative leaves the chart unfocused.
	HoverAt float64
}

// RunScreenshotsMode renders every stored profile as <id>.png and <id>.svg under outDir.
// It runs headlessly without creating a UI window and returns the number of charts written.
// Profiles without elevation data are skipped.
func RunScreenshotsMode(filePath, outDir string, opts screenshotOptions) (int, error) {
	if filePath == "" {
		filePath = elevation.DefaultProfilesFile
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create out dir: %w", err)
	}
	records, err := analysis.LoadProfiles(filePath, opts.Max)
	if err != nil {
		return 0, err
	}
	c := profile.NewChart(profile.NewViewport(float64(opts.Width), float64(opts.Height)), profile.WithUnit(opts.Unit))
	written := 0
	for _, rec := range records {
		if err := c.Render(profile.ConvertFromMeters(rec.Points, opts.Unit)); err != nil {
			if errors.Is(err, profile.ErrEmptySeries) {
				log.Infof("skipping %s: no elevation data", rec.ID)
				continue
			}
			return written, err
		}
		if opts.HoverAt >= 0 {
			if _, err := c.OnHover(opts.HoverAt); err != nil {
				return written, err
			}
		}
		base := filepath.Join(outDir, screenshotName(rec))

		var buf bytes.Buffer
		if err := c.WritePNG(&buf); err != nil {
			return written, fmt.Errorf("render %s: %w", rec.ID, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return written, fmt.Errorf("decode %s: %w", rec.ID, err)
		}
		img = drawHint(img, chartTitle(analysis.SummarizeRecord(rec, opts.Unit)))
		buf.Reset()
		if err := png.Encode(&buf, img); err != nil {
			return written, fmt.Errorf("png encode %s: %w", rec.ID, err)
		}
		if err := os.WriteFile(base+".png", buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s.png: %w", base, err)
		}

		buf.Reset()
		if err := c.WriteSVG(&buf); err != nil {
			return written, fmt.Errorf("svg %s: %w", rec.ID, err)
		}
		if err := os.WriteFile(base+".svg", buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s.svg: %w", base, err)
		}
		written++
	}
	return written, nil
}

// screenshotName turns a record id into a file name stem.
func screenshotName(rec types.ProfileRecord) string {
	name := rec.ID
	if name == "" {
		name = rec.Name
	}
	if name == "" {
		name = "profile"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}

// drawHint stamps a one-line caption onto the bottom-left corner of img.
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
