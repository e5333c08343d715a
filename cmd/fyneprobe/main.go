// fyneprobe opens a window with a synthetic elevation profile, hovers its midpoint and closes
// itself, to check that fyne and the chart renderer work on this machine.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

// syntheticSeries is a 10 km sine-shaped ridge sampled every 100 m, in unit.
func syntheticSeries(unit types.Unit) profile.Series {
	pts := make([]types.ElevationPoint, 101)
	for i := range pts {
		m := float64(i) * 100
		pts[i] = types.ElevationPoint{X: m, Y: 0, Z: 400 + 250*math.Sin(m/1600), M: m}
	}
	return profile.ConvertFromMeters(pts, unit)
}

func main() {
	hold := flag.Duration("hold", 5*time.Second, "How long to keep the window open")
	flag.Parse()

	fmt.Println("[fyneprobe] starting profile probe window")
	c := profile.NewChart(profile.NewViewport(800, 320), profile.WithUnit(types.Kilometers))
	series := syntheticSeries(types.Kilometers)
	if err := c.Render(series); err != nil {
		fmt.Println("[fyneprobe] render:", err)
		return
	}
	h, _ := c.OnHover(series[len(series)/2].Distance)
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		fmt.Println("[fyneprobe] png:", err)
		return
	}
	img, err := png.Decode(&buf)
	if err != nil {
		fmt.Println("[fyneprobe] decode:", err)
		return
	}

	a := app.New()
	w := a.NewWindow("Fyne Probe")
	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(800, 320))
	w.SetContent(container.NewBorder(nil,
		widget.NewLabel(fmt.Sprintf("Focus: %s at %s km - closing in %s", h.Label, profile.FormatDistance(h.Sample.Distance), *hold)),
		nil, nil, imgCanvas))
	go func() {
		time.Sleep(*hold)
		fmt.Println("[fyneprobe] closing window via fyne.Do")
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}
