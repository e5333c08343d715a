package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/ElevationProfile/cmd/profileviewer/uihelpers"
	"github.com/iafilius/ElevationProfile/src/analysis"
	"github.com/iafilius/ElevationProfile/src/elevation"
	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

var log = logging.For("viewer")

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath    string
	maxProfiles int
	unit        types.Unit

	records  []types.ProfileRecord
	rows     []analysis.ProfileSummary
	selected int

	chart  *profile.Chart
	resize *profile.ResizeNotifier

	table         *widget.Table
	unitSelect    *widget.Select
	fileLabel     *widget.Label
	titleLabel    *widget.Label
	locationLabel *widget.Label
	imgCanvas     *canvas.Image
	overlay       *hoverOverlay
}

type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var (
		fileFlag    string
		unitFlag    string
		maxFlag     int
		logLevel    string
		screenshots bool
		outDir      string
		shotWidth   int
		hoverDist   float64
	)
	flag.StringVar(&fileFlag, "file", "", "Path to "+elevation.DefaultProfilesFile)
	flag.StringVar(&unitFlag, "unit", "", "Display unit (Miles|Kilometers); defaults to the saved preference")
	flag.IntVar(&maxFlag, "n", 200, "Max profiles to load")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.BoolVar(&screenshots, "screenshots", false, "Render every profile to PNG and SVG under -out and exit (no window)")
	flag.StringVar(&outDir, "out", "screenshots", "Output directory for -screenshots")
	flag.IntVar(&shotWidth, "width", 1000, "Chart width for -screenshots")
	flag.Float64Var(&hoverDist, "hover-at", -1, "Distance to place the focus marker at in -screenshots (negative: none)")
	flag.Parse()
	logging.SetLogLevel(logLevel)

	var unit types.Unit
	if unitFlag != "" {
		u, err := types.ParseUnit(unitFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		unit = u
	}

	if screenshots {
		if unit == "" {
			unit = types.Miles
		}
		w, h := uihelpers.ComputeChartDimensions(shotWidth)
		opts := screenshotOptions{Unit: unit, Width: w, Height: h, Max: maxFlag, HoverAt: hoverDist}
		n, err := RunScreenshotsMode(fileFlag, outDir, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "screenshots: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %d profile charts to %s\n", n, outDir)
		return
	}

	a := app.NewWithID("com.elevationprofile.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Elevation Profile Viewer")
	w.Resize(fyne.NewSize(1100, 800))

	state := &uiState{
		app:         a,
		window:      w,
		filePath:    fileFlag,
		maxProfiles: maxFlag,
		unit:        unit,
		selected:    -1,
		resize:      &profile.ResizeNotifier{},
	}
	loadPrefs(state)
	if state.unit == "" {
		state.unit = types.Miles
	}

	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.titleLabel = widget.NewLabel("")
	state.locationLabel = widget.NewLabel("Location: -")

	cw, ch := uihelpers.ComputeChartDimensions(uihelpers.ChartWidthForWindow(1100))
	state.chart = profile.NewChart(profile.NewViewport(float64(cw), float64(ch)),
		profile.WithUnit(state.unit),
		profile.WithMarkerSink(func(x, y float64) {
			state.locationLabel.SetText(fmt.Sprintf("Location: %.5f, %.5f", x, y))
		}),
	)
	state.chart.Attach(state.resize)

	state.unitSelect = widget.NewSelect([]string{string(types.Miles), string(types.Kilometers)}, nil)
	state.unitSelect.Selected = string(state.unit)

	state.table = widget.NewTable(
		func() (int, int) { return len(state.rows) + 1, tableCols },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(headerText(id.Col, state.unit))
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			rix := id.Row - 1
			if rix < 0 || rix >= len(state.rows) {
				lbl.SetText("")
				return
			}
			lbl.SetText(cellText(state.rows[rix], id.Col))
		},
	)
	applyColumnWidths(state, 1100)
	state.table.OnSelected = func(id widget.TableCellID) {
		if id.Row == 0 {
			return
		}
		if rix := id.Row - 1; rix < len(state.rows) && rix != state.selected {
			state.selected = rix
			showSelected(state)
		}
	}

	state.imgCanvas = canvas.NewImageFromImage(nil)
	state.imgCanvas.FillMode = canvas.ImageFillContain
	state.imgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(ch)))
	state.overlay = newHoverOverlay(state)

	top := container.NewHBox(
		widget.NewLabel("File:"), state.fileLabel,
		widget.NewSeparator(),
		widget.NewLabel("Unit:"), state.unitSelect,
	)
	chartBox := container.NewBorder(state.titleLabel, state.locationLabel, nil, nil,
		container.NewStack(state.imgCanvas, state.overlay))
	split := container.NewVSplit(state.table, chartBox)
	split.Offset = 0.35
	w.SetContent(container.NewBorder(top, nil, nil, nil, split))

	state.unitSelect.OnChanged = func(v string) {
		u, err := types.ParseUnit(v)
		if err != nil || u == state.unit {
			return
		}
		setUnit(state, u)
	}

	// Follow window width: new viewport for the chart, new column widths for the table.
	if w.Canvas() != nil {
		prevW := 0
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			state.chart.Detach()
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := c.Size().Width
					if int(curW) != prevW && curW > 0 {
						prevW = int(curW)
						fyne.Do(func() { onWindowResized(state, curW) })
					}
				}
			}
		}()
	}

	buildMenus(state)
	loadAll(state)
	w.ShowAndRun()
}

// onWindowResized pushes the new chart viewport to every resize subscriber and redraws.
func onWindowResized(state *uiState, winW float32) {
	applyColumnWidths(state, winW)
	cw, ch := uihelpers.ComputeChartDimensions(uihelpers.ChartWidthForWindow(winW))
	if vp := state.chart.Viewport(); int(vp.Width) == cw && int(vp.Height) == ch {
		return
	}
	log.Debugf("chart viewport %dx%d", cw, ch)
	state.resize.Notify(profile.NewViewport(float64(cw), float64(ch)))
	state.imgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(ch)))
	redrawChart(state)
}

func applyColumnWidths(state *uiState, winW float32) {
	if state.table == nil {
		return
	}
	for i, cw := range uihelpers.ComputeTableColumnWidths(winW) {
		state.table.SetColumnWidth(i, float32(cw))
	}
}

func setUnit(state *uiState, u types.Unit) {
	state.unit = u
	if state.unitSelect != nil && state.unitSelect.Selected != string(u) {
		state.unitSelect.SetSelected(string(u))
	}
	savePrefs(state)
	state.rows = summarizeAll(state.records, state.unit)
	state.table.Refresh()
	showSelected(state)
}

// loadAll reads the profiles file and shows the newest profile, or keeps the current
// selection when it still exists.
func loadAll(state *uiState) {
	if state.filePath == "" {
		if _, err := os.Stat(elevation.DefaultProfilesFile); err != nil {
			return
		}
		state.filePath = elevation.DefaultProfilesFile
		state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
	}
	defer logging.TimeTrack(time.Now(), "load "+state.filePath)
	records, err := analysis.LoadProfiles(state.filePath, state.maxProfiles)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.records = records
	state.rows = summarizeAll(records, state.unit)
	if state.selected < 0 || state.selected >= len(state.rows) {
		state.selected = len(state.rows) - 1
	}
	state.table.Refresh()
	if state.selected >= 0 {
		state.table.Select(widget.TableCellID{Row: state.selected + 1, Col: 0})
	}
	showSelected(state)
}

// showSelected converts the selected record into the display unit and renders it.
func showSelected(state *uiState) {
	state.locationLabel.SetText("Location: -")
	if state.selected < 0 || state.selected >= len(state.records) {
		state.chart.Clear()
		state.titleLabel.SetText("")
		redrawChart(state)
		return
	}
	rec := state.records[state.selected]
	state.chart.SetUnit(state.unit)
	if err := state.chart.Render(profile.ConvertFromMeters(rec.Points, state.unit)); err != nil {
		if !errors.Is(err, profile.ErrEmptySeries) {
			dialog.ShowError(err, state.window)
		}
		state.chart.Clear()
	}
	state.titleLabel.SetText(chartTitle(state.rows[state.selected]))
	redrawChart(state)
}

// redrawChart paints the chart without focus marker into the image canvas; the overlay
// draws the marker on top.
func redrawChart(state *uiState) {
	state.chart.HideFocus()
	var buf bytes.Buffer
	if err := state.chart.WritePNG(&buf); err != nil {
		log.Warnf("render chart: %v", err)
		return
	}
	img, err := png.Decode(&buf)
	if err != nil {
		log.Warnf("decode chart: %v", err)
		return
	}
	setChartImage(state, img)
}

func setChartImage(state *uiState, img image.Image) {
	state.imgCanvas.Image = img
	state.imgCanvas.Refresh()
	if state.overlay != nil {
		state.overlay.reset()
	}
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() { openFile(state, f) }))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart PNG…", func() { exportChart(state, "profile.png", state.chart.WritePNG) }),
		fyne.NewMenuItem("Export Chart SVG…", func() { exportChart(state, "profile.svg", state.chart.WriteSVG) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Miles/Kilometers", func() { setUnit(state, state.unit.Toggle()) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { loadAll(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyU, Modifier: mod}, func(fyne.Shortcut) { setUnit(state, state.unit.Toggle()) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		openFile(state, rc.URI().Path())
	}, state.window)
	d.Show()
}

func openFile(state *uiState, path string) {
	state.filePath = path
	state.selected = -1
	state.fileLabel.SetText(uihelpers.TruncatePath(path, 60))
	addRecentFile(state, path)
	savePrefs(state)
	buildMenus(state)
	loadAll(state)
}

func exportChart(state *uiState, defaultName string, write func(io.Writer) error) {
	if state.chart == nil || state.chart.Scene().Empty() {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := write(wc); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	filtered := []string{path}
	for _, f := range recentFiles(state) {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("unit", string(state.unit))
	prefs.SetInt("maxProfiles", state.maxProfiles)
}

// loadPrefs fills what the command line left unset.
func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if state.filePath == "" {
		state.filePath = prefs.StringWithFallback("lastFile", "")
	}
	if state.unit == "" {
		if u, err := types.ParseUnit(prefs.StringWithFallback("unit", string(types.Miles))); err == nil {
			state.unit = u
		}
	}
	if state.maxProfiles <= 0 {
		state.maxProfiles = prefs.IntWithFallback("maxProfiles", 200)
	}
}
