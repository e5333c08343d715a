// profilereader prints the stored elevation profiles, and can look up the sample nearest to
// a distance or export one profile's chart as SVG/PNG.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iafilius/ElevationProfile/src/analysis"
	"github.com/iafilius/ElevationProfile/src/elevation"
	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

type options struct {
	File   string
	Max    int
	Unit   types.Unit
	ID     string
	At     float64
	Export string
	Width  int
	Height int
}

func main() {
	var (
		opts     options
		unitName string
		logLevel string
	)
	flag.StringVar(&opts.File, "file", elevation.DefaultProfilesFile, "Path to the profiles JSONL file")
	flag.IntVar(&opts.Max, "n", 5000, "Max profiles to load")
	flag.StringVar(&unitName, "unit", string(types.Miles), "Display unit (Miles|Kilometers)")
	flag.StringVar(&opts.ID, "id", "", "Profile id or name for -at/-export (default: newest)")
	flag.Float64Var(&opts.At, "at", -1, "Print the sample nearest to this distance (display unit)")
	flag.StringVar(&opts.Export, "export", "", "Write the chart of the selected profile to this .svg or .png file")
	flag.IntVar(&opts.Width, "width", 800, "Export width in pixels")
	flag.IntVar(&opts.Height, "height", 400, "Export height in pixels")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")
	flag.Parse()
	logging.SetLogLevel(logLevel)

	u, err := types.ParseUnit(unitName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts.Unit = u
	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	records, err := analysis.LoadProfiles(opts.File, opts.Max)
	if err != nil {
		return err
	}
	if opts.At < 0 && opts.Export == "" {
		printSummaries(w, records, opts.Unit)
		return nil
	}
	if len(records) == 0 {
		return fmt.Errorf("no profiles in %s", opts.File)
	}
	rec := records[len(records)-1]
	if opts.ID != "" {
		var ok bool
		if rec, ok = analysis.FindProfile(records, opts.ID); !ok {
			return fmt.Errorf("profile %q not found", opts.ID)
		}
	}
	c := profile.NewChart(profile.NewViewport(float64(opts.Width), float64(opts.Height)), profile.WithUnit(opts.Unit))
	if err := c.Render(profile.ConvertFromMeters(rec.Points, opts.Unit)); err != nil {
		return fmt.Errorf("profile %s: %w", rec.ID, err)
	}
	if opts.At >= 0 {
		h, err := c.OnHover(opts.At)
		if err != nil {
			return err
		}
		dist, _ := distanceLabel(opts.Unit)
		fmt.Fprintf(w, "%s sample %d: distance %s %s, elevation %s, location %.5f, %.5f\n",
			rec.ID, h.Index, profile.FormatDistance(h.Sample.Distance), dist, h.Label, h.Sample.LocationX, h.Sample.LocationY)
	}
	if opts.Export != "" {
		if err := export(c, opts.Export); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", opts.Export)
	}
	return nil
}

func export(c *profile.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = c.WritePNG(f)
	default:
		err = c.WriteSVG(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func distanceLabel(u types.Unit) (dist, elev string) {
	if u == types.Kilometers {
		return "km", "m"
	}
	return "mi", "ft"
}

func printSummaries(w io.Writer, records []types.ProfileRecord, unit types.Unit) {
	dist, elev := distanceLabel(unit)
	failed := 0
	fmt.Fprintf(w, "Total profiles: %d\n", len(records))
	for _, rec := range records {
		s := analysis.SummarizeRecord(rec, unit)
		name := s.Name
		if name == "" {
			name = "-"
		}
		if s.Samples == 0 {
			failed++
			fmt.Fprintf(w, "%s\t%s\t%s\tfailed: %s\n", s.ID, name, s.Timestamp, s.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d samples\t%.2f %s\t%.0f-%.0f %s\t+%.0f/-%.0f %s\n",
			s.ID, name, s.Timestamp, s.Samples, s.Distance, dist, s.MinElevation, s.MaxElevation, elev, s.Ascent, s.Descent, elev)
	}
	if failed > 0 {
		fmt.Fprintf(w, "Failed: %d\n", failed)
	}
}
