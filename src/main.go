// Elevation profile collector.
//
// Reads line geometries from a GeoJSON file, asks the organization's elevationSync Profile
// task for the elevation profile of each, and appends one ProfileRecord per line to a JSONL
// file. The viewers (cmd/profileviewer, cmd/profilereader) read that file back.
//
// The helper services file is JSONC (full-line // comments) with an elevationSync url;
// --service-url overrides it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iafilius/ElevationProfile/src/elevation"
	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/types"
)

func main() {
	linesPath := flag.String("lines", "./lines.geojson", "GeoJSON file with the LineString(s) to profile")
	servicesPath := flag.String("services", "./services.jsonc", "Path to the helper services JSONC file")
	serviceURL := flag.String("service-url", "", "elevationSync GPServer url; overrides the services file")
	unitName := flag.String("unit", string(types.Miles), "Sampling/display unit (Miles|Kilometers)")
	outFile := flag.String("out", elevation.DefaultProfilesFile, "Output JSONL file ({host} is replaced by the hostname)")
	parallel := flag.Int("parallel", 2, "Maximum concurrent profile requests")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	httpTimeout := flag.Duration("http-timeout", 120*time.Second, "Per-request total timeout (including body transfer)")
	progressInterval := flag.Duration("progress-interval", 5*time.Second, "Interval for progress logging of the worker pool (0 disables)")
	metricsDump := flag.String("metrics-dump", "", "Write Prometheus text metrics to this file after the run (- for stdout)")
	flag.Parse()

	logging.SetLogLevel(*logLevel)
	if hn, err := os.Hostname(); err == nil {
		if expanded := expandHostPattern(*outFile, hn); expanded != *outFile {
			logging.Infof("[init] expanded output path with hostname: %s", expanded)
			*outFile = expanded
		}
	}
	unit, err := types.ParseUnit(*unitName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	paths, err := elevation.LoadPath(*linesPath)
	if err != nil {
		logging.Errorf("load lines: %v", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := elevation.NewMetrics(reg)
	if err != nil {
		logging.Errorf("metrics: %v", err)
		os.Exit(1)
	}
	opts := []elevation.ClientOption{elevation.WithTimeout(*httpTimeout), elevation.WithMetrics(metrics)}
	var client *elevation.Client
	if *serviceURL != "" {
		client = elevation.NewClient(*serviceURL+"/Profile", opts...)
	} else {
		services, err := elevation.LoadServices(*servicesPath)
		if err != nil {
			logging.Errorf("load services: %v", err)
			os.Exit(1)
		}
		client, err = elevation.NewClientFromServices(services, opts...)
		if err != nil {
			logging.Errorf("%v", err)
			os.Exit(1)
		}
	}

	writer, err := elevation.NewResultWriter(*outFile)
	if err != nil {
		logging.Errorf("open results: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runTag := time.Now().UTC().Format("20060102_150405")
	logging.Infof("[init] lines=%d unit=%s parallel=%d out=%s run_tag=%s go=%s/%s", len(paths), unit, *parallel, *outFile, runTag, runtime.GOOS, runtime.GOARCH)
	start := time.Now()
	stats := collect(ctx, client, writer, paths, collectConfig{
		Unit:             unit,
		Parallel:         *parallel,
		ProgressInterval: *progressInterval,
		RunTag:           runTag,
	})
	written, werr := writer.Close()
	if werr != nil {
		logging.Errorf("results writer: %v", werr)
	}
	logging.Infof("[done] ok=%d failed=%d written=%d in %s", stats.OK, stats.Failed, written, time.Since(start).Truncate(time.Millisecond))

	if *metricsDump != "" {
		out := os.Stdout
		if *metricsDump != "-" {
			f, err := os.Create(*metricsDump)
			if err != nil {
				logging.Errorf("metrics dump: %v", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
		if err := dumpMetrics(out, reg); err != nil {
			logging.Errorf("metrics dump: %v", err)
		}
	}
	if stats.OK == 0 && len(paths) > 0 {
		os.Exit(1)
	}
}
