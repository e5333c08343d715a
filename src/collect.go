package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/iafilius/ElevationProfile/src/elevation"
	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/types"
)

// computer is the part of the elevation client the collector needs.
type computer interface {
	Compute(ctx context.Context, path elevation.Path, unit types.Unit) (elevation.Profile, error)
}

// recordSink receives one record per computed path.
type recordSink interface {
	Write(rec types.ProfileRecord) error
}

type collectConfig struct {
	Unit             types.Unit
	Parallel         int
	ProgressInterval time.Duration
	RunTag           string
	Now              func() time.Time
}

type collectStats struct {
	OK     int32
	Failed int32
}

// collect computes a profile for every path with a bounded worker pool and writes one record each.
func collect(ctx context.Context, c computer, sink recordSink, paths []elevation.Path, cfg collectConfig) collectStats {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	workerCount := cfg.Parallel
	if workerCount < 1 {
		workerCount = 1
	}
	type task struct {
		idx  int
		path elevation.Path
	}
	workCh := make(chan task)
	var wg sync.WaitGroup
	var inFlight, completed int32
	var stats collectStats
	active := make([]string, workerCount)
	var activeMu sync.Mutex

	stopProgress := make(chan struct{})
	if cfg.ProgressInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.ProgressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-stopProgress:
					return
				case <-ticker.C:
					activeMu.Lock()
					names := []string{}
					for _, n := range active {
						if n != "" {
							names = append(names, n)
						}
					}
					activeMu.Unlock()
					logging.Infof("[progress] workers_busy=%d/%d done=%d/%d active=[%s]", atomic.LoadInt32(&inFlight), workerCount, atomic.LoadInt32(&completed), len(paths), strings.Join(names, ","))
				}
			}
		}()
	}

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for t := range workCh {
				atomic.AddInt32(&inFlight, 1)
				activeMu.Lock()
				active[workerID] = t.path.Name
				activeMu.Unlock()

				start := cfg.Now()
				prof, err := c.Compute(ctx, t.path, cfg.Unit)
				id := fmt.Sprintf("%s_%d", cfg.RunTag, t.idx+1)
				rec := prof.Record(id, t.path.Name, start, err)
				if err != nil {
					atomic.AddInt32(&stats.Failed, 1)
					logging.Warnf("[profile %s] %v", t.path.Name, err)
				} else {
					atomic.AddInt32(&stats.OK, 1)
					logging.Infof("[profile %s] samples=%d length=%.0fm sampling=%.4f %s", t.path.Name, len(prof.Points), prof.LengthMeters, prof.SamplingDistance, cfg.Unit)
				}
				if werr := sink.Write(rec); werr != nil {
					logging.Errorf("[profile %s] write: %v", t.path.Name, werr)
				}

				activeMu.Lock()
				active[workerID] = ""
				activeMu.Unlock()
				atomic.AddInt32(&inFlight, -1)
				atomic.AddInt32(&completed, 1)
			}
		}(w)
	}
feed:
	for i, p := range paths {
		select {
		case workCh <- task{idx: i, path: p}:
		case <-ctx.Done():
			logging.Warnf("collection interrupted after %d/%d paths: %v", i, len(paths), ctx.Err())
			break feed
		}
	}
	close(workCh)
	wg.Wait()
	close(stopProgress)
	return stats
}

// dumpMetrics writes every metric family of g in the Prometheus text format.
func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// expandHostPattern substitutes {host}, %HOST% and $HOST in path with a sanitized hostname.
func expandHostPattern(path, hostname string) string {
	if hostname == "" {
		return path
	}
	var b strings.Builder
	for _, r := range strings.ToLower(hostname) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	host := b.String()
	for _, p := range []string{"{host}", "%HOST%", "$HOST"} {
		path = strings.ReplaceAll(path, p, host)
	}
	return path
}
