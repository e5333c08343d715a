package analysis

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/iafilius/ElevationProfile/src/logging"
	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

var log = logging.For("analysis")

// MaxLineBytes caps one JSONL line; a profile with a few hundred points is far below it.
const MaxLineBytes = 64 * 1024 * 1024

// LoadProfiles returns the last max records (all when max <= 0) of a profiles JSONL file,
// oldest first. Malformed lines and lines of another schema version are skipped.
func LoadProfiles(path string, max int) ([]types.ProfileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	log.Debugf("reading profiles from %s (schema_version=%d, max=%d)", path, types.SchemaVersion, max)

	reader := bufio.NewReader(f)
	var (
		records []types.ProfileRecord
		skipped int
	)
readLoop:
	for {
		var line []byte
		for {
			part, rerr := reader.ReadBytes('\n')
			if len(part) > 0 {
				if len(line)+len(part) > MaxLineBytes {
					return nil, fmt.Errorf("line too large: %d bytes exceeds limit %d in %s", len(line)+len(part), MaxLineBytes, path)
				}
				line = append(line, part...)
			}
			if rerr == nil {
				break
			}
			if errors.Is(rerr, io.EOF) {
				if len(line) == 0 {
					break readLoop
				}
				break
			}
			log.Warnf("read warning: %v (file=%s)", rerr, path)
			if len(line) == 0 {
				break readLoop
			}
			break
		}
		var rec types.ProfileRecord
		if err := json.Unmarshal(line, &rec); err != nil || rec.SchemaVersion != types.SchemaVersion {
			skipped++
			continue
		}
		records = append(records, rec)
		if max > 0 && len(records) > max {
			records = records[len(records)-max:]
		}
	}
	if skipped > 0 {
		log.Infof("skipped %d unreadable or foreign-schema lines in %s", skipped, path)
	}
	return records, nil
}

// Summary describes one series in its display unit.
type Summary struct {
	Samples      int
	Distance     float64
	MinElevation float64
	MaxElevation float64
	Ascent       float64
	Descent      float64
}

// Summarize computes the extent, total ascent and total descent of s.
// NaN elevations are ignored.
func Summarize(s profile.Series) Summary {
	sum := Summary{Samples: len(s)}
	if len(s) == 0 {
		return sum
	}
	sum.Distance = s[len(s)-1].Distance - s[0].Distance
	sum.MinElevation, sum.MaxElevation = s.ElevationExtent()
	prev := math.NaN()
	for _, p := range s {
		if math.IsNaN(p.Elevation) {
			continue
		}
		if !math.IsNaN(prev) {
			if d := p.Elevation - prev; d > 0 {
				sum.Ascent += d
			} else {
				sum.Descent -= d
			}
		}
		prev = p.Elevation
	}
	return sum
}

// ProfileSummary is one row of the profile tables in the viewer and the reader.
type ProfileSummary struct {
	ID        string
	Name      string
	Timestamp string
	Unit      types.Unit
	Summary
	Error string
}

// SummarizeRecord converts a record into unit and summarizes it.
func SummarizeRecord(rec types.ProfileRecord, unit types.Unit) ProfileSummary {
	return ProfileSummary{
		ID:        rec.ID,
		Name:      rec.Name,
		Timestamp: rec.TimestampUTC,
		Unit:      unit,
		Summary:   Summarize(profile.ConvertFromMeters(rec.Points, unit)),
		Error:     rec.Error,
	}
}

// FindProfile returns the newest record with the given id or name.
func FindProfile(records []types.ProfileRecord, key string) (types.ProfileRecord, bool) {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].ID == key || (records[i].Name != "" && records[i].Name == key) {
			return records[i], true
		}
	}
	return types.ProfileRecord{}, false
}
