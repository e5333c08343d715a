// Package types holds the records shared between the collector, the analysis package and the viewers.
package types

import (
	"fmt"
	"strings"
)

// SchemaVersion is stamped on every persisted ProfileRecord; readers skip other versions.
const SchemaVersion = 1

// Unit is the user-selected display unit system.
type Unit string

const (
	// Miles shows distance in miles and elevation in feet.
	Miles Unit = "Miles"
	// Kilometers shows distance in kilometers and elevation in meters.
	Kilometers Unit = "Kilometers"
)

// ParseUnit accepts the unit names case-insensitively, plus the short forms mi/km.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "miles", "mile", "mi":
		return Miles, nil
	case "kilometers", "kilometres", "kilometer", "km":
		return Kilometers, nil
	}
	return "", fmt.Errorf("unknown unit %q (want Miles or Kilometers)", s)
}

// ElevationUnit is the y-axis unit label that goes with the distance unit.
func (u Unit) ElevationUnit() string {
	if u == Kilometers {
		return "meters"
	}
	return "feet"
}

// Toggle returns the other unit system.
func (u Unit) Toggle() Unit {
	if u == Miles {
		return Kilometers
	}
	return Miles
}

// ElevationPoint is one raw tuple returned by the profile service, all values in meters.
// X/Y are map coordinates in the request's spatial reference, Z is elevation and M the
// distance along the path.
type ElevationPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	M float64 `json:"m"`
}

// ProfileRecord is one line of the profiles JSONL file written by the collector.
type ProfileRecord struct {
	SchemaVersion    int              `json:"schema_version"`
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	TimestampUTC     string           `json:"timestamp_utc"`
	Unit             Unit             `json:"sampling_unit"`
	SamplingDistance float64          `json:"sampling_distance"`
	LengthMeters     float64          `json:"length_m"`
	SpatialRef       int              `json:"wkid,omitempty"`
	Points           []ElevationPoint `json:"points,omitempty"`
	Error            string           `json:"error,omitempty"`
}
