package elevation

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/iafilius/ElevationProfile/src/profile"
	"github.com/iafilius/ElevationProfile/src/types"
)

// Well-known spatial reference ids.
const (
	WKIDGeographic  = 4326
	WKIDWebMercator = 3857
	// Esri's historical ids for the same web mercator projection.
	wkidWebMercatorEsri   = 102100
	wkidWebMercatorLegacy = 102113
	wkidGoogle            = 900913
)

// SamplePointCount is the number of intervals the service is asked to sample a path into.
const SamplePointCount = 198

// ErrNoLine is returned by LoadPath when the document holds no LineString geometry.
var ErrNoLine = errors.New("elevation: no line geometry found")

// Path is a user-drawn line in map coordinates.
type Path struct {
	Name string
	Line orb.LineString
	// WKID of the coordinates; zero is treated as geographic.
	WKID int
}

// SpatialRef returns the effective wkid.
func (p Path) SpatialRef() int {
	if p.WKID == 0 {
		return WKIDGeographic
	}
	return p.WKID
}

// IsWebMercator reports whether the path is in a web mercator spatial reference.
func (p Path) IsWebMercator() bool {
	switch p.WKID {
	case WKIDWebMercator, wkidWebMercatorEsri, wkidWebMercatorLegacy, wkidGoogle:
		return true
	}
	return false
}

// Geographic returns the path as lon/lat. Anything that is not web mercator is assumed geographic.
func (p Path) Geographic() orb.LineString {
	if !p.IsWebMercator() {
		return p.Line
	}
	return project.LineString(p.Line.Clone(), project.Mercator.ToWGS84)
}

// LengthMeters is the geodesic length of the path.
func (p Path) LengthMeters() float64 {
	return geo.LengthHaversine(p.Geographic())
}

// SamplingDistance is the maximum sample distance, in unit, that yields SamplePointCount
// intervals along the path.
func SamplingDistance(p Path, unit types.Unit) float64 {
	return p.LengthMeters() * profile.DistanceFactor(unit) / SamplePointCount
}

// LoadPath reads the LineStrings of a GeoJSON FeatureCollection or single Feature.
// MultiLineStrings contribute each part. A "wkid" property sets the spatial reference of
// its feature; a top-level "wkid" member applies to the whole collection.
func LoadPath(file string) ([]Path, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var features []*geojson.Feature
	defaultWKID := 0
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		features = fc.Features
		defaultWKID = wkidOf(fc.ExtraMembers, 0)
	} else {
		f, ferr := geojson.UnmarshalFeature(data)
		if ferr != nil {
			return nil, fmt.Errorf("parse geojson %s: %w", file, ferr)
		}
		features = []*geojson.Feature{f}
	}

	var paths []Path
	for i, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		wkid := wkidOf(f.Properties, defaultWKID)
		name, _ := f.Properties["name"].(string)
		if name == "" {
			name = fmt.Sprintf("line-%d", i+1)
		}
		switch g := f.Geometry.(type) {
		case orb.LineString:
			paths = append(paths, Path{Name: name, Line: g, WKID: wkid})
		case orb.MultiLineString:
			for j, ls := range g {
				paths = append(paths, Path{Name: fmt.Sprintf("%s.%d", name, j+1), Line: ls, WKID: wkid})
			}
		default:
			log.Debugf("skipping %s geometry in %s", f.Geometry.GeoJSONType(), file)
		}
	}
	if len(paths) == 0 {
		return nil, ErrNoLine
	}
	return paths, nil
}

func wkidOf(p geojson.Properties, def int) int {
	switch v := p["wkid"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}
