package profile

import (
	"math"
	"sort"
)

// Sample is one point along the profiled path in the current display unit.
// LocationX/Y are map coordinates used only to place the map marker.
type Sample struct {
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
	LocationX float64 `json:"location_x"`
	LocationY float64 `json:"location_y"`
}

// Series is ordered by non-decreasing Distance. The sampling service guarantees the order;
// nothing here re-validates it.
type Series []Sample

// DistanceExtent returns the min and max distance of a non-empty series.
func (s Series) DistanceExtent() (float64, float64) {
	return extent(s, func(v Sample) float64 { return v.Distance })
}

// ElevationExtent returns the min and max elevation of a non-empty series.
func (s Series) ElevationExtent() (float64, float64) {
	return extent(s, func(v Sample) float64 { return v.Elevation })
}

func extent(s Series, field func(Sample) float64) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, v := range s {
		f := field(v)
		if math.IsNaN(f) {
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0
	}
	return min, max
}

// lowerBound returns the first index whose distance is >= d, or len(s).
func lowerBound(s Series, d float64) int {
	return sort.Search(len(s), func(i int) bool { return s[i].Distance >= d })
}

// NearestIndex returns the index of the sample whose distance is closest to d.
// Equal distances resolve to the earlier sample. It returns -1 for an empty series.
func NearestIndex(s Series, d float64) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	i := lowerBound(s, d)
	if i == 0 {
		return 0
	}
	if i == n {
		return lowerBound(s, s[n-1].Distance)
	}
	left, right := s[i-1], s[i]
	if d-left.Distance > right.Distance-d {
		return i
	}
	// step back over duplicated distances so the earliest equal sample wins
	return lowerBound(s, left.Distance)
}
