package profile

import (
	"github.com/iafilius/ElevationProfile/src/types"
)

// Conversion factors from the service's meters.
const (
	MetersToMiles      = 0.000621371
	MetersToKilometers = 0.001
	MetersToFeet       = 3.28084
)

// unitFactors returns the distance and elevation multipliers for a display unit.
// Anything that is not Kilometers is treated as Miles, the widget default.
func unitFactors(unit types.Unit) (dist, elev float64) {
	if unit == types.Kilometers {
		return MetersToKilometers, 1
	}
	return MetersToMiles, MetersToFeet
}

// ConvertFromMeters builds a Series in the display unit from the canonical meter-based
// service output. Always convert from the raw points: feeding an already converted
// series back in is a caller bug.
func ConvertFromMeters(points []types.ElevationPoint, unit types.Unit) Series {
	if len(points) == 0 {
		return nil
	}
	df, ef := unitFactors(unit)
	out := make(Series, len(points))
	for i, p := range points {
		out[i] = Sample{
			Distance:  p.M * df,
			Elevation: p.Z * ef,
			LocationX: p.X,
			LocationY: p.Y,
		}
	}
	return out
}

// DistanceTitle and ElevationTitle are the axis captions for a unit.
func DistanceTitle(unit types.Unit) string  { return "Distance in " + string(unitOrDefault(unit)) }
func ElevationTitle(unit types.Unit) string { return "Elevation in " + unitOrDefault(unit).ElevationUnit() }

func unitOrDefault(unit types.Unit) types.Unit {
	if unit == types.Kilometers {
		return unit
	}
	return types.Miles
}

// DistanceFactor is the meters-to-distance multiplier for a unit.
func DistanceFactor(unit types.Unit) float64 {
	d, _ := unitFactors(unit)
	return d
}
