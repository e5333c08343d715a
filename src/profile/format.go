package profile

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatDistance renders axis distances with thousands separators and two decimals.
func formatDistance(v float64) string { return trimNegativeZero(printer.Sprintf("%.2f", v)) }

// formatElevation renders elevations with thousands separators and no decimals.
func formatElevation(v float64) string { return trimNegativeZero(printer.Sprintf("%.0f", v)) }

// FormatDistance and FormatElevation are the label formats used on the axes, for callers
// that print samples outside the chart.
func FormatDistance(v float64) string  { return formatDistance(v) }
func FormatElevation(v float64) string { return formatElevation(v) }

func trimNegativeZero(s string) string {
	switch s {
	case "-0":
		return "0"
	case "-0.00":
		return "0.00"
	}
	return s
}
