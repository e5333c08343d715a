package main

import (
	"fmt"
	"strings"

	"github.com/iafilius/ElevationProfile/src/analysis"
	"github.com/iafilius/ElevationProfile/src/types"
)

const tableCols = 7

// unitAbbrev returns the short distance and elevation unit names for column headers.
func unitAbbrev(u types.Unit) (dist, elev string) {
	if u == types.Kilometers {
		return "km", "m"
	}
	return "mi", "ft"
}

// headerText is the profiles table header for column col.
// columns: 0 Name, 1 Time, 2 Samples, 3 Distance, 4 Min, 5 Max, 6 Ascent/Descent
func headerText(col int, u types.Unit) string {
	dist, elev := unitAbbrev(u)
	switch col {
	case 0:
		return "Name"
	case 1:
		return "Time (UTC)"
	case 2:
		return "Samples"
	case 3:
		return "Distance (" + dist + ")"
	case 4:
		return "Min (" + elev + ")"
	case 5:
		return "Max (" + elev + ")"
	case 6:
		return "Ascent / Descent (" + elev + ")"
	}
	return ""
}

// cellText formats one data cell. Failed profiles only show their name and time.
func cellText(row analysis.ProfileSummary, col int) string {
	failed := row.Samples == 0
	switch col {
	case 0:
		name := row.Name
		if name == "" {
			name = row.ID
		}
		if failed && row.Error != "" {
			return name + " (failed)"
		}
		return name
	case 1:
		return strings.Replace(strings.TrimSuffix(row.Timestamp, "Z"), "T", " ", 1)
	}
	if failed {
		return "-"
	}
	switch col {
	case 2:
		return fmt.Sprintf("%d", row.Samples)
	case 3:
		return fmt.Sprintf("%.2f", row.Distance)
	case 4:
		return fmt.Sprintf("%.0f", row.MinElevation)
	case 5:
		return fmt.Sprintf("%.0f", row.MaxElevation)
	case 6:
		return fmt.Sprintf("+%.0f / -%.0f", row.Ascent, row.Descent)
	}
	return ""
}

// summarizeAll builds the table rows for records in unit.
func summarizeAll(records []types.ProfileRecord, unit types.Unit) []analysis.ProfileSummary {
	rows := make([]analysis.ProfileSummary, 0, len(records))
	for _, rec := range records {
		rows = append(rows, analysis.SummarizeRecord(rec, unit))
	}
	return rows
}

// chartTitle is the caption above the chart for one row.
func chartTitle(row analysis.ProfileSummary) string {
	name := row.Name
	if name == "" {
		name = row.ID
	}
	if row.Samples == 0 {
		if row.Error != "" {
			return name + ": " + row.Error
		}
		return name + ": no elevation data"
	}
	dist, elev := unitAbbrev(row.Unit)
	return fmt.Sprintf("%s: %.2f %s, %.0f to %.0f %s", name, row.Distance, dist, row.MinElevation, row.MaxElevation, elev)
}
