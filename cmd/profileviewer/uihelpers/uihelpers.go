package uihelpers

import (
	"path/filepath"
)

// ComputeChartDimensions applies width/height clamp rules used for the profile chart.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	h := int(float32(w) * 0.4)
	if h < 260 {
		h = 260
	}
	if h > 480 {
		h = 480
	}
	return w, h
}

// ChartWidthForWindow derives the raw chart width from the window width, leaving room for
// scrollbars and padding.
func ChartWidthForWindow(winW float32) int {
	return int(winW*0.95) - 12
}

// ComputeTableColumnWidths returns the 7 column widths for the profiles table given a window width.
// Order: Name, Time, Samples, Distance, MinElev, MaxElev, Ascent/Descent
func ComputeTableColumnWidths(winW float32) [7]int {
	const compactBreakpoint = 900
	const ultraCompactBreakpoint = 520
	if winW < ultraCompactBreakpoint {
		return [7]int{120, 0, 0, 80, 0, 70, 0}
	}
	if winW < compactBreakpoint {
		return [7]int{160, 0, 60, 90, 80, 80, 110}
	}
	return [7]int{220, 170, 70, 110, 100, 100, 150}
}

// TruncatePath shortens p to about n characters, always keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
