package uihelpers

import (
	"strings"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct {
		in    int
		wantW int
	}{
		{100, 640},
		{639, 640},
		{640, 640},
		{1600, 1600},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.in)
		if w != c.wantW {
			t.Fatalf("input %d => width %d want %d", c.in, w, c.wantW)
		}
		if h < 260 || h > 480 {
			t.Fatalf("height clamp violated for input %d => h=%d", c.in, h)
		}
	}
	if _, h := ComputeChartDimensions(1000); h != 400 {
		t.Fatalf("1000 wide chart should be 400 high, got %d", h)
	}
}

func TestChartWidthForWindow(t *testing.T) {
	if got := ChartWidthForWindow(1100); got != 1033 {
		t.Fatalf("ChartWidthForWindow(1100)=%d", got)
	}
}

func TestComputeTableColumnWidths(t *testing.T) {
	ultra := ComputeTableColumnWidths(400)
	if ultra != [7]int{120, 0, 0, 80, 0, 70, 0} {
		t.Fatalf("ultra widths mismatch: %#v", ultra)
	}
	compact := ComputeTableColumnWidths(700)
	if compact[1] != 0 || compact[3] == 0 || compact[6] == 0 {
		t.Fatalf("compact layout should hide only the time column: %#v", compact)
	}
	full := ComputeTableColumnWidths(1200)
	if full != [7]int{220, 170, 70, 110, 100, 100, 150} {
		t.Fatalf("full widths mismatch got %#v", full)
	}

	// Edge transitions around breakpoints
	if w := ComputeTableColumnWidths(519); w[0] != 120 {
		t.Fatalf("expected ultra layout at 519 got %#v", w)
	}
	if w := ComputeTableColumnWidths(521); w[0] != 160 {
		t.Fatalf("expected compact layout at 521 got %#v", w)
	}
	if w := ComputeTableColumnWidths(901); w[0] != 220 {
		t.Fatalf("expected full layout at 901 got %#v", w)
	}
}

func TestTruncatePath(t *testing.T) {
	short := "/tmp/a.jsonl"
	if got := TruncatePath(short, 60); got != short {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/home/user/some/really/deep/directory/structure/for/results/elevation_profiles.jsonl"
	got := TruncatePath(long, 40)
	if !strings.HasSuffix(got, "elevation_profiles.jsonl") || len(got) > 44 {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := TruncatePath("/x/"+strings.Repeat("n", 50)+".jsonl", 20); !strings.HasPrefix(got, "...") {
		t.Fatalf("long base should be prefixed with ...: %q", got)
	}
}
