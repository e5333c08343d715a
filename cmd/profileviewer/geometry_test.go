package main

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-3 }

func TestComputeContainRect_Letterbox(t *testing.T) {
	// 800x400 image in a 1000x1000 view: width-bound, centered vertically.
	r := computeContainRect(800, 400, 1000, 1000)
	if !near(float64(r.Scale), 1.25) || !near(float64(r.W), 1000) || !near(float64(r.H), 500) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if !near(float64(r.X), 0) || !near(float64(r.Y), 250) {
		t.Fatalf("image should be centered vertically: %+v", r)
	}
	// height-bound
	r = computeContainRect(800, 400, 2000, 200)
	if !near(float64(r.Scale), 0.5) || !near(float64(r.X), 800) || !near(float64(r.Y), 0) {
		t.Fatalf("unexpected height-bound rect %+v", r)
	}
}

func TestComputeContainRect_ZeroImage(t *testing.T) {
	r := computeContainRect(0, 0, 300, 200)
	if r.Scale != 1 || r.W != 300 || r.H != 200 || r.X != 0 || r.Y != 0 {
		t.Fatalf("zero image should map 1:1, got %+v", r)
	}
}

func TestContainRect_RoundTrip(t *testing.T) {
	r := computeContainRect(800, 400, 1000, 1000)
	p := r.toView(420, 20)
	if !r.contains(p) {
		t.Fatalf("mapped point %v outside rect %+v", p, r)
	}
	x, y := r.toImage(p)
	if !near(x, 420) || !near(y, 20) {
		t.Fatalf("round trip got (%v,%v)", x, y)
	}
	if r.contains(fyne.NewPos(500, 100)) {
		t.Fatalf("point in the letterbox band should be outside the image")
	}
}
