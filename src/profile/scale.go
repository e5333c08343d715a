package profile

import "math"

// Scale is a linear mapping from a data domain onto a pixel range. The range may be
// inverted (rangeMin > rangeMax), which is how the y axis grows upwards on screen.
type Scale struct {
	domainMin, domainMax float64
	rangeMin, rangeMax   float64
	hasDomain            bool
}

// SetDomain fits the scale to [min,max]. A zero-width domain is widened to [v-1, v+1]
// so the scale stays invertible.
func (s *Scale) SetDomain(min, max float64) {
	if max < min {
		min, max = max, min
	}
	if max == min {
		min, max = min-1, max+1
	}
	s.domainMin, s.domainMax = min, max
	s.hasDomain = true
}

// SetRange sets the pixel interval the domain maps onto.
func (s *Scale) SetRange(from, to float64) {
	s.rangeMin, s.rangeMax = from, to
}

// Reset forgets the domain but keeps the range, which is owned by the viewport.
func (s *Scale) Reset() {
	s.domainMin, s.domainMax = 0, 0
	s.hasDomain = false
}

// Empty reports whether no domain has been fitted yet.
func (s Scale) Empty() bool { return !s.hasDomain }

func (s Scale) Domain() (float64, float64) { return s.domainMin, s.domainMax }
func (s Scale) Range() (float64, float64)  { return s.rangeMin, s.rangeMax }

// Apply maps a domain value to a pixel position. An empty scale maps everything to rangeMin.
func (s Scale) Apply(v float64) float64 {
	span := s.domainMax - s.domainMin
	if !s.hasDomain || span == 0 {
		return s.rangeMin
	}
	return s.rangeMin + (v-s.domainMin)/span*(s.rangeMax-s.rangeMin)
}

// Invert maps a pixel position back into the domain. A zero-width range collapses to domainMin.
func (s Scale) Invert(px float64) float64 {
	span := s.rangeMax - s.rangeMin
	if span == 0 {
		return s.domainMin
	}
	return s.domainMin + (px-s.rangeMin)/span*(s.domainMax-s.domainMin)
}

// Ticks returns roughly n "nice" values (1, 2, 2.5, 5 × 10^k steps) inside the domain.
func (s Scale) Ticks(n int) []float64 {
	if !s.hasDomain || n < 2 {
		return nil
	}
	min, max := s.domainMin, s.domainMax
	step := niceStep(max-min, n)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return []float64{min, max}
	}
	start := math.Ceil(min/step) * step
	var out []float64
	// tiny slack absorbs float drift at the upper bound
	for v := start; v <= max+step*1e-9; v += step {
		out = append(out, round6(v))
		if len(out) > 4*n {
			break
		}
	}
	return out
}

// niceStep picks the candidate step whose tick count lands closest to n.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 2 {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	best := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Floor(span/step) + 1
		score := math.Abs(count - float64(n))
		if score < bestScore {
			bestScore = score
			best = step
		}
	}
	return best
}

// round6 rounds to 6 decimal places to keep tick values stable for labels and tests.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// tickCount spaces ticks roughly every `spacing` pixels, between 2 and 10 of them.
func tickCount(pixels, spacing float64) int {
	n := int(pixels / spacing)
	if n < 2 {
		return 2
	}
	if n > 10 {
		return 10
	}
	return n
}
