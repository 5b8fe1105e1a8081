// Package chart holds the presentation math behind the revenue chart:
// date-range bucketing and the piecewise-linear Y-axis tick scale that
// keeps uneven value ranges evenly spaced on screen.
package chart

import (
	"math"
	"time"
)

// Bucket is one display bucket of a date range.
type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Point is a timestamped value to be summed into a bucket.
type Point struct {
	At    time.Time
	Value float64
}

// Buckets splits [from, to) into n display buckets. The count is clamped
// to at least 1; an empty or inverted range yields no buckets.
func Buckets(from, to time.Time, n int) []Bucket {
	if !to.After(from) {
		return nil
	}
	if n < 1 {
		n = 1
	}
	total := to.Sub(from)
	step := total / time.Duration(n)
	if step <= 0 {
		step = total
		n = 1
	}

	buckets := make([]Bucket, n)
	for i := 0; i < n; i++ {
		start := from.Add(step * time.Duration(i))
		end := start.Add(step)
		if i == n-1 {
			end = to
		}
		buckets[i] = Bucket{
			Start: start,
			End:   end,
			Label: start.Format("2006-01-02"),
		}
	}
	return buckets
}

// Assign sums point values into their buckets. Points outside the range
// are dropped; a point on the closing boundary lands in the last bucket.
func Assign(buckets []Bucket, points []Point) []float64 {
	values := make([]float64, len(buckets))
	if len(buckets) == 0 {
		return values
	}
	last := len(buckets) - 1
	for _, p := range points {
		if p.At.Before(buckets[0].Start) || p.At.After(buckets[last].End) {
			continue
		}
		if p.At.Equal(buckets[last].End) {
			values[last] += p.Value
			continue
		}
		for i, b := range buckets {
			if !p.At.Before(b.Start) && p.At.Before(b.End) {
				values[i] += p.Value
				break
			}
		}
	}
	return values
}

// Scale is a piecewise-linear Y axis. Ticks are ascending values that are
// rendered at equal visual spacing even when the value gaps between them
// are not equal.
type Scale struct {
	Ticks []float64 `json:"ticks"`
}

// TickScale builds a scale of segments+1 ticks from zero up to at least
// maxValue. Each tick is rounded up to a "nice" number (1/2/2.5/5 times a
// power of ten). Non-positive or malformed maxValue yields an all-zero
// scale.
func TickScale(maxValue float64, segments int) Scale {
	if segments < 1 {
		segments = 1
	}
	ticks := make([]float64, segments+1)
	if maxValue <= 0 || math.IsNaN(maxValue) || math.IsInf(maxValue, 0) {
		return Scale{Ticks: ticks}
	}
	for i := 1; i <= segments; i++ {
		tick := niceCeil(maxValue * float64(i) / float64(segments))
		if tick <= ticks[i-1] {
			tick = niceCeil(ticks[i-1] * 1.0001)
			if tick <= ticks[i-1] {
				tick = ticks[i-1] + 1
			}
		}
		ticks[i] = tick
	}
	return Scale{Ticks: ticks}
}

// ValueToY maps a value onto the scale, returning a fraction in [0, 1]
// where each tick interval occupies the same visual height. Values at or
// below zero map to 0; values past the top tick clamp to 1.
func (s Scale) ValueToY(v float64) float64 {
	if len(s.Ticks) < 2 || v <= 0 || math.IsNaN(v) {
		return 0
	}
	top := s.Ticks[len(s.Ticks)-1]
	if top <= 0 {
		return 0
	}
	if v >= top {
		return 1
	}
	segHeight := 1 / float64(len(s.Ticks)-1)
	for i := 1; i < len(s.Ticks); i++ {
		lo, hi := s.Ticks[i-1], s.Ticks[i]
		if v <= hi {
			if hi == lo {
				return float64(i) * segHeight
			}
			frac := (v - lo) / (hi - lo)
			return (float64(i-1) + frac) * segHeight
		}
	}
	return 1
}

// niceCeil rounds up to the nearest 1, 2, 2.5 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(v))
	mag := math.Pow(10, exp)
	frac := v / mag
	var nice float64
	switch {
	case frac <= 1:
		nice = 1
	case frac <= 2:
		nice = 2
	case frac <= 2.5:
		nice = 2.5
	case frac <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * mag
}
