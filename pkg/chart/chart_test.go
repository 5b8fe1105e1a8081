package chart

import (
	"math"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketsDaily(t *testing.T) {
	buckets := Buckets(day(1), day(8), 7)
	if len(buckets) != 7 {
		t.Fatalf("Expected 7 buckets, got %d", len(buckets))
	}
	if !buckets[0].Start.Equal(day(1)) || !buckets[0].End.Equal(day(2)) {
		t.Errorf("Unexpected first bucket: %+v", buckets[0])
	}
	if !buckets[6].End.Equal(day(8)) {
		t.Errorf("Last bucket should close the range, got %+v", buckets[6])
	}
	if buckets[2].Label != "2024-06-03" {
		t.Errorf("Unexpected label: %s", buckets[2].Label)
	}
}

func TestBucketsDegenerateRange(t *testing.T) {
	if got := Buckets(day(8), day(1), 7); got != nil {
		t.Errorf("Expected no buckets for inverted range, got %d", len(got))
	}
	if got := Buckets(day(1), day(1), 7); got != nil {
		t.Errorf("Expected no buckets for empty range, got %d", len(got))
	}
	if got := Buckets(day(1), day(8), 0); len(got) != 1 {
		t.Errorf("Expected count clamp to one bucket, got %d", len(got))
	}
}

func TestAssign(t *testing.T) {
	buckets := Buckets(day(1), day(8), 7)
	points := []Point{
		{At: day(1), Value: 10},
		{At: day(3).Add(12 * time.Hour), Value: 5},
		{At: day(3).Add(18 * time.Hour), Value: 7},
		{At: day(8), Value: 3},                   // closing boundary lands in the last bucket
		{At: day(1).Add(-time.Hour), Value: 100}, // out of range
	}

	values := Assign(buckets, points)
	if values[0] != 10 {
		t.Errorf("Expected 10 in first bucket, got %v", values[0])
	}
	if values[2] != 12 {
		t.Errorf("Expected 12 in third bucket, got %v", values[2])
	}
	if values[6] != 3 {
		t.Errorf("Expected closing boundary in last bucket, got %v", values[6])
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	if total != 25 {
		t.Errorf("Out-of-range point should be dropped, total %v", total)
	}
}

func TestTickScale(t *testing.T) {
	s := TickScale(10, 2)
	want := []float64{0, 5, 10}
	if len(s.Ticks) != len(want) {
		t.Fatalf("Expected %d ticks, got %d", len(want), len(s.Ticks))
	}
	for i := range want {
		if s.Ticks[i] != want[i] {
			t.Errorf("Tick %d: expected %v, got %v", i, want[i], s.Ticks[i])
		}
	}
}

func TestTickScaleMonotonic(t *testing.T) {
	for _, max := range []float64{0.3, 1, 7, 42, 100, 99999.5} {
		s := TickScale(max, 4)
		for i := 1; i < len(s.Ticks); i++ {
			if s.Ticks[i] <= s.Ticks[i-1] {
				t.Errorf("Ticks not ascending for max %v: %v", max, s.Ticks)
			}
		}
		if s.Ticks[len(s.Ticks)-1] < max {
			t.Errorf("Top tick below max %v: %v", max, s.Ticks)
		}
	}
}

func TestTickScaleMalformedInput(t *testing.T) {
	for _, max := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		s := TickScale(max, 3)
		for _, tick := range s.Ticks {
			if tick != 0 {
				t.Errorf("Expected zeroed scale for max %v, got %v", max, s.Ticks)
			}
		}
		if y := s.ValueToY(10); y != 0 {
			t.Errorf("Expected zero Y on zeroed scale, got %v", y)
		}
	}
}

func TestValueToY(t *testing.T) {
	s := Scale{Ticks: []float64{0, 50, 100, 200}}

	cases := []struct {
		value float64
		want  float64
	}{
		{0, 0},
		{-3, 0},
		{50, 1.0 / 3},
		{100, 2.0 / 3},
		{150, 2.5 / 3}, // halfway through the last segment, not 3/4 of the value range
		{200, 1},
		{999, 1},
	}
	for _, c := range cases {
		got := s.ValueToY(c.value)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ValueToY(%v): expected %v, got %v", c.value, c.want, got)
		}
	}
}
