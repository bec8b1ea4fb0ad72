package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeCohortStats(t *testing.T) {
	scores := []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	s := ComputeCohortStats("gallop", scores)

	if s.Attribute != "gallop" || s.Count != 10 {
		t.Errorf("header fields wrong: %+v", s)
	}
	if math.Abs(s.Mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", s.Mean)
	}
	if math.Abs(s.P50-55) > 0.01 {
		t.Errorf("p50 = %v, want ~55", s.P50)
	}
	if math.Abs(s.P10-19) > 0.01 {
		t.Errorf("p10 = %v, want ~19", s.P10)
	}
	if math.Abs(s.P90-91) > 0.01 {
		t.Errorf("p90 = %v, want ~91", s.P90)
	}
	if s.StdDev <= 0 {
		t.Errorf("std_dev = %v, want > 0", s.StdDev)
	}
}

func TestComputeCohortStatsEmpty(t *testing.T) {
	s := ComputeCohortStats("walk", nil)
	if s.Count != 0 || s.Mean != 0 || s.StdDev != 0 {
		t.Errorf("empty cohort stats = %+v, want zeros", s)
	}
}
