package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CohortStats summarizes one attribute's score distribution across a cohort
// of generated animals.
type CohortStats struct {
	Attribute string  `csv:"attribute"`
	Count     int     `csv:"count"`
	Mean      float64 `csv:"mean"`
	StdDev    float64 `csv:"std_dev"`
	P10       float64 `csv:"p10"`
	P50       float64 `csv:"p50"`
	P90       float64 `csv:"p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeCohortStats summarizes one attribute's scores.
func ComputeCohortStats(attribute string, scores []int) CohortStats {
	s := CohortStats{Attribute: attribute, Count: len(scores)}
	if len(scores) == 0 {
		return s
	}

	values := make([]float64, len(scores))
	for i, v := range scores {
		values[i] = float64(v)
	}

	s.Mean = stat.Mean(values, nil)
	s.StdDev = stat.StdDev(values, nil)

	sort.Float64s(values)
	s.P10 = Percentile(values, 0.10)
	s.P50 = Percentile(values, 0.50)
	s.P90 = Percentile(values, 0.90)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s CohortStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("attribute", s.Attribute),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
	)
}
