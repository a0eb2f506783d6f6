package pulsewire

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BurstStats summarises the pulse widths of one burst.
type BurstStats struct {
	Pulses int     `json:"pulses"`
	MinUS  float64 `json:"min_us"`
	MaxUS  float64 `json:"max_us"`
	MeanUS float64 `json:"mean_us"`
	// StdDevUS is the sample standard deviation; zero for single-pulse bursts.
	StdDevUS float64 `json:"stddev_us"`
}

// Stats computes width statistics for a decoded burst.
func Stats(d DecodedBurst) BurstStats {
	s := BurstStats{Pulses: len(d.Durations)}
	if s.Pulses == 0 {
		return s
	}
	s.MinUS = floats.Min(d.Durations)
	s.MaxUS = floats.Max(d.Durations)
	if s.Pulses == 1 {
		s.MeanUS = d.Durations[0]
		return s
	}
	s.MeanUS, s.StdDevUS = stat.MeanStdDev(d.Durations, nil)
	return s
}

// Summary totals a decode run.
type Summary struct {
	Bursts        int `json:"bursts"`
	Pulses        int `json:"pulses"`
	Bytes         int `json:"bytes"`
	InvalidBits   int `json:"invalid_bits"`
	DroppedGroups int `json:"dropped_groups"`
	TrailingBits  int `json:"trailing_bits"`
}

// Summarize totals the results of a decode run.
func Summarize(bursts []DecodedBurst) Summary {
	var s Summary
	for _, d := range bursts {
		s.Bursts++
		s.Pulses += len(d.Durations)
		s.Bytes += len(d.Bytes)
		s.InvalidBits += d.InvalidBits
		s.DroppedGroups += d.DroppedGroups()
		s.TrailingBits += d.TrailingBits
	}
	return s
}

// Histogram counts widths across all bursts into bins of binUS microseconds
// covering [0, maxUS). Widths at or beyond maxUS land in the last bin and NaN
// widths are skipped. It returns nil for a non-positive bin or range.
func Histogram(bursts []DecodedBurst, binUS, maxUS float64) []float64 {
	if binUS <= 0 || maxUS <= 0 {
		return nil
	}
	n := int(math.Ceil(maxUS / binUS))
	dividers := make([]float64, n+1)
	floats.Span(dividers, 0, float64(n)*binUS)

	top := dividers[n] - binUS/2
	var xs []float64
	for _, d := range bursts {
		for _, v := range d.Durations {
			if math.IsNaN(v) {
				continue
			}
			xs = append(xs, math.Max(0, math.Min(v, top)))
		}
	}
	sort.Float64s(xs)
	return stat.Histogram(make([]float64, n), dividers, xs, nil)
}
