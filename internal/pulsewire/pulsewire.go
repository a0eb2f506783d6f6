// Package pulsewire recovers bytes from a voltage-vs-time trace of a
// pulse-width encoded single-wire bus.
//
// Decoding is a four stage pipeline applied once over a fully materialised
// capture: low pulses are detected against a fixed voltage threshold, pulses
// are grouped into bursts separated by idle gaps, each pulse width is
// classified as a bit under the transmitter's role profile, and each burst's
// bits are packed LSB-first into bytes.
package pulsewire

// Calibration constants. These reflect observed hardware pulse widths and are
// not derived from the capture.
const (
	// LowThresholdVolts is the level below which the line is considered low.
	LowThresholdVolts = 1.5

	// MasterShortPulseUS is the upper bound (exclusive) of a master '1' pulse.
	MasterShortPulseUS = 2.0
	// MasterLongPulseUS is the lower bound (exclusive) of a master '0' pulse.
	MasterLongPulseUS = 9.0

	// SlaveLongPulseUS splits slave pulses: shorter is '1', this or longer is '0'.
	SlaveLongPulseUS = 2.5

	// BurstGapUS is the idle time between pulse starts that opens a new burst.
	BurstGapUS = 100.0
)

// Sample is one oscilloscope reading.
type Sample struct {
	Time    float64 // seconds
	Voltage float64 // volts
}

// Pulse is a single contiguous low interval.
type Pulse struct {
	Start      float64 // seconds
	DurationUS float64
}

// Burst is a run of pulses with no idle gap between consecutive starts. A
// Burst produced by SegmentBursts always holds at least one pulse.
type Burst []Pulse

// Durations returns the pulse widths of the burst in microseconds.
func (b Burst) Durations() []float64 {
	out := make([]float64, len(b))
	for i, p := range b {
		out[i] = p.DurationUS
	}
	return out
}

// DecodedBurst is the decode result for one burst.
type DecodedBurst struct {
	// Index is the zero-based position of the burst in the capture.
	Index int
	// Start is the start time of the first pulse, in seconds.
	Start float64
	Bytes []byte
	// InvalidBits counts every invalid bit in the burst, including those in
	// groups that were dropped for other reasons.
	InvalidBits int
	// TrailingBits counts the 1-7 bits left over after the last full byte.
	TrailingBits int
	// Durations holds the raw pulse widths in microseconds.
	Durations []float64
}

// DroppedGroups returns how many complete 8-bit groups were voided by an
// invalid bit.
func (d DecodedBurst) DroppedGroups() int {
	return (len(d.Durations)-d.TrailingBits)/8 - len(d.Bytes)
}
