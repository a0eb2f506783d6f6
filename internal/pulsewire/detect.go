package pulsewire

import "github.com/banshee-data/pulsewire/internal/units"

// EdgeDetector finds low pulses one sample at a time. The zero value is not
// usable; construct with NewEdgeDetector.
type EdgeDetector struct {
	threshold float64

	prev    Sample
	hasPrev bool
	inLow   bool
	lowAt   float64
}

// NewEdgeDetector returns a detector that treats voltages below threshold as
// low.
func NewEdgeDetector(threshold float64) *EdgeDetector {
	return &EdgeDetector{threshold: threshold}
}

// Push feeds the next sample and reports a pulse when s closes a low interval.
// A low interval begins at the first sample below the threshold that follows a
// sample at or above it, and ends at the next sample at or above it.
func (d *EdgeDetector) Push(s Sample) (Pulse, bool) {
	var (
		p  Pulse
		ok bool
	)

	if d.hasPrev {
		if d.prev.Voltage >= d.threshold && s.Voltage < d.threshold {
			d.inLow = true
			d.lowAt = s.Time
		}
		if d.inLow && s.Voltage >= d.threshold {
			p = Pulse{Start: d.lowAt, DurationUS: units.SecondsToMicros(s.Time - d.lowAt)}
			ok = true
			d.inLow = false
		}
	}

	d.prev = s
	d.hasPrev = true
	return p, ok
}

// Pending reports whether a low interval is open and unterminated.
func (d *EdgeDetector) Pending() bool {
	return d.inLow
}

// DetectPulses scans samples for low intervals and returns one Pulse per
// completed interval, in order. A low run still open when the samples end is
// discarded.
func DetectPulses(samples []Sample, threshold float64) []Pulse {
	det := NewEdgeDetector(threshold)
	var pulses []Pulse
	for _, s := range samples {
		if p, ok := det.Push(s); ok {
			pulses = append(pulses, p)
		}
	}
	return pulses
}
