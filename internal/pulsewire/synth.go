package pulsewire

import "github.com/banshee-data/pulsewire/internal/units"

// SynthOptions shapes the trace produced by Synthesize.
type SynthOptions struct {
	// SamplePeriod is the spacing of filler samples in seconds. Zero emits
	// only the edge samples.
	SamplePeriod float64
	HighVolts    float64
	LowVolts     float64

	// OneUS and ZeroUS are the low widths used for '1' and '0' bits.
	OneUS  float64
	ZeroUS float64
	// BitGapUS is the high time between pulses inside a burst.
	BitGapUS float64
	// IdleUS is the high time between bursts and before the first burst.
	IdleUS float64
}

// DefaultSynthOptions returns pulse widths near the middle of each role's
// bands with a 3.3V logic level.
func DefaultSynthOptions(role Role) SynthOptions {
	o := SynthOptions{
		SamplePeriod: 0,
		HighVolts:    3.3,
		LowVolts:     0.1,
		OneUS:        1.0,
		BitGapUS:     6.0,
		IdleUS:       250.0,
	}
	switch role {
	case RoleSlave:
		o.ZeroUS = 4.0
	default:
		o.ZeroUS = 12.0
	}
	return o
}

// EncodeBytes expands data into bits, least significant bit first.
func EncodeBytes(data []byte) []Bit {
	bits := make([]Bit, 0, len(data)*8)
	for _, b := range data {
		for j := 0; j < 8; j++ {
			if b&(1<<j) != 0 {
				bits = append(bits, BitOne)
			} else {
				bits = append(bits, BitZero)
			}
		}
	}
	return bits
}

// Synthesize renders bursts of bits as a square-wave trace. Invalid bits are
// rendered with a width halfway between OneUS and ZeroUS.
func Synthesize(bursts [][]Bit, opts SynthOptions) []Sample {
	w := traceWriter{opts: opts}
	for _, bits := range bursts {
		w.idle(opts.IdleUS)
		for i, bit := range bits {
			if i > 0 {
				w.idle(opts.BitGapUS)
			}
			w.low(opts.width(bit))
		}
	}
	w.idle(opts.IdleUS)
	w.emit(opts.HighVolts)
	return w.samples
}

func (o SynthOptions) width(b Bit) float64 {
	switch b {
	case BitOne:
		return o.OneUS
	case BitZero:
		return o.ZeroUS
	default:
		return (o.OneUS + o.ZeroUS) / 2
	}
}

type traceWriter struct {
	opts    SynthOptions
	t       float64
	samples []Sample
}

func (w *traceWriter) emit(v float64) {
	w.samples = append(w.samples, Sample{Time: w.t, Voltage: v})
}

// hold emits samples at level v from the cursor up to (not including) the
// cursor advanced by us microseconds, then moves the cursor.
func (w *traceWriter) hold(v, us float64) {
	end := w.t + units.MicrosToSeconds(us)
	w.emit(v)
	if p := w.opts.SamplePeriod; p > 0 {
		for t := w.t + p; t < end; t += p {
			w.samples = append(w.samples, Sample{Time: t, Voltage: v})
		}
	}
	w.t = end
}

func (w *traceWriter) idle(us float64) { w.hold(w.opts.HighVolts, us) }
func (w *traceWriter) low(us float64)  { w.hold(w.opts.LowVolts, us) }
