package pulsewire

// Config is the per-run decode configuration.
type Config struct {
	Role Role
	// Diagnostics requests per-burst diagnostic output from the sink. It does
	// not change decode results.
	Diagnostics bool
}

// DecodeBurst classifies and assembles a single burst.
func DecodeBurst(index int, b Burst, role Role) DecodedBurst {
	bits, invalid := ClassifyBurst(b, role)
	bytes, trailing := AssembleBytes(bits)

	d := DecodedBurst{
		Index:        index,
		Bytes:        bytes,
		InvalidBits:  invalid,
		TrailingBits: trailing,
		Durations:    b.Durations(),
	}
	if len(b) > 0 {
		d.Start = b[0].Start
	}
	return d
}

// Decode runs the full pipeline over samples. An empty capture, or one with no
// complete low pulses, yields no bursts.
func Decode(samples []Sample, cfg Config) []DecodedBurst {
	pulses := DetectPulses(samples, LowThresholdVolts)
	return DecodePulses(pulses, cfg)
}

// DecodePulses runs burst segmentation and decoding over already detected
// pulses.
func DecodePulses(pulses []Pulse, cfg Config) []DecodedBurst {
	bursts := SegmentBursts(pulses, BurstGapUS)
	if len(bursts) == 0 {
		return nil
	}

	out := make([]DecodedBurst, len(bursts))
	for i, b := range bursts {
		out[i] = DecodeBurst(i, b, cfg.Role)
	}
	return out
}
