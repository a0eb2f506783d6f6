package pulsewire

import "github.com/banshee-data/pulsewire/internal/units"

// SegmentBursts partitions pulses into bursts. A pulse joins the current burst
// when its start is strictly less than gapUS microseconds after the previous
// pulse's start; otherwise it opens a new burst. Order is preserved and the
// final burst is always included.
func SegmentBursts(pulses []Pulse, gapUS float64) []Burst {
	var bursts []Burst
	for i, p := range pulses {
		if i > 0 && units.SecondsToMicros(p.Start-pulses[i-1].Start) < gapUS {
			last := len(bursts) - 1
			bursts[last] = append(bursts[last], p)
			continue
		}
		bursts = append(bursts, Burst{p})
	}
	return bursts
}
