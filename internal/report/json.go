package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/timeutil"
	"github.com/banshee-data/pulsewire/internal/version"
)

// Report is the machine readable form of one decode run.
type Report struct {
	RunID     string            `json:"run_id"`
	Source    string            `json:"source"`
	Role      pulsewire.Role    `json:"role"`
	Samples   int               `json:"samples"`
	DecodedAt time.Time         `json:"decoded_at"`
	Version   string            `json:"version"`
	Summary   pulsewire.Summary `json:"summary"`
	Bursts    []BurstReport     `json:"bursts"`
}

// BurstReport is one decoded burst. Diagnostic fields are omitted unless the
// run had diagnostics enabled.
type BurstReport struct {
	Index        int                   `json:"index"`
	Start        float64               `json:"start_s"`
	Hex          []string              `json:"hex"`
	InvalidBits  int                   `json:"invalid_bits"`
	TrailingBits *int                  `json:"trailing_bits,omitempty"`
	Stats        *pulsewire.BurstStats `json:"stats,omitempty"`
	Durations    []float64             `json:"durations_us,omitempty"`
}

// New builds a report for a decode run.
func New(source string, samples int, cfg pulsewire.Config, bursts []pulsewire.DecodedBurst, clock timeutil.Clock) Report {
	r := Report{
		RunID:     uuid.NewString(),
		Source:    source,
		Role:      cfg.Role,
		Samples:   samples,
		DecodedAt: clock.Now().UTC(),
		Version:   version.Version,
		Summary:   pulsewire.Summarize(bursts),
		Bursts:    make([]BurstReport, 0, len(bursts)),
	}

	for _, d := range bursts {
		br := BurstReport{
			Index:       d.Index,
			Start:       d.Start,
			Hex:         make([]string, len(d.Bytes)),
			InvalidBits: d.InvalidBits,
		}
		for i, b := range d.Bytes {
			br.Hex[i] = fmt.Sprintf("%02x", b)
		}
		if cfg.Diagnostics {
			trailing := d.TrailingBits
			st := pulsewire.Stats(d)
			br.TrailingBits = &trailing
			br.Stats = &st
			br.Durations = d.Durations
		}
		r.Bursts = append(r.Bursts, br)
	}
	return r
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
