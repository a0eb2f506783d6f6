// Package report renders decode results for people and for tools.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/units"
)

// BytesPerLine is how many bytes are printed before wrapping.
const BytesPerLine = 8

// FormatBytes renders data as space separated 0x-prefixed lowercase hex,
// wrapping after every BytesPerLine bytes.
func FormatBytes(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		fmt.Fprintf(&sb, "0x%02x ", b)
		if (i+1)%BytesPerLine == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FormatDurations renders pulse widths in microseconds separated by spaces.
func FormatDurations(durations []float64) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = fmt.Sprintf("%g", d)
	}
	return strings.Join(parts, " ")
}

// WriteText writes each burst's bytes in burst order. With diagnostics it
// first writes the burst's byte count, invalid bit count and raw pulse widths.
func WriteText(w io.Writer, bursts []pulsewire.DecodedBurst, diagnostics bool) error {
	ew := &errWriter{w: w}
	for _, d := range bursts {
		n := d.Index + 1
		if diagnostics {
			st := pulsewire.Stats(d)
			ew.printf("Data burst %d info: (t=%.3f ms)\n", n, units.ConvertTime(d.Start, units.MS))
			ew.printf("%d bytes\n", len(d.Bytes))
			ew.printf("%d invalid bits\n", d.InvalidBits)
			if dropped := d.DroppedGroups(); dropped > 0 {
				ew.printf("%d groups dropped\n", dropped)
			}
			if d.TrailingBits > 0 {
				ew.printf("%d trailing bits dropped\n", d.TrailingBits)
			}
			ew.printf("Pulse widths (μs): min %.3g max %.3g mean %.3g sd %.3g\n", st.MinUS, st.MaxUS, st.MeanUS, st.StdDevUS)
			ew.printf("Bit durations (μs): %s\n", FormatDurations(d.Durations))
			ew.printf("\nData burst %d bytes:\n", n)
		}
		ew.printf("\n%s\n", FormatBytes(d.Bytes))
	}
	ew.printf("\n")
	return ew.err
}

// WriteSummary writes run totals on one line.
func WriteSummary(w io.Writer, s pulsewire.Summary) error {
	_, err := fmt.Fprintf(w, "%d bursts, %d pulses, %d bytes, %d invalid bits, %d groups dropped, %d trailing bits\n",
		s.Bursts, s.Pulses, s.Bytes, s.InvalidBits, s.DroppedGroups, s.TrailingBits)
	return err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
