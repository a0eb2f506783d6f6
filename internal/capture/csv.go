// Package capture reads oscilloscope captures into sample sequences.
//
// A capture is a sequence of (time, voltage) records, time in seconds and
// voltage in volts, optionally preceded by one header line. Captures come
// from CSV files exported by a scope or from an instrument streaming the same
// records over a serial link. Either way the whole capture is read before
// decoding starts.
package capture

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/pulsewire/internal/monitoring"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// ErrTimeReversed is returned when a sample's timestamp precedes the previous
// sample's.
var ErrTimeReversed = errors.New("sample time goes backwards")

// ReadCSV parses a capture. A first record whose time field is not numeric is
// treated as a header and skipped. Blank lines are ignored. Any other
// malformed record fails the whole read.
func ReadCSV(r io.Reader) ([]pulsewire.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		samples []pulsewire.Sample
		first   = true
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read capture: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if isHeader(record) {
				monitoring.Debugf("skipping capture header %q", strings.Join(record, ","))
				continue
			}
		}

		s, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := len(samples); n > 0 && s.Time < samples[n-1].Time {
			return nil, fmt.Errorf("line %d: %w (%g after %g)", line, ErrTimeReversed, s.Time, samples[n-1].Time)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err != nil
}

func parseRecord(fields []string) (pulsewire.Sample, error) {
	if len(fields) != 2 {
		return pulsewire.Sample{}, fmt.Errorf("expected 2 fields, got %d", len(fields))
	}

	t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return pulsewire.Sample{}, fmt.Errorf("failed to parse time: %w", err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return pulsewire.Sample{}, fmt.Errorf("failed to parse voltage: %w", err)
	}
	return pulsewire.Sample{Time: t, Voltage: v}, nil
}

// WriteCSV writes samples as a capture with a "time,voltage" header.
func WriteCSV(w io.Writer, samples []pulsewire.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "voltage"}); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Voltage, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
