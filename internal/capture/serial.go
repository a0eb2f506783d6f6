package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/banshee-data/pulsewire/internal/monitoring"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/timeutil"
)

// EndMarker is the line an instrument sends after the last record of a
// capture.
const EndMarker = "END"

// pollInterval bounds how long a single serial read blocks, so cancellation
// and the capture timeout are observed promptly.
const pollInterval = 100 * time.Millisecond

// SerialOptions configures a capture read over a serial link.
type SerialOptions struct {
	Port string
	Line PortOptions
	// MaxSamples stops the capture after this many samples; zero is unlimited.
	MaxSamples int
	// Timeout bounds the whole capture; zero waits for END or EOF.
	Timeout time.Duration
}

// ParseTimeout parses a capture timeout; the empty string means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be non-negative", s)
	}
	return d, nil
}

// SerialSource reads one bounded capture from an instrument.
type SerialSource struct {
	opts  SerialOptions
	clock timeutil.Clock
	open  func(path string, mode *serial.Mode) (serial.Port, error)
}

// NewSerialSource returns a source that opens opts.Port on Capture.
func NewSerialSource(opts SerialOptions) *SerialSource {
	return &SerialSource{opts: opts, clock: timeutil.RealClock{}, open: serial.Open}
}

// Capture opens the port, reads records until the instrument sends END, the
// link reaches EOF, the sample limit or timeout is hit, or ctx is cancelled,
// and returns everything read. Cancellation returns ctx.Err().
func (s *SerialSource) Capture(ctx context.Context) ([]pulsewire.Sample, error) {
	mode, err := s.opts.Line.SerialMode()
	if err != nil {
		return nil, err
	}

	port, err := s.open(s.opts.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", s.opts.Port, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(pollInterval); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	monitoring.Logf("capturing from %s (%d baud)", s.opts.Port, mode.BaudRate)

	return ReadStream(ctx, port, s.opts, s.clock)
}

// ReadStream reads newline-terminated capture records from r. A read that
// returns no data and no error is treated as an idle poll. The first
// non-blank line is skipped if it is a header.
func ReadStream(ctx context.Context, r io.Reader, opts SerialOptions, clock timeutil.Clock) ([]pulsewire.Sample, error) {
	var (
		samples []pulsewire.Sample
		pending []byte
		lineNo  int
		first   = true
		buf     = make([]byte, 4096)
		start   = clock.Now()
	)

	// handle consumes one line and reports whether the capture is complete.
	handle := func(raw []byte) (bool, error) {
		lineNo++
		line := strings.TrimSpace(string(raw))
		switch {
		case line == "":
			return false, nil
		case line == EndMarker:
			return true, nil
		}

		fields := strings.Split(line, ",")
		if first {
			first = false
			if isHeader(fields) {
				monitoring.Debugf("skipping capture header %q", line)
				return false, nil
			}
		}
		sample, err := parseRecord(fields)
		if err != nil {
			return false, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if n := len(samples); n > 0 && sample.Time < samples[n-1].Time {
			return false, fmt.Errorf("line %d: %w", lineNo, ErrTimeReversed)
		}
		samples = append(samples, sample)
		return opts.MaxSamples > 0 && len(samples) >= opts.MaxSamples, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if opts.Timeout > 0 && clock.Since(start) >= opts.Timeout {
			monitoring.Logf("capture timeout after %d samples", len(samples))
			return samples, nil
		}

		n, err := r.Read(buf)
		pending = append(pending, buf[:n]...)
		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			done, herr := handle(pending[:i])
			pending = pending[i+1:]
			if herr != nil {
				return nil, herr
			}
			if done {
				return samples, nil
			}
		}

		if err == io.EOF {
			if len(pending) > 0 {
				if _, herr := handle(pending); herr != nil {
					return nil, herr
				}
			}
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("serial read failed: %w", err)
		}
	}
}
