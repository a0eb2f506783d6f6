// Package testutil provides shared test helpers and capture fixtures.
package testutil

import (
	"bytes"
	"testing"

	"github.com/banshee-data/pulsewire/internal/capture"
	"github.com/banshee-data/pulsewire/internal/fsutil"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// FixtureSamplePeriod is the filler sample spacing used by fixtures, in seconds.
const FixtureSamplePeriod = 0.5e-6

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Samples synthesises a trace with one burst per element of data, using the
// role's default pulse widths.
func Samples(role pulsewire.Role, data ...[]byte) []pulsewire.Sample {
	opts := pulsewire.DefaultSynthOptions(role)
	opts.SamplePeriod = FixtureSamplePeriod
	bursts := make([][]pulsewire.Bit, len(data))
	for i, d := range data {
		bursts[i] = pulsewire.EncodeBytes(d)
	}
	return pulsewire.Synthesize(bursts, opts)
}

// CaptureCSV renders Samples(role, data...) as capture CSV.
func CaptureCSV(t testing.TB, role pulsewire.Role, data ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	AssertNoError(t, capture.WriteCSV(&buf, Samples(role, data...)))
	return buf.Bytes()
}

// WriteCapture writes a synthetic capture to path on fsys.
func WriteCapture(t testing.TB, fsys fsutil.FileSystem, path string, role pulsewire.Role, data ...[]byte) {
	t.Helper()
	AssertNoError(t, fsys.WriteFile(path, CaptureCSV(t, role, data...), 0644))
}
