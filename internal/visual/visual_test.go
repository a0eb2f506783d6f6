package visual

import (
	"bytes"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pulsewire/internal/fsutil"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/testutil"
)

func fixture(t *testing.T) ([]pulsewire.Sample, []pulsewire.Pulse, []pulsewire.DecodedBurst) {
	t.Helper()
	samples := testutil.Samples(pulsewire.RoleMaster, []byte{0x33, 0xaa}, []byte{0x01})
	pulses := pulsewire.DetectPulses(samples, pulsewire.LowThresholdVolts)
	bursts := pulsewire.Decode(samples, pulsewire.Config{Role: pulsewire.RoleMaster})
	require.Len(t, bursts, 2)
	return samples, pulses, bursts
}

func TestPlotter_Trace(t *testing.T) {
	samples, pulses, _ := fixture(t)
	mfs := fsutil.NewMemoryFileSystem()
	p := NewPlotter(mfs, "/plots")

	path, err := p.Trace("cap", samples, pulses)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/plots", "cap_trace.png"), path)

	data, err := mfs.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "trace plot should be a valid PNG")
}

func TestPlotter_TraceEmpty(t *testing.T) {
	p := NewPlotter(fsutil.NewMemoryFileSystem(), "/plots")
	_, err := p.Trace("cap", nil, nil)
	assert.Error(t, err)
}

func TestPlotter_Histogram(t *testing.T) {
	_, _, bursts := fixture(t)
	mfs := fsutil.NewMemoryFileSystem()
	p := NewPlotter(mfs, "/plots")

	path, err := p.Histogram("cap", bursts, pulsewire.RoleMaster)
	require.NoError(t, err)
	assert.True(t, mfs.Exists(path))

	_, err = p.Histogram("empty", nil, pulsewire.RoleSlave)
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	assert.Equal(t, []float64{2.0, 9.0}, Bounds(pulsewire.RoleMaster))
	assert.Equal(t, []float64{2.5}, Bounds(pulsewire.RoleSlave))
}

func TestWriteBurstChart(t *testing.T) {
	_, _, bursts := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteBurstChart(&buf, "capture.csv", bursts, pulsewire.RoleMaster))

	html := buf.String()
	assert.True(t, strings.Contains(html, "<html"), "expected an HTML document")
	assert.Contains(t, html, "capture.csv")
	assert.Contains(t, html, "invalid bits")
}
