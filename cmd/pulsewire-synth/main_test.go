package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

func TestParseBursts(t *testing.T) {
	bursts, err := parseBursts("33 0xAA, 01 xx")
	require.NoError(t, err)
	require.Len(t, bursts, 2)

	out, trailing := pulsewire.AssembleBytes(bursts[0])
	assert.Equal(t, []byte{0x33, 0xaa}, out)
	assert.Zero(t, trailing)

	require.Len(t, bursts[1], 16)
	assert.Equal(t, pulsewire.BitInvalid, bursts[1][15])
	out, _ = pulsewire.AssembleBytes(bursts[1])
	assert.Equal(t, []byte{0x01}, out)
}

func TestParseBursts_Errors(t *testing.T) {
	for _, in := range []string{"", " , ", "zz", "100", "33,4g"} {
		_, err := parseBursts(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCheckBursts(t *testing.T) {
	bursts, err := parseBursts("33 xx")
	require.NoError(t, err)

	assert.NoError(t, checkBursts(bursts, pulsewire.RoleMaster))
	assert.Error(t, checkBursts(bursts, pulsewire.RoleSlave))

	valid, err := parseBursts("33 aa")
	require.NoError(t, err)
	assert.NoError(t, checkBursts(valid, pulsewire.RoleSlave))
}

func TestCheckOptions(t *testing.T) {
	opts := pulsewire.DefaultSynthOptions(pulsewire.RoleMaster)
	assert.NoError(t, checkOptions(opts))

	long := opts
	long.BitGapUS = 95
	assert.Error(t, checkOptions(long))

	short := opts
	short.IdleUS = 50
	assert.Error(t, checkOptions(short))
}

func TestSynthesizedCaptureDecodes(t *testing.T) {
	bursts, err := parseBursts("de ad, be ef")
	require.NoError(t, err)

	for _, role := range []pulsewire.Role{pulsewire.RoleMaster, pulsewire.RoleSlave} {
		opts := pulsewire.DefaultSynthOptions(role)
		opts.SamplePeriod = 1e-6
		got := pulsewire.Decode(pulsewire.Synthesize(bursts, opts), pulsewire.Config{Role: role})
		require.Len(t, got, 2, role.String())
		assert.Equal(t, []byte{0xde, 0xad}, got[0].Bytes, role.String())
		assert.Equal(t, []byte{0xbe, 0xef}, got[1].Bytes, role.String())
	}
}
