package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pulsewire/internal/config"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// TestFlagDefaults verifies the flags a bare invocation relies on.
func TestFlagDefaults(t *testing.T) {
	if *dataDir != "../DATA/" {
		t.Errorf("expected data-dir default ../DATA/, got %q", *dataDir)
	}
	if *role != "" {
		t.Errorf("expected empty role default, got %q", *role)
	}
	if *debug {
		t.Error("expected debug default to be false")
	}
	if *maxSamples != 0 {
		t.Errorf("expected max-samples default 0, got %d", *maxSamples)
	}
}

func withFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestApplyFlags_OnlySetFlagsOverride(t *testing.T) {
	withFlag(t, role, "s")
	withFlag(t, dataDir, "/captures")

	cfg := config.DefaultDecodeConfig()
	require.NoError(t, applyFlags(cfg, map[string]bool{"role": true}))

	assert.Equal(t, pulsewire.RoleSlave, cfg.GetRole())
	assert.Equal(t, config.DefaultDataDir, cfg.GetDataDir(), "unset flag must not override")
}

func TestApplyFlags_Serial(t *testing.T) {
	withFlag(t, serialPort, "/dev/ttyACM0")
	withFlag(t, baud, 230400)

	cfg := config.EmptyDecodeConfig()
	require.NoError(t, applyFlags(cfg, map[string]bool{"serial": true, "baud": true}))

	opts := cfg.GetSerialOptions()
	assert.Equal(t, "/dev/ttyACM0", opts.Port)
	assert.Equal(t, 230400, opts.Line.BaudRate)
}

func TestApplyFlags_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		apply func(t *testing.T)
		set   string
	}{
		{"unknown role", func(t *testing.T) { withFlag(t, role, "x") }, "role"},
		{"negative max samples", func(t *testing.T) { withFlag(t, maxSamples, -1) }, "max-samples"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply(t)
			err := applyFlags(config.EmptyDecodeConfig(), map[string]bool{tt.set: true})
			assert.Error(t, err)
		})
	}
}

func TestApplyFlags_DebugFalseSuppressesPrompt(t *testing.T) {
	withFlag(t, debug, false)
	cfg := config.EmptyDecodeConfig()
	require.NoError(t, applyFlags(cfg, map[string]bool{"debug": true}))
	require.NotNil(t, cfg.Diagnostics)
	assert.False(t, cfg.GetDiagnostics())
}
