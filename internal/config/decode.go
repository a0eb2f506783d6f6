package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/pulsewire/internal/capture"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// DefaultDataDir is where captures are looked for when no directory is set.
const DefaultDataDir = "../DATA/"

// DecodeConfig holds the run options for the decoder tools. Every field is
// optional; the Get* methods supply defaults for omitted values. Calibration
// thresholds are deliberately absent: they are fixed in package pulsewire.
type DecodeConfig struct {
	Role        *string `json:"role,omitempty"` // "master" or "slave"
	Diagnostics *bool   `json:"diagnostics,omitempty"`

	// Capture source
	DataDir    *string `json:"data_dir,omitempty"`
	MaxSamples *int    `json:"max_samples,omitempty"`
	Serial     *Serial `json:"serial,omitempty"`

	// Outputs
	JSONOutput *bool   `json:"json_output,omitempty"`
	PlotDir    *string `json:"plot_dir,omitempty"`
	ChartPath  *string `json:"chart_path,omitempty"`
}

// Serial configures capture over a serial link.
type Serial struct {
	Port     string `json:"port"`
	BaudRate int    `json:"baud_rate,omitempty"`
	DataBits int    `json:"data_bits,omitempty"`
	StopBits int    `json:"stop_bits,omitempty"`
	Parity   string `json:"parity,omitempty"`
	// Timeout is a duration string like "30s" bounding the whole capture.
	Timeout string `json:"timeout,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyDecodeConfig returns a DecodeConfig with all fields set to nil.
func EmptyDecodeConfig() *DecodeConfig {
	return &DecodeConfig{}
}

// DefaultDecodeConfig returns a DecodeConfig with every default filled in.
func DefaultDecodeConfig() *DecodeConfig {
	return &DecodeConfig{
		Role:        ptrString(pulsewire.RoleMaster.String()),
		Diagnostics: ptrBool(false),
		DataDir:     ptrString(DefaultDataDir),
		MaxSamples:  ptrInt(0),
		JSONOutput:  ptrBool(false),
		PlotDir:     ptrString(""),
		ChartPath:   ptrString(""),
	}
}

// LoadDecodeConfig loads a DecodeConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file fall back to defaults, so partial configs are safe.
func LoadDecodeConfig(path string) (*DecodeConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyDecodeConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *DecodeConfig) Validate() error {
	if c.Role != nil && *c.Role != "" {
		if _, err := pulsewire.ParseRole(*c.Role); err != nil {
			return fmt.Errorf("role: %w", err)
		}
	}

	if c.MaxSamples != nil && *c.MaxSamples < 0 {
		return fmt.Errorf("max_samples must be non-negative, got %d", *c.MaxSamples)
	}

	if c.Serial != nil {
		if _, err := c.GetPortOptions().Normalize(); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
		if _, err := capture.ParseTimeout(c.Serial.Timeout); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	}

	return nil
}

// GetRole returns the configured role or the default (master).
func (c *DecodeConfig) GetRole() pulsewire.Role {
	if c.Role == nil || *c.Role == "" {
		return pulsewire.RoleMaster
	}
	r, err := pulsewire.ParseRole(*c.Role)
	if err != nil {
		return pulsewire.RoleMaster // default on parse error
	}
	return r
}

// HasRole reports whether the role was set explicitly.
func (c *DecodeConfig) HasRole() bool {
	return c.Role != nil && *c.Role != ""
}

// GetDiagnostics returns the diagnostics value or the default.
func (c *DecodeConfig) GetDiagnostics() bool {
	if c.Diagnostics == nil {
		return false
	}
	return *c.Diagnostics
}

// GetDataDir returns the capture directory or the default.
func (c *DecodeConfig) GetDataDir() string {
	if c.DataDir == nil || *c.DataDir == "" {
		return DefaultDataDir
	}
	return *c.DataDir
}

// GetMaxSamples returns the sample limit; zero means unlimited.
func (c *DecodeConfig) GetMaxSamples() int {
	if c.MaxSamples == nil {
		return 0
	}
	return *c.MaxSamples
}

// GetJSONOutput returns the json_output value or the default.
func (c *DecodeConfig) GetJSONOutput() bool {
	if c.JSONOutput == nil {
		return false
	}
	return *c.JSONOutput
}

// GetPlotDir returns the plot output directory; empty disables plots.
func (c *DecodeConfig) GetPlotDir() string {
	if c.PlotDir == nil {
		return ""
	}
	return *c.PlotDir
}

// GetChartPath returns the HTML chart path; empty disables the chart.
func (c *DecodeConfig) GetChartPath() string {
	if c.ChartPath == nil {
		return ""
	}
	return *c.ChartPath
}

// GetSerialPort returns the serial port path; empty means file input.
func (c *DecodeConfig) GetSerialPort() string {
	if c.Serial == nil {
		return ""
	}
	return c.Serial.Port
}

// GetPortOptions returns the serial line settings. Unset values are filled
// in by PortOptions.Normalize.
func (c *DecodeConfig) GetPortOptions() capture.PortOptions {
	if c.Serial == nil {
		return capture.PortOptions{}
	}
	return capture.PortOptions{
		BaudRate: c.Serial.BaudRate,
		DataBits: c.Serial.DataBits,
		StopBits: c.Serial.StopBits,
		Parity:   c.Serial.Parity,
	}
}

// GetSerialOptions returns the full serial capture options.
func (c *DecodeConfig) GetSerialOptions() capture.SerialOptions {
	opts := capture.SerialOptions{
		Port:       c.GetSerialPort(),
		Line:       c.GetPortOptions(),
		MaxSamples: c.GetMaxSamples(),
	}
	if c.Serial != nil {
		opts.Timeout, _ = capture.ParseTimeout(c.Serial.Timeout)
	}
	return opts
}
