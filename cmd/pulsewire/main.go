// Command pulsewire decodes captured single-wire pulse traces into bytes.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/banshee-data/pulsewire/internal/capture"
	"github.com/banshee-data/pulsewire/internal/config"
	"github.com/banshee-data/pulsewire/internal/fsutil"
	"github.com/banshee-data/pulsewire/internal/monitoring"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/report"
	"github.com/banshee-data/pulsewire/internal/timeutil"
	"github.com/banshee-data/pulsewire/internal/version"
	"github.com/banshee-data/pulsewire/internal/visual"
)

var (
	dataDir     = flag.String("data-dir", config.DefaultDataDir, "Directory searched for .csv captures")
	file        = flag.String("file", "", "Capture file to decode (skips the interactive prompts)")
	role        = flag.String("role", "", "Transmitter role: m(aster) or s(lave)")
	debug       = flag.Bool("debug", false, "Print per-burst diagnostics")
	configPath  = flag.String("config", "", "Path to a JSON config file")
	jsonOut     = flag.Bool("json", false, "Write a JSON report instead of text")
	plotDir     = flag.String("plot-dir", "", "Write trace and pulse width PNGs into this directory")
	chartPath   = flag.String("chart", "", "Write an HTML burst chart to this path")
	serialPort  = flag.String("serial", "", "Capture from this serial port instead of a file")
	baud        = flag.Int("baud", 0, "Serial baud rate (default 115200)")
	maxSamples  = flag.Int("max-samples", 0, "Stop after this many samples (0 = unlimited)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pulsewire %s\n", version.String())
		return
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := config.EmptyDecodeConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadDecodeConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if err := applyFlags(cfg, set); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
		fs:     fsutil.OSFileSystem{},
		clock:  timeutil.RealClock{},
		capture: func(ctx context.Context, opts capture.SerialOptions) ([]pulsewire.Sample, error) {
			return capture.NewSerialSource(opts).Capture(ctx)
		},
	}
	if err := a.run(ctx, cfg, *file); err != nil {
		if errors.Is(err, errInvalidEntry) {
			fmt.Fprintln(os.Stderr, errInvalidEntry)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags over the values loaded from the
// config file.
func applyFlags(cfg *config.DecodeConfig, set map[string]bool) error {
	if set["data-dir"] {
		cfg.DataDir = dataDir
	}
	if set["role"] {
		r, err := pulsewire.ParseRole(*role)
		if err != nil {
			return err
		}
		name := r.String()
		cfg.Role = &name
	}
	if set["debug"] {
		cfg.Diagnostics = debug
	}
	if set["json"] {
		cfg.JSONOutput = jsonOut
	}
	if set["plot-dir"] {
		cfg.PlotDir = plotDir
	}
	if set["chart"] {
		cfg.ChartPath = chartPath
	}
	if set["max-samples"] {
		cfg.MaxSamples = maxSamples
	}
	if set["serial"] || set["baud"] {
		if cfg.Serial == nil {
			cfg.Serial = &config.Serial{}
		}
		if set["serial"] {
			cfg.Serial.Port = *serialPort
		}
		if set["baud"] {
			cfg.Serial.BaudRate = *baud
		}
	}
	return cfg.Validate()
}

type app struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	fs      fsutil.FileSystem
	clock   timeutil.Clock
	capture func(ctx context.Context, opts capture.SerialOptions) ([]pulsewire.Sample, error)
}

// run loads one capture, decodes it and writes every requested output. With
// neither a file nor a serial port configured it first asks which capture,
// role and mode to use.
func (a *app) run(ctx context.Context, cfg *config.DecodeConfig, path string) error {
	interactive := path == "" && cfg.GetSerialPort() == ""

	// Prompts share stdout with the text report but must not corrupt JSON.
	prompt := prompter{in: a.in, out: a.out}
	if cfg.GetJSONOutput() {
		prompt.out = a.errOut
	}

	pcfg := pulsewire.Config{Role: cfg.GetRole(), Diagnostics: cfg.GetDiagnostics()}
	if interactive {
		paths, err := capture.ListCaptures(a.fs, cfg.GetDataDir())
		if err != nil {
			return err
		}
		if path, err = prompt.chooseFile(paths); err != nil {
			return err
		}
		if !cfg.HasRole() {
			if pcfg.Role, err = prompt.chooseRole(); err != nil {
				return err
			}
		}
		if cfg.Diagnostics == nil {
			if pcfg.Diagnostics, err = prompt.chooseDiagnostics(); err != nil {
				return err
			}
		}
	}
	monitoring.SetDebug(pcfg.Diagnostics)

	samples, source, err := a.load(ctx, cfg, path)
	if err != nil {
		return err
	}

	pulses := pulsewire.DetectPulses(samples, pulsewire.LowThresholdVolts)
	bursts := pulsewire.DecodePulses(pulses, pcfg)
	monitoring.Debugf("%s: %d samples, %d pulses, %d bursts", source, len(samples), len(pulses), len(bursts))

	if cfg.GetJSONOutput() {
		r := report.New(source, len(samples), pcfg, bursts, a.clock)
		if err := report.WriteJSON(a.out, r); err != nil {
			return err
		}
	} else {
		if err := report.WriteText(a.out, bursts, pcfg.Diagnostics); err != nil {
			return err
		}
		if pcfg.Diagnostics {
			if err := report.WriteSummary(a.out, pulsewire.Summarize(bursts)); err != nil {
				return err
			}
		}
	}

	name := captureName(source)
	if dir := cfg.GetPlotDir(); dir != "" {
		p := visual.NewPlotter(a.fs, dir)
		if out, err := p.Trace(name, samples, pulses); err != nil {
			monitoring.Logf("trace plot skipped: %v", err)
		} else {
			monitoring.Logf("wrote %s", out)
		}
		if out, err := p.Histogram(name, bursts, pcfg.Role); err != nil {
			monitoring.Logf("width histogram skipped: %v", err)
		} else {
			monitoring.Logf("wrote %s", out)
		}
	}
	if chart := cfg.GetChartPath(); chart != "" {
		if err := a.writeChart(chart, source, bursts, pcfg.Role); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", chart)
	}
	return nil
}

func (a *app) load(ctx context.Context, cfg *config.DecodeConfig, path string) ([]pulsewire.Sample, string, error) {
	if port := cfg.GetSerialPort(); port != "" && path == "" {
		samples, err := a.capture(ctx, cfg.GetSerialOptions())
		if err != nil {
			return nil, "", err
		}
		return samples, port, nil
	}

	samples, err := capture.LoadFile(a.fs, path)
	if err != nil {
		return nil, "", err
	}
	if limit := cfg.GetMaxSamples(); limit > 0 && len(samples) > limit {
		monitoring.Logf("truncating %s to %d of %d samples", path, limit, len(samples))
		samples = samples[:limit]
	}
	return samples, path, nil
}

func (a *app) writeChart(path, title string, bursts []pulsewire.DecodedBurst, r pulsewire.Role) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create chart dir: %w", err)
		}
	}
	f, err := a.fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	if err := visual.WriteBurstChart(f, title, bursts, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// captureName derives a file-name-safe stem for plot outputs.
func captureName(source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "capture"
	}
	return base
}
