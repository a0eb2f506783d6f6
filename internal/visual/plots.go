// Package visual renders decode diagnostics as PNG plots and HTML charts.
package visual

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/pulsewire/internal/fsutil"
	"github.com/banshee-data/pulsewire/internal/pulsewire"
	"github.com/banshee-data/pulsewire/internal/units"
)

// MaxTracePoints caps the number of samples drawn in a trace plot; longer
// captures are drawn with a stride.
const MaxTracePoints = 20000

var (
	traceColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	thresholdColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	pulseColor     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// Plotter writes PNG plots into a directory.
type Plotter struct {
	fs  fsutil.FileSystem
	dir string
}

// NewPlotter returns a Plotter writing into dir on fs.
func NewPlotter(fs fsutil.FileSystem, dir string) *Plotter {
	return &Plotter{fs: fs, dir: dir}
}

// Trace plots voltage against time (ms) with the low threshold and the start
// of every detected pulse. It returns the written path.
func (p *Plotter) Trace(name string, samples []pulsewire.Sample, pulses []pulsewire.Pulse) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no samples to plot")
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s - %d samples, %d pulses", name, len(samples), len(pulses))
	pl.X.Label.Text = "Time (ms)"
	pl.Y.Label.Text = "Voltage (V)"

	stride := 1
	if len(samples) > MaxTracePoints {
		stride = int(math.Ceil(float64(len(samples)) / float64(MaxTracePoints)))
	}
	pts := make(plotter.XYs, 0, len(samples)/stride+1)
	for i := 0; i < len(samples); i += stride {
		s := samples[i]
		pts = append(pts, plotter.XY{X: units.ConvertTime(s.Time, units.MS), Y: s.Voltage})
	}
	trace, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	trace.Color = traceColor
	trace.Width = vg.Points(0.5)
	pl.Add(trace)
	pl.Legend.Add("voltage", trace)

	first := units.ConvertTime(samples[0].Time, units.MS)
	last := units.ConvertTime(samples[len(samples)-1].Time, units.MS)
	threshold, err := plotter.NewLine(plotter.XYs{
		{X: first, Y: pulsewire.LowThresholdVolts},
		{X: last, Y: pulsewire.LowThresholdVolts},
	})
	if err != nil {
		return "", err
	}
	threshold.Color = thresholdColor
	threshold.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	pl.Add(threshold)
	pl.Legend.Add("threshold", threshold)

	if len(pulses) > 0 {
		starts := make(plotter.XYs, len(pulses))
		for i, pu := range pulses {
			starts[i] = plotter.XY{X: units.ConvertTime(pu.Start, units.MS), Y: pulsewire.LowThresholdVolts}
		}
		sc, err := plotter.NewScatter(starts)
		if err != nil {
			return "", err
		}
		sc.GlyphStyle.Color = pulseColor
		sc.GlyphStyle.Radius = vg.Points(1.5)
		pl.Add(sc)
		pl.Legend.Add("pulse start", sc)
	}

	pl.Legend.Top = true
	pl.Legend.Left = false

	return p.save(pl, fmt.Sprintf("%s_trace.png", name), 14*vg.Inch, 6*vg.Inch)
}

// Histogram plots the distribution of pulse widths with the role's
// classification bounds drawn as vertical lines.
func (p *Plotter) Histogram(name string, bursts []pulsewire.DecodedBurst, role pulsewire.Role) (string, error) {
	var widths plotter.Values
	for _, d := range bursts {
		for _, w := range d.Durations {
			if !math.IsNaN(w) {
				widths = append(widths, w)
			}
		}
	}
	if len(widths) == 0 {
		return "", fmt.Errorf("no pulses to plot")
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s - %s pulse widths", name, role)
	pl.X.Label.Text = "Width (μs)"
	pl.Y.Label.Text = "Pulses"

	h, err := plotter.NewHist(widths, 50)
	if err != nil {
		return "", err
	}
	h.FillColor = traceColor
	pl.Add(h)

	var top float64
	for _, b := range h.Bins {
		top = math.Max(top, b.Weight)
	}
	for _, bound := range Bounds(role) {
		l, err := plotter.NewLine(plotter.XYs{{X: bound, Y: 0}, {X: bound, Y: top}})
		if err != nil {
			return "", err
		}
		l.Color = thresholdColor
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		pl.Add(l)
		pl.Legend.Add(fmt.Sprintf("%g μs", bound), l)
	}
	pl.Legend.Top = true
	pl.Legend.Left = false

	return p.save(pl, fmt.Sprintf("%s_widths.png", name), 8*vg.Inch, 5*vg.Inch)
}

// Bounds returns the classification boundaries of a role in microseconds.
func Bounds(role pulsewire.Role) []float64 {
	if role == pulsewire.RoleSlave {
		return []float64{pulsewire.SlaveLongPulseUS}
	}
	return []float64{pulsewire.MasterShortPulseUS, pulsewire.MasterLongPulseUS}
}

func (p *Plotter) save(pl *plot.Plot, file string, w, h vg.Length) (string, error) {
	if err := p.fs.MkdirAll(p.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	wt, err := pl.WriterTo(w, h, "png")
	if err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}

	path := filepath.Join(p.dir, file)
	f, err := p.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
