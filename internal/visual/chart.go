package visual

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

// MaxChartPoints caps the number of pulse widths drawn in the scatter chart.
const MaxChartPoints = 8000

// WriteBurstChart renders an HTML page with a per-burst bar chart of decoded
// bytes and invalid bits, and a scatter of every pulse width against the
// role's classification bounds.
func WriteBurstChart(w io.Writer, title string, bursts []pulsewire.DecodedBurst, role pulsewire.Role) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(burstBar(title, bursts), widthScatter(bursts, role))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func burstBar(title string, bursts []pulsewire.DecodedBurst) *charts.Bar {
	x := make([]string, len(bursts))
	byteCounts := make([]opts.BarData, len(bursts))
	invalid := make([]opts.BarData, len(bursts))
	for i, d := range bursts {
		x[i] = strconv.Itoa(d.Index + 1)
		byteCounts[i] = opts.BarData{Value: len(d.Bytes)}
		invalid[i] = opts.BarData{Value: d.InvalidBits}
	}

	s := pulsewire.Summarize(bursts)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("bursts=%d bytes=%d invalid=%d", s.Bursts, s.Bytes, s.InvalidBits),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Burst"}),
	)
	bar.SetXAxis(x).
		AddSeries("bytes", byteCounts).
		AddSeries("invalid bits", invalid)
	return bar
}

func widthScatter(bursts []pulsewire.DecodedBurst, role pulsewire.Role) *charts.Scatter {
	total := 0
	for _, d := range bursts {
		total += len(d.Durations)
	}
	stride := 1
	if total > MaxChartPoints {
		stride = (total + MaxChartPoints - 1) / MaxChartPoints
	}

	data := make([]opts.ScatterData, 0, total/stride+1)
	n := 0
	for _, d := range bursts {
		for _, width := range d.Durations {
			if n%stride == 0 {
				data = append(data, opts.ScatterData{Value: []interface{}{n, width, d.Index + 1}})
			}
			n++
		}
	}

	marks := make([]opts.MarkLineNameYAxisItem, 0, 2)
	for _, b := range Bounds(role) {
		marks = append(marks, opts.MarkLineNameYAxisItem{Name: fmt.Sprintf("%g μs", b), YAxis: b})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Pulse widths (%s)", role),
			Subtitle: fmt.Sprintf("points=%d stride=%d", len(data), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Pulse", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Width (μs)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("width", data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
		charts.WithMarkLineNameYAxisItemOpts(marks...),
	)
	return scatter
}
