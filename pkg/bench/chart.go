package bench

import (
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// WriteChart writes an HTML bar chart comparing known chromatic numbers with
// the best and average color counts of each instance.
func WriteChart(w io.Writer, r *Report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Suite %s", r.Suite),
			Subtitle: fmt.Sprintf("pollinator %s, λ=%g, switch_p=%g", r.Pollinator, r.Parameters.Lambda, r.Parameters.SwitchP),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "colors",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	)

	names := make([]string, len(r.Instances))
	known := make([]opts.BarData, len(r.Instances))
	best := make([]opts.BarData, len(r.Instances))
	avg := make([]opts.BarData, len(r.Instances))
	for i, inst := range r.Instances {
		names[i] = inst.Name
		known[i] = opts.BarData{Value: inst.Chromatic}
		best[i] = opts.BarData{Value: inst.Best}
		avg[i] = opts.BarData{Value: inst.Average}
	}

	bar.SetXAxis(names).
		AddSeries("k*", known).
		AddSeries("Best", best).
		AddSeries("Average", avg)
	return bar.Render(w)
}

// WriteSweepChart writes an HTML chart of a sweep. Parameter sweeps draw one
// line per switch_p value over lambda; pollinator sweeps draw bars.
func WriteSweepChart(w io.Writer, s *SweepResult) error {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Sweep %s on %s", s.Kind, s.Suite)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "total avg colors",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
	}

	if s.Kind == SweepPollinators {
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		names := make([]string, len(s.Points))
		totals := make([]opts.BarData, len(s.Points))
		for i, p := range s.Points {
			names[i] = p.Pollinator
			totals[i] = opts.BarData{Value: p.Total}
		}
		bar.SetXAxis(names).AddSeries("Total", totals)
		return bar.Render(w)
	}

	var lambdas []float64
	var switches []float64
	totals := make(map[[2]float64]float64, len(s.Points))
	for _, p := range s.Points {
		if !slices.Contains(lambdas, p.Lambda) {
			lambdas = append(lambdas, p.Lambda)
		}
		if !slices.Contains(switches, p.SwitchP) {
			switches = append(switches, p.SwitchP)
		}
		totals[[2]float64{p.Lambda, p.SwitchP}] = p.Total
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(global, charts.WithXAxisOpts(opts.XAxis{Name: "lambda"}))...)
	xs := make([]string, len(lambdas))
	for i, l := range lambdas {
		xs[i] = fmt.Sprintf("%g", l)
	}
	line.SetXAxis(xs)
	for _, sp := range switches {
		data := make([]opts.LineData, len(lambdas))
		for i, l := range lambdas {
			data[i] = opts.LineData{Value: totals[[2]float64{l, sp}]}
		}
		line.AddSeries(fmt.Sprintf("switch_p=%g", sp), data)
	}
	return line.Render(w)
}
