// Package plot renders snippet consistency reports as interactive HTML
// charts for sharing check results outside the terminal.
package plot

import (
	"errors"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"snipref/internal/report"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	xAxisRotate = 30

	pageTitle = "Snippet Consistency Findings"

	errorColor   = "#e74c3c"
	warningColor = "#f39c12"
)

// ErrNoReports indicates there is nothing to plot.
var ErrNoReports = errors.New("no reports to plot")

// Render writes an HTML page charting findings per document to w.
// Documents appear in lexicographic order so repeated renders of the
// same reports produce identical pages.
func Render(w io.Writer, reports []*report.Report) error {
	if len(reports) == 0 {
		return ErrNoReports
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(buildFindingsChart(reports))

	return page.Render(w)
}

// buildFindingsChart creates a stacked bar chart with one bar group per
// document and one series per severity.
func buildFindingsChart(reports []*report.Report) *charts.Bar {
	sorted := make([]*report.Report, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Document < sorted[j].Document
	})

	labels := make([]string, len(sorted))
	errorData := make([]opts.BarData, len(sorted))
	warningData := make([]opts.BarData, len(sorted))

	for i, rep := range sorted {
		labels[i] = rep.Document
		errorData[i] = opts.BarData{Value: rep.Count(report.KindDanglingReference)}
		warningData[i] = opts.BarData{Value: rep.Count(report.KindUnusedIdentifier)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Findings by Document",
			Subtitle: "Dangling references and unused snippet identifiers per checked document.",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Findings"}),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Dangling References", errorData,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: errorColor}),
	)
	bar.AddSeries("Unused Identifiers", warningData,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: warningColor}),
	)
	bar.SetSeriesOptions(
		charts.WithBarChartOpts(opts.BarChart{Stack: "findings"}),
	)

	return bar
}
