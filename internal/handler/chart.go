package handler

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/transmovil-cr/service-routes/internal/domain/transit"
)

const speedChartTitle = "Velocidad promedio por tipo de transporte"

// barLabelFormatter shows one decimal on the bar; the value keeps the exact mean.
var barLabelFormatter = opts.FuncOpts(`function (p) { return p.value.toFixed(1); }`)

// newSpeedChart builds one labeled bar per transport type.
func newSpeedChart(averages []transit.TypeAverage) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: speedChartTitle,
			Width:     "100%",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: speedChartTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: transit.Label(transit.ColumnType)}),
		charts.WithYAxisOpts(opts.YAxis{Name: transit.Label(transit.ColumnAverageSpeed)}),
	)

	types := make([]string, 0, len(averages))
	data := make([]opts.BarData, 0, len(averages))
	for _, a := range averages {
		types = append(types, a.Type)
		data = append(data, opts.BarData{
			Name:      a.Type,
			Value:     a.AverageSpeedKmh,
			ItemStyle: &opts.ItemStyle{Color: a.Color},
		})
	}

	bar.SetXAxis(types).AddSeries(
		transit.Label(transit.ColumnAverageSpeed),
		data,
		charts.WithLabelOpts(opts.Label{Show: true, Position: "top", Formatter: barLabelFormatter}),
	)
	return bar
}
