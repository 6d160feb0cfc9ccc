package charts

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/quantora/stockcast/features"
	"github.com/quantora/stockcast/forecast"
	"github.com/quantora/stockcast/transform"
)

const dateLayout = "2006-01-02"

// Render writes every chart of the run into one HTML page at path.
func Render(rep *forecast.Report, path string) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("stockcast %s (%s)", rep.Symbol, rep.RunID)

	page.AddCharts(
		closeLine(rep),
		candlestick(rep),
		lagOverlay(rep),
		cvPlan(rep),
		accuracyBars(rep),
		forecastOverlay(rep),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("charts: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("charts: render: %w", err)
	}
	return nil
}

func closeLine(rep *forecast.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    rep.Symbol + " daily close",
		Subtitle: "historical closing prices",
	}))

	x := make([]string, rep.History.Len())
	y := make([]opts.LineData, rep.History.Len())
	for i, b := range rep.History {
		x[i] = b.Date.Format(dateLayout)
		y[i] = opts.LineData{Value: b.Close}
	}
	line.SetXAxis(x).AddSeries("close", y)
	return line
}

func candlestick(rep *forecast.Report) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: rep.Symbol + " OHLC",
	}))

	x := make([]string, rep.History.Len())
	y := make([]opts.KlineData, rep.History.Len())
	for i, b := range rep.History {
		x[i] = b.Date.Format(dateLayout)
		y[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	kline.SetXAxis(x).AddSeries("ohlc", y)
	return kline
}

// lagOverlay shows the close against its horizon-length lag, both mapped
// back to price units.
func lagOverlay(rep *forecast.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "close vs. lagged close",
	}))

	var x []string
	var closeY, lagY []opts.LineData
	for _, row := range rep.Rows {
		if row.Future {
			break
		}
		x = append(x, row.Date.Format(dateLayout))
		closeY = append(closeY, opts.LineData{Value: transform.InvertOne(row.Close, rep.Params)})
		if features.IsMissing(row.Lag) {
			lagY = append(lagY, opts.LineData{Value: nil})
		} else {
			lagY = append(lagY, opts.LineData{Value: transform.InvertOne(row.Lag, rep.Params)})
		}
	}
	line.SetXAxis(x).AddSeries("close", closeY).AddSeries("lag", lagY)
	return line
}

// cvPlan draws each fold as two horizontal segments, training and
// assessment, stacked by fold index.
func cvPlan(rep *forecast.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "cross-validation plan",
		Subtitle: "one row per fold: training span then assessment span",
	}))

	var x []string
	for _, row := range rep.Rows {
		if row.Future {
			break
		}
		x = append(x, row.Date.Format(dateLayout))
	}
	line.SetXAxis(x)

	for _, fold := range rep.Folds {
		train := make([]opts.LineData, 0, len(x))
		assess := make([]opts.LineData, 0, len(x))
		for _, row := range rep.Rows {
			if row.Future {
				break
			}
			switch {
			case !row.Date.Before(fold.TrainStart) && !row.Date.After(fold.TrainEnd):
				train = append(train, opts.LineData{Value: fold.Index})
				assess = append(assess, opts.LineData{Value: nil})
			case !row.Date.Before(fold.AssessStart) && !row.Date.After(fold.AssessEnd):
				train = append(train, opts.LineData{Value: nil})
				assess = append(assess, opts.LineData{Value: fold.Index})
			default:
				train = append(train, opts.LineData{Value: nil})
				assess = append(assess, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(fmt.Sprintf("fold %d train", fold.Index), train)
		line.AddSeries(fmt.Sprintf("fold %d assess", fold.Index), assess)
	}
	return line
}

func accuracyBars(rep *forecast.Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: "assessment accuracy by model",
	}))

	models := make([]string, len(rep.Models))
	mae := make([]opts.BarData, len(rep.Models))
	rmse := make([]opts.BarData, len(rep.Models))
	for i, m := range rep.Models {
		models[i] = m.Name
		mae[i] = opts.BarData{Value: m.Metrics.MAE}
		rmse[i] = opts.BarData{Value: m.Metrics.RMSE}
	}
	bar.SetXAxis(models).AddSeries("MAE", mae).AddSeries("RMSE", rmse)
	return bar
}

// forecastOverlay plots the trailing history with each model's forecast
// and interval bounds appended.
func forecastOverlay(rep *forecast.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title: rep.Symbol + " forecast",
	}))

	histLen := rep.History.Len()
	futureLen := 0
	if len(rep.Models) > 0 {
		futureLen = len(rep.Models[0].Forecast)
	}

	x := make([]string, 0, histLen+futureLen)
	actual := make([]opts.LineData, 0, histLen+futureLen)
	for _, b := range rep.History {
		x = append(x, b.Date.Format(dateLayout))
		actual = append(actual, opts.LineData{Value: b.Close})
	}
	for _, m := range rep.Models {
		for _, p := range m.Forecast {
			x = append(x, p.Date.Format(dateLayout))
		}
		break
	}
	line.SetXAxis(x).AddSeries("actual", actual)

	pad := make([]opts.LineData, histLen)
	for i := range pad {
		pad[i] = opts.LineData{Value: nil}
	}
	for _, m := range rep.Models {
		points := append([]opts.LineData{}, pad...)
		lower := append([]opts.LineData{}, pad...)
		upper := append([]opts.LineData{}, pad...)
		for _, p := range m.Forecast {
			points = append(points, opts.LineData{Value: p.Value})
			lower = append(lower, opts.LineData{Value: p.Lower})
			upper = append(upper, opts.LineData{Value: p.Upper})
		}
		line.AddSeries(m.Name, points)
		line.AddSeries(m.Name+" lower", lower)
		line.AddSeries(m.Name+" upper", upper)
	}
	return line
}
