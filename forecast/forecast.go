package forecast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantora/stockcast/features"
	"github.com/quantora/stockcast/model"
	"github.com/quantora/stockcast/model/autoreg"
	"github.com/quantora/stockcast/model/forest"
	"github.com/quantora/stockcast/recipe"
	"github.com/quantora/stockcast/split"
	"github.com/quantora/stockcast/timeseries"
	"github.com/quantora/stockcast/transform"
)

// Config carries every pipeline parameter as data. Nothing here is a
// global: the transform bounds and captured moments travel through the run
// inside the Report.
type Config struct {
	Symbol         string
	Horizon        int
	Lag            int
	Windows        []int
	AssessmentDays int
	RollingDays    int
	Folds          int
	FourierPeriods []int
	FourierOrder   int
	Bounds         transform.Bounds
	Forest         forest.Config
	Arima          autoreg.Config
}

// Point is one forecast row in original price units.
type Point struct {
	Date  time.Time
	Value float64
	Lower float64
	Upper float64
}

// CalibrationPoint pairs an assessment-window actual with a model's
// prediction, in price units.
type CalibrationPoint struct {
	Date      time.Time
	Actual    float64
	Predicted float64
}

// ModelReport holds one model family's assessment metrics, calibration
// series and future forecast.
type ModelReport struct {
	Name        string
	Metrics     model.Metrics
	Calibration []CalibrationPoint
	Forecast    []Point
}

// Report is the complete output of one run.
type Report struct {
	RunID     string
	Symbol    string
	Generated time.Time
	Params    transform.Params
	History   timeseries.History
	Rows      []features.Row
	Folds     []split.Fold
	Models    []ModelReport
}

// Run executes the pipeline once against an in-memory history.
func Run(history timeseries.History, cfg Config, log zerolog.Logger) (*Report, error) {
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Str("symbol", cfg.Symbol).Logger()

	report := &Report{
		RunID:     runID,
		Symbol:    cfg.Symbol,
		Generated: time.Now(),
		History:   history,
	}

	transformed, params, err := transform.Apply(history.Closes(), cfg.Bounds)
	if err != nil {
		return nil, fmt.Errorf("transform stage: %w", err)
	}
	report.Params = params
	log.Info().
		Float64("lower", params.Lower).
		Float64("upper", params.Upper).
		Float64("mean", params.Mean).
		Float64("std", params.Std).
		Msg("close series transformed")

	featSpec := features.Spec{Horizon: cfg.Horizon, Lag: cfg.Lag, Windows: cfg.Windows}
	rows, err := features.Build(history.Dates(), transformed, featSpec)
	if err != nil {
		return nil, fmt.Errorf("feature stage: %w", err)
	}
	n := history.Len()
	if err := features.Verify(rows, n, featSpec); err != nil {
		return nil, fmt.Errorf("feature stage: %w", err)
	}
	report.Rows = rows
	log.Info().Int("historical", n).Int("future", len(rows)-n).Msg("feature rows built")

	labeled := rows[:n]
	sp, err := split.TrailingWindow(labeled, split.Options{
		AssessmentDays: cfg.AssessmentDays,
		RollingDays:    cfg.RollingDays,
	})
	if err != nil {
		return nil, fmt.Errorf("split stage: %w", err)
	}
	log.Info().
		Int("training", len(sp.Training)).
		Int("assessment", len(sp.Assessment)).
		Msg("history partitioned")

	folds := cfg.Folds
	if folds <= 0 {
		folds = 4
	}
	if plan, err := split.PlanFolds(labeled, split.Options{AssessmentDays: cfg.AssessmentDays}, folds); err == nil {
		report.Folds = plan
	}

	rec, err := recipe.Fit(sp.Training, recipe.Spec{
		FourierPeriods: cfg.FourierPeriods,
		FourierOrder:   cfg.FourierOrder,
		Windows:        cfg.Windows,
	})
	if err != nil {
		return nil, fmt.Errorf("recipe stage: %w", err)
	}

	trainX, trainY, dropped := completeRows(rec.Transform(sp.Training), closesOf(sp.Training))
	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("training rows with undefined features excluded from fitting")
	}
	assessX := rec.Transform(sp.Assessment)
	assessActual := transform.Invert(closesOf(sp.Assessment), params)

	fullX, fullY, _ := completeRows(rec.Transform(labeled), closesOf(labeled))
	futureX := rec.Transform(rows[n:])

	builders := []func() model.Model{
		func() model.Model { return forest.New(cfg.Forest) },
		func() model.Model { return autoreg.New(cfg.Arima) },
	}

	for _, build := range builders {
		mr, err := runModel(build, trainX, trainY, assessX, assessActual, sp.Assessment, fullX, fullY, futureX, rows[n:], params, log)
		if err != nil {
			return nil, err
		}
		report.Models = append(report.Models, *mr)
	}

	return report, nil
}

// runModel calibrates one model family on the assessment window, then
// refits on the full prepared history and forecasts the future block.
func runModel(
	build func() model.Model,
	trainX [][]float64, trainY []float64,
	assessX [][]float64, assessActual []float64, assessment []features.Row,
	fullX [][]float64, fullY []float64,
	futureX [][]float64, future []features.Row,
	params transform.Params,
	log zerolog.Logger,
) (*ModelReport, error) {
	m := build()
	name := m.Name()

	if err := m.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("fit %s: %w", name, err)
	}
	assessPreds, err := m.Predict(assessX)
	if err != nil {
		return nil, fmt.Errorf("calibrate %s: %w", name, err)
	}

	predicted := transform.Invert(model.Points(assessPreds), params)
	metrics, err := model.Evaluate(assessActual, predicted)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", name, err)
	}
	log.Info().
		Str("model", name).
		Float64("mae", metrics.MAE).
		Float64("rmse", metrics.RMSE).
		Float64("r2", metrics.R2).
		Msg("model calibrated")

	calibration := make([]CalibrationPoint, len(assessment))
	for i, row := range assessment {
		calibration[i] = CalibrationPoint{Date: row.Date, Actual: assessActual[i], Predicted: predicted[i]}
	}

	refit := build()
	if err := refit.Fit(fullX, fullY); err != nil {
		return nil, fmt.Errorf("refit %s: %w", name, err)
	}
	futurePreds, err := refit.Predict(futureX)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", name, err)
	}

	points := make([]Point, len(future))
	for i, p := range futurePreds {
		points[i] = Point{
			Date:  future[i].Date,
			Value: transform.InvertOne(p.Point, params),
			Lower: transform.InvertOne(p.Lower, params),
			Upper: transform.InvertOne(p.Upper, params),
		}
	}

	return &ModelReport{
		Name:        name,
		Metrics:     metrics,
		Calibration: calibration,
		Forecast:    points,
	}, nil
}

func closesOf(rows []features.Row) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Close
	}
	return out
}

// completeRows drops rows with undefined covariates. The drop is explicit
// and logged by the caller; the splitter itself never discards rows.
func completeRows(design [][]float64, target []float64) ([][]float64, []float64, int) {
	var x [][]float64
	var y []float64
	dropped := 0
	for i, v := range design {
		if !recipe.Complete(v) {
			dropped++
			continue
		}
		x = append(x, v)
		y = append(y, target[i])
	}
	return x, y, dropped
}
