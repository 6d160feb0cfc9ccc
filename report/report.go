package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/quantora/stockcast/forecast"
)

const dateLayout = "2006-01-02"

// WriteAll writes accuracy.csv, forecast.csv and report.xlsx into dir,
// creating it if needed, and returns the written paths.
func WriteAll(rep *forecast.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create %s: %w", dir, err)
	}

	accuracy := filepath.Join(dir, "accuracy.csv")
	if err := WriteAccuracyCSV(rep, accuracy); err != nil {
		return nil, err
	}
	fcst := filepath.Join(dir, "forecast.csv")
	if err := WriteForecastCSV(rep, fcst); err != nil {
		return nil, err
	}
	workbook := filepath.Join(dir, "report.xlsx")
	if err := WriteXLSX(rep, workbook); err != nil {
		return nil, err
	}
	return []string{accuracy, fcst, workbook}, nil
}

// WriteAccuracyCSV writes the per-model assessment metrics table.
func WriteAccuracyCSV(rep *forecast.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"run_id", "model", "mae", "rmse", "r2", "mape"}); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for _, m := range rep.Models {
		record := []string{
			rep.RunID,
			m.Name,
			money(m.Metrics.MAE),
			money(m.Metrics.RMSE),
			metric(m.Metrics.R2),
			metric(m.Metrics.MAPE),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}

// WriteForecastCSV writes the per-model future forecasts in price units.
func WriteForecastCSV(rep *forecast.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"model", "date", "forecast", "lower", "upper"}); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for _, m := range rep.Models {
		for _, p := range m.Forecast {
			record := []string{
				m.Name,
				p.Date.Format(dateLayout),
				money(p.Value),
				money(p.Lower),
				money(p.Upper),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("report: %w", err)
			}
		}
	}
	return nil
}

// WriteXLSX writes one workbook with an Accuracy sheet and a Forecast
// sheet per model.
func WriteXLSX(rep *forecast.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const accuracySheet = "Accuracy"
	if err := f.SetSheetName("Sheet1", accuracySheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	header := []interface{}{"Run", "Model", "MAE", "RMSE", "R2", "MAPE"}
	if err := f.SetSheetRow(accuracySheet, "A1", &header); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	for i, m := range rep.Models {
		row := []interface{}{
			rep.RunID,
			m.Name,
			moneyF(m.Metrics.MAE),
			moneyF(m.Metrics.RMSE),
			m.Metrics.R2,
			m.Metrics.MAPE,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(accuracySheet, cell, &row); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	for _, m := range rep.Models {
		sheet := "Forecast " + m.Name
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		head := []interface{}{"Date", "Forecast", "Lower", "Upper"}
		if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		for i, p := range m.Forecast {
			row := []interface{}{
				p.Date.Format(dateLayout),
				moneyF(p.Value),
				moneyF(p.Lower),
				moneyF(p.Upper),
			}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("report: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

// money renders a price-unit value rounded to cents.
func money(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return decimal.NewFromFloat(v).Round(2).String()
}

// moneyF rounds a price-unit value to cents, keeping it numeric for
// spreadsheet consumers.
func moneyF(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// metric renders a dimensionless metric with fixed precision.
func metric(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
