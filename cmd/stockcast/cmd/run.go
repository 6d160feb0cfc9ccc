package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quantora/stockcast/charts"
	"github.com/quantora/stockcast/config"
	"github.com/quantora/stockcast/forecast"
	"github.com/quantora/stockcast/logging"
	"github.com/quantora/stockcast/report"
	"github.com/quantora/stockcast/timeseries"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one forecasting run",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return err
	}

	start, err := cfg.StartDate()
	if err != nil {
		return err
	}
	history, err := timeseries.LoadOHLCV(cfg.Data.Path, &timeseries.Options{
		Symbol:     cfg.Data.Symbol,
		Start:      start,
		DateFormat: cfg.Data.DateFormat,
	})
	if err != nil {
		log.Error().Err(err).Msg("data load failed")
		return err
	}
	log.Info().
		Int("bars", history.Len()).
		Str("from", history.First().Date.Format("2006-01-02")).
		Str("to", history.Last().Date.Format("2006-01-02")).
		Msg("history loaded")

	rep, err := forecast.Run(history, cfg.RunConfig(), log)
	if err != nil {
		log.Error().Err(err).Msg("pipeline run failed")
		return err
	}

	paths, err := report.WriteAll(rep, cfg.Output.Dir)
	if err != nil {
		log.Error().Err(err).Msg("report writing failed")
		return err
	}
	for _, p := range paths {
		log.Info().Str("path", p).Msg("table written")
	}

	if cfg.Output.Charts {
		chartPath := filepath.Join(cfg.Output.Dir, "charts.html")
		if err := charts.Render(rep, chartPath); err != nil {
			log.Error().Err(err).Msg("chart rendering failed")
			return err
		}
		log.Info().Str("path", chartPath).Msg("charts written")
	}

	for _, m := range rep.Models {
		log.Info().
			Str("model", m.Name).
			Float64("mae", m.Metrics.MAE).
			Float64("rmse", m.Metrics.RMSE).
			Float64("r2", m.Metrics.R2).
			Msg("assessment accuracy")
	}
	return nil
}

// resolveConfigPath prefers the flag, then STOCKCAST_CONFIG.
func resolveConfigPath() string {
	if cfgFile != "stockcast.yaml" {
		return cfgFile
	}
	if env := os.Getenv("STOCKCAST_CONFIG"); env != "" {
		return env
	}
	return cfgFile
}
