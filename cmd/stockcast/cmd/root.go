// Package cmd holds the stockcast CLI commands.
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stockcast",
	Short: "Equity close-price forecasting pipeline",
	Long: `stockcast - equity close-price forecasting pipeline

Loads daily OHLCV history for one symbol, engineers lag/rolling/Fourier
features, backtests a random forest and an ARIMA model on a trailing
assessment window, and emits forecast tables and charts.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initEnv()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "stockcast.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(runCmd)
}

func initEnv() error {
	// A .env file is optional; environment variables work without one.
	if err := godotenv.Load(); err != nil && verbose {
		fmt.Println("no .env file found, using environment variables")
	}
	return nil
}
