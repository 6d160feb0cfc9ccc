// Command stockcast runs the close-price forecasting pipeline from the
// command line.
package main

import (
	"os"

	"github.com/quantora/stockcast/cmd/stockcast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
