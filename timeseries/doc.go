// Package timeseries provides OHLCV market data structures and loading.
//
// The central types are Bar, one open/high/low/close/volume record per
// trading day per symbol, and History, a date-ordered sequence of bars for
// a single symbol. LoadOHLCV reads a delimited file with case-insensitive
// column names and filters to one symbol and a start date:
//
//	history, err := timeseries.LoadOHLCV("prices.csv", &timeseries.Options{
//	    Symbol: "NFLX",
//	    Start:  time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
//	})
//
// The package also provides Series, a plain univariate value sequence with
// the summary statistics and differencing operations the model packages
// consume.
//
// Load failures (missing file, missing columns, malformed rows, duplicate
// dates) are reported as *DataLoadError with the offending line number.
package timeseries
