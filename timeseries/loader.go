package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Options controls OHLCV loading.
type Options struct {
	Symbol     string    // keep only rows whose symbol matches (case-insensitive); empty keeps all
	Start      time.Time // keep only rows on or after this date; zero keeps all
	DateFormat string    // date layout tried first (default "2006-01-02")
	Delimiter  rune      // field delimiter (default ',')
}

// DefaultOptions returns the default loading options.
func DefaultOptions() *Options {
	return &Options{
		DateFormat: "2006-01-02",
		Delimiter:  ',',
	}
}

// dateFormats are the layouts tried, in order, after Options.DateFormat.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
}

// LoadOHLCV loads a daily OHLCV history from a delimited file. The file must
// carry a header row with the columns date, symbol, open, high, low, close
// and volume, in any order and any case.
func LoadOHLCV(path string, opts *Options) (History, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Reason: err.Error()}
	}
	defer file.Close()

	return LoadOHLCVFromReader(file, path, opts)
}

// LoadOHLCVFromReader loads a history from an io.Reader. The name is used
// only for error reporting.
func LoadOHLCVFromReader(r io.Reader, name string, opts *Options) (History, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &DataLoadError{Path: name, Reason: "missing header row"}
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, &DataLoadError{Path: name, Reason: err.Error()}
	}

	var history History
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Reason: err.Error()}
		}

		symbol := strings.TrimSpace(record[cols.symbol])
		if opts.Symbol != "" && !strings.EqualFold(symbol, opts.Symbol) {
			continue
		}

		date, err := parseDate(strings.TrimSpace(record[cols.date]), opts.DateFormat)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Reason: err.Error()}
		}
		if !opts.Start.IsZero() && date.Before(opts.Start) {
			continue
		}

		bar := Bar{Date: date, Symbol: symbol}
		for _, f := range []struct {
			idx int
			dst *float64
		}{
			{cols.open, &bar.Open},
			{cols.high, &bar.High},
			{cols.low, &bar.Low},
			{cols.close, &bar.Close},
		} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[f.idx]), 64)
			if err != nil {
				return nil, &DataLoadError{Path: name, Line: line, Reason: fmt.Sprintf("bad price value %q", record[f.idx])}
			}
			*f.dst = v
		}

		vol, err := strconv.ParseFloat(strings.TrimSpace(record[cols.volume]), 64)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Reason: fmt.Sprintf("bad volume value %q", record[cols.volume])}
		}
		bar.Volume = int64(vol)

		history = append(history, bar)
	}

	if len(history) == 0 {
		return nil, &DataLoadError{Path: name, Reason: "no rows matched the symbol and start-date filters"}
	}
	if err := history.sortAndVerify(name); err != nil {
		return nil, err
	}
	return history, nil
}

// columnIndices maps required header names to their positions.
type columnIndices struct {
	date, symbol, open, high, low, close, volume int
}

func mapColumns(header []string) (columnIndices, error) {
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.Trim(h, "\"")))] = i
	}

	cols := columnIndices{}
	for _, want := range []struct {
		name string
		dst  *int
	}{
		{"date", &cols.date},
		{"symbol", &cols.symbol},
		{"open", &cols.open},
		{"high", &cols.high},
		{"low", &cols.low},
		{"close", &cols.close},
		{"volume", &cols.volume},
	} {
		i, ok := idx[want.name]
		if !ok {
			return cols, fmt.Errorf("missing required column %q", want.name)
		}
		*want.dst = i
	}
	return cols, nil
}

func parseDate(s, preferred string) (time.Time, error) {
	formats := dateFormats
	if preferred != "" {
		formats = append([]string{preferred}, dateFormats...)
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
