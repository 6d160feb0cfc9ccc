package timeseries

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date,Symbol,Open,High,Low,Close,Volume
2016-01-04,NFLX,109.0,110.0,105.2,109.96,20794800
2016-01-05,NFLX,110.4,110.5,106.2,107.66,17664600
2016-01-04,AAPL,102.6,105.3,102.0,105.35,67649400
2015-12-31,NFLX,116.3,117.0,113.3,114.38,9689000
2016-01-06,NFLX,105.2,117.9,104.9,117.68,33045700
`

func TestLoadOHLCVFiltersSymbolAndStart(t *testing.T) {
	opts := DefaultOptions()
	opts.Symbol = "nflx"
	opts.Start = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	history, err := LoadOHLCVFromReader(strings.NewReader(sampleCSV), "sample", opts)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if history.Len() != 3 {
		t.Fatalf("Expected 3 bars after filtering, got %d", history.Len())
	}

	// Rows must come back date-ordered.
	for i := 1; i < history.Len(); i++ {
		if !history[i].Date.After(history[i-1].Date) {
			t.Errorf("Bars not strictly ordered at index %d", i)
		}
	}

	if history.First().Close != 109.96 {
		t.Errorf("Expected first close 109.96, got %f", history.First().Close)
	}
	if history.Last().Volume != 33045700 {
		t.Errorf("Expected last volume 33045700, got %d", history.Last().Volume)
	}
}

func TestLoadOHLCVCaseInsensitiveHeader(t *testing.T) {
	csvData := `DATE,symbol,OPEN,high,LOW,close,VOLUME
2020-01-01,X,1,2,0.5,1.5,100
`
	history, err := LoadOHLCVFromReader(strings.NewReader(csvData), "sample", nil)
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}
	if history.Len() != 1 {
		t.Errorf("Expected 1 bar, got %d", history.Len())
	}
}

func TestLoadOHLCVMissingColumn(t *testing.T) {
	csvData := `date,symbol,open,high,low,volume
2020-01-01,X,1,2,0.5,100
`
	_, err := LoadOHLCVFromReader(strings.NewReader(csvData), "sample", nil)
	if err == nil {
		t.Fatal("Expected an error for a missing close column")
	}
	var le *DataLoadError
	if !errors.As(err, &le) {
		t.Errorf("Expected *DataLoadError, got %T", err)
	}
}

func TestLoadOHLCVDuplicateDate(t *testing.T) {
	csvData := `date,symbol,open,high,low,close,volume
2020-01-01,X,1,2,0.5,1.5,100
2020-01-01,X,1,2,0.5,1.6,200
`
	_, err := LoadOHLCVFromReader(strings.NewReader(csvData), "sample", nil)
	if err == nil {
		t.Fatal("Expected an error for duplicate dates")
	}
}

func TestLoadOHLCVMalformedPrice(t *testing.T) {
	csvData := `date,symbol,open,high,low,close,volume
2020-01-01,X,1,2,oops,1.5,100
`
	_, err := LoadOHLCVFromReader(strings.NewReader(csvData), "sample", nil)
	var le *DataLoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected *DataLoadError, got %v", err)
	}
	if le.Line != 2 {
		t.Errorf("Expected error on line 2, got line %d", le.Line)
	}
}
