package timeseries

import (
	"math"
	"testing"
)

func TestSeriesStatistics(t *testing.T) {
	s := NewSeries([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if s.Len() != 8 {
		t.Errorf("Expected length 8, got %d", s.Len())
	}
	if s.Mean() != 5.0 {
		t.Errorf("Expected mean 5.0, got %f", s.Mean())
	}
	if math.Abs(s.Variance()-4.571428571428571) > 1e-12 {
		t.Errorf("Unexpected variance %f", s.Variance())
	}
	if s.Min() != 2 || s.Max() != 9 {
		t.Errorf("Unexpected min/max: %f/%f", s.Min(), s.Max())
	}
}

func TestSeriesDiff(t *testing.T) {
	s := NewSeries([]float64{1, 3, 6, 10})

	d := s.Diff()
	expected := []float64{2, 3, 4}
	if d.Len() != len(expected) {
		t.Fatalf("Expected %d diffs, got %d", len(expected), d.Len())
	}
	for i, v := range expected {
		if d.Values[i] != v {
			t.Errorf("Diff at %d: expected %f, got %f", i, v, d.Values[i])
		}
	}

	d2 := s.DiffN(2)
	if d2.Len() != 2 || d2.Values[0] != 5 || d2.Values[1] != 7 {
		t.Errorf("Unexpected second-order diff: %v", d2.Values)
	}
}

func TestSeriesDiffTooShort(t *testing.T) {
	s := NewSeries([]float64{1})
	if s.Diff().Len() != 0 {
		t.Error("Diff of a single observation should be empty")
	}
}

func TestSeriesCopyIsIndependent(t *testing.T) {
	s := NewSeries([]float64{1, 2, 3})
	c := s.Copy()
	c.Values[0] = 99
	if s.Values[0] != 1 {
		t.Error("Copy should not share backing storage")
	}
}
