// Package report writes the accuracy-metrics and forecast tables of a run
// to CSV and XLSX files.
//
// Price-unit columns are rounded through decimal arithmetic so the emitted
// tables carry clean two-place monetary values rather than float noise.
package report
