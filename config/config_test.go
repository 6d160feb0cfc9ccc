package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockcast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
  symbol: NFLX
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, c.Pipeline.Horizon)
	assert.Equal(t, 30, c.Pipeline.Lag)
	assert.Equal(t, []int{30, 60, 90, 180}, c.Pipeline.Windows)
	assert.Equal(t, 8, c.Pipeline.AssessmentWeeks)
	assert.Equal(t, []int{30, 60, 90, 180}, c.Pipeline.FourierPeriods)
	assert.Equal(t, 1, c.Pipeline.FourierOrder)
	assert.Equal(t, "2016-01-01", c.Data.Start)
	assert.Equal(t, 300, c.Forest.Trees)
	assert.True(t, c.ArimaAuto())
	assert.Equal(t, 0.95, c.Arima.Level)
	assert.Equal(t, "console", c.Log.Format)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
  symbol: AMZN
  start: "2018-06-01"
pipeline:
  horizon: 14
  lag: 14
  windows: [7, 14]
arima:
  p: 2
  d: 1
  q: 1
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 14, c.Pipeline.Horizon)
	assert.Equal(t, []int{7, 14}, c.Pipeline.Windows)

	start, err := c.StartDate()
	require.NoError(t, err)
	assert.Equal(t, 2018, start.Year())

	rc := c.RunConfig()
	require.NotNil(t, rc.Arima.Order)
	assert.Equal(t, 2, rc.Arima.Order.P)
	assert.Equal(t, 56, rc.AssessmentDays)
}

func TestLoadRejectsMissingSymbol(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadStartDate(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
  symbol: NFLX
  start: "junk"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestAllZeroArimaOrderMeansAuto(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
  symbol: NFLX
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.ArimaAuto())
	assert.Nil(t, c.RunConfig().Arima.Order)
}

func TestRunConfigAssessmentDays(t *testing.T) {
	path := writeConfig(t, `
data:
  path: prices.csv
  symbol: NFLX
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 56, c.RunConfig().AssessmentDays)
}
