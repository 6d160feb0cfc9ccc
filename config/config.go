package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/quantora/stockcast/forecast"
	"github.com/quantora/stockcast/model/autoreg"
	"github.com/quantora/stockcast/model/forest"
	"github.com/quantora/stockcast/transform"
)

// Config is the full configuration of one analysis run.
type Config struct {
	Data struct {
		Path       string `yaml:"path" validate:"required"`
		Symbol     string `yaml:"symbol" validate:"required"`
		Start      string `yaml:"start" default:"2016-01-01"`
		DateFormat string `yaml:"date_format" default:"2006-01-02"`
	} `yaml:"data"`

	Pipeline struct {
		Horizon         int   `yaml:"horizon" default:"30" validate:"gt=0"`
		Lag             int   `yaml:"lag" default:"30" validate:"gt=0"`
		Windows         []int `yaml:"windows" default:"[30,60,90,180]" validate:"min=1,dive,gt=0"`
		AssessmentWeeks int   `yaml:"assessment_weeks" default:"8" validate:"gt=0"`
		RollingDays     int   `yaml:"rolling_days" validate:"gte=0"`
		Folds           int   `yaml:"folds" default:"4" validate:"gt=0"`
		FourierPeriods  []int `yaml:"fourier_periods" default:"[30,60,90,180]" validate:"dive,gt=0"`
		FourierOrder    int   `yaml:"fourier_order" default:"1" validate:"gte=0"`
	} `yaml:"pipeline"`

	Transform struct {
		Lower    float64 `yaml:"lower"`
		Upper    float64 `yaml:"upper"` // 0 estimates the limit from the data
		Offset   float64 `yaml:"offset" default:"1"`
		Headroom float64 `yaml:"headroom" default:"1.2" validate:"gt=1"`
	} `yaml:"transform"`

	Forest struct {
		Trees    int   `yaml:"trees" default:"300" validate:"gt=0"`
		MaxDepth int   `yaml:"max_depth" default:"12" validate:"gt=0"`
		MinLeaf  int   `yaml:"min_leaf" default:"3" validate:"gt=0"`
		MTry     int   `yaml:"mtry" validate:"gte=0"`
		Seed     int64 `yaml:"seed" default:"1"`
	} `yaml:"forest"`

	// Arima pins the model order when any of p/d/q is set; an all-zero
	// order selects the AICc search bounded by max_p/max_q.
	Arima struct {
		P     int     `yaml:"p" validate:"gte=0"`
		D     int     `yaml:"d" validate:"gte=0"`
		Q     int     `yaml:"q" validate:"gte=0"`
		MaxP  int     `yaml:"max_p" default:"3" validate:"gt=0"`
		MaxQ  int     `yaml:"max_q" default:"3" validate:"gt=0"`
		Level float64 `yaml:"level" default:"0.95" validate:"gt=0,lt=1"`
	} `yaml:"arima"`

	Output struct {
		Dir    string `yaml:"dir" default:"out"`
		Charts bool   `yaml:"charts" default:"true"`
	} `yaml:"output"`

	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
}

// Load reads, defaults and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.StartDate(); err != nil {
		return err
	}
	return nil
}

// ArimaAuto reports whether the ARIMA order should be searched rather
// than pinned.
func (c *Config) ArimaAuto() bool {
	return c.Arima.P == 0 && c.Arima.D == 0 && c.Arima.Q == 0
}

// StartDate parses the configured start-date filter.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Data.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("data.start: %w", err)
	}
	return t, nil
}

// RunConfig assembles the pipeline configuration for the forecast stage.
func (c *Config) RunConfig() forecast.Config {
	cfg := forecast.Config{
		Symbol:         c.Data.Symbol,
		Horizon:        c.Pipeline.Horizon,
		Lag:            c.Pipeline.Lag,
		Windows:        c.Pipeline.Windows,
		AssessmentDays: c.Pipeline.AssessmentWeeks * 7,
		RollingDays:    c.Pipeline.RollingDays,
		Folds:          c.Pipeline.Folds,
		FourierPeriods: c.Pipeline.FourierPeriods,
		FourierOrder:   c.Pipeline.FourierOrder,
		Bounds: transform.Bounds{
			Lower:    c.Transform.Lower,
			Upper:    c.Transform.Upper,
			Offset:   c.Transform.Offset,
			Headroom: c.Transform.Headroom,
		},
		Forest: forest.Config{
			Trees:    c.Forest.Trees,
			MaxDepth: c.Forest.MaxDepth,
			MinLeaf:  c.Forest.MinLeaf,
			MTry:     c.Forest.MTry,
			Seed:     c.Forest.Seed,
		},
		Arima: autoreg.Config{
			MaxP:  c.Arima.MaxP,
			MaxQ:  c.Arima.MaxQ,
			Level: c.Arima.Level,
		},
	}
	if !c.ArimaAuto() {
		cfg.Arima.Order = &autoreg.Order{P: c.Arima.P, D: c.Arima.D, Q: c.Arima.Q}
	}
	return cfg
}
