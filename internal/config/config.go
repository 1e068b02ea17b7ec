package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/internal/version"
	"github.com/vola-lab/histdata/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration for a download session. Values left out of
// the YAML file fall back to the defaults from Default(); CLI flags override
// file values.
type Config struct {
	SchemaVersion    string   `yaml:"schema_version,omitempty" json:"schema_version,omitempty" jsonschema:"title=Schema Version,description=Version of the configuration file format"`
	Tickers          []string `yaml:"tickers" json:"tickers" jsonschema:"title=Tickers,description=Ticker symbols to download,minItems=1" validate:"required,min=1,dive,required"`
	Period           string   `yaml:"period" json:"period" jsonschema:"title=Period,description=Lookback period for the download" validate:"required"`
	Interval         string   `yaml:"interval" json:"interval" jsonschema:"title=Interval,description=Bar interval for the download" validate:"required"`
	Provider         string   `yaml:"provider" json:"provider" jsonschema:"title=Provider,description=Market data provider" validate:"required,oneof=yahoo polygon binance"`
	Format           string   `yaml:"format" json:"format" jsonschema:"title=Format,description=Per-ticker output format" validate:"required,oneof=csv parquet"`
	OutputDir        string   `yaml:"output_dir" json:"output_dir" jsonschema:"title=Output Directory,description=Directory for downloaded files" validate:"required"`
	LogDir           string   `yaml:"log_dir" json:"log_dir" jsonschema:"title=Log Directory,description=Directory for log files" validate:"required"`
	Seed             int64    `yaml:"seed" json:"seed" jsonschema:"title=Seed,description=Seed applied to random number generators,minimum=0"`
	CombinedWorkbook bool     `yaml:"combined_workbook" json:"combined_workbook" jsonschema:"title=Combined Workbook,description=Write a combined Excel workbook after the run"`
}

// Default returns the configuration used when no file and no flags are given:
// the four volatility-watch indices over the full available history.
func Default() Config {
	return Config{
		Tickers:          []string{"^GSPC", "^VIX", "^IXIC", "^DJI"},
		Period:           string(types.PeriodMax),
		Interval:         string(types.IntervalOneDay),
		Provider:         "yahoo",
		Format:           "csv",
		OutputDir:        "data/raw",
		LogDir:           "logs",
		Seed:             42,
		CombinedWorkbook: true,
	}
}

// Load reads a YAML configuration file on top of the defaults and validates
// the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Newf(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config file", err)
	}

	if err := version.CheckSchemaCompatibility(cfg.SchemaVersion); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfiguration, "unsupported config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks structural constraints and period/interval membership.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if !types.Period(c.Period).IsValid() {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period: %s", c.Period)
	}

	if !types.Interval(c.Interval).IsValid() {
		return errors.Newf(errors.ErrCodeInvalidInterval, "invalid interval: %s", c.Interval)
	}

	return nil
}

// GenerateSchema generates a JSON schema describing the configuration file
// format.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	return reflector.Reflect(c), nil
}
