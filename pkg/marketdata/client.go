// Package marketdata downloads historical price series from a remote provider
// and persists them to disk.
package marketdata

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"

	"github.com/vola-lab/histdata/internal/logger"
	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
	"github.com/vola-lab/histdata/pkg/marketdata/provider"
	"github.com/vola-lab/histdata/pkg/marketdata/store"
)

// Format selects the per-ticker output file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	Provider      provider.Type `validate:"required,oneof=yahoo polygon binance"`
	Format        Format        `validate:"required,oneof=csv parquet"`
	OutputDir     string        `validate:"required"`
	PolygonAPIKey string        `validate:"required_if=Provider polygon"`
}

// BatchOptions controls FetchMany behavior.
type BatchOptions struct {
	// CombinedWorkbook writes one multi-sheet Excel workbook over all
	// successful fetches at the end of the batch.
	CombinedWorkbook bool
	// WorkbookFilename overrides the default combined_stocks_{period}.xlsx.
	WorkbookFilename string
}

// Client downloads series from a provider and persists them via the store.
// The logger may be nil, in which case operations run silently.
type Client struct {
	provider provider.Provider
	config   ClientConfig
	validate *validator.Validate
	logger   *logger.DownloadLogger
}

// NewClient creates a client with the provider named in the configuration.
func NewClient(config ClientConfig, log *logger.DownloadLogger) (*Client, error) {
	var providerConfig any
	if config.Provider == provider.TypePolygon {
		providerConfig = config.PolygonAPIKey
	}

	p, err := provider.New(config.Provider, providerConfig)
	if err != nil {
		return nil, err
	}

	return NewClientWithProvider(config, p, log)
}

// NewClientWithProvider creates a client backed by the given provider. It is
// the seam used by tests to substitute a stub provider.
func NewClientWithProvider(config ClientConfig, p provider.Provider, log *logger.DownloadLogger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	return &Client{
		provider: p,
		config:   config,
		validate: validate,
		logger:   log,
	}, nil
}

// FetchOne downloads one ticker and persists it in the configured format. An
// empty remote result returns an ErrCodeNoData error and writes nothing; any
// other failure returns the fetch or write error. No retry is attempted.
func (c *Client) FetchOne(ctx context.Context, ticker string, period types.Period, interval types.Interval, filename optional.Option[string]) (*types.Series, error) {
	if ticker == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "ticker must not be empty")
	}

	if c.logger != nil {
		c.logger.DownloadStart(ticker, string(period), string(interval))
	}

	bars, err := c.provider.History(ctx, ticker, period, interval)
	if err != nil {
		if c.logger != nil {
			c.logger.DownloadError(ticker, err.Error())
		}

		return nil, err
	}

	if len(bars) == 0 {
		if c.logger != nil {
			c.logger.Warning(fmt.Sprintf("No data found for %s", ticker))
		}

		return nil, errors.Wrap(errors.ErrCodeNoData, "empty result",
			errors.NewNoDataError(ticker, string(period), string(interval)))
	}

	series := types.NewSeries(ticker, bars)

	path, err := c.persist(series, period, filename)
	if err != nil {
		if c.logger != nil {
			c.logger.DownloadError(ticker, err.Error())
		}

		return nil, err
	}

	if c.logger != nil {
		c.logger.DownloadComplete(ticker, series.Len(), path)
		c.logger.DataStats(ticker, series.Len(), series.Columns())
	}

	return series, nil
}

// FetchMany downloads tickers strictly sequentially. Per-ticker failures are
// logged and skipped; one ticker's failure never aborts the batch, and no
// error escapes this call. When requested, a combined multi-sheet workbook is
// written over the successful fetches; a workbook failure is logged but does
// not affect the individually saved files.
func (c *Client) FetchMany(ctx context.Context, tickers []string, period types.Period, interval types.Interval, opts BatchOptions) *types.ResultSet {
	results := types.NewResultSet()

	runID := uuid.New().String()
	if c.logger != nil {
		c.logger.Info(fmt.Sprintf("Batch run %s: %d tickers (period=%s, interval=%s)", runID, len(tickers), period, interval))
	}

	bar := progressbar.NewOptions(len(tickers),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionShowCount(),
	)

	for _, ticker := range tickers {
		series, err := c.FetchOne(ctx, ticker, period, interval, optional.None[string]())
		if err == nil {
			results.Add(ticker, series)
		}

		bar.Add(1)

		if c.logger != nil {
			c.logger.Separator()
		}
	}

	bar.Finish()

	if opts.CombinedWorkbook && results.Len() > 0 {
		filename := opts.WorkbookFilename
		if filename == "" {
			filename = fmt.Sprintf("combined_stocks_%s.xlsx", period)
		}

		path, err := store.WriteWorkbook(results, filename, c.config.OutputDir)

		switch {
		case err != nil && c.logger != nil:
			c.logger.Error(fmt.Sprintf("Failed to save combined workbook: %v", err))
		case err == nil && c.logger != nil:
			c.logger.Success(fmt.Sprintf("Combined workbook saved to %s", path))
		}
	}

	return results
}

func (c *Client) persist(series *types.Series, period types.Period, filename optional.Option[string]) (string, error) {
	switch c.config.Format {
	case FormatParquet:
		return store.WriteParquet(series, period, c.config.OutputDir)
	case FormatCSV:
		return store.WriteCSV(series, period, c.config.OutputDir, filename)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidFormat, "unsupported output format: %s", c.config.Format)
	}
}
