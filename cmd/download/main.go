package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"github.com/vola-lab/histdata/internal/config"
	"github.com/vola-lab/histdata/internal/logger"
	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/internal/version"
	"github.com/vola-lab/histdata/pkg/marketdata"
	"github.com/vola-lab/histdata/pkg/marketdata/provider"
	"github.com/vola-lab/histdata/pkg/seed"
)

// downloadAction is the core logic executed by the CLI command. It resolves
// the run configuration, seeds the environment, and downloads every requested
// ticker.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	manager := seed.New(cfg.Seed, seed.DefaultBackends()...)
	manager.ConfigureEnvironment(cfg.Seed, optional.None[float64](), cmd.Bool("verbose"))

	log, err := logger.NewDownloadLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	client, err := marketdata.NewClient(marketdata.ClientConfig{
		Provider:      provider.Type(cfg.Provider),
		Format:        marketdata.Format(cfg.Format),
		OutputDir:     cfg.OutputDir,
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("Downloading %d tickers (period=%s interval=%s provider=%s)",
		len(cfg.Tickers), cfg.Period, cfg.Interval, cfg.Provider)))

	results := client.FetchMany(ctx, cfg.Tickers, types.Period(cfg.Period), types.Interval(cfg.Interval), marketdata.BatchOptions{
		CombinedWorkbook: cfg.CombinedWorkbook,
	})

	for _, ticker := range cfg.Tickers {
		if series, ok := results.Get(ticker); ok {
			fmt.Println(SuccessStyle.Render(fmt.Sprintf("  %s: %d rows", ticker, series.Len())))
		} else {
			fmt.Println(FailureStyle.Render(fmt.Sprintf("  %s: failed", ticker)))
		}
	}

	fmt.Println(FormatSummary(results.Len(), len(cfg.Tickers)))

	if results.Len() == 0 {
		return cli.Exit("all downloads failed", 1)
	}

	return nil
}

// schemaAction writes the JSON schema for the YAML configuration file.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	schema, err := cfg.GenerateSchema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaPath := cmd.String("out")
	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Printf("Schema written to %s\n", schemaPath)

	return nil
}

// resolveConfig layers CLI flags over the config file (when given) over the
// built-in defaults.
func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	if cmd.IsSet("tickers") {
		cfg.Tickers = cmd.StringSlice("tickers")
	}

	if cmd.IsSet("period") {
		cfg.Period = cmd.String("period")
	}

	if cmd.IsSet("interval") {
		cfg.Interval = cmd.String("interval")
	}

	if cmd.IsSet("provider") {
		cfg.Provider = cmd.String("provider")
	}

	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}

	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}

	if cmd.IsSet("logs") {
		cfg.LogDir = cmd.String("logs")
	}

	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int("seed")
	}

	if cmd.IsSet("no-workbook") {
		cfg.CombinedWorkbook = !cmd.Bool("no-workbook")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func main() {
	defaults := config.Default()

	cmd := &cli.Command{
		Name:    "histdata",
		Usage:   "Download historical market data",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tickers",
				Aliases: []string{"t"},
				Usage:   "Ticker symbols to download",
				Value:   defaults.Tickers,
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Lookback period (e.g. 1mo, 1y, max)",
				Value:   defaults.Period,
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval (e.g. 1m, 1h, 1d)",
				Value:   defaults.Interval,
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: fmt.Sprintf("Data provider (%s, %s, %s)", provider.TypeYahoo, provider.TypePolygon, provider.TypeBinance),
				Value: defaults.Provider,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Per-ticker output format (%s, %s)", marketdata.FormatCSV, marketdata.FormatParquet),
				Value:   defaults.Format,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for downloaded files",
				Value:   defaults.OutputDir,
			},
			&cli.StringFlag{
				Name:  "logs",
				Usage: "Directory for log files",
				Value: defaults.LogDir,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML run configuration file",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Seed applied to random number generators",
				Value: defaults.Seed,
			},
			&cli.BoolFlag{
				Name:  "no-workbook",
				Usage: "Skip the combined Excel workbook",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print the environment configuration report",
			},
		},
		Action: downloadAction,
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Generate the JSON schema for the configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Schema output path",
						Value: filepath.Join("config", "histdata-config.json"),
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, FailureStyle.Render(err.Error()))
		os.Exit(1)
	}
}
