// Package store persists downloaded price series to disk as CSV, multi-sheet
// Excel workbooks, or Parquet files, and reads back CSV files it has written.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

const (
	// dateLayout is the timestamp format used in CSV cells and generated
	// workbooks.
	dateLayout = "2006-01-02 15:04:05"
	// priceDecimals is the fixed precision for price columns.
	priceDecimals = 6
)

// GenerateFilename derives the CSV filename for a download. A custom name is
// used as-is with a ".csv" suffix appended when missing; otherwise the name is
// {ticker}_{period}_{YYYYMMDD_HHMMSS}.csv from the wall clock, so repeated
// downloads of the same ticker never collide.
func GenerateFilename(ticker string, period types.Period, custom optional.Option[string]) string {
	if custom.IsSome() {
		name := custom.Unwrap()
		if !strings.HasSuffix(name, ".csv") {
			name += ".csv"
		}

		return name
	}

	timestamp := time.Now().Format("20060102_150405")

	return fmt.Sprintf("%s_%s_%s.csv", ticker, period, timestamp)
}

// WriteCSV writes the series to a CSV file under dir, creating the directory
// if needed. The date axis is materialized as the first column, prices are
// written with fixed 6-decimal precision, and no index column is emitted.
// Returns the full path of the written file.
func WriteCSV(series *types.Series, period types.Period, dir string, filename optional.Option[string]) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", dir)
	}

	path := filepath.Join(dir, GenerateFilename(series.Ticker, period, filename))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := append([]string{series.DateColumn}, series.Columns()...)
	if err := w.Write(header); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to write header", err)
	}

	for _, bar := range series.Bars {
		record := []string{
			bar.Timestamp.Format(dateLayout),
			bar.Open.StringFixed(priceDecimals),
			bar.High.StringFixed(priceDecimals),
			bar.Low.StringFixed(priceDecimals),
			bar.Close.StringFixed(priceDecimals),
			bar.AdjClose.StringFixed(priceDecimals),
			strconv.FormatInt(bar.Volume, 10),
		}

		if err := w.Write(record); err != nil {
			return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to write bar", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to flush %s", path)
	}

	return path, nil
}
