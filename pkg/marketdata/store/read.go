package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// dateLayouts are tried in order when parsing date cells back from disk.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02",
}

// ReadCSV loads a previously written series from a CSV file. The first column
// is treated as the date axis; value columns are matched by header name and
// missing ones are left zero. Dates are parsed best-effort across the known
// layouts.
func ReadCSV(path string) (*types.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}

		return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to parse %s", path)
	}

	if len(records) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataMalformed, "empty CSV file: %s", path)
	}

	header := records[0]
	columnIndex := make(map[string]int, len(header))

	for i, name := range header {
		columnIndex[name] = i
	}

	ticker := tickerFromFilename(path)
	bars := make([]types.Bar, 0, len(records)-1)

	for _, record := range records[1:] {
		bar := types.Bar{
			Timestamp: parseDate(record[0]),
			Open:      parseDecimal(record, columnIndex, "Open"),
			High:      parseDecimal(record, columnIndex, "High"),
			Low:       parseDecimal(record, columnIndex, "Low"),
			Close:     parseDecimal(record, columnIndex, "Close"),
			AdjClose:  parseDecimal(record, columnIndex, "Adj Close"),
			Volume:    parseVolume(record, columnIndex),
		}
		bars = append(bars, bar)
	}

	series := types.NewSeries(ticker, bars)
	if len(header) > 0 {
		series.DateColumn = header[0]
	}

	return series, nil
}

// tickerFromFilename recovers the ticker from a generated filename. Custom
// filenames yield their stem instead.
func tickerFromFilename(path string) string {
	base := filepath.Base(path)
	stem := base[:len(base)-len(filepath.Ext(base))]

	for i, r := range stem {
		if r == '_' {
			return stem[:i]
		}
	}

	return stem
}

func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}

func parseDecimal(record []string, columnIndex map[string]int, name string) decimal.Decimal {
	idx, ok := columnIndex[name]
	if !ok || idx >= len(record) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(record[idx])
	if err != nil {
		return decimal.Zero
	}

	return d
}

func parseVolume(record []string, columnIndex map[string]int) int64 {
	idx, ok := columnIndex["Volume"]
	if !ok || idx >= len(record) {
		return 0
	}

	v, err := strconv.ParseInt(record[idx], 10, 64)
	if err != nil {
		return 0
	}

	return v
}
