package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// WriteWorkbook writes every series in the result set into a single Excel
// workbook under dir, one sheet per ticker named exactly the ticker symbol, in
// insertion order. An existing file at the target path is overwritten.
//
// Timestamps are written as naive wall-clock values: the zone offset is
// discarded, not converted, because the xlsx format cannot represent
// timezone-aware datetimes. This is a lossy conversion kept for compatibility
// with previously produced workbooks.
func WriteWorkbook(rs *types.ResultSet, filename string, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", dir)
	}

	path := filepath.Join(dir, filename)

	f := excelize.NewFile()
	defer f.Close()

	for i, ticker := range rs.Tickers() {
		series, ok := rs.Get(ticker)
		if !ok {
			continue
		}

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), ticker); err != nil {
				return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to name sheet %s", ticker)
			}
		} else {
			if _, err := f.NewSheet(ticker); err != nil {
				return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create sheet %s", ticker)
			}
		}

		if err := writeSheet(f, ticker, series); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to save workbook %s", path)
	}

	return path, nil
}

func writeSheet(f *excelize.File, sheet string, series *types.Series) error {
	header := append([]string{series.DateColumn}, series.Columns()...)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, "invalid header coordinates", err)
		}

		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write header on sheet %s", sheet)
		}
	}

	for row, bar := range series.Bars {
		values := []any{
			stripTimezone(bar.Timestamp).Format(dateLayout),
			bar.Open.InexactFloat64(),
			bar.High.InexactFloat64(),
			bar.Low.InexactFloat64(),
			bar.Close.InexactFloat64(),
			bar.AdjClose.InexactFloat64(),
			bar.Volume,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return errors.Wrap(errors.ErrCodeWriteFailed, "invalid cell coordinates", err)
			}

			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write row on sheet %s", sheet)
			}
		}
	}

	return nil
}

// stripTimezone rebuilds the timestamp's wall-clock reading in UTC, dropping
// the original zone.
func stripTimezone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
