package store

import (
	"path/filepath"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

func TestReadCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	series := testSeries("AAPL", 5)

	path, err := WriteCSV(series, types.PeriodOneYear, dir, optional.None[string]())
	require.NoError(t, err)

	loaded, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", loaded.Ticker)
	assert.Equal(t, types.DefaultDateColumn, loaded.DateColumn)
	require.Equal(t, series.Len(), loaded.Len())

	// Prices come back rounded to the on-disk precision.
	for i, bar := range loaded.Bars {
		want := series.Bars[i]
		assert.True(t, bar.Timestamp.Equal(want.Timestamp), "row %d timestamp", i)
		assert.True(t, bar.Open.Equal(want.Open.Round(6)), "row %d open", i)
		assert.True(t, bar.AdjClose.Equal(want.AdjClose.Round(6)), "row %d adj close", i)
		assert.Equal(t, want.Volume, bar.Volume, "row %d volume", i)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
}

func TestReadCSVCustomFilenameTicker(t *testing.T) {
	dir := t.TempDir()
	series := testSeries("MSFT", 3)

	path, err := WriteCSV(series, types.PeriodOneMonth, dir, optional.Some("snapshot"))
	require.NoError(t, err)

	loaded, err := ReadCSV(path)
	require.NoError(t, err)

	// The ticker is recovered from the filename, so a custom name wins.
	assert.Equal(t, "snapshot", loaded.Ticker)
}

func TestFileInfo(t *testing.T) {
	dir := t.TempDir()
	series := testSeries("NVDA", 7)

	path, err := WriteCSV(series, types.PeriodMax, dir, optional.None[string]())
	require.NoError(t, err)

	meta, err := FileInfo(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(path), meta.Filename)
	assert.Equal(t, 7, meta.Rows)
	assert.Equal(t, 7, meta.Columns)
	assert.Equal(t, []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}, meta.ColumnNames)
	assert.Greater(t, meta.SizeBytes, int64(0))
	assert.False(t, meta.Modified.IsZero())
}

func TestFileInfoMissingFile(t *testing.T) {
	_, err := FileInfo(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeFileNotFound))
}
