package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// ParquetWriter stages bars in an in-memory DuckDB table and exports them as a
// Parquet file on finalize.
type ParquetWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewParquetWriter creates a ParquetWriter targeting the given output path.
func NewParquetWriter(outputPath string) *ParquetWriter {
	return &ParquetWriter{
		outputPath: outputPath,
	}
}

// Initialize opens the in-memory database, creates the staging table, begins a
// transaction, and prepares the insert statement.
func (w *ParquetWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS price_bars (
			id TEXT,
			ts TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			adj_close DOUBLE,
			volume BIGINT
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create staging table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO price_bars (id, ts, symbol, open, high, low, close, adj_close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// WriteBar stages a single bar for the given ticker.
func (w *ParquetWriter) WriteBar(ticker string, bar types.Bar) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		bar.Timestamp,
		ticker,
		bar.Open.InexactFloat64(),
		bar.High.InexactFloat64(),
		bar.Low.InexactFloat64(),
		bar.Close.InexactFloat64(),
		bar.AdjClose.InexactFloat64(),
		bar.Volume,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert bar", err)
	}

	return nil
}

// Finalize commits the staged rows and exports them to the output Parquet
// file.
func (w *ParquetWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	_, err := w.db.Exec(fmt.Sprintf(`COPY price_bars TO '%s' (FORMAT PARQUET)`, w.outputPath))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to export %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close releases the statement and database connection. An active transaction
// is rolled back.
func (w *ParquetWriter) Close() error {
	var firstErr error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}

		w.stmt = nil
	}

	if w.tx != nil {
		w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}

		w.db = nil
	}

	if firstErr != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to close parquet writer", firstErr)
	}

	return nil
}

// WriteParquet writes the series to a Parquet file under dir using the same
// filename scheme as the CSV writer.
func WriteParquet(series *types.Series, period types.Period, dir string) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output directory %s", dir)
	}

	timestamp := time.Now().Format("20060102_150405")
	outputPath := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.parquet", series.Ticker, period, timestamp))

	writer := NewParquetWriter(outputPath)
	if err := writer.Initialize(); err != nil {
		return "", err
	}

	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, bar := range series.Bars {
		if err := writer.WriteBar(series.Ticker, bar); err != nil {
			return "", err
		}
	}

	return writer.Finalize()
}
