package logger

import (
	"fmt"
	"strings"
)

// DownloadLogger adds download-specific composite messages on top of Logger.
type DownloadLogger struct {
	*Logger
}

// NewDownloadLogger creates a download logger writing to the given directory.
func NewDownloadLogger(logDir string) (*DownloadLogger, error) {
	base, err := NewLogger(Options{
		Name:   "download_logger",
		LogDir: logDir,
	})
	if err != nil {
		return nil, err
	}

	return &DownloadLogger{Logger: base}, nil
}

// DownloadStart logs the start of a download operation.
func (l *DownloadLogger) DownloadStart(ticker, period, interval string) {
	l.Info(fmt.Sprintf("Starting download: %s (period=%s, interval=%s)", ticker, period, interval))
}

// DownloadComplete logs a successful download with its row count and output path.
func (l *DownloadLogger) DownloadComplete(ticker string, rows int, path string) {
	l.Success(fmt.Sprintf("Download complete: %s - %d rows saved to %s", ticker, rows, path))
}

// DownloadError logs a failed download with the error text.
func (l *DownloadLogger) DownloadError(ticker string, errText string) {
	l.Error(fmt.Sprintf("Download failed for %s: %s", ticker, errText))
}

// DataStats logs a per-ticker statistics line.
func (l *DownloadLogger) DataStats(ticker string, rows int, columns []string) {
	l.Debug(fmt.Sprintf("%s | Rows: %d | Columns: %s", ticker, rows, strings.Join(columns, ", ")))
}
