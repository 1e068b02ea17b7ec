package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/vola-lab/histdata/pkg/errors"
)

// Metadata describes a data file on disk.
type Metadata struct {
	Filename  string
	Path      string
	SizeBytes int64
	// Modified is the modification time. File creation time is not portably
	// available, so this is the closest timestamp to when the file was written.
	Modified    time.Time
	Rows        int
	Columns     int
	ColumnNames []string
}

// FileInfo reports size, modification time, and row/column counts for a
// previously written CSV file. Row count excludes the header.
func FileInfo(path string) (Metadata, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, errors.Newf(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}

		return Metadata{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to stat %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return Metadata{}, errors.Wrapf(errors.ErrCodeParseFailed, err, "failed to parse %s", path)
	}

	meta := Metadata{
		Filename:  filepath.Base(path),
		Path:      path,
		SizeBytes: stat.Size(),
		Modified:  stat.ModTime(),
	}

	if len(records) > 0 {
		meta.Columns = len(records[0])
		meta.ColumnNames = records[0]
		meta.Rows = len(records) - 1
	}

	return meta, nil
}
