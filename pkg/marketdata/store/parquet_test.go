package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vola-lab/histdata/internal/types"
)

type ParquetTestSuite struct {
	suite.Suite
}

func TestParquetSuite(t *testing.T) {
	suite.Run(t, new(ParquetTestSuite))
}

func (suite *ParquetTestSuite) TestWriterLifecycle() {
	dir := suite.T().TempDir()
	outputPath := filepath.Join(dir, "out.parquet")

	writer := NewParquetWriter(outputPath)
	suite.NoError(writer.Initialize())

	series := testSeries("AAPL", 5)
	for _, bar := range series.Bars {
		suite.NoError(writer.WriteBar("AAPL", bar))
	}

	path, err := writer.Finalize()
	suite.NoError(err)
	suite.Equal(outputPath, path)
	suite.NoError(writer.Close())

	stat, err := os.Stat(path)
	suite.NoError(err)
	suite.Positive(stat.Size())
}

func (suite *ParquetTestSuite) TestWriteBarBeforeInitialize() {
	writer := NewParquetWriter("unused.parquet")
	err := writer.WriteBar("AAPL", types.Bar{})
	suite.Error(err)
}

func (suite *ParquetTestSuite) TestWriteParquetFilename() {
	dir := suite.T().TempDir()
	series := testSeries("^GSPC", 3)

	path, err := WriteParquet(series, types.PeriodMax, dir)
	suite.NoError(err)
	suite.Regexp(regexp.MustCompile(`\^GSPC_max_\d{8}_\d{6}\.parquet$`), filepath.Base(path))
}
