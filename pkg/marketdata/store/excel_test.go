package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/vola-lab/histdata/internal/types"
)

type ExcelTestSuite struct {
	suite.Suite
}

func TestExcelSuite(t *testing.T) {
	suite.Run(t, new(ExcelTestSuite))
}

func (suite *ExcelTestSuite) TestWriteWorkbookSheetPerTicker() {
	dir := suite.T().TempDir()

	rs := types.NewResultSet()
	rs.Add("^GSPC", testSeries("^GSPC", 3))
	rs.Add("^VIX", testSeries("^VIX", 2))
	rs.Add("^DJI", testSeries("^DJI", 4))

	path, err := WriteWorkbook(rs, "combined_stocks_max.xlsx", dir)
	suite.NoError(err)

	f, err := excelize.OpenFile(path)
	suite.NoError(err)

	defer f.Close()

	suite.Equal([]string{"^GSPC", "^VIX", "^DJI"}, f.GetSheetList())

	header, err := f.GetCellValue("^VIX", "A1")
	suite.NoError(err)
	suite.Equal("Date", header)

	rows, err := f.GetRows("^VIX")
	suite.NoError(err)
	// Header plus one row per bar.
	suite.Len(rows, 3)
}

func (suite *ExcelTestSuite) TestWriteWorkbookStripsTimezone() {
	dir := suite.T().TempDir()

	loc := time.FixedZone("EST", -5*60*60)
	price := decimal.NewFromFloat(42.5)
	series := types.NewSeries("AAPL", []types.Bar{{
		Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, loc),
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		AdjClose:  price,
		Volume:    10,
	}})

	rs := types.NewResultSet()
	rs.Add("AAPL", series)

	path, err := WriteWorkbook(rs, "tz.xlsx", dir)
	suite.NoError(err)

	f, err := excelize.OpenFile(path)
	suite.NoError(err)

	defer f.Close()

	cell, err := f.GetCellValue("AAPL", "A2")
	suite.NoError(err)
	// Wall-clock reading preserved, offset discarded.
	suite.Equal("2024-03-01 09:30:00", cell)
}

func (suite *ExcelTestSuite) TestWriteWorkbookOverwrites() {
	dir := suite.T().TempDir()

	rs := types.NewResultSet()
	rs.Add("AAPL", testSeries("AAPL", 2))

	_, err := WriteWorkbook(rs, "out.xlsx", dir)
	suite.NoError(err)

	rs2 := types.NewResultSet()
	rs2.Add("MSFT", testSeries("MSFT", 1))

	path, err := WriteWorkbook(rs2, "out.xlsx", dir)
	suite.NoError(err)

	f, err := excelize.OpenFile(path)
	suite.NoError(err)

	defer f.Close()

	suite.Equal([]string{"MSFT"}, f.GetSheetList())
}
