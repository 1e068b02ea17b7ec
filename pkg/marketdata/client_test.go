package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"github.com/vola-lab/histdata/internal/logger"
	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
	"github.com/vola-lab/histdata/pkg/marketdata/provider"
	"github.com/vola-lab/histdata/pkg/marketdata/store"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

// stubProvider serves canned bars or errors per ticker.
type stubProvider struct {
	bars map[string][]types.Bar
	errs map[string]error
}

func (s *stubProvider) History(ctx context.Context, ticker string, period types.Period, interval types.Interval) ([]types.Bar, error) {
	if err, ok := s.errs[ticker]; ok {
		return nil, err
	}

	return s.bars[ticker], nil
}

func stubBars(rows int) []types.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, 0, rows)

	for i := 0; i < rows; i++ {
		price := decimal.NewFromFloat(185.25).Add(decimal.NewFromInt(int64(i)))
		bars = append(bars, types.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      price,
			High:      price.Add(decimal.NewFromInt(2)),
			Low:       price.Sub(decimal.NewFromInt(2)),
			Close:     price,
			AdjClose:  price,
			Volume:    int64(50000 + i),
		})
	}

	return bars
}

func (suite *ClientTestSuite) newClient(p provider.Provider, outputDir string, log *logger.DownloadLogger) *Client {
	client, err := NewClientWithProvider(ClientConfig{
		Provider:  provider.TypeYahoo,
		Format:    FormatCSV,
		OutputDir: outputDir,
	}, p, log)
	suite.Require().NoError(err)

	return client
}

func (suite *ClientTestSuite) TestFetchOnePersistsAllRows() {
	outputDir := suite.T().TempDir()
	logDir := suite.T().TempDir()

	base, err := logger.NewLogger(logger.Options{Name: "download_logger", LogDir: logDir, DisableColors: true})
	suite.Require().NoError(err)

	log := &logger.DownloadLogger{Logger: base}
	defer log.Close()

	p := &stubProvider{bars: map[string][]types.Bar{"AAPL": stubBars(21)}}
	client := suite.newClient(p, outputDir, log)

	series, err := client.FetchOne(context.Background(), "AAPL", types.PeriodOneMonth, types.IntervalOneDay, optional.None[string]())
	suite.NoError(err)
	suite.Equal(21, series.Len())

	files, err := os.ReadDir(outputDir)
	suite.NoError(err)
	suite.Len(files, 1)

	meta, err := store.FileInfo(filepath.Join(outputDir, files[0].Name()))
	suite.NoError(err)
	suite.Equal(series.Len(), meta.Rows)
	suite.Equal("Date", meta.ColumnNames[0])
	suite.Contains(meta.ColumnNames, "Open")
	suite.Contains(meta.ColumnNames, "Close")

	log.Close()

	logPath := filepath.Join(logDir, fmt.Sprintf("download_logger_%s.log", time.Now().Format("20060102")))
	content, err := os.ReadFile(logPath)
	suite.Require().NoError(err)
	suite.Contains(string(content), "AAPL")
	suite.Contains(string(content), "21")
}

func (suite *ClientTestSuite) TestFetchOneCustomFilename() {
	outputDir := suite.T().TempDir()

	p := &stubProvider{bars: map[string][]types.Bar{"AAPL": stubBars(3)}}
	client := suite.newClient(p, outputDir, nil)

	_, err := client.FetchOne(context.Background(), "AAPL", types.PeriodOneMonth, types.IntervalOneDay, optional.Some("snapshot"))
	suite.NoError(err)

	_, err = os.Stat(filepath.Join(outputDir, "snapshot.csv"))
	suite.NoError(err)
}

func (suite *ClientTestSuite) TestFetchOneEmptyResult() {
	p := &stubProvider{bars: map[string][]types.Bar{}}
	client := suite.newClient(p, suite.T().TempDir(), nil)

	_, err := client.FetchOne(context.Background(), "NODATA", types.PeriodOneMonth, types.IntervalOneDay, optional.None[string]())
	suite.Error(err)
	suite.Equal(errors.ErrCodeNoData, errors.GetCode(err))
	suite.True(errors.IsNoDataError(err))
}

func (suite *ClientTestSuite) TestFetchOneEmptyTicker() {
	p := &stubProvider{}
	client := suite.newClient(p, suite.T().TempDir(), nil)

	_, err := client.FetchOne(context.Background(), "", types.PeriodOneMonth, types.IntervalOneDay, optional.None[string]())
	suite.Error(err)
	suite.Equal(errors.ErrCodeMissingParameter, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestFetchManyPartialFailure() {
	outputDir := suite.T().TempDir()

	p := &stubProvider{
		bars: map[string][]types.Bar{
			"^GSPC": stubBars(10),
			"^DJI":  stubBars(8),
		},
		errs: map[string]error{
			"^BROKEN": errors.New(errors.ErrCodeFetchFailed, "connection refused"),
		},
	}
	client := suite.newClient(p, outputDir, nil)

	tickers := []string{"^GSPC", "^BROKEN", "^EMPTY", "^DJI"}

	var results *types.ResultSet

	suite.NotPanics(func() {
		results = client.FetchMany(context.Background(), tickers, types.PeriodOneYear, types.IntervalOneDay, BatchOptions{})
	})

	suite.Equal(2, results.Len())
	suite.Equal([]string{"^GSPC", "^DJI"}, results.Tickers())
}

func (suite *ClientTestSuite) TestFetchManyCombinedWorkbook() {
	outputDir := suite.T().TempDir()

	p := &stubProvider{
		bars: map[string][]types.Bar{
			"^GSPC": stubBars(5),
			"^VIX":  stubBars(5),
		},
	}
	client := suite.newClient(p, outputDir, nil)

	results := client.FetchMany(context.Background(), []string{"^GSPC", "^VIX"}, types.PeriodMax, types.IntervalOneDay, BatchOptions{
		CombinedWorkbook: true,
	})
	suite.Equal(2, results.Len())

	workbookPath := filepath.Join(outputDir, "combined_stocks_max.xlsx")
	f, err := excelize.OpenFile(workbookPath)
	suite.Require().NoError(err)

	defer f.Close()

	suite.Equal([]string{"^GSPC", "^VIX"}, f.GetSheetList())
}

func (suite *ClientTestSuite) TestFetchManyNoSuccessesSkipsWorkbook() {
	outputDir := suite.T().TempDir()

	p := &stubProvider{}
	client := suite.newClient(p, outputDir, nil)

	results := client.FetchMany(context.Background(), []string{"^EMPTY"}, types.PeriodMax, types.IntervalOneDay, BatchOptions{
		CombinedWorkbook: true,
	})
	suite.Equal(0, results.Len())

	files, err := os.ReadDir(outputDir)
	if err == nil {
		for _, file := range files {
			suite.False(strings.HasSuffix(file.Name(), ".xlsx"))
		}
	}
}

func (suite *ClientTestSuite) TestNewClientWithProviderInvalidConfig() {
	_, err := NewClientWithProvider(ClientConfig{
		Provider: provider.TypeYahoo,
		Format:   FormatCSV,
		// OutputDir missing
	}, &stubProvider{}, nil)
	suite.Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestNewClientUnsupportedProvider() {
	_, err := NewClient(ClientConfig{
		Provider:  provider.Type("alpaca"),
		Format:    FormatCSV,
		OutputDir: suite.T().TempDir(),
	}, nil)
	suite.Error(err)
}
