package provider

import (
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

type BinanceTestSuite struct {
	suite.Suite
}

func TestBinanceSuite(t *testing.T) {
	suite.Run(t, new(BinanceTestSuite))
}

func (suite *BinanceTestSuite) TestIntervalMapping() {
	tests := []struct {
		interval types.Interval
		expected string
	}{
		{types.IntervalOneMinute, "1m"},
		{types.IntervalFiveMinutes, "5m"},
		{types.IntervalFifteenMinutes, "15m"},
		{types.IntervalThirtyMinutes, "30m"},
		{types.IntervalSixtyMinutes, "1h"},
		{types.IntervalOneHour, "1h"},
		{types.IntervalOneDay, "1d"},
		{types.IntervalOneWeek, "1w"},
		{types.IntervalOneMonth, "1M"},
	}

	for _, tc := range tests {
		suite.Run(string(tc.interval), func() {
			result, err := binanceInterval(tc.interval)
			suite.NoError(err)
			suite.Equal(tc.expected, result)
		})
	}
}

func (suite *BinanceTestSuite) TestIntervalMappingUnsupported() {
	for _, interval := range []types.Interval{
		types.IntervalTwoMinutes,
		types.IntervalNinetyMinutes,
		types.IntervalFiveDays,
		types.IntervalThreeMonths,
	} {
		suite.Run(string(interval), func() {
			_, err := binanceInterval(interval)
			suite.Error(err)
			suite.Equal(errors.ErrCodeInvalidInterval, errors.GetCode(err))
		})
	}
}

func (suite *BinanceTestSuite) TestKlineToBar() {
	kline := &binance.Kline{
		OpenTime:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Open:      "42000.50",
		High:      "43100.00",
		Low:       "41550.25",
		Close:     "42800.75",
		Volume:    "1234.567",
		CloseTime: time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC).UnixMilli(),
	}

	bar, err := klineToBar(kline)
	suite.NoError(err)
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bar.Timestamp)
	suite.Equal("42000.5", bar.Open.String())
	suite.Equal("42800.75", bar.Close.String())
	suite.Equal("42800.75", bar.AdjClose.String())
	suite.Equal(int64(1234), bar.Volume)
}

func (suite *BinanceTestSuite) TestKlineToBarMalformed() {
	kline := &binance.Kline{
		OpenTime: time.Now().UnixMilli(),
		Open:     "not-a-number",
		High:     "1",
		Low:      "1",
		Close:    "1",
		Volume:   "1",
	}

	_, err := klineToBar(kline)
	suite.Error(err)
}
