package provider

import (
	"context"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// binancePageSize is the maximum number of klines Binance returns per request.
const binancePageSize = 500

// BinanceClient fetches historical klines from the Binance public API.
// Tickers are crypto symbols such as BTCUSDT; no authentication is needed for
// market data.
type BinanceClient struct {
	client *binance.Client
}

// NewBinanceClient creates a new Binance provider.
func NewBinanceClient() Provider {
	return &BinanceClient{
		client: binance.NewClient("", ""),
	}
}

// History downloads klines for the given symbol, paginating through the
// 500-row response limit. The next page starts one millisecond after the close
// time of the last kline to avoid duplicates.
func (c *BinanceClient) History(ctx context.Context, ticker string, period types.Period, interval types.Interval) ([]types.Bar, error) {
	klineInterval, err := binanceInterval(interval)
	if err != nil {
		return nil, err
	}

	start, end := period.Range(time.Now())
	startMillis := start.UnixMilli()
	endMillis := end.UnixMilli()

	bars := make([]types.Bar, 0)
	currentStart := startMillis

	for {
		klines, err := c.client.NewKlinesService().
			Symbol(ticker).
			Interval(klineInterval).
			StartTime(currentStart).
			EndTime(endMillis).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch klines for %s", ticker)
		}

		for _, kline := range klines {
			bar, err := klineToBar(kline)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeParseFailed, err, "malformed kline for %s", ticker)
			}

			bars = append(bars, bar)
		}

		if len(klines) < binancePageSize {
			break
		}

		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	return bars, nil
}

// klineToBar converts the string-encoded kline fields into a Bar. Fractional
// crypto volume is truncated to whole units.
func klineToBar(kline *binance.Kline) (types.Bar, error) {
	open, err := decimal.NewFromString(kline.Open)
	if err != nil {
		return types.Bar{}, err
	}

	high, err := decimal.NewFromString(kline.High)
	if err != nil {
		return types.Bar{}, err
	}

	low, err := decimal.NewFromString(kline.Low)
	if err != nil {
		return types.Bar{}, err
	}

	closePrice, err := decimal.NewFromString(kline.Close)
	if err != nil {
		return types.Bar{}, err
	}

	volume, err := decimal.NewFromString(kline.Volume)
	if err != nil {
		return types.Bar{}, err
	}

	return types.Bar{
		Timestamp: time.UnixMilli(kline.OpenTime).UTC(),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		AdjClose:  closePrice,
		Volume:    volume.IntPart(),
	}, nil
}

// binanceInterval converts an interval into the kline interval string accepted
// by Binance. Intervals without a Binance equivalent are rejected.
func binanceInterval(interval types.Interval) (string, error) {
	switch interval {
	case types.IntervalOneMinute:
		return "1m", nil
	case types.IntervalFiveMinutes:
		return "5m", nil
	case types.IntervalFifteenMinutes:
		return "15m", nil
	case types.IntervalThirtyMinutes:
		return "30m", nil
	case types.IntervalSixtyMinutes, types.IntervalOneHour:
		return "1h", nil
	case types.IntervalOneDay:
		return "1d", nil
	case types.IntervalOneWeek:
		return "1w", nil
	case types.IntervalOneMonth:
		return "1M", nil
	case types.IntervalTwoMinutes, types.IntervalNinetyMinutes, types.IntervalFiveDays, types.IntervalThreeMonths:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for binance: %s", interval)
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for binance: %s", interval)
	}
}
