package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/shopspring/decimal"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// PolygonClient fetches historical aggregates from the Polygon.io REST API.
type PolygonClient struct {
	client *polygon.Client
}

// NewPolygonClient creates a new Polygon provider. An API key is required.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires an API key")
	}

	return &PolygonClient{
		client: polygon.New(apiKey),
	}, nil
}

// History downloads aggregates for the given ticker. Polygon returns adjusted
// prices by default, so AdjClose mirrors Close.
func (c *PolygonClient) History(ctx context.Context, ticker string, period types.Period, interval types.Interval) ([]types.Bar, error) {
	multiplier, timespan, err := polygonAggregate(interval)
	if err != nil {
		return nil, err
	}

	start, end := period.Range(time.Now())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := c.client.ListAggs(ctx, params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		agg := iter.Item()
		closePrice := decimal.NewFromFloat(agg.Close)
		bars = append(bars, types.Bar{
			Timestamp: time.Time(agg.Timestamp).UTC(),
			Open:      decimal.NewFromFloat(agg.Open),
			High:      decimal.NewFromFloat(agg.High),
			Low:       decimal.NewFromFloat(agg.Low),
			Close:     closePrice,
			AdjClose:  closePrice,
			Volume:    int64(agg.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch aggregates for %s", ticker)
	}

	return bars, nil
}

// polygonAggregate converts an interval into the multiplier and timespan pair
// used by the Polygon aggregates endpoint.
func polygonAggregate(interval types.Interval) (int, models.Timespan, error) {
	switch interval {
	case types.IntervalOneMinute:
		return 1, models.Minute, nil
	case types.IntervalTwoMinutes:
		return 2, models.Minute, nil
	case types.IntervalFiveMinutes:
		return 5, models.Minute, nil
	case types.IntervalFifteenMinutes:
		return 15, models.Minute, nil
	case types.IntervalThirtyMinutes:
		return 30, models.Minute, nil
	case types.IntervalSixtyMinutes, types.IntervalOneHour:
		return 1, models.Hour, nil
	case types.IntervalNinetyMinutes:
		return 90, models.Minute, nil
	case types.IntervalOneDay:
		return 1, models.Day, nil
	case types.IntervalFiveDays:
		return 5, models.Day, nil
	case types.IntervalOneWeek:
		return 1, models.Week, nil
	case types.IntervalOneMonth:
		return 1, models.Month, nil
	case types.IntervalThreeMonths:
		return 3, models.Month, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval for polygon: %s", interval)
	}
}
