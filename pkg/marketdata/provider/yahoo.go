package provider

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// YahooClient fetches historical chart data from the Yahoo Finance chart API.
// It is the default provider and requires no authentication.
type YahooClient struct{}

// NewYahooClient creates a new Yahoo Finance provider.
func NewYahooClient() Provider {
	return &YahooClient{}
}

// History downloads the chart bars for the given ticker. The period is
// converted to an absolute start/end range ending now; the interval values map
// one to one onto the chart API's interval strings.
func (c *YahooClient) History(ctx context.Context, ticker string, period types.Period, interval types.Interval) ([]types.Bar, error) {
	start, end := period.Range(time.Now())

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	}
	params.Context = &ctx

	iter := chart.Get(params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "download cancelled for %s", ticker)
		}

		b := iter.Bar()
		bars = append(bars, types.Bar{
			Timestamp: time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			AdjClose:  b.AdjClose,
			Volume:    int64(b.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch chart data for %s", ticker)
	}

	return bars, nil
}
