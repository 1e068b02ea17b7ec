package types

import (
	"sort"
	"time"
)

// DefaultDateColumn is the header used for the materialized date axis when a
// series is written to a tabular file.
const DefaultDateColumn = "Date"

// Series is a time-ordered sequence of price bars for a single ticker.
// Bars are sorted ascending by timestamp with no duplicate timestamps.
type Series struct {
	Ticker     string
	DateColumn string
	Bars       []Bar
}

// NewSeries creates a Series from the given bars. Bars are sorted ascending by
// timestamp and duplicate timestamps are dropped, keeping the first occurrence.
func NewSeries(ticker string, bars []Bar) *Series {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	deduped := sorted[:0]

	var last time.Time

	for i, bar := range sorted {
		if i > 0 && bar.Timestamp.Equal(last) {
			continue
		}

		deduped = append(deduped, bar)
		last = bar.Timestamp
	}

	return &Series{
		Ticker:     ticker,
		DateColumn: DefaultDateColumn,
		Bars:       deduped,
	}
}

// Len returns the number of bars in the series.
func (s *Series) Len() int {
	return len(s.Bars)
}

// Empty reports whether the series contains no bars.
func (s *Series) Empty() bool {
	return len(s.Bars) == 0
}

// Columns returns the value column headers of the series, excluding the date
// axis.
func (s *Series) Columns() []string {
	return []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}
}
