package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar represents a single OHLCV price bar.
type Bar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	AdjClose  decimal.Decimal
	Volume    int64
}
