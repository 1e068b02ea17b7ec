package provider

import (
	"context"

	"github.com/vola-lab/histdata/internal/types"
	"github.com/vola-lab/histdata/pkg/errors"
)

// Type identifies a market data provider backend.
type Type string

const (
	TypeYahoo   Type = "yahoo"
	TypePolygon Type = "polygon"
	TypeBinance Type = "binance"
)

// Provider fetches a historical price series from a remote market data API.
type Provider interface {
	// History downloads bars for the given ticker over the period at the given
	// interval. A successful call with zero rows returns an empty slice, not an
	// error; callers decide how to treat empty results.
	History(ctx context.Context, ticker string, period types.Period, interval types.Interval) ([]types.Bar, error)
}

// New creates a provider of the given type. Polygon requires an API key string
// as config; the other providers ignore config.
func New(providerType Type, config any) (Provider, error) {
	switch providerType {
	case TypeYahoo:
		return NewYahooClient(), nil
	case TypePolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	case TypeBinance:
		return NewBinanceClient(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
