package info

import (
	"github.com/banky/go-osl/types"
	"github.com/samber/mo"
)

// TradesOption is a functional option for trade queries
type TradesOption func(*tradesConfig)

type tradesConfig struct {
	since mo.Option[int64]
}

// WithTradesSince only returns trades after the given trade id
func WithTradesSince(since int64) TradesOption {
	return func(cfg *tradesConfig) {
		cfg.since = mo.Some(since)
	}
}

func tradesParams(opts []TradesOption) types.Params {
	cfg := tradesConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	params := types.Params{}
	if since, ok := cfg.since.Get(); ok {
		params["since"] = since
	}
	return params
}
