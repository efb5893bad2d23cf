package exchange

import (
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

/*//////////////////////////////////////////////////////////////
                             ORDER
//////////////////////////////////////////////////////////////*/

// OrderOption is a functional option for building an OrderRequest
type OrderOption func(*OrderRequest)

// WithTradedAmount fixes the amount of the traded currency
func WithTradedAmount(amount decimal.Decimal) OrderOption {
	return func(o *OrderRequest) {
		o.TradedCurrencyAmount = mo.Some(amount)
	}
}

// WithSettlementAmount fixes the amount of the settlement currency
func WithSettlementAmount(amount decimal.Decimal) OrderOption {
	return func(o *OrderRequest) {
		o.SettlementCurrencyAmount = mo.Some(amount)
	}
}

// WithLimitPrice sets the limit price in settlement currency
func WithLimitPrice(price decimal.Decimal) OrderOption {
	return func(o *OrderRequest) {
		o.LimitPrice = mo.Some(price)
	}
}

// WithReplace makes the order replace an existing one. With onlyIfActive
// the new order is only placed while the existing order is still active.
func WithReplace(existing uuid.UUID, onlyIfActive bool) OrderOption {
	return func(o *OrderRequest) {
		o.ReplaceExistingOrder = mo.Some(existing)
		o.ReplaceOnlyIfActive = onlyIfActive
	}
}

/*//////////////////////////////////////////////////////////////
                            HISTORY
//////////////////////////////////////////////////////////////*/

// HistoryOption is a functional option for wallet history queries
type HistoryOption func(*historyConfig)

type historyConfig struct {
	page mo.Option[int]
}

// WithHistoryPage requests a specific page
func WithHistoryPage(page int) HistoryOption {
	return func(cfg *historyConfig) {
		cfg.page = mo.Some(page)
	}
}
