package exchange

import (
	"context"

	"github.com/banky/go-osl/types"
	"github.com/shopspring/decimal"
)

// MerchantQuoteRequest requests a quote to trade settlementAmount of
// settlementCcy for tradedCcy.
func (e *Exchange) MerchantQuoteRequest(
	ctx context.Context,
	tradedCcy string,
	settlementCcy string,
	settlementAmount decimal.Decimal,
	side string,
	customRef string,
) (any, error) {
	return e.post(ctx, "merchant/quote/new", types.Params{
		"tradedCurrency":           tradedCcy,
		"settlementCurrency":       settlementCcy,
		"settlementCurrencyAmount": settlementAmount,
		"side":                     side,
		"customRef":                customRef,
	}, types.V3)
}

// MerchantTradeRequest executes a previously obtained quote.
func (e *Exchange) MerchantTradeRequest(ctx context.Context, quoteID string) (any, error) {
	return e.post(ctx, "merchant/trade/new", types.Params{
		"quoteId": quoteID,
	}, types.V3)
}

func (e *Exchange) MerchantTradeList(ctx context.Context) (any, error) {
	return e.post(ctx, "merchant/trade/list", nil, types.V3)
}
