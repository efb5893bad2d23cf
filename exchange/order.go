package exchange

import (
	"context"

	"github.com/banky/go-osl/types"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderType string

const (
	OrderTypeMarket            OrderType = "MARKET"
	OrderTypeLimit             OrderType = "LIMIT"
	OrderTypeImmediateOrCancel OrderType = "IMMEDIATE_OR_CANCEL"
)

// OrderRequest is a v3 order. BuyTradedCurrency true buys the traded
// currency (e.g. buys BTC when trading BTC against USD).
type OrderRequest struct {
	Type                     OrderType
	BuyTradedCurrency        bool
	TradedCurrency           string
	SettlementCurrency       string
	TradedCurrencyAmount     mo.Option[decimal.Decimal]
	SettlementCurrencyAmount mo.Option[decimal.Decimal]
	LimitPrice               mo.Option[decimal.Decimal]
	ReplaceExistingOrder     mo.Option[uuid.UUID]
	ReplaceOnlyIfActive      bool
}

// NewOrderRequest builds an OrderRequest and applies opts.
func NewOrderRequest(
	orderType OrderType,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	opts ...OrderOption,
) OrderRequest {
	o := OrderRequest{
		Type:               orderType,
		BuyTradedCurrency:  buyTradedCurrency,
		TradedCurrency:     tradedCurrency,
		SettlementCurrency: settlementCurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o OrderRequest) toWire() map[string]any {
	wire := map[string]any{
		"orderType":          string(o.Type),
		"buyTradedCurrency":  o.BuyTradedCurrency,
		"tradedCurrency":     o.TradedCurrency,
		"settlementCurrency": o.SettlementCurrency,
	}

	if o.Type == OrderTypeImmediateOrCancel {
		wire["immediateOrCancel"] = true
	}
	if existing, ok := o.ReplaceExistingOrder.Get(); ok {
		wire["replaceExistingOrderUuid"] = existing.String()
		wire["replaceOnlyIfActive"] = o.ReplaceOnlyIfActive
	}
	if amount, ok := o.TradedCurrencyAmount.Get(); ok {
		wire["tradedCurrencyAmount"] = amount
	}
	if amount, ok := o.SettlementCurrencyAmount.Get(); ok {
		wire["settlementCurrencyAmount"] = amount
	}
	if price, ok := o.LimitPrice.Get(); ok {
		wire["limitPriceInSettlementCurrency"] = price
	}

	return wire
}

// PlaceOrder submits an order.
func (e *Exchange) PlaceOrder(ctx context.Context, order OrderRequest) (any, error) {
	e.logger.Debug("placing order", zap.Stringer("order", order))
	return e.post(ctx, "order/new", types.Params{"order": order.toWire()}, types.V3)
}

// OrderInfo retrieves the status of a single order.
func (e *Exchange) OrderInfo(ctx context.Context, orderID string) (any, error) {
	return e.post(ctx, "order/info", types.Params{"orderId": orderID}, types.V3)
}

// NewMarketOrderFixedTradedAmount places a market order for an exact
// amount of the traded currency.
func (e *Exchange) NewMarketOrderFixedTradedAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	tradedAmount decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeMarket, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithTradedAmount(tradedAmount),
	))
}

// NewMarketOrderFixedSettlementAmount places a market order for an exact
// amount of the settlement currency, e.g. exactly 1000 USD worth of BTC.
func (e *Exchange) NewMarketOrderFixedSettlementAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	settlementAmount decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeMarket, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithSettlementAmount(settlementAmount),
	))
}

func (e *Exchange) NewLimitOrderFixedTradedAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	tradedAmount decimal.Decimal,
	limitPrice decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeLimit, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithTradedAmount(tradedAmount),
		WithLimitPrice(limitPrice),
	))
}

func (e *Exchange) NewLimitOrderFixedSettlementAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	settlementAmount decimal.Decimal,
	limitPrice decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeLimit, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithSettlementAmount(settlementAmount),
		WithLimitPrice(limitPrice),
	))
}

// NewIOCOrderFixedTradedAmount places a limit order that makes a single
// pass through the book and never rests on it.
func (e *Exchange) NewIOCOrderFixedTradedAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	tradedAmount decimal.Decimal,
	limitPrice decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeImmediateOrCancel, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithTradedAmount(tradedAmount),
		WithLimitPrice(limitPrice),
	))
}

func (e *Exchange) NewIOCOrderFixedSettlementAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	settlementAmount decimal.Decimal,
	limitPrice decimal.Decimal,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeImmediateOrCancel, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithSettlementAmount(settlementAmount),
		WithLimitPrice(limitPrice),
	))
}

// ReplaceLimitOrderFixedTradedAmount places a limit order replacing
// existingOrder.
func (e *Exchange) ReplaceLimitOrderFixedTradedAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	tradedAmount decimal.Decimal,
	limitPrice decimal.Decimal,
	existingOrder uuid.UUID,
	replaceOnlyIfActive bool,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeLimit, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithTradedAmount(tradedAmount),
		WithLimitPrice(limitPrice),
		WithReplace(existingOrder, replaceOnlyIfActive),
	))
}

func (e *Exchange) ReplaceLimitOrderFixedSettlementAmount(
	ctx context.Context,
	buyTradedCurrency bool,
	tradedCurrency string,
	settlementCurrency string,
	settlementAmount decimal.Decimal,
	limitPrice decimal.Decimal,
	existingOrder uuid.UUID,
	replaceOnlyIfActive bool,
) (any, error) {
	return e.PlaceOrder(ctx, NewOrderRequest(
		OrderTypeLimit, buyTradedCurrency, tradedCurrency, settlementCurrency,
		WithSettlementAmount(settlementAmount),
		WithLimitPrice(limitPrice),
		WithReplace(existingOrder, replaceOnlyIfActive),
	))
}
