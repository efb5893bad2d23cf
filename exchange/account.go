package exchange

import (
	"context"

	"github.com/banky/go-osl/types"
	"github.com/shopspring/decimal"
)

// Send withdraws amount of ccy to address. otp is the one time password
// when the account requires one.
func (e *Exchange) Send(
	ctx context.Context,
	ccy string,
	address string,
	amount decimal.Decimal,
	otp string,
) (any, error) {
	return e.post(ctx, "send", types.Params{
		"address": address,
		"ccy":     ccy,
		"amount":  amount,
		"otp":     otp,
	}, types.V3)
}

// DataToken retrieves a token for the streaming data service.
func (e *Exchange) DataToken(ctx context.Context) (any, error) {
	return e.post(ctx, "dataToken", nil, types.V3)
}

func (e *Exchange) CreateSubAccount(ctx context.Context, ccy string, customRef string) (any, error) {
	return e.post(ctx, "subaccount/new", types.Params{
		"ccy":       ccy,
		"customRef": customRef,
	}, types.V3)
}

// AccountAddress retrieves the current receive address of a sub account.
func (e *Exchange) AccountAddress(ctx context.Context, ccy string, subAccount string) (any, error) {
	return e.post(ctx, "receive", types.Params{
		"ccy":        ccy,
		"subAccount": subAccount,
	}, types.V3)
}

// NewAccountAddress creates a fresh receive address for a sub account.
func (e *Exchange) NewAccountAddress(ctx context.Context, ccy string, subAccount string) (any, error) {
	return e.post(ctx, "receive/create", types.Params{
		"ccy":        ccy,
		"subAccount": subAccount,
	}, types.V3)
}

func (e *Exchange) TradeHistory(ctx context.Context, max int, offset int) (any, error) {
	return e.post(ctx, "trade/list", types.Params{
		"max":    max,
		"offset": offset,
	}, types.V3)
}
