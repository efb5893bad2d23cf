package exchange

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"
)

// String implements fmt.Stringer for OrderRequest
func (o OrderRequest) String() string {
	replace := ""
	if existing, ok := o.ReplaceExistingOrder.Get(); ok {
		replace = fmt.Sprintf("%s (only if active: %v)", existing, o.ReplaceOnlyIfActive)
	}

	return fmt.Sprintf(
		"OrderRequest{\n"+
			"  Type:               %s\n"+
			"  BuyTradedCurrency:  %v\n"+
			"  TradedCurrency:     %s\n"+
			"  SettlementCurrency: %s\n"+
			"  TradedAmount:       %s\n"+
			"  SettlementAmount:   %s\n"+
			"  LimitPrice:         %s\n"+
			"  Replace:            %s\n"+
			"}",
		o.Type, o.BuyTradedCurrency, o.TradedCurrency, o.SettlementCurrency,
		optionalDecimal(o.TradedCurrencyAmount),
		optionalDecimal(o.SettlementCurrencyAmount),
		optionalDecimal(o.LimitPrice),
		replace,
	)
}

func optionalDecimal(d mo.Option[decimal.Decimal]) string {
	if v, ok := d.Get(); ok {
		return v.String()
	}
	return ""
}
