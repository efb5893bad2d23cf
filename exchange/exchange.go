package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/info"
	"github.com/banky/go-osl/rest"
	"github.com/banky/go-osl/tonce"
	"github.com/banky/go-osl/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config for initializing the Exchange client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	APIKey    string
	APISecret string
	// Currency is the default currency pair, BTCUSD when empty
	Currency string
	// Tonce overrides the tonce source, mainly so tests can control time
	Tonce      *tonce.Generator
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// Exchange provides access to authenticated operations via REST API
type Exchange struct {
	rest      rest.ClientInterface
	info      *info.Info
	tonce     *tonce.Generator
	apiKey    string
	apiSecret string
	logger    *zap.Logger

	mu       sync.RWMutex
	currency string
}

// New creates a new Exchange client. Missing credentials are not an error
// here; authenticated calls fail with a ConfigurationError instead.
func New(cfg Config) (*Exchange, error) {
	if cfg.BaseURL != "" {
		if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	currency := cfg.Currency
	if currency == "" {
		currency = constants.DEFAULT_CURRENCY_PAIR
	}

	generator := cfg.Tonce
	if generator == nil {
		generator = tonce.New(nil)
	}

	restClient := rest.New(rest.Config{
		BaseUrl:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Logger:     logger,
		HTTPClient: cfg.HTTPClient,
	})

	infoClient, err := info.New(info.Config{
		Rest:     restClient,
		Currency: currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create info client: %w", err)
	}

	return &Exchange{
		rest:      restClient,
		info:      infoClient,
		tonce:     generator,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		logger:    logger,
		currency:  currency,
	}, nil
}

// Info returns the public market data client sharing this Exchange's
// transport and currency pair.
func (e *Exchange) Info() *info.Info {
	return e.info
}

// SetCurrency changes the default currency pair for subsequently issued
// requests.
func (e *Exchange) SetCurrency(currency string) {
	e.mu.Lock()
	e.currency = currency
	e.mu.Unlock()

	if e.info != nil {
		e.info.SetCurrency(currency)
	}
}

// Currency returns the default currency pair.
func (e *Exchange) Currency() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currency
}

// Do signs and executes req, returning the decoded JSON response.
func (e *Exchange) Do(ctx context.Context, req Request) (any, error) {
	signed, err := e.signRequest(req)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("signed request",
		zap.String("path", req.Path),
		zap.Stringer("version", req.Version),
	)

	result, err := e.rest.ExecuteBuffered(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to post to %s: %w", req.Path, err)
	}

	return result, nil
}

func (e *Exchange) post(
	ctx context.Context,
	path string,
	params types.Params,
	version types.APIVersion,
) (any, error) {
	return e.Do(ctx, NewRequest(path, params, version))
}

func (e *Exchange) pairPath(suffix string) string {
	return e.Currency() + "/" + suffix
}

/*//////////////////////////////////////////////////////////////
                          MONEY (v2)
//////////////////////////////////////////////////////////////*/

// AccountInfo retrieves account information for the current currency pair.
func (e *Exchange) AccountInfo(ctx context.Context) (any, error) {
	return e.post(ctx, e.pairPath("money/info"), nil, types.V2)
}

// Orders retrieves the open orders.
func (e *Exchange) Orders(ctx context.Context) (any, error) {
	return e.post(ctx, e.pairPath("money/orders"), nil, types.V2)
}

// Quote asks for a quote of the given type ("bid" or "ask") and amount.
func (e *Exchange) Quote(
	ctx context.Context,
	orderType string,
	amount decimal.Decimal,
) (any, error) {
	return e.post(ctx, e.pairPath("money/order/quote"), types.Params{
		"type":   orderType,
		"amount": amount,
	}, types.V2)
}

// Cancel cancels an order by id.
func (e *Exchange) Cancel(ctx context.Context, oid string) (any, error) {
	return e.post(ctx, e.pairPath("money/order/cancel"), types.Params{
		"oid": oid,
	}, types.V2)
}

// Result retrieves the result of an order.
func (e *Exchange) Result(ctx context.Context, orderType string, order string) (any, error) {
	return e.post(ctx, e.pairPath("money/order/result"), types.Params{
		"type":  orderType,
		"order": order,
	}, types.V2)
}

// History retrieves wallet history for currency between from and to.
func (e *Exchange) History(
	ctx context.Context,
	currency string,
	from time.Time,
	to time.Time,
	opts ...HistoryOption,
) (any, error) {
	cfg := historyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	params := types.Params{
		"currency": currency,
		"from":     from.UnixMilli(),
		"to":       to.UnixMilli(),
	}
	if page, ok := cfg.page.Get(); ok {
		params["page"] = page
	}

	return e.post(ctx, "money/wallet/history", params, types.V2)
}

// DepositAddress looks up the account number via AccountInfo and then
// retrieves its bitcoin deposit address.
func (e *Exchange) DepositAddress(ctx context.Context) (any, error) {
	accountInfo, err := e.AccountInfo(ctx)
	if err != nil {
		return nil, err
	}

	account, err := accountLink(accountInfo)
	if err != nil {
		return nil, err
	}

	return e.post(ctx, e.pairPath("money/bitcoin/get_address"), types.Params{
		"account": account,
	}, types.V2)
}
