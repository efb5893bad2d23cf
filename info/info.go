package info

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/internal/utils"
	"github.com/banky/go-osl/rest"
	"github.com/banky/go-osl/types"
	"go.uber.org/zap"
)

// Info provides access to public market data via the REST API
type Info struct {
	rest rest.ClientInterface

	mu       sync.RWMutex
	currency string
}

// Config for initializing the Info client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Currency   string
	Logger     *zap.Logger
	HTTPClient *http.Client
	// Rest shares an existing transport; BaseURL, Timeout, Logger and
	// HTTPClient are ignored when it is set
	Rest rest.ClientInterface
}

// New creates a new Info client
func New(cfg Config) (*Info, error) {
	client := cfg.Rest
	if client == nil {
		client = rest.New(rest.Config{
			BaseUrl:    cfg.BaseURL,
			Timeout:    cfg.Timeout,
			Logger:     cfg.Logger,
			HTTPClient: cfg.HTTPClient,
		})
	}

	currency := cfg.Currency
	if currency == "" {
		currency = constants.DEFAULT_CURRENCY_PAIR
	}

	return &Info{
		rest:     client,
		currency: currency,
	}, nil
}

// SetCurrency changes the currency pair used by subsequent requests.
func (i *Info) SetCurrency(currency string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.currency = currency
}

func (i *Info) Currency() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.currency
}

// ===== Market Data Queries =====

// Ticker retrieves the ticker of the current currency pair.
func (i *Info) Ticker(ctx context.Context) (any, error) {
	return i.get(ctx, i.pairPath("money/ticker"), nil, types.V2)
}

// TickerFast retrieves the lightweight ticker.
func (i *Info) TickerFast(ctx context.Context) (any, error) {
	return i.get(ctx, i.pairPath("money/ticker_fast"), nil, types.V2)
}

// FetchTrades retrieves recent trades.
func (i *Info) FetchTrades(ctx context.Context, opts ...TradesOption) (any, error) {
	return i.get(ctx, i.pairPath("money/trades/fetch"), tradesParams(opts), types.V2)
}

// StreamTrades streams recent trades one at a time. The caller must drain
// or Close the returned stream.
func (i *Info) StreamTrades(ctx context.Context, opts ...TradesOption) *rest.Stream {
	return i.stream(ctx, i.pairPath("money/trades/fetch"), tradesParams(opts), types.V2)
}

// FetchDepth retrieves the partial order book.
func (i *Info) FetchDepth(ctx context.Context) (any, error) {
	return i.get(ctx, i.pairPath("money/depth/fetch"), nil, types.V2)
}

// FullDepth retrieves the full order book.
func (i *Info) FullDepth(ctx context.Context) (any, error) {
	return i.get(ctx, i.pairPath("money/depth/full"), nil, types.V2)
}

// StreamFullDepth streams the members of the full order book's data
// object.
func (i *Info) StreamFullDepth(ctx context.Context) *rest.Stream {
	return i.stream(ctx, i.pairPath("money/depth/full"), nil, types.V2)
}

// CurrencyStatic retrieves static currency and pair settings.
func (i *Info) CurrencyStatic(ctx context.Context) (any, error) {
	return i.get(ctx, "currencyStatic", nil, types.V3)
}

// ===== Plumbing =====

func (i *Info) pairPath(suffix string) string {
	return i.Currency() + "/" + suffix
}

func (i *Info) get(
	ctx context.Context,
	path string,
	params types.Params,
	version types.APIVersion,
) (any, error) {
	req, err := i.request(path, params, version)
	if err != nil {
		return nil, err
	}

	result, err := i.rest.ExecuteBuffered(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}

	return result, nil
}

func (i *Info) stream(
	ctx context.Context,
	path string,
	params types.Params,
	version types.APIVersion,
) *rest.Stream {
	req, err := i.request(path, params, version)
	if err != nil {
		return rest.FailedStream(err)
	}
	return i.rest.ExecuteStreamed(ctx, req)
}

// request builds a public GET with params in the query string.
func (i *Info) request(path string, params types.Params, version types.APIVersion) (*rest.Request, error) {
	query, err := utils.FormEncode(params)
	if err != nil {
		return nil, fmt.Errorf("encode query for %s: %w", path, err)
	}
	if query != "" {
		path = path + "?" + query
	}

	return &rest.Request{
		Method:  http.MethodGet,
		URI:     rest.APIURL(i.rest.BaseUrl(), version, path),
		Headers: rest.DefaultHeaders(),
	}, nil
}
