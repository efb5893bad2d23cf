package exchange

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/banky/go-osl/rest"
	"github.com/banky/go-osl/tonce"
	"github.com/banky/go-osl/types"
	"github.com/google/uuid"
	json "github.com/goccy/go-json"
	"github.com/maxatome/go-testdeep/helpers/tdsuite"
	"github.com/maxatome/go-testdeep/td"
	"github.com/shopspring/decimal"
)

// fixedTime is the clock every test tonce is derived from.
var fixedTime = time.UnixMilli(1700000000000)

type capturedRequest struct {
	Method        string
	Path          string
	Body          string
	ContentLength int64
	Header        http.Header
}

// ExchangeSuite runs the authenticated client against a local server that
// records every request and replies with the queued responses.
type ExchangeSuite struct {
	server   *httptest.Server
	exchange *Exchange

	mu        sync.Mutex
	requests  []capturedRequest
	responses []string
}

func (s *ExchangeSuite) Setup(t *td.T) error {
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return nil
}

func (s *ExchangeSuite) Destroy(t *td.T) error {
	s.server.Close()
	return nil
}

// PreTest gives every test a fresh client and an empty recording.
func (s *ExchangeSuite) PreTest(t *td.T, testName string) error {
	s.mu.Lock()
	s.requests = nil
	s.responses = nil
	s.mu.Unlock()

	e, err := New(Config{
		BaseURL:   s.server.URL,
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
		Tonce:     tonce.New(func() time.Time { return fixedTime }),
	})
	if err != nil {
		return err
	}
	s.exchange = e
	return nil
}

func (s *ExchangeSuite) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, capturedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Body:          string(body),
		ContentLength: r.ContentLength,
		Header:        r.Header.Clone(),
	})
	response := `{"result":"success","data":{}}`
	if len(s.responses) > 0 {
		response = s.responses[0]
		s.responses = s.responses[1:]
	}
	s.mu.Unlock()

	w.Write([]byte(response))
}

func (s *ExchangeSuite) reply(responses ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, responses...)
}

func (s *ExchangeSuite) recorded() []capturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capturedRequest(nil), s.requests...)
}

func TestExchangeSuite(t *testing.T) {
	tdsuite.Run(t, &ExchangeSuite{})
}

func (s *ExchangeSuite) TestAccountInfoSignedV2(assert, require *td.T) {
	s.reply(`{"result":"success","data":{"Login":"user"}}`)

	result, err := s.exchange.AccountInfo(context.Background())
	require.CmpNoError(err)
	assert.Cmp(result, map[string]any{
		"result": "success",
		"data":   map[string]any{"Login": "user"},
	})

	reqs := s.recorded()
	require.Len(reqs, 1)
	req := reqs[0]
	assert.Cmp(req.Method, http.MethodPost)
	assert.Cmp(req.Path, "/api/2/BTCUSD/money/info")
	assert.Cmp(req.Body, "tonce=1700000000000000")
	assert.Cmp(req.ContentLength, int64(len(req.Body)))
	assert.Cmp(req.Header.Get("Rest-Key"), testAPIKey)
	assert.Cmp(req.Header.Get("Rest-Sign"),
		"RLKEI8ER0IvaCjVfpGN6vYp9BlI25RMxIvHSlMZyfE7dy59DxBJ9xU7yTD1Er3kWfwJnLSWkonxnlduYhladhw==")
	assert.Cmp(req.Header.Get("User-Agent"), "Mozilla/4.0 (compatible; OSL node.js client)")
	assert.Cmp(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func (s *ExchangeSuite) TestDataTokenSignedV3(assert, require *td.T) {
	s.reply(`{"resultCode":"OK","token":"tok"}`)

	result, err := s.exchange.DataToken(context.Background())
	require.CmpNoError(err)
	assert.CmpNoError(CheckResultCode("fetching data token", result))

	reqs := s.recorded()
	require.Len(reqs, 1)
	req := reqs[0]
	assert.Cmp(req.Path, "/api/3/dataToken")
	assert.Cmp(req.Body, `{"tonce":1700000000000000}`)
	assert.Cmp(req.Header.Get("Rest-Sign"),
		"Og0iV3v8RYkxgljLZhID7dIdnZwbIuJ5k4BmmcCvMznpHetJahY4do49H0oTcnDpmWfHxstakZHQj3WTpl6n+A==")
	// v3 keeps the form content type
	assert.Cmp(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func (s *ExchangeSuite) TestTonceIncreasesAcrossRequests(assert, require *td.T) {
	ctx := context.Background()
	for range 3 {
		_, err := s.exchange.Orders(ctx)
		require.CmpNoError(err)
	}

	var bodies []string
	for _, req := range s.recorded() {
		bodies = append(bodies, req.Body)
	}
	assert.Cmp(bodies, []string{
		"tonce=1700000000000000",
		"tonce=1700000000000001",
		"tonce=1700000000000002",
	})
}

func (s *ExchangeSuite) TestContentLengthCountsBytes(assert, require *td.T) {
	_, err := s.exchange.Send(context.Background(), "BTC", "addr", decimal.RequireFromString("0.1"), "€€")
	require.CmpNoError(err)

	req := s.recorded()[0]
	assert.Cmp(req.ContentLength, int64(len(req.Body)))
	assert.Cmp(len(req.Body), td.Gt(len([]rune(req.Body))))
}

func (s *ExchangeSuite) TestCallerParamsNotMutated(assert, require *td.T) {
	params := types.Params{"oid": "o-1"}

	_, err := s.exchange.Do(context.Background(), NewRequest("BTCUSD/money/order/cancel", params, types.V2))
	require.CmpNoError(err)

	assert.Cmp(params, types.Params{"oid": "o-1"})
	assert.Cmp(s.recorded()[0].Body, "oid=o-1&tonce=1700000000000000")
}

func (s *ExchangeSuite) TestV2Endpoints(assert, require *td.T) {
	ctx := context.Background()
	from := time.UnixMilli(1690000000000)
	to := time.UnixMilli(1700000000000)

	_, err := s.exchange.Quote(ctx, "bid", decimal.RequireFromString("2.5"))
	require.CmpNoError(err)
	_, err = s.exchange.Cancel(ctx, "oid-7")
	require.CmpNoError(err)
	_, err = s.exchange.Result(ctx, "ask", "order-9")
	require.CmpNoError(err)
	_, err = s.exchange.History(ctx, "BTC", from, to, WithHistoryPage(2))
	require.CmpNoError(err)

	reqs := s.recorded()
	require.Len(reqs, 4)
	assert.Cmp(reqs[0].Path, "/api/2/BTCUSD/money/order/quote")
	assert.Cmp(reqs[0].Body, "amount=2.5&tonce=1700000000000000&type=bid")
	assert.Cmp(reqs[1].Path, "/api/2/BTCUSD/money/order/cancel")
	assert.Cmp(reqs[1].Body, "oid=oid-7&tonce=1700000000000001")
	assert.Cmp(reqs[2].Path, "/api/2/BTCUSD/money/order/result")
	assert.Cmp(reqs[2].Body, "order=order-9&tonce=1700000000000002&type=ask")
	assert.Cmp(reqs[3].Path, "/api/2/money/wallet/history")
	assert.Cmp(reqs[3].Body,
		"currency=BTC&from=1690000000000&page=2&to=1700000000000&tonce=1700000000000003")
}

func (s *ExchangeSuite) TestV3Endpoints(assert, require *td.T) {
	ctx := context.Background()

	_, err := s.exchange.MerchantQuoteRequest(ctx, "BTC", "USD", decimal.RequireFromString("1000"), "BUY", "ref")
	require.CmpNoError(err)
	_, err = s.exchange.MerchantTradeRequest(ctx, "q-1")
	require.CmpNoError(err)
	_, err = s.exchange.MerchantTradeList(ctx)
	require.CmpNoError(err)
	_, err = s.exchange.CreateSubAccount(ctx, "BTC", "sub-ref")
	require.CmpNoError(err)
	_, err = s.exchange.AccountAddress(ctx, "BTC", "sub-1")
	require.CmpNoError(err)
	_, err = s.exchange.NewAccountAddress(ctx, "BTC", "sub-1")
	require.CmpNoError(err)
	_, err = s.exchange.TradeHistory(ctx, 50, 100)
	require.CmpNoError(err)
	_, err = s.exchange.OrderInfo(ctx, "order-1")
	require.CmpNoError(err)

	var paths []string
	for _, req := range s.recorded() {
		paths = append(paths, req.Path)
	}
	assert.Cmp(paths, []string{
		"/api/3/merchant/quote/new",
		"/api/3/merchant/trade/new",
		"/api/3/merchant/trade/list",
		"/api/3/subaccount/new",
		"/api/3/receive",
		"/api/3/receive/create",
		"/api/3/trade/list",
		"/api/3/order/info",
	})

	reqs := s.recorded()
	assert.Cmp(reqs[0].Body,
		`{"customRef":"ref","settlementCurrency":"USD","settlementCurrencyAmount":"1000","side":"BUY","tonce":1700000000000000,"tradedCurrency":"BTC"}`)
	assert.Cmp(reqs[6].Body, `{"max":50,"offset":100,"tonce":1700000000000006}`)
}

func (s *ExchangeSuite) TestPlaceOrderNestsOrder(assert, require *td.T) {
	_, err := s.exchange.NewLimitOrderFixedTradedAmount(
		context.Background(), true, "BTC", "USD",
		decimal.RequireFromString("0.5"), decimal.RequireFromString("30000"),
	)
	require.CmpNoError(err)

	req := s.recorded()[0]
	assert.Cmp(req.Path, "/api/3/order/new")

	var body map[string]any
	require.CmpNoError(json.Unmarshal([]byte(req.Body), &body))
	assert.Cmp(body, map[string]any{
		"tonce": float64(1700000000000000),
		"order": map[string]any{
			"orderType":                      "LIMIT",
			"buyTradedCurrency":              true,
			"tradedCurrency":                 "BTC",
			"settlementCurrency":             "USD",
			"tradedCurrencyAmount":           "0.5",
			"limitPriceInSettlementCurrency": "30000",
		},
	})
}

func (s *ExchangeSuite) TestReplaceOrderCarriesLimitPrice(assert, require *td.T) {
	existing := uuid.MustParse("6f1a2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d")

	_, err := s.exchange.ReplaceLimitOrderFixedTradedAmount(
		context.Background(), false, "BTC", "USD",
		decimal.RequireFromString("0.25"), decimal.RequireFromString("31000.5"),
		existing, true,
	)
	require.CmpNoError(err)

	var body struct {
		Order map[string]any `json:"order"`
	}
	require.CmpNoError(json.Unmarshal([]byte(s.recorded()[0].Body), &body))
	assert.Cmp(body.Order, td.SuperMapOf(map[string]any{
		"orderType":                      "LIMIT",
		"limitPriceInSettlementCurrency": "31000.5",
		"tradedCurrencyAmount":           "0.25",
		"replaceExistingOrderUuid":       existing.String(),
		"replaceOnlyIfActive":            true,
	}, nil))
}

func (s *ExchangeSuite) TestDepositAddress(assert, require *td.T) {
	s.reply(
		`{"result":"success","data":{"Link":"acc-77"}}`,
		`{"result":"success","data":{"addr":"1BoatSLRHtKNngkdXEeobR76b53LETtpyT"}}`,
	)

	result, err := s.exchange.DepositAddress(context.Background())
	require.CmpNoError(err)
	assert.Cmp(result, td.SuperMapOf(map[string]any{"result": "success"}, nil))

	reqs := s.recorded()
	require.Len(reqs, 2)
	assert.Cmp(reqs[1].Path, "/api/2/BTCUSD/money/bitcoin/get_address")
	assert.Cmp(reqs[1].Body, "account=acc-77&tonce=1700000000000001")
}

func (s *ExchangeSuite) TestDepositAddressRemoteError(assert, require *td.T) {
	s.reply(`{"result":"error","error":"Identity required"}`)

	_, err := s.exchange.DepositAddress(context.Background())

	var remoteErr *RemoteLogicalError
	require.True(errors.As(err, &remoteErr))
	assert.Cmp(remoteErr.Result, "error")
	assert.Len(s.recorded(), 1)
}

func (s *ExchangeSuite) TestSetCurrency(assert, require *td.T) {
	s.exchange.SetCurrency("ETHUSD")
	assert.Cmp(s.exchange.Currency(), "ETHUSD")
	assert.Cmp(s.exchange.Info().Currency(), "ETHUSD")

	_, err := s.exchange.Orders(context.Background())
	require.CmpNoError(err)
	assert.Cmp(s.recorded()[0].Path, "/api/2/ETHUSD/money/orders")
}

func (s *ExchangeSuite) TestInfoSharesServer(assert, require *td.T) {
	s.reply(`{"result":"success","data":{"last":{"value":"30000"}}}`)

	_, err := s.exchange.Info().Ticker(context.Background())
	require.CmpNoError(err)

	req := s.recorded()[0]
	assert.Cmp(req.Method, http.MethodGet)
	assert.Cmp(req.Path, "/api/2/BTCUSD/money/ticker")
	assert.Empty(req.Header.Get("Rest-Key"))
}

func (s *ExchangeSuite) TestEncodingErrorBeforeIO(assert, require *td.T) {
	_, err := s.exchange.Do(context.Background(),
		NewRequest("BTCUSD/money/info", types.Params{"bad": map[string]any{}}, types.V2))

	var encErr *EncodingError
	require.True(errors.As(err, &encErr))
	assert.Cmp(encErr.Path, "BTCUSD/money/info")
	assert.Len(s.recorded(), 0)
}

func (s *ExchangeSuite) TestStatusErrorIsWrapped(assert, require *td.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"result":"error"}`))
	}))
	defer failing.Close()

	e, err := New(Config{BaseURL: failing.URL, APIKey: testAPIKey, APISecret: testAPISecret})
	require.CmpNoError(err)

	_, err = e.Orders(context.Background())

	var statusErr *rest.HTTPStatusError
	require.True(errors.As(err, &statusErr))
	assert.Cmp(statusErr.StatusCode, http.StatusForbidden)
	assert.Cmp(err.Error(), td.HasPrefix("failed to post to BTCUSD/money/orders: "))
}

func TestMissingCredentialsNoIO(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	e, err := New(Config{BaseURL: server.URL, APIKey: testAPIKey})
	td.Require(t).CmpNoError(err)

	_, err = e.AccountInfo(context.Background())
	var cfgErr *ConfigurationError
	td.Require(t).True(errors.As(err, &cfgErr))

	_, err = e.DataToken(context.Background())
	td.Cmp(t, errors.As(err, &cfgErr), true)
	td.Cmp(t, hits, 0)
}

func TestNewInvalidBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "::not a url"})
	td.CmpError(t, err)
	td.Cmp(t, err.Error(), td.HasPrefix("invalid base url: "))
}

func TestNewDefaults(t *testing.T) {
	e, err := New(Config{})
	td.Require(t).CmpNoError(err)
	td.Cmp(t, e.Currency(), "BTCUSD")
	td.Cmp(t, e.rest.BaseUrl(), "https://trade.osl.com")
}
