// Package rest performs the HTTP exchanges behind OSL API calls and
// classifies their outcome.
package rest

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/types"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

type Client struct {
	baseUrl string
	timeout mo.Option[time.Duration]
	http    *resty.Client
	logger  *zap.Logger
}

// ClientInterface defines the contract for executing prepared requests
type ClientInterface interface {
	BaseUrl() string
	ExecuteBuffered(ctx context.Context, req *Request) (any, error)
	ExecuteStreamed(ctx context.Context, req *Request) *Stream
}

var _ ClientInterface = (*Client)(nil)

type Config struct {
	// BaseUrl is the base URL for the OSL API
	// If none is provided, the mainnet url will be used
	BaseUrl string
	// Timeout is the timeout for network requests
	// If none is provided, no timeout will be enforced
	Timeout time.Duration
	// Logger receives request level diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// HTTPClient replaces the default transport
	HTTPClient *http.Client
}

// Request is a fully prepared HTTP request. It is read-only once built and
// must not be executed twice.
type Request struct {
	Method  string
	URI     string
	Body    []byte
	Headers map[string]string
}

// New creates a new client instance with the
// provided configuration.
func New(c Config) *Client {
	var baseUrl string = c.BaseUrl
	var timeout mo.Option[time.Duration]

	if c.BaseUrl == "" {
		baseUrl = constants.MAINNET_API_URL
	}
	if c.Timeout != 0 {
		timeout = mo.Some(c.Timeout)
	}

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := resty.New()
	if c.HTTPClient != nil {
		r = resty.NewWithClient(c.HTTPClient)
	}
	r.SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		baseUrl: baseUrl,
		timeout: timeout,
		http:    r,
		logger:  logger,
	}
}

// BaseUrl returns the server root requests are issued against.
func (c *Client) BaseUrl() string {
	return c.baseUrl
}

// ExecuteBuffered performs one HTTP exchange, reads the whole body and
// decodes it as generic JSON.
func (c *Client) ExecuteBuffered(ctx context.Context, req *Request) (any, error) {
	if timeout, ok := c.timeout.Get(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c.logger.Debug("executing request",
		zap.String("method", req.Method),
		zap.String("uri", req.URI),
		zap.Int("body_bytes", len(req.Body)),
	)

	resp, err := c.newRequest(ctx, req).Execute(req.Method, req.URI)
	if err != nil {
		c.logger.Warn("request failed", zap.String("uri", req.URI), zap.Error(err))
		return nil, &TransportError{Method: req.Method, URI: req.URI, Err: err}
	}

	if err := handleException(resp); err != nil {
		c.logger.Warn("request rejected",
			zap.String("uri", req.URI),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, err
	}

	result, err := decodeBody(resp.Body())
	if err != nil {
		c.logger.Warn("malformed response", zap.String("uri", req.URI), zap.Error(err))
		return nil, err
	}

	return result, nil
}

// ExecuteStreamed returns a Stream over the elements of the response's
// top level "data" field. The exchange is started by the first call to
// Stream.Next; failures surface through Stream.Err.
func (c *Client) ExecuteStreamed(ctx context.Context, req *Request) *Stream {
	var cancel context.CancelFunc = func() {}
	if timeout, ok := c.timeout.Get(); ok {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}

	open := func() (io.ReadCloser, error) {
		c.logger.Debug("opening stream",
			zap.String("method", req.Method),
			zap.String("uri", req.URI),
		)

		resp, err := c.newRequest(ctx, req).
			SetDoNotParseResponse(true).
			Execute(req.Method, req.URI)
		if err != nil {
			return nil, &TransportError{Method: req.Method, URI: req.URI, Err: err}
		}

		body := resp.RawBody()
		if resp.StatusCode() != http.StatusOK {
			defer body.Close()
			text, _ := io.ReadAll(io.LimitReader(body, 4<<10))
			return nil, &HTTPStatusError{
				StatusCode: resp.StatusCode(),
				Body:       string(text),
				Headers:    resp.Header(),
			}
		}

		return body, nil
	}

	return newStream(req, open, cancel, c.logger.With(zap.String("uri", req.URI)))
}

func (c *Client) newRequest(ctx context.Context, req *Request) *resty.Request {
	r := c.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers)

	if req.Body != nil {
		r.SetBody(req.Body)
	}

	return r
}

func decodeBody(body []byte) (any, error) {
	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, newMalformedResponseError(body, err)
	}
	return result, nil
}

// APIURL returns the absolute URL of path under the given API generation.
func APIURL(baseUrl string, version types.APIVersion, path string) string {
	return baseUrl + "/api/" + version.String() + "/" + path
}

// DefaultHeaders returns the headers every OSL request carries.
func DefaultHeaders() map[string]string {
	return map[string]string{
		constants.HEADER_USER_AGENT:   constants.USER_AGENT,
		constants.HEADER_CONTENT_TYPE: constants.CONTENT_TYPE,
	}
}
