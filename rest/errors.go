package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/samber/mo"
)

// TransportError reports a failed exchange with no HTTP status: connection,
// DNS, TLS or deadline failures.
type TransportError struct {
	Method string
	URI    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (%s %s): %v", e.Method, e.URI, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a response whose status was not 200.
type HTTPStatusError struct {
	StatusCode int
	Body       string
	Headers    http.Header
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Body)
}

func (e *HTTPStatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func (e *HTTPStatusError) IsServerError() bool {
	return e.StatusCode >= 500
}

// MalformedKind says what a non-JSON 200 body looked like.
type MalformedKind int

const (
	MalformedSyntax MalformedKind = iota
	MalformedHTML
)

func (k MalformedKind) String() string {
	if k == MalformedHTML {
		return "html"
	}
	return "syntax"
}

// MalformedResponseError reports a 200 response whose body is not valid
// JSON. Kind is MalformedHTML when the body contains a '<'. That check is a
// guess and can misclassify bodies.
type MalformedResponseError struct {
	Kind MalformedKind
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Kind == MalformedHTML {
		return "OSL responded with html:\n" + e.Body
	}
	return fmt.Sprintf("JSON parse error: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func newMalformedResponseError(body []byte, err error) *MalformedResponseError {
	kind := MalformedSyntax
	if strings.Contains(string(body), "<") {
		kind = MalformedHTML
	}
	return &MalformedResponseError{Kind: kind, Body: string(body), Err: err}
}

// StatusCode returns the HTTP status carried by err, if any. Transport
// failures have none.
func StatusCode(err error) mo.Option[int] {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return mo.Some(statusErr.StatusCode)
	}
	return mo.None[int]()
}

func handleException(resp *resty.Response) error {
	if resp.StatusCode() == http.StatusOK {
		return nil
	}

	return &HTTPStatusError{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
		Headers:    resp.Header(),
	}
}
