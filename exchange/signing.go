package exchange

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"net/http"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/rest"
)

// sign computes the HMAC-SHA512 signature of message with the base64
// encoded secret.
func sign(apiKey, apiSecret string, message []byte) (Signature, error) {
	if err := checkCredentials(apiKey, apiSecret); err != nil {
		return Signature{}, err
	}

	secret, err := base64.StdEncoding.DecodeString(apiSecret)
	if err != nil {
		return Signature{}, &ConfigurationError{Msg: "api secret is not valid base64", Err: err}
	}

	mac := hmac.New(sha512.New, secret)
	mac.Write(message)

	return Signature{
		Key:  apiKey,
		Sign: base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}, nil
}

func checkCredentials(apiKey, apiSecret string) error {
	if apiKey == "" || apiSecret == "" {
		return &ConfigurationError{Msg: "Must provide key and secret to make this API request."}
	}
	return nil
}

// signRequest turns req into a ready to send POST. The tonce is added to a
// copy of the params so the caller's map is left untouched.
func (e *Exchange) signRequest(req Request) (*rest.Request, error) {
	if err := checkCredentials(e.apiKey, e.apiSecret); err != nil {
		return nil, err
	}

	c, err := codecFor(req.Version)
	if err != nil {
		return nil, &ConfigurationError{Msg: "cannot sign " + req.Path, Err: err}
	}

	params := req.Params.Clone()
	params[constants.TONCE_KEY] = e.tonce.Next().Int64()

	body, err := c.encode(params)
	if err != nil {
		return nil, &EncodingError{Path: req.Path, Err: err}
	}

	sig, err := sign(e.apiKey, e.apiSecret, c.canonicalize(req.Path, body))
	if err != nil {
		return nil, err
	}

	return &rest.Request{
		Method:  http.MethodPost,
		URI:     rest.APIURL(e.rest.BaseUrl(), req.Version, req.Path),
		Body:    body,
		Headers: sig.Headers(len(body)),
	}, nil
}
