package exchange

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestAccountLink(t *testing.T) {
	link, err := accountLink(map[string]any{
		"result": "success",
		"data":   map[string]any{"Link": "acc-42"},
	})
	td.CmpNoError(t, err)
	td.Cmp(t, link, "acc-42")
}

func TestAccountLinkErrors(t *testing.T) {
	tests := []struct {
		name     string
		response any
		result   string
	}{
		{
			name:     "error result",
			response: map[string]any{"result": "error", "error": "Identity required"},
			result:   "error",
		},
		{
			name:     "missing result",
			response: map[string]any{"data": map[string]any{"Link": "x"}},
			result:   "<nil>",
		},
		{
			name:     "missing link",
			response: map[string]any{"result": "success", "data": map[string]any{}},
			result:   "missing account link",
		},
		{
			name:     "not an object",
			response: []any{1, 2},
			result:   "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accountLink(tt.response)

			var remoteErr *RemoteLogicalError
			td.Require(t).True(errors.As(err, &remoteErr))
			td.Cmp(t, remoteErr.Operation, "retrieving account number")
			td.Cmp(t, remoteErr.Result, tt.result)
			td.Cmp(t, err.Error(), "Unexpected response while retrieving account number: "+tt.result)
		})
	}
}

func TestDecode(t *testing.T) {
	type token struct {
		Token     string `json:"token"`
		Timestamp int64  `json:"timestamp"`
	}

	got, err := Decode[token](map[string]any{
		"token":     "abc",
		"timestamp": float64(1700000000000),
		"extra":     true,
	})
	td.CmpNoError(t, err)
	td.Cmp(t, got, token{Token: "abc", Timestamp: 1700000000000})

	_, err = Decode[token](map[string]any{"token": 12})
	td.CmpNotNil(t, err)
}

func TestCheckResultCode(t *testing.T) {
	td.CmpNoError(t, CheckResultCode("fetching token", map[string]any{"resultCode": "OK"}))

	err := CheckResultCode("fetching token", map[string]any{"resultCode": "INSUFFICIENT_FUNDS"})
	var remoteErr *RemoteLogicalError
	td.Require(t).True(errors.As(err, &remoteErr))
	td.Cmp(t, remoteErr, &RemoteLogicalError{Operation: "fetching token", Result: "INSUFFICIENT_FUNDS"})
}
