package exchange

import (
	"errors"
	"math"
	"testing"

	"github.com/banky/go-osl/internal/utils"
	"github.com/banky/go-osl/types"
	"github.com/maxatome/go-testdeep/td"
	"github.com/shopspring/decimal"
)

func TestNewRequestNilParams(t *testing.T) {
	req := NewRequest("dataToken", nil, types.V3)
	td.Cmp(t, req.Params, types.Params{})
	td.Cmp(t, req.Version, types.V3)
}

func TestCodecFor(t *testing.T) {
	_, err := codecFor(types.V2)
	td.CmpNoError(t, err)
	_, err = codecFor(types.V3)
	td.CmpNoError(t, err)

	_, err = codecFor(types.APIVersion(1))
	td.Cmp(t, err, td.String("unsupported api version 1"))
}

func TestEncodeForm(t *testing.T) {
	body, err := encodeForm(types.Params{
		"type":   "bid",
		"amount": decimal.RequireFromString("0.015"),
		"tonce":  int64(1700000000000000),
	})
	td.Require(t).CmpNoError(err)
	td.Cmp(t, string(body), "amount=0.015&tonce=1700000000000000&type=bid")
}

func TestEncodeFormRejectsNested(t *testing.T) {
	_, err := encodeForm(types.Params{"order": map[string]any{"a": 1}})
	td.Cmp(t, errors.Is(err, utils.ErrUnsupportedValue), true)
}

func TestEncodeJSON(t *testing.T) {
	body, err := encodeJSON(types.Params{
		"tonce": int64(1700000000000000),
		"order": map[string]any{
			"orderType":            "LIMIT",
			"tradedCurrencyAmount": decimal.RequireFromString("1.5"),
		},
	})
	td.Require(t).CmpNoError(err)
	td.Cmp(t, string(body),
		`{"order":{"orderType":"LIMIT","tradedCurrencyAmount":"1.5"},"tonce":1700000000000000}`)
}

func TestEncodeJSONDeterministic(t *testing.T) {
	params := types.Params{"b": 2, "a": 1, "c": "x", "tonce": 9}

	first, err := encodeJSON(params)
	td.Require(t).CmpNoError(err)
	for range 20 {
		again, err := encodeJSON(params)
		td.Require(t).CmpNoError(err)
		td.Cmp(t, again, first)
	}
}

func TestEncodeJSONRejectsUnserializable(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "channel", value: make(chan int)},
		{name: "func", value: func() {}},
		{name: "nan", value: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encodeJSON(types.Params{"bad": tt.value})
			td.CmpNotNil(t, err)
		})
	}
}
