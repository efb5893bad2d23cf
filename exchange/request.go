package exchange

import (
	"fmt"

	"github.com/banky/go-osl/internal/utils"
	"github.com/banky/go-osl/types"
	json "github.com/goccy/go-json"
)

// v3Root prefixes the signed message of v3 requests; that generation signs
// the full request path rather than the resource path.
const v3Root = "api/3/"

// Request describes one authenticated call: a resource path relative to
// the API root, its parameters and the API generation.
type Request struct {
	Path    string
	Params  types.Params
	Version types.APIVersion
}

// NewRequest builds a Request. A nil params is treated as empty.
func NewRequest(path string, params types.Params, version types.APIVersion) Request {
	if params == nil {
		params = types.Params{}
	}
	return Request{Path: path, Params: params, Version: version}
}

// codec is the encode/canonicalize pair of one API generation.
type codec struct {
	encode       func(params types.Params) ([]byte, error)
	canonicalize func(path string, body []byte) []byte
}

var codecs = map[types.APIVersion]codec{
	types.V2: {encode: encodeForm, canonicalize: canonicalizeV2},
	types.V3: {encode: encodeJSON, canonicalize: canonicalizeV3},
}

func codecFor(version types.APIVersion) (codec, error) {
	if !version.Valid() {
		return codec{}, fmt.Errorf("unsupported api version %d", int(version))
	}
	return codecs[version], nil
}

func encodeForm(params types.Params) ([]byte, error) {
	s, err := utils.FormEncode(params)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func encodeJSON(params types.Params) ([]byte, error) {
	return json.Marshal(map[string]any(params))
}

func canonicalizeV2(path string, body []byte) []byte {
	message := make([]byte, 0, len(path)+1+len(body))
	message = append(message, path...)
	message = append(message, 0)
	return append(message, body...)
}

func canonicalizeV3(path string, body []byte) []byte {
	message := make([]byte, 0, len(v3Root)+len(path)+1+len(body))
	message = append(message, v3Root...)
	message = append(message, path...)
	message = append(message, 0)
	return append(message, body...)
}
