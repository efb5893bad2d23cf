package exchange

import (
	"strconv"

	"github.com/banky/go-osl/constants"
	"github.com/banky/go-osl/rest"
)

// Signature is the authentication attached to one request.
type Signature struct {
	Key  string
	Sign string
}

// Headers returns the full header set of a signed request whose body is
// bodyLen bytes long.
func (s Signature) Headers(bodyLen int) map[string]string {
	headers := rest.DefaultHeaders()
	headers[constants.HEADER_REST_KEY] = s.Key
	headers[constants.HEADER_REST_SIGN] = s.Sign
	headers[constants.HEADER_CONTENT_LENGTH] = strconv.Itoa(bodyLen)
	return headers
}

// String hides the signature value.
func (s Signature) String() string {
	return "Key: " + s.Key + ", Sign: <redacted>"
}
