package constants

const MAINNET_API_URL = "https://trade.osl.com"
const DEFAULT_CURRENCY_PAIR = "BTCUSD"

const USER_AGENT = "Mozilla/4.0 (compatible; OSL node.js client)"

// CONTENT_TYPE is sent on every request, including v3 calls whose body is
// JSON. The exchange expects it that way.
const CONTENT_TYPE = "application/x-www-form-urlencoded"

const (
	HEADER_REST_KEY       = "Rest-Key"
	HEADER_REST_SIGN      = "Rest-Sign"
	HEADER_CONTENT_LENGTH = "Content-Length"
	HEADER_CONTENT_TYPE   = "Content-type"
	HEADER_USER_AGENT     = "User-Agent"
)

// TONCE_KEY is the parameter name the tonce is sent under.
const TONCE_KEY = "tonce"
