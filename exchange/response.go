package exchange

import (
	"fmt"

	json "github.com/goccy/go-json"
)

const resultSuccess = "success"

// v2 envelope:
//
//	{
//	  "result": "success" | "error",
//	  "data": <object>
//	}
func accountLink(response any) (string, error) {
	const operation = "retrieving account number"

	body, _ := response.(map[string]any)
	result, _ := body["result"].(string)
	if result != resultSuccess {
		return "", &RemoteLogicalError{Operation: operation, Result: fmt.Sprint(body["result"])}
	}

	data, _ := body["data"].(map[string]any)
	link, ok := data["Link"].(string)
	if !ok || link == "" {
		return "", &RemoteLogicalError{Operation: operation, Result: "missing account link"}
	}

	return link, nil
}

// Decode converts a generic decoded response into T.
func Decode[T any](response any) (T, error) {
	var out T

	data, err := json.Marshal(response)
	if err != nil {
		return out, fmt.Errorf("marshal response: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("unmarshal response: %w", err)
	}

	return out, nil
}

// ResultCode is the status envelope shared by v3 responses.
type ResultCode struct {
	ResultCode string `json:"resultCode"`
	Timestamp  int64  `json:"timestamp"`
}

func (r ResultCode) IsOK() bool {
	return r.ResultCode == "OK"
}

// CheckResultCode returns a RemoteLogicalError unless a v3 response reports
// resultCode OK.
func CheckResultCode(operation string, response any) error {
	rc, err := Decode[ResultCode](response)
	if err != nil {
		return err
	}
	if !rc.IsOK() {
		return &RemoteLogicalError{Operation: operation, Result: rc.ResultCode}
	}
	return nil
}
