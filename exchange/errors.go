package exchange

import "fmt"

// ConfigurationError reports a client that cannot sign requests. It is
// returned before any network I/O.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Msg, e.Err)
	}
	return "configuration error: " + e.Msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// EncodingError reports a parameter bag that could not be serialized.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode params for %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// RemoteLogicalError reports a well formed response whose own result field
// says the remote operation failed.
type RemoteLogicalError struct {
	Operation string
	Result    string
}

func (e *RemoteLogicalError) Error() string {
	return fmt.Sprintf("Unexpected response while %s: %s", e.Operation, e.Result)
}
