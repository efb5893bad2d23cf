package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"

	"go.uber.org/zap"
)

// dataField is the top level key whose children a Stream yields.
const dataField = "data"

// Stream is a forward-only sequence of the elements under the top level
// "data" field of a JSON response, decoded as the body arrives. When "data"
// is an object its values are yielded in document order. A Stream cannot be
// restarted and is not safe for concurrent use.
type Stream struct {
	method string
	uri    string
	open   func() (io.ReadCloser, error)
	cancel context.CancelFunc
	logger *zap.Logger

	body     io.ReadCloser
	dec      *json.Decoder
	inData   bool
	inObject bool

	current any
	count   int
	err     error
	done    bool
}

func newStream(
	req *Request,
	open func() (io.ReadCloser, error),
	cancel context.CancelFunc,
	logger *zap.Logger,
) *Stream {
	return &Stream{
		method: req.Method,
		uri:    req.URI,
		open:   open,
		cancel: cancel,
		logger: logger,
	}
}

// Next advances to the next element. It returns false once the elements
// are exhausted or a failure occurred; check Err to tell them apart.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}

	if s.dec == nil {
		body, err := s.open()
		if err != nil {
			s.fail(err)
			return false
		}
		s.body = body
		s.dec = json.NewDecoder(body)
	}

	if !s.inData {
		found, err := s.seekData()
		if err != nil {
			s.fail(err)
			return false
		}
		if !found {
			s.finish()
			return false
		}
	}

	if !s.dec.More() {
		s.finish()
		return false
	}

	if s.inObject {
		if _, err := s.dec.Token(); err != nil {
			s.fail(s.classify(err))
			return false
		}
	}

	var element any
	if err := s.dec.Decode(&element); err != nil {
		s.fail(s.classify(err))
		return false
	}

	s.current = element
	s.count++
	return true
}

// Value returns the element produced by the last successful Next.
func (s *Stream) Value() any {
	return s.current
}

// Err returns the failure that ended the stream, if any.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the underlying connection. It is safe to call more than
// once.
func (s *Stream) Close() error {
	s.done = true
	s.current = nil
	s.cancel()
	if s.body == nil {
		return nil
	}
	body := s.body
	s.body = nil
	return body.Close()
}

// All adapts the stream to a range-over-func sequence. A failure is yielded
// once as the final pair. The stream is closed when iteration ends.
func (s *Stream) All() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.Value(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// seekData walks the top level object up to the "data" field and consumes
// its opening delimiter.
func (s *Stream) seekData() (bool, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return false, s.classify(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return false, nil
	}

	for s.dec.More() {
		keyTok, err := s.dec.Token()
		if err != nil {
			return false, s.classify(err)
		}
		key, _ := keyTok.(string)

		if key != dataField {
			var skip json.RawMessage
			if err := s.dec.Decode(&skip); err != nil {
				return false, s.classify(err)
			}
			continue
		}

		tok, err := s.dec.Token()
		if err != nil {
			return false, s.classify(err)
		}
		switch tok {
		case json.Delim('['):
			s.inData = true
			return true, nil
		case json.Delim('{'):
			s.inData = true
			s.inObject = true
			return true, nil
		}
		// scalar data has no children
	}

	return false, nil
}

func (s *Stream) finish() {
	s.logger.Debug("stream finished", zap.Int("elements", s.count))
	_ = s.Close()
}

func (s *Stream) fail(err error) {
	s.logger.Warn("stream failed", zap.Int("elements", s.count), zap.Error(err))
	s.err = err
	_ = s.Close()
}

func (s *Stream) classify(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return &MalformedResponseError{Kind: MalformedSyntax, Err: err}
	case errors.Is(err, io.EOF):
		return &MalformedResponseError{Kind: MalformedSyntax, Err: io.ErrUnexpectedEOF}
	}

	return &TransportError{Method: s.method, URI: s.uri, Err: err}
}

// FailedStream returns a Stream that yields nothing and reports err.
func FailedStream(err error) *Stream {
	return &Stream{
		cancel: func() {},
		logger: zap.NewNop(),
		err:    err,
		done:   true,
	}
}
