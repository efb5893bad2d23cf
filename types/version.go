package types

import "fmt"

// APIVersion selects the generation of the OSL REST API a request targets.
// The generations differ in body encoding and in what the signature covers,
// so every request carries one explicitly.
type APIVersion int

const (
	V2 APIVersion = 2
	V3 APIVersion = 3
)

func (v APIVersion) String() string {
	return fmt.Sprintf("%d", int(v))
}

// Valid reports whether v is a generation the client knows how to encode.
func (v APIVersion) Valid() bool {
	return v == V2 || v == V3
}
