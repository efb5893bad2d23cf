package types

// Params is the parameter bag of a single request. Values must be
// serializable by the encoder of the target APIVersion.
type Params map[string]any

// Clone returns a shallow copy of p. A nil Params clones to an empty one.
func (p Params) Clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}
