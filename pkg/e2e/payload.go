package e2e

import (
	"bytes"
	"encoding/json"
)

// Payload is an insertion-ordered JSON object used as the request body.
// The body is an open map rather than a closed struct so that per-call
// parameters this package does not know about still reach the endpoint.
type Payload struct {
	keys   []string
	values map[string]any
}

// NewPayload returns an empty payload ready for use.
func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

// Set stores a field. Setting an existing key replaces its value but keeps
// the key's original position.
func (p *Payload) Set(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Payload) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Payload) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the field names in insertion order.
func (p *Payload) Keys() []string {
	cp := make([]string, len(p.keys))
	copy(cp, p.keys)
	return cp
}

// Len returns the number of fields.
func (p *Payload) Len() int {
	return len(p.keys)
}

// MarshalJSON encodes the fields as a JSON object in insertion order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
