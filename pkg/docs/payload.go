package docs

import (
	"encoding/json"
	"errors"
	"slices"
)

// Document is an opaque documentation descriptor, kept as the raw JSON it was read from.
type Document = json.RawMessage

// Payload is a parsed locale resource.
type Payload struct {
	raw  json.RawMessage
	docs []Document
}

// ParsePayload parses a locale resource body. The body must be a JSON object; the docs
// list is read from docsList.docs and treated as empty when absent or not an array.
func ParsePayload(data []byte) (*Payload, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	if root == nil {
		return nil, ErrInvalidPayload
	}

	p := &Payload{raw: slices.Clone(data)}

	var list struct {
		Docs []Document `json:"docs"`
	}
	if rawList, ok := root["docsList"]; ok && json.Unmarshal(rawList, &list) == nil {
		p.docs = list.Docs
	}

	return p, nil
}

// Docs returns a copy of the ordered document list. Never nil.
func (p *Payload) Docs() []Document {
	if p == nil || len(p.docs) == 0 {
		return []Document{}
	}
	return slices.Clone(p.docs)
}

// Raw returns the original resource body.
func (p *Payload) Raw() json.RawMessage {
	if p == nil {
		return nil
	}
	return p.raw
}
