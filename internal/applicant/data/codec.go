package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"uat/internal/path"
)

// Serialize encodes the document as JSON. Object keys are written in sorted
// order, so equal documents serialize identically.
func (d *ApplicantData) Serialize() ([]byte, error) {
	raw, err := json.Marshal(toValue(d.root))
	if err != nil {
		return nil, fmt.Errorf("serialize applicant data: %w", err)
	}
	return raw, nil
}

// Deserialize decodes a blob written by Serialize. An empty blob is an empty
// document; anything but a JSON object at the top level is an error.
func Deserialize(raw []byte) (*ApplicantData, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return New(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("deserialize applicant data: %w", err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, errors.New("deserialize applicant data: trailing content after document")
	}
	root, err := fromValue(value)
	if err != nil {
		return nil, fmt.Errorf("deserialize applicant data: %w", err)
	}
	if root.kind != kindObject {
		return nil, errors.New("deserialize applicant data: document must be a JSON object")
	}
	return &ApplicantData{root: root}, nil
}

func (d *ApplicantData) MarshalJSON() ([]byte, error) {
	return d.Serialize()
}

func (d *ApplicantData) UnmarshalJSON(raw []byte) error {
	decoded, err := Deserialize(raw)
	if err != nil {
		return err
	}
	d.root = decoded.root
	return nil
}

func toValue(n *node) any {
	switch n.kind {
	case kindObject:
		out := make(map[string]any, len(n.fields))
		for k, v := range n.fields {
			out[k] = toValue(v)
		}
		return out
	case kindArray:
		out := make([]any, len(n.items))
		for i, v := range n.items {
			out[i] = toValue(v)
		}
		return out
	case kindString:
		return n.text
	case kindNumber:
		return json.Number(n.text)
	case kindBool:
		return n.boolean
	}
	return nil
}

// fromValue rejects object keys that no path.Path can address: empty keys,
// keys containing the path separator and keys with surrounding spaces.
func fromValue(v any) (*node, error) {
	switch value := v.(type) {
	case map[string]any:
		n := objectNode()
		for k, child := range value {
			if p := path.Create(k); p.Len() != 1 || p.Last() != k {
				return nil, fmt.Errorf("key %q is not addressable by a path", k)
			}
			c, err := fromValue(child)
			if err != nil {
				return nil, err
			}
			n.fields[k] = c
		}
		return n, nil
	case []any:
		items := make([]*node, len(value))
		for i, child := range value {
			c, err := fromValue(child)
			if err != nil {
				return nil, err
			}
			items[i] = c
		}
		return arrayNode(items), nil
	case string:
		return stringNode(value), nil
	case json.Number:
		return numberNode(value.String()), nil
	case bool:
		return boolNode(value), nil
	}
	return nullNode(), nil
}
