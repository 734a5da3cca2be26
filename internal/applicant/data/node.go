package data

import (
	"maps"
	"slices"
)

type kind uint8

const (
	kindNull kind = iota
	kindObject
	kindArray
	kindString
	kindNumber
	kindBool
)

// node is one value of the document tree. Numbers keep their decimal text so
// integers survive a round trip through the serialized form unchanged.
type node struct {
	kind    kind
	text    string
	boolean bool
	fields  map[string]*node
	items   []*node
}

func objectNode() *node {
	return &node{kind: kindObject, fields: make(map[string]*node)}
}

func stringNode(s string) *node {
	return &node{kind: kindString, text: s}
}

func numberNode(text string) *node {
	return &node{kind: kindNumber, text: text}
}

func boolNode(b bool) *node {
	return &node{kind: kindBool, boolean: b}
}

func nullNode() *node {
	return &node{kind: kindNull}
}

func arrayNode(items []*node) *node {
	return &node{kind: kindArray, items: items}
}

// isEmpty reports whether a merge may overwrite n. Objects are never empty:
// merges recurse into them instead.
func (n *node) isEmpty() bool {
	switch n.kind {
	case kindNull:
		return true
	case kindString:
		return n.text == ""
	case kindArray:
		return len(n.items) == 0
	}
	return false
}

func (n *node) clone() *node {
	out := &node{kind: n.kind, text: n.text, boolean: n.boolean}
	if n.fields != nil {
		out.fields = make(map[string]*node, len(n.fields))
		for k, v := range n.fields {
			out.fields[k] = v.clone()
		}
	}
	if n.items != nil {
		out.items = make([]*node, len(n.items))
		for i, v := range n.items {
			out.items[i] = v.clone()
		}
	}
	return out
}

func (n *node) equal(other *node) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case kindObject:
		return maps.EqualFunc(n.fields, other.fields, (*node).equal)
	case kindArray:
		return slices.EqualFunc(n.items, other.items, (*node).equal)
	case kindBool:
		return n.boolean == other.boolean
	case kindNull:
		return true
	}
	return n.text == other.text
}
