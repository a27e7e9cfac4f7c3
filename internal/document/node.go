// Package document parses rich-document trees into flat, searchable sections.
//
// Project article content is stored as a serialized node tree (headings,
// paragraphs, embeds, text leaves). This package decodes that tree into a
// tagged Node variant and flattens each top-level block into one Section,
// preserving document order.
package document

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Node is one node of a rich-document tree.
// Type carries the raw block kind from the source document; unknown kinds
// are preserved so the parser can still emit a structural section for them.
type Node struct {
	// Type is the raw node type (heading, paragraph, text, quote, ...).
	Type string

	// Level is the declared heading level (1-6), 0 for non-headings.
	Level int

	// Text is the value of a text leaf, empty for container nodes.
	Text string

	// Children are the child nodes in document order.
	Children []*Node
}

// rawNode mirrors the serialized document format for decoding.
// Heading levels appear either as "tag" ("h1".."h6") or a numeric "level".
type rawNode struct {
	Type     string            `json:"type"`
	Tag      string            `json:"tag"`
	Level    int               `json:"level"`
	Text     string            `json:"text"`
	Children []json.RawMessage `json:"children"`
}

// rawDocument is the optional top-level wrapper around the root node.
type rawDocument struct {
	Root json.RawMessage `json:"root"`
}

// DecodeTree decodes a serialized document tree.
// Returns (nil, nil) for empty, null, or absent content: a project without
// article content is not an error. Malformed nodes degrade to empty nodes
// rather than failing the decode.
func DecodeTree(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	// Unwrap the {"root": {...}} envelope when present.
	var doc rawDocument
	if err := json.Unmarshal(trimmed, &doc); err == nil && len(doc.Root) > 0 {
		root := decodeNode(doc.Root)
		return root, nil
	}

	root := decodeNode(trimmed)
	return root, nil
}

// decodeNode decodes a single node, tolerating malformed input.
// A node that cannot be decoded becomes an empty node so structural
// counts are preserved.
func decodeNode(data json.RawMessage) *Node {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return &Node{}
	}

	n := &Node{
		Type: raw.Type,
		Text: raw.Text,
	}

	n.Level = headingLevel(raw)

	if len(raw.Children) > 0 {
		n.Children = make([]*Node, 0, len(raw.Children))
		for _, child := range raw.Children {
			n.Children = append(n.Children, decodeNode(child))
		}
	}

	return n
}

// headingLevel resolves the heading level from either encoding.
func headingLevel(raw rawNode) int {
	if raw.Level > 0 {
		return raw.Level
	}
	tag := strings.ToLower(raw.Tag)
	if len(tag) == 2 && tag[0] == 'h' {
		if lvl, err := strconv.Atoi(tag[1:]); err == nil && lvl >= 1 && lvl <= 6 {
			return lvl
		}
	}
	return 0
}

// Encode serializes a node tree back to its canonical JSON form.
// Used by stores that persist article content and by the fingerprint,
// which hashes the serialized tree.
func Encode(n *Node) []byte {
	if n == nil {
		return []byte("null")
	}
	data, err := json.Marshal(encodeNode(n))
	if err != nil {
		return []byte("null")
	}
	return data
}

type encodedNode struct {
	Type     string        `json:"type,omitempty"`
	Level    int           `json:"level,omitempty"`
	Text     string        `json:"text,omitempty"`
	Children []encodedNode `json:"children,omitempty"`
}

func encodeNode(n *Node) encodedNode {
	e := encodedNode{
		Type:  n.Type,
		Level: n.Level,
		Text:  n.Text,
	}
	for _, child := range n.Children {
		if child == nil {
			child = &Node{}
		}
		e.Children = append(e.Children, encodeNode(child))
	}
	return e
}
