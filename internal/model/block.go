// Package model defines the data structures shared by the extractor, the
// execution engine, and the reporters. Values here are plain records: they are
// created once and never mutated after construction.
package model

// FlagNoDoctest marks a block that must never be executed.
const FlagNoDoctest = "no-doctest"

// CodeBlock is a single fenced code block extracted from a document.
//
// Flags, Attributes, and Env together partition the tokens of the meta string:
// every token is classified into exactly one of the three. Maps use
// last-write-wins semantics for duplicate keys.
type CodeBlock struct {
	// Doc is the path of the document the block was extracted from.
	Doc string `json:"doc"`
	// StartLine is the 1-based line number of the opening fence.
	StartLine int `json:"startLine"`
	// Lang is the language tag from the info string. Empty when the fence
	// carried no info string.
	Lang string `json:"lang"`
	// Code is the block body, verbatim. Interior lines are joined with "\n"
	// and no trailing newline is added or removed.
	Code string `json:"code"`
	// Meta is the raw meta string: everything after the language tag,
	// whitespace-normalized to single spaces.
	Meta string `json:"meta"`

	Flags      map[string]bool   `json:"flags"`
	Attributes map[string]string `json:"attributes"`
	Env        map[string]string `json:"env"`
}

// HasFlag reports whether the bare meta token name was present.
func (b *CodeBlock) HasFlag(name string) bool {
	return b.Flags[name]
}

// Attr returns the value of a meta attribute, or "" if absent.
func (b *CodeBlock) Attr(key string) string {
	return b.Attributes[key]
}
