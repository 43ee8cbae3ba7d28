// Package markup defines the node model of a compiled template and turns a
// markup document into a flat node sequence.
//
// # Structure Organization
//
//   - types.go: Node, Attr and the Kind and Directive classifications
//   - registry.go: Registry, the tag-name to id mapping used to recognise directives
//   - decode.go: Decode, the encoding/xml event reader
//
// # Key Concepts
//
// Node: a tagged variant holding a start tag, an end tag or a run of text.
// Nesting is implicit in the order of the sequence; there are no parent
// pointers. Jump targets are plain indices into the same slice.
//
// Directive: the reserved tags if, swhile and ewhile. They never appear in
// rendered output.
//
// Example of decoding a document:
//
//	reg := markup.NewRegistry()
//	nodes, err := markup.Decode(strings.NewReader("<root><p>@</p></root>"), reg)
//	// nodes: Start(root) Start(p) Text("@") End(p) End(root)
//
// This package does not import the templatizer package.
package markup
