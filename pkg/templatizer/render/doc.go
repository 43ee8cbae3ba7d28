// Package render provides the compile-time helpers that turn a flat node
// sequence into a render-ready instruction list.
//
// Resolve matches nested if, swhile and ewhile directives with a stack and
// writes their jump targets as indices into the same slice, so the
// interpreter can move its instruction pointer directly instead of
// scanning for the matching end tag at render time.
//
// MatchingEnd locates the end tag that closes a given start tag. The loader
// uses it to cut include elements out of a sequence.
//
// Like the markup package, render never imports the templatizer package.
//
// Example:
//
//	nodes, _ := markup.Decode(strings.NewReader("<root><if><p/></if></root>"), markup.NewRegistry())
//	if err := render.Resolve(nodes); err != nil {
//	    return err
//	}
//	// nodes[1] is Start(if -> 5): skipping the body resumes at End(root)
package render
