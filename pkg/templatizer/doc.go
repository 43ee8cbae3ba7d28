// Package templatizer renders markup templates by interleaving their static
// structure with a caller-supplied, ordered stream of input items.
//
// A template never computes anything. Every placeholder consumes the next
// filler text from the input stream and every directive consumes the next
// control decision, so the caller decides the whole traversal up front.
//
// # Quick Start
//
//	ctx := templatizer.New("greeting.xml")
//	ctx.AddFillerText("world")
//	if err := ctx.Render(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// with greeting.xml:
//
//	<templatizer><p>Hello, @!</p></templatizer>
//
// # Template Syntax
//
// The outermost element is a wrapper and is not rendered. Inside it:
//
//	@                          - in text: replaced by the next filler text
//	<a href="@">               - attribute equal to @: replaced by the next filler text
//	<if>...</if>               - one decision: Enter renders the body, Skip jumps past it
//	<swhile>...</swhile>       - one decision on entry (Enter/Stop), one at every close (Repeat/Stop)
//	<ewhile>...</ewhile>       - body runs once, then one decision at every close (Repeat/Stop)
//	<include file="part.xml"/> - replaced at compile time by the body of part.xml
//
// Enter and Repeat are interchangeable, as are Skip and Stop; the names
// only document intent.
//
// # Input Order
//
// Input items are consumed first-in first-out, in exactly the order the
// interpreter reaches the points that need them, including once per loop
// iteration. For
//
//	<root><swhile><p>@</p></swhile></root>
//
// the input Enter, "a", Repeat, "b", Stop renders <p>a</p><p>b</p>.
//
// # Errors
//
// Compilation fails with IOError, ParseError, ControlFlowError or
// CyclicIncludeError. Rendering fails with TypeMismatchError when a text
// item is found where a decision was expected or vice versa,
// ExhaustedInputError when the stream runs dry, and TrailingInputError when
// items remain at the end. Output is streamed: whatever was written before
// a render error stays written.
//
// # Architecture
//
//   - markup: node model, tag registry and the encoding/xml event reader
//   - render: jump resolution over the flat node sequence
//
// The main package provides the loader with include flattening, the
// interpreter, the input channel, configuration, caching and logging.
package templatizer
