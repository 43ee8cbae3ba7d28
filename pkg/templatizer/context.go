package templatizer

import "io"

// Context binds a template path to the input stream of one render. It
// follows the caller protocol: queue input in traversal order, compile
// once, then render.
//
//	ctx := templatizer.New("page.xml")
//	ctx.AddFillerText("Hello")
//	ctx.AddControl(templatizer.Enter)
//	if err := ctx.Render(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
type Context struct {
	path   string
	engine *Engine
	input  *Channel
	tmpl   *Template
}

// New returns a context for the template at path. Without options the
// default engine and its cache are used.
func New(path string, opts ...Option) *Context {
	engine := DefaultEngine
	if len(opts) > 0 {
		engine = NewEngine(opts...)
	}
	return engine.NewContext(path)
}

// Path returns the template path.
func (c *Context) Path() string {
	return c.path
}

// AddFillerText queues text for the next placeholder.
func (c *Context) AddFillerText(text string) {
	c.input.AddFillerText(text)
}

// AddControl queues a decision for the next directive.
func (c *Context) AddControl(d Decision) {
	c.input.AddControl(d)
}

// Input returns the context's input stream.
func (c *Context) Input() *Channel {
	return c.input
}

// SetInput replaces the input stream.
func (c *Context) SetInput(in *Channel) {
	if in == nil {
		in = NewChannel()
	}
	c.input = in
}

// Compile compiles the template. It is a no-op once it has succeeded.
func (c *Context) Compile() error {
	if c.tmpl != nil {
		return nil
	}
	tmpl, err := c.engine.CompileFile(c.path)
	if err != nil {
		return err
	}
	c.tmpl = tmpl
	return nil
}

// Template returns the compiled template, or nil before Compile.
func (c *Context) Template() *Template {
	return c.tmpl
}

// Render compiles the template if needed and renders it to w against the
// queued input. Once the template has compiled, the context starts the next
// render with an empty stream, whether or not this one succeeded. A failed
// render cannot be resumed: queue the complete input again and render from
// the start.
func (c *Context) Render(w io.Writer) error {
	if err := c.Compile(); err != nil {
		return err
	}
	in := c.input
	c.input = NewChannel()
	return c.tmpl.Render(w, in)
}
