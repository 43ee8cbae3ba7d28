package templatizer

import (
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-metrics"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/markup"
	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/render"
)

// Template is a compiled, jump-resolved template. It is immutable and may
// be rendered concurrently, provided every render has its own Channel and
// writer.
type Template struct {
	path      string
	nodes     []markup.Node
	marker    rune
	rawFiller bool
	logger    hclog.Logger
}

// compileFile loads and resolves the template at path.
func compileFile(path string, config *Config, logger hclog.Logger) (*Template, error) {
	defer metrics.MeasureSince(metricCompile, time.Now())

	l := newLoader(config, logger)
	nodes, err := l.loadFile(path)
	if err != nil {
		return nil, err
	}
	return finish(path, nodes, config, logger)
}

// compileReader loads and resolves a template read from r. Includes are
// resolved relative to baseDir.
func compileReader(r io.Reader, baseDir string, config *Config, logger hclog.Logger) (*Template, error) {
	defer metrics.MeasureSince(metricCompile, time.Now())

	l := newLoader(config, logger)
	nodes, err := l.load(r, "", baseDir)
	if err != nil {
		return nil, err
	}
	return finish("", nodes, config, logger)
}

func finish(path string, nodes []markup.Node, config *Config, logger hclog.Logger) (*Template, error) {
	if err := render.Resolve(nodes); err != nil {
		return nil, &ControlFlowError{Path: path, Cause: err}
	}
	logger.Debug("compiled template", "path", path, "nodes", len(nodes))
	return &Template{
		path:      path,
		nodes:     nodes,
		marker:    config.Marker,
		rawFiller: config.RawFiller,
		logger:    logger,
	}, nil
}

// Path returns the file the template was compiled from, or "" for
// templates compiled from a reader.
func (t *Template) Path() string {
	return t.path
}

// Len returns the number of instructions.
func (t *Template) Len() int {
	return len(t.nodes)
}

// Nodes returns a copy of the resolved instruction list.
func (t *Template) Nodes() []markup.Node {
	out := make([]markup.Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Placeholders returns the number of text substitution points, each counted
// once regardless of how often a loop visits it.
func (t *Template) Placeholders() int {
	count := 0
	for i := range t.nodes {
		n := &t.nodes[i]
		switch n.Kind {
		case markup.KindStart:
			if n.Root || n.Directive() != markup.DirectiveNone {
				continue
			}
			for _, a := range n.Attrs {
				if isMarker(a.Value, t.marker) {
					count++
				}
			}
		case markup.KindText:
			count += strings.Count(n.Text, string(t.marker))
		}
	}
	return count
}

// Directives returns the number of directive points that consume a control
// decision, each counted once.
func (t *Template) Directives() int {
	count := 0
	for i := range t.nodes {
		n := &t.nodes[i]
		switch d := n.Directive(); {
		case d == markup.DirectiveNone:
		case n.Kind == markup.KindStart && d != markup.DirectiveDoLoop:
			count++
		case n.Kind == markup.KindEnd && d.IsLoop():
			count++
		}
	}
	return count
}

// RenderString renders into a string. Output produced before an error is
// returned alongside it.
func (t *Template) RenderString(in *Channel) (string, error) {
	var b strings.Builder
	err := t.Render(&b, in)
	return b.String(), err
}

// Render interprets the template against in, streaming output to w. The
// channel is drained as rendering proceeds and must be empty when the end
// of the template is reached. On error, output already written to w is
// not retracted.
func (t *Template) Render(w io.Writer, in *Channel) error {
	defer metrics.MeasureSince(metricRender, time.Now())
	if in == nil {
		in = NewChannel()
	}

	err := newInterpreter(t, w, in).run()
	if err != nil {
		kind := errorKind(err)
		metrics.IncrCounterWithLabels(metricRenderError, 1, []metrics.Label{{Name: "kind", Value: kind}})
		t.logger.Debug("render failed", "path", t.path, "kind", kind, "error", err)
	}
	return err
}

func isMarker(value string, marker rune) bool {
	return len(value) > 0 && value == string(marker)
}
