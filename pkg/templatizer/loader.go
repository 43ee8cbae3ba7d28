package templatizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-set/v3"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/markup"
	"github.com/benjaminschreck/go-templatizer/pkg/templatizer/render"
)

// loader turns template files into one flat node sequence, splicing
// included files in place of their include elements.
type loader struct {
	config   *Config
	registry *markup.Registry
	logger   hclog.Logger

	// files on the current include chain, outermost first
	chain   []string
	onChain *set.Set[string]
}

func newLoader(config *Config, logger hclog.Logger) *loader {
	return &loader{
		config:   config,
		registry: markup.NewRegistry(),
		logger:   logger,
		onChain:  set.New[string](4),
	}
}

// loadFile loads the template at path and every file it includes.
func (l *loader) loadFile(path string) ([]markup.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: path, Cause: err}
	}
	if l.onChain.Contains(abs) {
		return nil, &CyclicIncludeError{Chain: append(append([]string{}, l.chain...), abs)}
	}
	if len(l.chain) > l.config.MaxIncludeDepth {
		return nil, &CyclicIncludeError{Chain: append(append([]string{}, l.chain...), abs), MaxDepth: l.config.MaxIncludeDepth}
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, &IOError{Op: "open", Path: abs, Cause: err}
	}
	defer f.Close()

	l.chain = append(l.chain, abs)
	l.onChain.Insert(abs)
	defer func() {
		l.chain = l.chain[:len(l.chain)-1]
		l.onChain.Remove(abs)
	}()

	return l.load(f, abs, filepath.Dir(abs))
}

// load decodes r and resolves its includes against dir. name identifies the
// source in errors.
func (l *loader) load(r io.Reader, name, dir string) ([]markup.Node, error) {
	nodes, err := markup.Decode(r, l.registry)
	if err != nil {
		var se *markup.SyntaxError
		if errors.As(err, &se) {
			return nil, &ParseError{Path: name, Line: se.Line, Message: se.Msg}
		}
		return nil, &IOError{Op: "read", Path: name, Cause: err}
	}

	root := &nodes[0]
	if l.config.RootTag != "" && root.Name != l.config.RootTag {
		return nil, &ParseError{Path: name, Line: root.Line,
			Message: fmt.Sprintf("root element must be <%s>, found <%s>", l.config.RootTag, root.Name)}
	}
	if l.registry.IsReserved(root.Tag) {
		return nil, &ParseError{Path: name, Line: root.Line,
			Message: fmt.Sprintf("<%s> cannot be the root element", root.Name)}
	}

	return l.splice(nodes, name, dir)
}

// splice replaces every include element in nodes with the body of the file
// it names.
func (l *loader) splice(nodes []markup.Node, name, dir string) ([]markup.Node, error) {
	out := make([]markup.Node, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if n.Kind != markup.KindStart || n.Tag != markup.TagInclude {
			out = append(out, n)
			continue
		}

		end, err := render.MatchingEnd(nodes, i)
		if err != nil {
			return nil, &ParseError{Path: name, Line: n.Line, Message: err.Error()}
		}
		for _, inner := range nodes[i+1 : end] {
			if inner.Kind != markup.KindText || strings.TrimSpace(inner.Text) != "" {
				return nil, &ParseError{Path: name, Line: n.Line, Message: "include element must be empty"}
			}
		}
		file, ok := n.Attr("file")
		if !ok || file == "" {
			return nil, &ParseError{Path: name, Line: n.Line, Message: "include element requires a file attribute"}
		}

		target := file
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, file)
		}
		l.logger.Debug("splicing include", "from", name, "file", target)
		included, err := l.loadFile(target)
		if err != nil {
			return nil, err
		}
		out = append(out, withoutRoot(included)...)
		i = end
	}
	return out, nil
}

// withoutRoot strips the wrapper element of an included file.
func withoutRoot(nodes []markup.Node) []markup.Node {
	if len(nodes) >= 2 && nodes[0].Root && nodes[len(nodes)-1].Root {
		return nodes[1 : len(nodes)-1]
	}
	return nodes
}
