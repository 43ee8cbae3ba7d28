package templatizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/shoenig/test/must"
)

// testEngine returns an engine with a silent logger and no cache.
func testEngine(opts ...Option) *Engine {
	base := []Option{WithLogger(hclog.NewNullLogger()), WithCache(0)}
	return NewEngine(append(base, opts...)...)
}

// compileString compiles an in-memory template with no include directory.
func compileString(t *testing.T, src string, opts ...Option) *Template {
	t.Helper()
	tmpl, err := testEngine(opts...).Compile(strings.NewReader(src), "")
	must.NoError(t, err)
	return tmpl
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	must.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	must.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
