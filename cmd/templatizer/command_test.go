package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/cli"
	"github.com/shoenig/test/must"
)

func testMeta(t *testing.T) (*Meta, *cli.MockUi, *bytes.Buffer) {
	t.Helper()
	ui := cli.NewMockUi()
	out := new(bytes.Buffer)
	return &Meta{Ui: ui, Out: out, ErrOut: ui.ErrorWriter, In: strings.NewReader("")}, ui, out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	must.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "list.xml", `<r><ul><swhile><li>@</li></swhile></ul></r>`)
	script := writeFile(t, dir, "input.yaml", "- control: enter\n- a\n- control: repeat\n- b\n- control: stop\n")

	meta, ui, out := testMeta(t)
	cmd := &RenderCommand{Meta: *meta}
	code := cmd.Run([]string{"-log-level=off", "-input", script, tmpl})
	must.Eq(t, 0, code, must.Sprint(ui.ErrorWriter.String()))
	must.Eq(t, `<ul><li>a</li><li>b</li></ul>`, out.String())
}

func TestRenderCommand_StdinAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "p.xml", `<r><p>@</p></r>`)
	target := filepath.Join(dir, "out.html")

	meta, ui, _ := testMeta(t)
	meta.In = strings.NewReader("- text: hi\n")
	cmd := &RenderCommand{Meta: *meta}
	code := cmd.Run([]string{"-log-level=off", "-input=-", "-o", target, tmpl})
	must.Eq(t, 0, code, must.Sprint(ui.ErrorWriter.String()))

	data, err := os.ReadFile(target)
	must.NoError(t, err)
	must.Eq(t, `<p>hi</p>`, string(data))
}

type failingCloser struct {
	bytes.Buffer
}

func (*failingCloser) Close() error { return errors.New("disk full") }

func TestRenderCommand_OutputCloseError(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "p.xml", `<r>static</r>`)

	meta, ui, _ := testMeta(t)
	target := new(failingCloser)
	cmd := &RenderCommand{
		Meta:   *meta,
		create: func(string) (io.WriteCloser, error) { return target, nil },
	}
	code := cmd.Run([]string{"-log-level=off", "-o", filepath.Join(dir, "out.html"), tmpl})
	must.Eq(t, 1, code)
	must.Eq(t, "static", target.String())
	must.StrContains(t, ui.ErrorWriter.String(), "Error writing output: disk full")
}

func TestRenderCommand_Config(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "p.xml", `<tpl><p>$ @</p></tpl>`)
	config := writeFile(t, dir, "config.yaml", "root_tag: tpl\nmarker: $\nlog_level: off\n")
	script := writeFile(t, dir, "in.yaml", "- x\n")

	meta, ui, out := testMeta(t)
	cmd := &RenderCommand{Meta: *meta}
	code := cmd.Run([]string{"-config", config, "-input", script, tmpl})
	must.Eq(t, 0, code, must.Sprint(ui.ErrorWriter.String()))
	must.Eq(t, `<p>x @</p>`, out.String())
}

func TestRenderCommand_Metrics(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "p.xml", `<r>static</r>`)

	meta, ui, _ := testMeta(t)
	cmd := &RenderCommand{Meta: *meta}
	code := cmd.Run([]string{"-log-level=off", "-metrics", tmpl})
	must.Eq(t, 0, code)
	must.StrContains(t, ui.ErrorWriter.String(), "templatizer.render")
	must.StrContains(t, ui.ErrorWriter.String(), "templatizer.compile")
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "p.xml", `<r><p>@</p></r>`)
	badScript := writeFile(t, dir, "bad.yaml", "- control: sideways\n")
	badConfig := writeFile(t, dir, "bad-config.yaml", "max_include_depth: -1\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no args", args: nil, wantErr: "takes one argument"},
		{name: "unknown flag", args: []string{"-bogus", tmpl}, wantErr: "flag provided but not defined"},
		{name: "exhausted input", args: []string{tmpl}, wantErr: "Error rendering template: input exhausted"},
		{name: "missing template", args: []string{filepath.Join(dir, "none.xml")}, wantErr: "Error compiling template"},
		{name: "bad script", args: []string{"-input", badScript, tmpl}, wantErr: "Error reading input"},
		{name: "bad config", args: []string{"-config", badConfig, tmpl}, wantErr: "max include depth must be positive"},
		{name: "bad log level", args: []string{"-log-level=loud", tmpl}, wantErr: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, ui, _ := testMeta(t)
			cmd := &RenderCommand{Meta: *meta}
			must.Eq(t, 1, cmd.Run(append([]string{"-log-level=off"}, tt.args...)))
			must.StrContains(t, ui.ErrorWriter.String(), tt.wantErr)
		})
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", `<r><if><a href="@">@</a></if></r>`)
	bad := writeFile(t, dir, "bad.xml", `<r><p></r>`)

	meta, ui, _ := testMeta(t)
	cmd := &CheckCommand{Meta: *meta}
	must.Eq(t, 0, cmd.Run([]string{"-log-level=off", good}))
	must.StrContains(t, ui.OutputWriter.String(), "good.xml: ok (")
	must.StrContains(t, ui.OutputWriter.String(), "2 placeholders, 1 directives")

	meta, ui, _ = testMeta(t)
	cmd = &CheckCommand{Meta: *meta}
	must.Eq(t, 1, cmd.Run([]string{"-log-level=off", good, bad, filepath.Join(dir, "none.xml")}))
	must.StrContains(t, ui.ErrorWriter.String(), "2 errors occurred")
	must.StrContains(t, ui.ErrorWriter.String(), "parse error")
	must.StrContains(t, ui.ErrorWriter.String(), "i/o error")

	meta, ui, _ = testMeta(t)
	cmd = &CheckCommand{Meta: *meta}
	must.Eq(t, 1, cmd.Run(nil))
	must.StrContains(t, ui.ErrorWriter.String(), "at least one argument")
}

func TestVersionCommand(t *testing.T) {
	meta, ui, _ := testMeta(t)
	cmd := &VersionCommand{Meta: *meta}
	must.Eq(t, 0, cmd.Run(nil))
	must.Eq(t, "templatizer v"+Version+"\n", ui.OutputWriter.String())
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	must.Eq(t, 0, Run([]string{"version"}, &stdout, &stderr))
	must.StrContains(t, stdout.String(), Version)

	stdout.Reset()
	stderr.Reset()
	must.Eq(t, 127, Run([]string{"frobnicate"}, &stdout, &stderr))
	must.StrContains(t, stderr.String(), "render")
}

func TestCommands_HaveHelp(t *testing.T) {
	meta, _, _ := testMeta(t)
	for name, factory := range Commands(meta) {
		cmd, err := factory()
		must.NoError(t, err)
		must.StrContains(t, cmd.Help(), "Usage: templatizer "+name)
		must.NotEq(t, "", cmd.Synopsis())
	}
}
