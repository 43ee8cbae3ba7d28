package templatizer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/shoenig/test/must"
)

func TestParseScript(t *testing.T) {
	src := `
- control: enter
- text: a
- control: Repeat
- b
- "@"
- text: ""
- control: stop
`
	ch, err := ParseScript(strings.NewReader(src))
	must.NoError(t, err)
	must.Eq(t, []Input{
		Control(Enter),
		FillerText("a"),
		Control(Repeat),
		FillerText("b"),
		FillerText("@"),
		FillerText(""),
		Control(Stop),
	}, ch.Items())
}

func TestParseScript_Empty(t *testing.T) {
	ch, err := ParseScript(strings.NewReader("  \n"))
	must.NoError(t, err)
	must.Eq(t, 0, ch.Len())
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{name: "not a sequence", src: "text: a", wantMsg: "must be a sequence"},
		{name: "bad decision", src: "- control: maybe", wantMsg: `unknown control decision "maybe"`},
		{name: "unknown key", src: "- value: a", wantMsg: `unknown script key "value"`},
		{name: "two keys", src: "- {text: a, control: stop}", wantMsg: "exactly one key"},
		{name: "nested value", src: "- text: [a]", wantMsg: "must be a scalar"},
		{name: "nested sequence", src: "- [a, b]", wantMsg: "string or a mapping"},
		{name: "malformed", src: "- text: [", wantMsg: "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.src))
			must.ErrorIs(t, err, ErrParse)
			must.StrContains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseScript_ErrorLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("- a\n- b\n- control: sideways\n"))
	var pe *ParseError
	must.ErrorAs(t, err, &pe)
	must.Eq(t, 3, pe.Line)
}

func TestLoadScriptFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "input.yaml", "- control: enter\n- hello\n")
	page := writeFile(t, dir, "page.xml", `<r><if><p>@</p></if></r>`)

	in, err := LoadScriptFile(path)
	must.NoError(t, err)

	tmpl, err := testEngine().CompileFile(page)
	must.NoError(t, err)
	got, err := tmpl.RenderString(in)
	must.NoError(t, err)
	must.Eq(t, `<p>hello</p>`, got)
}

func TestLoadScriptFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScriptFile(filepath.Join(dir, "missing.yaml"))
	must.ErrorIs(t, err, ErrIO)

	bad := writeFile(t, dir, "bad.yaml", "- control: nope\n")
	_, err = LoadScriptFile(bad)
	must.ErrorIs(t, err, ErrParse)
	must.StrContains(t, err.Error(), "in '"+bad+"' at line 1")
}
