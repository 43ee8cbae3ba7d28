package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benjaminschreck/go-templatizer/pkg/templatizer"
)

// RenderCommand renders one template against an input script.
type RenderCommand struct {
	Meta

	// create opens the -o target. Defaults to os.Create.
	create func(path string) (io.WriteCloser, error)
}

func (c *RenderCommand) Help() string {
	helpText := `
Usage: templatizer render [options] <template>

  Compiles the template and renders it against the input stream read from
  a YAML script. Each entry is consumed in order by the next placeholder
  or directive the renderer reaches.

  - control: enter
  - text: first
  - control: stop

Render Options:

  -input=<path>
    Input script. Use "-" to read it from stdin. Without it the template
    must not consume any input.

  -o=<path>
    Write the output to path instead of stdout.

General Options:

` + generalOptionsUsage()
	return strings.TrimSpace(helpText)
}

func (c *RenderCommand) Synopsis() string {
	return "Render a template against an input script"
}

func (c *RenderCommand) Name() string { return "render" }

func (c *RenderCommand) Run(args []string) int {
	var inputPath, outPath string

	flags := c.Meta.FlagSet(c.Name())
	flags.StringVar(&inputPath, "input", "", "")
	flags.StringVar(&outPath, "o", "", "")
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}

	if args = flags.Args(); len(args) != 1 {
		c.Ui.Error("This command takes one argument: <template>")
		return 1
	}

	engine, logger, err := c.Meta.Engine()
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error loading configuration: %s", err))
		return 1
	}
	defer c.Meta.DumpMetrics()

	in, err := c.loadInput(inputPath)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error reading input: %s", err))
		return 1
	}

	tmpl, err := engine.CompileFile(args[0])
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error compiling template: %s", err))
		return 1
	}

	if outPath == "" {
		logger.Debug("rendering", "template", tmpl.Path(), "input", in.Len())
		if err := tmpl.Render(c.Meta.Out, in); err != nil {
			c.Ui.Error(fmt.Sprintf("Error rendering template: %s", err))
			return 1
		}
		return 0
	}

	create := c.create
	if create == nil {
		create = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	}
	f, err := create(outPath)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error creating output: %s", err))
		return 1
	}

	logger.Debug("rendering", "template", tmpl.Path(), "input", in.Len(), "output", outPath)
	renderErr := tmpl.Render(f, in)
	closeErr := f.Close()
	if renderErr != nil {
		c.Ui.Error(fmt.Sprintf("Error rendering template: %s", renderErr))
		return 1
	}
	if closeErr != nil {
		c.Ui.Error(fmt.Sprintf("Error writing output: %s", closeErr))
		return 1
	}
	return 0
}

func (c *RenderCommand) loadInput(path string) (*templatizer.Channel, error) {
	switch path {
	case "":
		return templatizer.NewChannel(), nil
	case "-":
		var r io.Reader = os.Stdin
		if c.Meta.In != nil {
			r = c.Meta.In
		}
		return templatizer.ParseScript(r)
	default:
		return templatizer.LoadScriptFile(path)
	}
}
