package main

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// CheckCommand compiles templates without rendering them.
type CheckCommand struct {
	Meta
}

func (c *CheckCommand) Help() string {
	helpText := `
Usage: templatizer check [options] <template>...

  Compiles each template, following includes and resolving directives,
  and reports its placeholder and directive counts. Exits non-zero if any
  template fails to compile.

General Options:

` + generalOptionsUsage()
	return strings.TrimSpace(helpText)
}

func (c *CheckCommand) Synopsis() string {
	return "Validate templates"
}

func (c *CheckCommand) Name() string { return "check" }

func (c *CheckCommand) Run(args []string) int {
	flags := c.Meta.FlagSet(c.Name())
	if err := flags.Parse(args); err != nil {
		c.Ui.Error(err.Error())
		c.Ui.Error(c.Help())
		return 1
	}

	if args = flags.Args(); len(args) == 0 {
		c.Ui.Error("This command takes at least one argument: <template>")
		return 1
	}

	engine, _, err := c.Meta.Engine()
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error loading configuration: %s", err))
		return 1
	}
	defer c.Meta.DumpMetrics()

	var result *multierror.Error
	for _, path := range args {
		tmpl, err := engine.CompileFile(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		c.Ui.Output(fmt.Sprintf("%s: ok (%d nodes, %d placeholders, %d directives)",
			path, tmpl.Len(), tmpl.Placeholders(), tmpl.Directives()))
	}

	if err := result.ErrorOrNil(); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	return 0
}
