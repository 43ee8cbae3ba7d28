package main

import "strings"

// VersionCommand prints the release.
type VersionCommand struct {
	Meta
}

func (c *VersionCommand) Help() string {
	helpText := `
Usage: templatizer version

  Prints the templatizer version.
`
	return strings.TrimSpace(helpText)
}

func (c *VersionCommand) Synopsis() string {
	return "Print the templatizer version"
}

func (c *VersionCommand) Run(_ []string) int {
	c.Ui.Output("templatizer v" + Version)
	return 0
}
