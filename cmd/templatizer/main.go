package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/cli"
)

// Version is the templatizer release.
const Version = "0.1.0"

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line args and returns the exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	meta := &Meta{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      stdout,
			ErrorWriter: stderr,
		},
		Out:    stdout,
		ErrOut: stderr,
		In:     os.Stdin,
	}

	c := cli.NewCLI("templatizer", Version)
	c.Args = args
	c.Commands = Commands(meta)
	c.HelpWriter = stderr

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(stderr, "Error executing CLI: %s\n", err)
		return 1
	}
	return exitCode
}

// Commands returns the mapping of CLI commands.
func Commands(meta *Meta) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"render": func() (cli.Command, error) {
			return &RenderCommand{Meta: *meta}, nil
		},
		"check": func() (cli.Command, error) {
			return &CheckCommand{Meta: *meta}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{Meta: *meta}, nil
		},
	}
}
