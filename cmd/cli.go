// Package cmd implements the command line interface for gqldoc.
package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type option func(*CommandLine)

// WithFS configures the underlying afero.FS used to read/write files.
func WithFS(fs afero.Fs) option {
	return func(c *CommandLine) {
		c.fs = fs
	}
}

// WithHTTPClient configures the client used to introspect HTTP endpoints.
func WithHTTPClient(client *http.Client) option {
	return func(c *CommandLine) {
		c.client = client
	}
}

// WithOutput configures where command output, e.g. the version, is written.
func WithOutput(w io.Writer) option {
	return func(c *CommandLine) {
		c.out = w
	}
}

// CommandLine is the gqldoc command line interface.
type CommandLine struct {
	fs     afero.Fs
	client *http.Client
	out    io.Writer

	cmds []cmder
}

type cmder interface {
	getCommand() *cobra.Command
}

type baseCmd struct {
	*cobra.Command
}

func (cmd *baseCmd) getCommand() *cobra.Command { return cmd.Command }

func (c *CommandLine) addCommand(cmds ...cmder) *CommandLine {
	c.cmds = append(c.cmds, cmds...)
	return c
}

func (c *CommandLine) build() *cobra.Command {
	cmd := c.newRootCmd()
	for _, cmdr := range c.cmds {
		cmd.AddCommand(cmdr.getCommand())
	}

	cmd.SetOut(c.out)
	return cmd.Command
}

// NewCLI returns a CommandLine implementation.
func NewCLI(opts ...option) (c *CommandLine) {
	c = new(CommandLine)

	for _, opt := range opts {
		opt(c)
	}

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.out == nil {
		c.out = os.Stdout
	}

	return
}

func wrapPanic(err error, stack []byte) error {
	return fmt.Errorf("gqldoc: recovered from unexpected panic: %w\n\n%s", err, stack)
}

// Run executes gqldoc with the given os.Args like arguments.
func (c *CommandLine) Run(args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()

			rerr, ok := r.(error)
			if ok {
				err = wrapPanic(rerr, stack)
				return
			}

			err = wrapPanic(fmt.Errorf("%#v", r), stack)
		}
	}()

	c.cmds = c.cmds[:0]
	cmd := c.addCommand(c.newVersionCmd()).build()

	cmd.SetArgs(args[1:])
	return cmd.Execute()
}
