package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/gqlc/gqldoc/cmd"
)

var cli *cmd.CommandLine

func init() {
	cli = cmd.NewCLI()
}

func main() {
	if err := cli.Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
