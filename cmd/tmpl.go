package cmd

import (
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const usageTmpl = `Usage:
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{$outflags := filter .LocalFlags "output" true}}{{if gt (len $outflags.FlagUsages) 0}}

Output Flags:
{{$outflags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{$exflags := filter .LocalFlags "output" false}}{{if gt (len $exflags.FlagUsages) 0}}

General Flags:
{{$exflags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasExample}}

Example:
	{{.Example}}{{end}}
`

// filterFlags returns the flags of set which are (or, with ex false,
// are not) annotated with the given group.
//
func filterFlags(set *pflag.FlagSet, group string, ex bool) *pflag.FlagSet {
	fs := new(pflag.FlagSet)
	set.VisitAll(func(flag *pflag.Flag) {
		if inGroup(flag, group) == ex {
			fs.AddFlag(flag)
		}
	})
	return fs
}

func inGroup(flag *pflag.Flag, group string) bool {
	for _, g := range flag.Annotations[groupKey] {
		if g == group {
			return true
		}
	}
	return false
}

func init() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"filter": filterFlags,
	})
}
