package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func chainPreRunEs(preRunEs ...func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		for i := 0; i < len(preRunEs) && err == nil; i++ {
			err = preRunEs[i](cmd, args)
		}
		return
	}
}

// initLogger replaces the global no-op logger when --verbose is given.
func initLogger(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}

type sourceKind int

const (
	unknownSource sourceKind = iota
	httpSource
	wsSource
	jsonSource
	sdlSource
)

// kindOf returns what kind of schema source src is.
func kindOf(src string) sourceKind {
	if u, err := url.Parse(src); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return httpSource
		case "ws", "wss":
			return wsSource
		}
	}

	switch strings.ToLower(filepath.Ext(src)) {
	case ".json":
		return jsonSource
	case ".graphql", ".gql":
		return sdlSource
	}
	return unknownSource
}

// validateSource validates that a single, supported schema source is provided.
func validateSource(source *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if *source == "" {
			return fmt.Errorf("gqldoc: a schema source must be provided")
		}

		if kindOf(*source) == unknownSource {
			return fmt.Errorf("gqldoc: unsupported schema source: %s", *source)
		}
		return nil
	}
}

// initOutDir initializes the directory documentation is written to.
func initOutDir(fs afero.Fs, dir *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if check, _ := cmd.Flags().GetBool("check"); check {
			return nil
		}

		zap.S().Info("creating directory:", *dir)
		return fs.MkdirAll(*dir, os.ModePerm)
	}
}
