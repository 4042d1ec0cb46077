package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gqlc/gqldoc/doc"
	"github.com/gqlc/gqldoc/gen"
	"github.com/gqlc/gqldoc/schema"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	outputGroup = "output"
	groupKey    = "group"
)

type rootCmd struct {
	*baseCmd

	fs     afero.Fs
	client *http.Client

	source      string
	outDir      string
	headers     http.Header
	frontMatter string
	timeout     time.Duration
	check       bool

	docOpts doc.Options
	genOpts gen.Options
}

func (c *CommandLine) newRootCmd() *rootCmd {
	r := &rootCmd{
		fs:     c.fs,
		client: c.client,
	}

	cmd := &cobra.Command{
		Use:   "gqldoc [flags] source",
		Short: "Generate markdown documentation for a GraphQL schema",
		Long: `gqldoc generates markdown documentation for a GraphQL schema.

The schema source can be either:
	1) an http(s):// or ws(s):// GraphQL endpoint, which is introspected
	2) a .json file containing an introspection result
	3) a .graphql or .gql file containing the schema SDL

Types are documented in sections: queries, mutations, subscriptions,
objects, inputs, interfaces, enums, unions and scalars.`,
		Example:       "gqldoc -H \"Authorization: Bearer $TOKEN\" --multi -o ./docs https://example.com/graphql",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	r.baseCmd = &baseCmd{Command: cmd}

	fs := cmd.Flags()
	fs.VarP(newHeaderFlag(&r.headers), "header", "H", `Specify an HTTP header to introspect with, as
key=value or "Key: Value". May be specified
multiple times. Values may reference
environment variables, e.g. $TOKEN.`)
	fs.DurationVar(&r.timeout, "timeout", 30*time.Second, "Introspection timeout")
	fs.String("config", "", "Read flag values from a YAML file")
	fs.String("env-file", "", "Load environment variables from a dotenv file (default .env, if present)")
	fs.BoolP("verbose", "v", false, "Output logging")

	fs.StringVarP(&r.outDir, "out", "o", ".", "Directory to write documentation to")
	fs.BoolVar(&r.genOpts.Multi, "multi", false, "Write one file per category instead of a single file")
	fs.StringVar(&r.genOpts.Filename, "filename", gen.DefaultFilename, "Name of the single documentation file")
	fs.StringVar(&r.genOpts.Title, "title", "", "Title of the documentation")
	fs.BoolVar(&r.genOpts.ToC, "toc", false, "Add a table of contents to the single documentation file")
	fs.BoolVar(&r.genOpts.HTML, "html", false, "Also render every markdown file to HTML")
	fs.BoolVar(&r.genOpts.SDL, "sdl", false, "Also write the schema as GraphQL SDL to "+gen.SDLFilename)
	fs.StringVar(&r.frontMatter, "front-matter", "", "Template file of front matter to prepend to every markdown file")
	fs.Var(newVarFlag(&r.genOpts.Vars), "var", "Set a front matter variable as key=value. May be specified multiple times.")
	fs.BoolVar(&r.docOpts.Sort, "sort", false, "Sort types alphabetically within each category")
	fs.BoolVar(&r.docOpts.SkipBuiltins, "skip-builtins", false, "Leave out the built-in scalars")
	fs.BoolVar(&r.check, "check", false, "Check the documentation in the output directory is up to date, without writing")

	for _, name := range []string{"out", "multi", "filename", "title", "toc", "html", "sdl", "front-matter", "var", "sort", "skip-builtins", "check"} {
		fs.SetAnnotation(name, groupKey, []string{outputGroup})
	}

	cmd.SetUsageTemplate(usageTmpl)
	cmd.PreRunE = chainPreRunEs(
		initLogger,
		loadEnv(r.fs),
		loadConfig(r.fs, &r.source),
		validateSource(&r.source),
		initOutDir(r.fs, &r.outDir),
	)
	cmd.RunE = r.run

	return r
}

type genCtx struct {
	fs  afero.Fs
	dir string
}

func (ctx *genCtx) Open(name string) (io.WriteCloser, error) {
	return ctx.fs.OpenFile(filepath.Join(ctx.dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func (r *rootCmd) run(cmd *cobra.Command, args []string) (err error) {
	defer zap.L().Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), r.timeout)
	defer cancel()

	d, err := r.load(ctx)
	if err != nil {
		return
	}
	zap.L().Info("loaded schema", zap.String("source", r.source), zap.Int("types", d.Len()))

	res, err := doc.Render(ctx, d, r.docOpts)
	if err != nil {
		return
	}

	if r.frontMatter != "" {
		b, err := afero.ReadFile(r.fs, r.frontMatter)
		if err != nil {
			return err
		}
		r.genOpts.FrontMatter = string(b)
	}

	if r.check {
		files, err := gen.Files(d, res, r.genOpts)
		if err != nil {
			return err
		}
		return gen.Check(r.fs, r.outDir, files)
	}

	zap.L().Info("writing documentation", zap.String("dir", r.outDir), zap.Bool("multi", r.genOpts.Multi))
	return gen.Write(gen.WithContext(ctx, &genCtx{fs: r.fs, dir: r.outDir}), d, res, r.genOpts)
}

// load loads the schema from its source.
func (r *rootCmd) load(ctx context.Context) (*schema.Document, error) {
	switch kindOf(r.source) {
	case httpSource, wsSource:
		u, err := url.Parse(r.source)
		if err != nil {
			return nil, err
		}

		var data []byte
		if kindOf(r.source) == httpSource {
			data, err = introspect(ctx, r.client, u, r.headers)
		} else {
			data, err = introspectWS(ctx, u, r.headers)
		}
		if err != nil {
			return nil, err
		}
		return schema.Decode(data)
	case jsonSource:
		f, err := r.fs.Open(r.source)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return schema.DecodeReader(f)
	case sdlSource:
		b, err := afero.ReadFile(r.fs, r.source)
		if err != nil {
			return nil, err
		}
		return schema.LoadSDL(filepath.Base(r.source), string(b))
	}
	return nil, fmt.Errorf("gqldoc: unsupported schema source: %s", r.source)
}
