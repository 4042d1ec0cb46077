// write.go lays out rendered documentation as files.

package gen

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gqlc/gqldoc/doc"
	"github.com/gqlc/gqldoc/schema"
)

const (
	// DefaultFilename is the name of the single documentation file.
	DefaultFilename = "schema.md"

	// SDLFilename is the name of the schema written with Options.SDL.
	SDLFilename = "schema.graphql"
)

// Output formats of a File.
const (
	Markdown = "markdown"
	HTML     = "html"
	SDL      = "sdl"
)

// Options contains the options for laying out documentation.
type Options struct {
	// Multi writes one file per category, instead of a single document.
	Multi bool `yaml:"multi"`

	// Filename overrides DefaultFilename in single file mode.
	Filename string `yaml:"filename"`

	// Title is written as the top-level heading of the single document.
	Title string `yaml:"title"`

	// ToC adds a table of contents to the single document.
	ToC bool `yaml:"toc"`

	// HTML renders every markdown file to HTML as well.
	HTML bool `yaml:"html"`

	// SDL additionally writes the schema as GraphQL SDL.
	SDL bool `yaml:"sdl"`

	// FrontMatter is a text/template executed at the top of every
	// markdown file. Its data is a FrontMatter.
	FrontMatter string `yaml:"-"`

	// Vars are passed through to the front matter template.
	Vars map[string]string `yaml:"vars"`
}

// FrontMatter is the data the front matter template is executed with.
type FrontMatter struct {
	Title string

	// Category is empty for the single document.
	Category string

	Vars map[string]string
}

// File is a single output file.
type File struct {
	Name    string
	Format  string
	Content []byte
}

// page is a markdown file before front matter is added.
type page struct {
	name string
	data FrontMatter
	body []byte
}

// Files lays out r, the rendered documentation of d, as files.
func Files(d *schema.Document, r *doc.Result, opts Options) ([]File, error) {
	fm, err := parseFrontMatter(opts.FrontMatter)
	if err != nil {
		return nil, err
	}

	pages, err := layout(r, opts)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, 2*len(pages)+1)
	for _, p := range pages {
		f, err := markdownFile(p, fm)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	if opts.HTML {
		for _, p := range pages {
			var b bytes.Buffer
			if err = doc.RenderHTML(&b, p.body); err != nil {
				return nil, GeneratorError{File: p.name, Format: HTML, Msg: err.Error()}
			}

			name := strings.TrimSuffix(p.name, filepath.Ext(p.name)) + ".html"
			files = append(files, File{Name: name, Format: HTML, Content: b.Bytes()})
		}
	}

	if opts.SDL {
		var b bytes.Buffer
		schema.WriteSDL(&b, d)
		files = append(files, File{Name: SDLFilename, Format: SDL, Content: b.Bytes()})
	}
	return files, nil
}

func layout(r *doc.Result, opts Options) ([]page, error) {
	if opts.Multi {
		pages := make([]page, 0, len(r.Sections))
		for _, cat := range r.Categories() {
			pages = append(pages, page{
				name: cat.Slug() + ".md",
				data: FrontMatter{Title: opts.Title, Category: cat.String(), Vars: opts.Vars},
				body: []byte(r.Fragment(cat)),
			})
		}
		return pages, nil
	}

	name := opts.Filename
	if name == "" {
		name = DefaultFilename
	}

	var body bytes.Buffer
	if opts.Title != "" {
		body.WriteString("# ")
		body.WriteString(opts.Title)
		body.WriteString("\n\n")
	}
	if opts.ToC {
		if _, err := doc.WriteToC(&body, r); err != nil {
			return nil, err
		}
	}
	body.WriteString(r.Document)

	return []page{{
		name: name,
		data: FrontMatter{Title: opts.Title, Vars: opts.Vars},
		body: body.Bytes(),
	}}, nil
}

// Write writes the documentation to the GeneratorContext of ctx.
// Every file is laid out before the first one is opened.
//
func Write(ctx context.Context, d *schema.Document, r *doc.Result, opts Options) error {
	gCtx := Context(ctx)
	if gCtx == nil {
		return errors.New("gen: context is missing a GeneratorContext")
	}

	files, err := Files(d, r, opts)
	if err != nil {
		return err
	}

	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = writeFile(gCtx, f); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(gCtx GeneratorContext, f File) (err error) {
	defer func() {
		if err != nil {
			err = GeneratorError{File: f.Name, Format: f.Format, Msg: err.Error()}
		}
	}()

	w, err := gCtx.Open(f.Name)
	if err != nil {
		return err
	}

	_, err = w.Write(f.Content)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return
}

func parseFrontMatter(text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	t, err := template.New("front-matter").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, GeneratorError{Format: Markdown, Msg: err.Error()}
	}
	return t, nil
}

func markdownFile(p page, fm *template.Template) (File, error) {
	f := File{Name: p.name, Format: Markdown}
	if fm == nil {
		f.Content = p.body
		return f, nil
	}

	var b bytes.Buffer
	if err := fm.Execute(&b, p.data); err != nil {
		return f, GeneratorError{File: p.name, Format: Markdown, Msg: err.Error()}
	}
	if b.Len() > 0 && b.Bytes()[b.Len()-1] != '\n' {
		b.WriteByte('\n')
	}
	b.Write(p.body)

	f.Content = b.Bytes()
	return f, nil
}
