// render.go classifies a schema and aggregates the rendered categories.

package doc

import (
	"context"
	"strings"

	"github.com/gqlc/gqldoc/schema"
	"golang.org/x/sync/errgroup"
)

// Options contains the options for rendering a schema.
type Options struct {
	// Sort renders types alphabetically within each category,
	// instead of in the order the schema lists them.
	Sort bool `json:"sort" yaml:"sort"`

	// SkipBuiltins leaves the built-in scalars out of Scalars.
	SkipBuiltins bool `json:"skipBuiltins" yaml:"skip-builtins"`
}

// Result is the rendered documentation of a schema.
type Result struct {
	// Sections maps each non-empty category to its fragment.
	Sections map[Category]string

	// Names lists the types rendered in each non-empty category,
	// in the order they were rendered.
	Names map[Category][]string

	// Document is every section concatenated in category order,
	// each under a "## <Category>" heading.
	Document string
}

// Categories returns the non-empty categories of r in document order.
func (r *Result) Categories() []Category {
	cats := make([]Category, 0, len(r.Sections))
	for _, c := range Categories {
		if _, ok := r.Sections[c]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}

// Render classifies every type of d and renders each non-empty category.
// Categories are rendered concurrently, but the Result does not depend
// on the order they complete in.
//
func Render(ctx context.Context, d *schema.Document, opts Options) (*Result, error) {
	groups := make(map[Category][]*schema.TypeDefinition, len(Categories))
	for _, def := range d.Types() {
		if opts.SkipBuiltins && def.Kind == schema.Scalar && schema.IsBuiltinScalar(def.Name) {
			continue
		}

		cat, err := Classify(def, d.Roots)
		if err != nil {
			return nil, err
		}
		groups[cat] = append(groups[cat], def)
	}

	if opts.Sort {
		for _, defs := range groups {
			sortTypes(defs)
		}
	}

	frags := make([]string, len(Categories))
	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range Categories {
		defs := groups[cat]
		if len(defs) == 0 {
			continue
		}

		cat := cat
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var gen Generator
			s, err := gen.Render(cat, defs)
			if err != nil {
				return err
			}
			frags[cat] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Result{
		Sections: make(map[Category]string, len(groups)),
		Names:    make(map[Category][]string, len(groups)),
	}

	var doc Generator
	for _, cat := range Categories {
		defs := groups[cat]
		if len(defs) == 0 {
			continue
		}

		names := make([]string, len(defs))
		for i, def := range defs {
			names[i] = def.Name
		}
		r.Sections[cat] = frags[cat]
		r.Names[cat] = names

		if doc.Len() > 0 {
			doc.WriteByte('\n')
		}
		doc.writeSectionHeader(cat.String())
		doc.WriteByte('\n')
		doc.WriteString(frags[cat])
	}
	r.Document = doc.String()

	return r, nil
}

// Fragment returns the section of cat prefixed with a top-level
// "# <Category>" heading, as written when every category gets its own file.
//
func (r *Result) Fragment(cat Category) string {
	s, ok := r.Sections[cat]
	if !ok {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString("# ")
	b.WriteString(cat.String())
	b.WriteString("\n\n")
	b.WriteString(s)
	return b.String()
}
