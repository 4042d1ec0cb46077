package doc

import (
	"io"
	"strings"
	"unicode"
)

var listTok = [...]string{"-", "*"}

// WriteToC writes a table of contents linking every category of r,
// and every type within it, to the headings of r.Document.
//
func WriteToC(w io.Writer, r *Result) (int64, error) {
	var g Generator
	g.Reset()

	g.P("## Table of Contents")
	g.WriteByte('\n')
	for _, cat := range r.Categories() {
		g.writeToCEntry(cat.String())

		g.In()
		for _, name := range r.Names[cat] {
			g.writeToCEntry(name)
		}
		g.Out()
	}
	g.WriteByte('\n')

	return g.WriteTo(w)
}

func (g *Generator) writeToCEntry(name string) {
	g.P(listTok[len(g.indent)%2], " [", name, "](#", anchor(name), ")")
}

// anchor returns the anchor of a heading, as GitHub and RenderHTML generate it.
func anchor(heading string) string {
	var b strings.Builder
	b.Grow(len(heading))
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
