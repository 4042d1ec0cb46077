package doc

import (
	"bytes"
	"io"
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	mdOnce sync.Once
	md     goldmark.Markdown
	policy *bluemonday.Policy
)

func markdown() (goldmark.Markdown, *bluemonday.Policy) {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		)

		policy = bluemonday.UGCPolicy()
	})
	return md, policy
}

// headingIDs generates heading ids the same way WriteToC links to them.
// Repeated ids get a numeric suffix.
//
type headingIDs map[string]bool

func (ids headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	id := anchor(string(value))
	if id == "" {
		id = "heading"
	}
	if !ids[id] {
		ids[id] = true
		return []byte(id)
	}

	for i := 1; ; i++ {
		next := id + "-" + strconv.Itoa(i)
		if !ids[next] {
			ids[next] = true
			return []byte(next)
		}
	}
}

func (ids headingIDs) Put(value []byte) { ids[string(value)] = true }

// RenderHTML converts the markdown src to sanitized HTML.
func RenderHTML(w io.Writer, src []byte) error {
	md, p := markdown()

	var b bytes.Buffer
	pctx := parser.NewContext(parser.WithIDs(make(headingIDs)))
	if err := md.Convert(src, &b, parser.WithContext(pctx)); err != nil {
		return err
	}

	_, err := p.SanitizeReader(&b).WriteTo(w)
	return err
}
