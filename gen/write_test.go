package gen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gqlc/gqldoc/doc"
	"github.com/gqlc/gqldoc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSDL = `
type Query {
  user(id: ID!): User
}

type Mutation {
  rename(id: ID!, name: String!): User
}

type User {
  id: ID!
  name: String @deprecated(reason: "use handle")
}

enum Role {
  ADMIN
}
`

func render(t *testing.T) (*schema.Document, *doc.Result) {
	t.Helper()

	d, err := schema.LoadSDL("test.graphql", testSDL)
	require.NoError(t, err)

	r, err := doc.Render(context.Background(), d, doc.Options{})
	require.NoError(t, err)
	return d, r
}

func TestContext(t *testing.T) {
	if Context(context.Background()) != nil {
		t.Error("expected no GeneratorContext")
	}

	gCtx := TestCtx{Writer: new(bytes.Buffer)}
	ctx := WithContext(context.Background(), gCtx)
	if Context(ctx) != gCtx {
		t.Error("expected the GeneratorContext to be returned")
	}
}

func TestWrite_Single(t *testing.T) {
	d, r := render(t)

	ctrl := gomock.NewController(t)
	gCtx := NewMockGeneratorContext(ctrl)

	var b bytes.Buffer
	gCtx.EXPECT().Open(DefaultFilename).Return(TestCtx{Writer: &b}, nil)

	err := Write(WithContext(context.Background(), gCtx), d, r, Options{})
	require.NoError(t, err)

	assert.Equal(t, r.Document, b.String())
}

func TestWrite_Multi(t *testing.T) {
	d, r := render(t)

	gCtx := new(MemCtx)
	err := Write(WithContext(context.Background(), gCtx), d, r, Options{Multi: true})
	require.NoError(t, err)

	var names []string
	for name := range gCtx.Files {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"queries.md", "mutations.md", "objects.md", "enums.md", "scalars.md"}, names)

	queries, _ := gCtx.File("queries.md")
	assert.True(t, strings.HasPrefix(queries, "# Queries\n\n### Query\n"))
	assert.NotContains(t, queries, "### User")

	objects, _ := gCtx.File("objects.md")
	assert.Contains(t, objects, "**Deprecated**: use handle")
}

func TestWrite_Options(t *testing.T) {
	d, r := render(t)

	testCases := []struct {
		Name   string
		Opts   Options
		File   string
		Prefix string
		Has    []string
	}{
		{
			Name:   "Title",
			Opts:   Options{Title: "API"},
			File:   DefaultFilename,
			Prefix: "# API\n\n## Queries\n",
		},
		{
			Name:   "Filename",
			Opts:   Options{Filename: "api.md"},
			File:   "api.md",
			Prefix: "## Queries\n",
		},
		{
			Name:   "ToC",
			Opts:   Options{Title: "API", ToC: true},
			File:   DefaultFilename,
			Prefix: "# API\n\n## Table of Contents\n\n- [Queries](#queries)\n\t* [Query](#query)\n",
		},
		{
			Name: "FrontMatter",
			Opts: Options{
				Title:       "API",
				FrontMatter: "---\ntitle: {{ .Title }}\nweight: {{ .Vars.weight }}\n---",
				Vars:        map[string]string{"weight": "10"},
			},
			File:   DefaultFilename,
			Prefix: "---\ntitle: API\nweight: 10\n---\n# API\n\n",
		},
		{
			Name: "FrontMatterPerCategory",
			Opts: Options{
				Multi:       true,
				FrontMatter: "---\ncategory: {{ .Category }}\n---\n",
			},
			File:   "enums.md",
			Prefix: "---\ncategory: Enums\n---\n# Enums\n",
		},
		{
			Name: "HTML",
			Opts: Options{HTML: true, FrontMatter: "---\ntitle: x\n---\n"},
			File: "schema.html",
			Has:  []string{`<h2 id="queries">Queries</h2>`, "<table>"},
		},
		{
			Name: "SDL",
			Opts: Options{SDL: true},
			File: SDLFilename,
			Has:  []string{"type User", "enum Role"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			gCtx := new(MemCtx)
			err := Write(WithContext(context.Background(), gCtx), d, r, testCase.Opts)
			if err != nil {
				subT.Error(err)
				return
			}

			out, ok := gCtx.File(testCase.File)
			if !ok {
				subT.Errorf("expected file: %s", testCase.File)
				return
			}

			if !strings.HasPrefix(out, testCase.Prefix) {
				subT.Errorf("expected prefix %q, but got:\n%s", testCase.Prefix, out)
			}
			for _, s := range testCase.Has {
				assert.Contains(subT, out, s)
			}
			assert.NotContains(subT, out, "title: x")
		})
	}
}

func TestWrite_Errors(t *testing.T) {
	d, r := render(t)

	t.Run("NoContext", func(subT *testing.T) {
		err := Write(context.Background(), d, r, Options{})
		assert.Error(subT, err)
	})

	t.Run("Open", func(subT *testing.T) {
		gCtx := NewMockGeneratorContext(gomock.NewController(subT))
		gCtx.EXPECT().Open(DefaultFilename).Return(nil, errors.New("permission denied"))

		err := Write(WithContext(context.Background(), gCtx), d, r, Options{})

		var gerr GeneratorError
		require.True(subT, errors.As(err, &gerr))
		assert.Equal(subT, DefaultFilename, gerr.File)
		assert.Equal(subT, Markdown, gerr.Format)
		assert.Equal(subT, "gen: error occurred writing markdown:schema.md permission denied", err.Error())
	})

	t.Run("BadFrontMatter", func(subT *testing.T) {
		// Nothing may be opened when the front matter cannot be executed.
		gCtx := NewMockGeneratorContext(gomock.NewController(subT))

		err := Write(WithContext(context.Background(), gCtx), d, r, Options{FrontMatter: "{{ .Vars.missing }}", Vars: map[string]string{}})

		var gerr GeneratorError
		assert.True(subT, errors.As(err, &gerr))
	})

	t.Run("UnparsableFrontMatter", func(subT *testing.T) {
		gCtx := NewMockGeneratorContext(gomock.NewController(subT))

		err := Write(WithContext(context.Background(), gCtx), d, r, Options{FrontMatter: "{{ .Title "})
		assert.Error(subT, err)
	})
}
