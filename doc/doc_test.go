package doc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gqlc/gqldoc/schema"
)

func str(s string) *string { return &s }

// line returns the first line of s containing sub.
func line(s, sub string) string {
	for _, l := range strings.Split(s, "\n") {
		if strings.Contains(l, sub) {
			return l
		}
	}
	return ""
}

func TestClassify(t *testing.T) {
	roots := schema.Roots{Query: "Query", Mutation: "Mutation", Subscription: "Subscription"}

	testCases := []struct {
		Name string
		Def  *schema.TypeDefinition
		Cat  Category
		Err  bool
	}{
		{Name: "QueryRoot", Def: &schema.TypeDefinition{Name: "Query", Kind: schema.Object}, Cat: Queries},
		{Name: "MutationRoot", Def: &schema.TypeDefinition{Name: "Mutation", Kind: schema.Object}, Cat: Mutations},
		{Name: "SubscriptionRoot", Def: &schema.TypeDefinition{Name: "Subscription", Kind: schema.Object}, Cat: Subscriptions},
		{Name: "Object", Def: &schema.TypeDefinition{Name: "User", Kind: schema.Object}, Cat: Objects},
		{Name: "Input", Def: &schema.TypeDefinition{Name: "UserInput", Kind: schema.InputObject}, Cat: Inputs},
		{Name: "Interface", Def: &schema.TypeDefinition{Name: "Node", Kind: schema.Interface}, Cat: Interfaces},
		{Name: "Enum", Def: &schema.TypeDefinition{Name: "Role", Kind: schema.Enum}, Cat: Enums},
		{Name: "Union", Def: &schema.TypeDefinition{Name: "Result", Kind: schema.Union}, Cat: Unions},
		{Name: "Scalar", Def: &schema.TypeDefinition{Name: "Time", Kind: schema.Scalar}, Cat: Scalars},
		{Name: "UnknownKind", Def: &schema.TypeDefinition{Name: "Odd", Kind: "LIST"}, Err: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			cat, err := Classify(testCase.Def, roots)
			if testCase.Err {
				var rerr RenderError
				if !errors.As(err, &rerr) {
					subT.Errorf("expected a RenderError, but got: %v", err)
				}
				return
			}
			if err != nil {
				subT.Error(err)
				return
			}

			if cat != testCase.Cat {
				subT.Errorf("mismatched categories: %s:%s", testCase.Cat, cat)
			}
		})
	}

	t.Run("NoMutationRoot", func(subT *testing.T) {
		cat, err := Classify(&schema.TypeDefinition{Name: "Mutation", Kind: schema.Object}, schema.Roots{Query: "Query"})
		if err != nil {
			subT.Error(err)
			return
		}
		if cat != Objects {
			subT.Errorf("expected Objects, but got: %s", cat)
		}
	})
}

func TestCategory(t *testing.T) {
	if len(Categories) != 9 {
		t.Fatalf("expected 9 categories, but got: %d", len(Categories))
	}

	for i, c := range Categories {
		if int(c) != i {
			t.Errorf("category %s is out of order", c)
		}

		p, err := ParseCategory(strings.ToUpper(c.Slug()))
		if err != nil {
			t.Error(err)
			continue
		}
		if p != c {
			t.Errorf("mismatched categories: %s:%s", c, p)
		}
	}

	if _, err := ParseCategory("directives"); err == nil {
		t.Error("expected an error for an unknown category")
	}
}

func TestGenerator_Scalar(t *testing.T) {
	var g Generator
	s, err := g.Render(Scalars, []*schema.TypeDefinition{
		{Name: "Time", Kind: schema.Scalar, Description: "An RFC 3339 timestamp."},
		{Name: "ID", Kind: schema.Scalar},
	})
	if err != nil {
		t.Error(err)
		return
	}

	ex := "### Time\n\nAn RFC 3339 timestamp.\n\n### ID\n"
	if diff := cmp.Diff(ex, s); diff != "" {
		t.Errorf("mismatched fragments (-want +got):\n%s", diff)
	}
}

func TestGenerator_Union(t *testing.T) {
	var g Generator
	s, err := g.Render(Unions, []*schema.TypeDefinition{
		{Name: "SearchResult", Kind: schema.Union, PossibleTypes: []string{"User", "Bot"}},
	})
	if err != nil {
		t.Error(err)
		return
	}

	ex := "### SearchResult\n\n*Possible Types*: User, Bot\n"
	if diff := cmp.Diff(ex, s); diff != "" {
		t.Errorf("mismatched fragments (-want +got):\n%s", diff)
	}
}

func TestGenerator_Object(t *testing.T) {
	var g Generator
	s, err := g.Render(Objects, []*schema.TypeDefinition{
		{
			Name:        "User",
			Kind:        schema.Object,
			Description: "A user.",
			Interfaces:  []string{"Node", "Entity"},
			Fields: []*schema.Field{
				{Name: "id", Type: schema.NonNull{OfType: schema.Named{Name: "ID"}}},
				{
					Name:        "friends",
					Description: "Friends of the user.\nPaginated.",
					Type:        schema.NonNull{OfType: schema.List{OfType: schema.NonNull{OfType: schema.Named{Name: "User"}}}},
					Args: []*schema.Argument{
						{Name: "first", Type: schema.Named{Name: "Int"}, DefaultValue: str("10")},
						{Name: "after", Type: schema.Named{Name: "String"}},
					},
				},
				{
					Name:              "name",
					Type:              schema.Named{Name: "String"},
					IsDeprecated:      true,
					DeprecationReason: "use X instead",
				},
				{
					Name:         "legacy",
					Type:         schema.Named{Name: "String"},
					IsDeprecated: true,
				},
			},
		},
	})
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.HasPrefix(s, "### User\n\nA user.\n\n*Implements*: Node, Entity\n\n*Fields*:\n\n") {
		t.Errorf("unexpected fragment header:\n%s", s)
	}

	header := line(s, "| Field")
	for _, col := range []string{"Field", "Type", "Arguments", "Description"} {
		if !strings.Contains(header, col) {
			t.Errorf("expected column %s in header: %s", col, header)
		}
	}

	testCases := []struct {
		Name    string
		Row     string
		Want    []string
		NotWant []string
	}{
		{
			Name:    "Plain",
			Row:     "| id ",
			Want:    []string{"`ID!`"},
			NotWant: []string{"Deprecated"},
		},
		{
			Name:    "Args",
			Row:     "| friends ",
			Want:    []string{"`[User!]!`", "`first: Int = 10`, `after: String`", "Friends of the user. Paginated."},
			NotWant: []string{"Deprecated"},
		},
		{
			Name: "Deprecated",
			Row:  "| name ",
			Want: []string{"**Deprecated**: use X instead"},
		},
		{
			Name: "DeprecatedWithoutReason",
			Row:  "| legacy ",
			Want: []string{"**Deprecated**"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			row := line(s, testCase.Row)
			if row == "" {
				subT.Errorf("missing row: %s", testCase.Row)
				return
			}

			for _, w := range testCase.Want {
				if !strings.Contains(row, w) {
					subT.Errorf("expected %q in row: %s", w, row)
				}
			}
			for _, w := range testCase.NotWant {
				if strings.Contains(row, w) {
					subT.Errorf("unexpected %q in row: %s", w, row)
				}
			}
		})
	}
}

func TestGenerator_Interface(t *testing.T) {
	var g Generator
	s, err := g.Render(Interfaces, []*schema.TypeDefinition{
		{
			Name:          "Node",
			Kind:          schema.Interface,
			Fields:        []*schema.Field{{Name: "id", Type: schema.NonNull{OfType: schema.Named{Name: "ID"}}}},
			PossibleTypes: []string{"User", "Bot"},
		},
	})
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.HasSuffix(s, "\n*Implemented by*: User, Bot\n") {
		t.Errorf("expected implementations at the end of the fragment:\n%s", s)
	}
	if strings.Contains(s, "*Implements*") {
		t.Errorf("unexpected interfaces list:\n%s", s)
	}
}

func TestGenerator_Input(t *testing.T) {
	var g Generator
	s, err := g.Render(Inputs, []*schema.TypeDefinition{
		{
			Name: "Filter",
			Kind: schema.InputObject,
			InputFields: []*schema.Argument{
				{Name: "name", Type: schema.Named{Name: "String"}, DefaultValue: str(`"a|b"`), Description: "Name\nfilter"},
				{Name: "limit", Type: schema.NonNull{OfType: schema.Named{Name: "Int"}}},
				{Name: "spaced", Type: schema.Named{Name: "String"}, DefaultValue: str(`"a  b"`)},
				{Name: "tick", Type: schema.Named{Name: "String"}, DefaultValue: str("\"a`b\"")},
			},
		},
	})
	if err != nil {
		t.Error(err)
		return
	}

	header := line(s, "| Field")
	if !strings.Contains(header, "Default") || strings.Contains(header, "Arguments") {
		t.Errorf("unexpected header: %s", header)
	}

	row := line(s, "| name ")
	if !strings.Contains(row, "`\"a\\|b\"`") {
		t.Errorf("expected an escaped default value: %s", row)
	}
	if !strings.Contains(row, "Name filter") {
		t.Errorf("expected a single line description: %s", row)
	}

	if !strings.Contains(line(s, "| limit "), "`Int!`") {
		t.Errorf("expected limit to be Int!:\n%s", s)
	}
	if !strings.Contains(line(s, "| spaced "), "`\"a  b\"`") {
		t.Errorf("expected spaces within the default value to be kept:\n%s", s)
	}
	if !strings.Contains(line(s, "| tick "), "`` \"a`b\" ``") {
		t.Errorf("expected a longer fence around a default value with a backtick:\n%s", s)
	}
}

func TestGenerator_Enum(t *testing.T) {
	var g Generator
	s, err := g.Render(Enums, []*schema.TypeDefinition{
		{
			Name: "Letter",
			Kind: schema.Enum,
			EnumValues: []*schema.EnumValue{
				{Name: "A"},
				{Name: "B", IsDeprecated: true, DeprecationReason: "renamed"},
			},
		},
	})
	if err != nil {
		t.Error(err)
		return
	}

	if !strings.Contains(s, "*Values*:") {
		t.Errorf("expected a values table:\n%s", s)
	}

	a, b := line(s, "`A`"), line(s, "`B`")
	if a == "" || b == "" {
		t.Errorf("expected both values to be rendered:\n%s", s)
		return
	}
	if strings.Contains(a, "Deprecated") {
		t.Errorf("unexpected deprecation marker for A: %s", a)
	}
	if !strings.Contains(b, "**Deprecated**: renamed") {
		t.Errorf("expected deprecation marker for B: %s", b)
	}
}

func TestGenerator_Error(t *testing.T) {
	var g Generator
	_, err := g.Render(Objects, []*schema.TypeDefinition{
		{Name: "Odd", Kind: "NON_NULL"},
	})

	var rerr RenderError
	if !errors.As(err, &rerr) {
		t.Errorf("expected a RenderError, but got: %v", err)
		return
	}

	ex := "doc: render error in Objects:Odd unexpected kind: NON_NULL"
	if err.Error() != ex {
		t.Errorf("mismatched errors: %s:%s", ex, err)
	}
}

func TestCell(t *testing.T) {
	testCases := []struct {
		Name string
		In   string
		Out  string
	}{
		{Name: "Plain", In: "plain", Out: "plain"},
		{Name: "Trim", In: "  padded \n", Out: "padded"},
		{Name: "Newlines", In: "one\ntwo\r\nthree", Out: "one two three"},
		{Name: "Pipes", In: "a | b", Out: `a \| b`},
		{Name: "Empty", In: "", Out: ""},
		{Name: "Spaces", In: "`x: String = \"a  b\"`", Out: "`x: String = \"a  b\"`"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			if out := cell(testCase.In); out != testCase.Out {
				subT.Errorf("mismatched cells: %q:%q", testCase.Out, out)
			}
		})
	}
}

func TestCode(t *testing.T) {
	testCases := []struct {
		Name string
		In   string
		Out  string
	}{
		{Name: "Plain", In: "String!", Out: "`String!`"},
		{Name: "Backtick", In: "\"a`b\"", Out: "`` \"a`b\" ``"},
		{Name: "BacktickRun", In: "a``b`c", Out: "``` a``b`c ```"},
		{Name: "Edge", In: "`a", Out: "`` `a ``"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			if out := code(testCase.In); out != testCase.Out {
				subT.Errorf("mismatched code spans: %q:%q", testCase.Out, out)
			}
		})
	}

	t.Run("Args", func(subT *testing.T) {
		out := printArgs([]*schema.Argument{
			{Name: "q", Type: schema.Named{Name: "String"}, DefaultValue: str("\"`\"")},
		})
		if ex := "`` q: String = \"`\" ``"; out != ex {
			subT.Errorf("mismatched arguments: %q:%q", ex, out)
		}
	})
}

func TestSortTypes(t *testing.T) {
	defs := sortTypes([]*schema.TypeDefinition{{Name: "z"}, {Name: "a"}, {Name: "q"}, {Name: "n"}})

	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
	}

	if diff := cmp.Diff([]string{"a", "n", "q", "z"}, names); diff != "" {
		t.Errorf("mismatched order (-want +got):\n%s", diff)
	}
}
