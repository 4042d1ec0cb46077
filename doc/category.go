package doc

import (
	"fmt"
	"strings"

	"github.com/gqlc/gqldoc/schema"
)

// Category is the documentation section a type is rendered into.
type Category uint8

// The order of the constants is the order categories appear in a document.
const (
	Queries Category = iota
	Mutations
	Subscriptions
	Objects
	Inputs
	Interfaces
	Enums
	Unions
	Scalars
)

// Categories lists every Category in document order.
var Categories = []Category{
	Queries,
	Mutations,
	Subscriptions,
	Objects,
	Inputs,
	Interfaces,
	Enums,
	Unions,
	Scalars,
}

var categoryNames = [...]string{
	Queries:       "Queries",
	Mutations:     "Mutations",
	Subscriptions: "Subscriptions",
	Objects:       "Objects",
	Inputs:        "Inputs",
	Interfaces:    "Interfaces",
	Enums:         "Enums",
	Unions:        "Unions",
	Scalars:       "Scalars",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Slug returns the lower case form of c, e.g. "queries".
func (c Category) Slug() string { return strings.ToLower(c.String()) }

// ParseCategory returns the Category named s, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("doc: unknown category: %s", s)
}

// Classify returns the Category def is documented under.
//
// Root operation types are OBJECTs but are matched by name first,
// so they never end up in Objects.
//
func Classify(def *schema.TypeDefinition, roots schema.Roots) (Category, error) {
	switch {
	case def.Name == roots.Query:
		return Queries, nil
	case roots.Mutation != "" && def.Name == roots.Mutation:
		return Mutations, nil
	case roots.Subscription != "" && def.Name == roots.Subscription:
		return Subscriptions, nil
	}

	switch def.Kind {
	case schema.Object:
		return Objects, nil
	case schema.InputObject:
		return Inputs, nil
	case schema.Interface:
		return Interfaces, nil
	case schema.Enum:
		return Enums, nil
	case schema.Union:
		return Unions, nil
	case schema.Scalar:
		return Scalars, nil
	}
	return 0, RenderError{Type: def.Name, Msg: fmt.Sprintf("no category for kind: %s", def.Kind)}
}

// RenderError represents a type that could not be rendered.
type RenderError struct {
	// Category is the section being rendered, if known.
	Category string

	// Type is the name of the offending type.
	Type string

	Msg string
}

func (e RenderError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("doc: render error in %s: %s", e.Type, e.Msg)
	}
	return fmt.Sprintf("doc: render error in %s:%s %s", e.Category, e.Type, e.Msg)
}
