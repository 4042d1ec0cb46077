// sort.go sorts type definitions by name

package doc

import (
	"sort"

	"github.com/gqlc/gqldoc/schema"
)

// sortTypes sorts type definitions lexigraphically.
func sortTypes(defs []*schema.TypeDefinition) []*schema.TypeDefinition {
	sort.Sort(typeSlice(defs))
	return defs
}

// typeSlice represents a list of GraphQL type definitions
type typeSlice []*schema.TypeDefinition

func (s typeSlice) Len() int           { return len(s) }
func (s typeSlice) Less(i, j int) bool { return s[i].Name < s[j].Name }
func (s typeSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
