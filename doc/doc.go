// Package doc contains a CommonMark documentation generator for GraphQL schemas.
package doc

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/gqlc/gqldoc/schema"
)

// Generator renders the markdown fragment of a single Category.
// It is safe for concurrent use, but renders one fragment at a time.
//
type Generator struct {
	sync.Mutex
	bytes.Buffer

	indent []byte
}

// Reset overrides the bytes.Buffer Reset method to assist in cleaning up some Generator state.
func (g *Generator) Reset() {
	g.Buffer.Reset()
	if g.indent == nil {
		g.indent = make([]byte, 0, 2)
	}
	g.indent = g.indent[0:0]
}

// Render renders defs, in the given order, as the fragment for cat.
func (g *Generator) Render(cat Category, defs []*schema.TypeDefinition) (s string, err error) {
	g.Lock()
	defer g.Unlock()
	g.Reset()

	for i, def := range defs {
		if i > 0 {
			g.WriteByte('\n')
		}

		if err = g.generateType(def); err != nil {
			if rerr, ok := err.(RenderError); ok {
				rerr.Category = cat.String()
				err = rerr
			}
			return "", err
		}
	}
	return g.String(), nil
}

func (g *Generator) generateType(def *schema.TypeDefinition) error {
	g.writeTypeHeader(def.Name)
	g.writeDescr(def.Description)

	switch def.Kind {
	case schema.Object:
		g.writeNames("Implements", def.Interfaces)
		return g.generateFields(def)
	case schema.Interface:
		g.writeNames("Implements", def.Interfaces)
		if err := g.generateFields(def); err != nil {
			return err
		}
		g.writeNames("Implemented by", def.PossibleTypes)
	case schema.InputObject:
		return g.generateInputFields(def)
	case schema.Enum:
		return g.generateEnumValues(def)
	case schema.Union:
		g.writeNames("Possible Types", def.PossibleTypes)
	case schema.Scalar:
	default:
		return RenderError{Type: def.Name, Msg: fmt.Sprintf("unexpected kind: %s", def.Kind)}
	}
	return nil
}

func (g *Generator) generateFields(def *schema.TypeDefinition) error {
	if len(def.Fields) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		if f.Type == nil {
			return RenderError{Type: def.Name, Msg: fmt.Sprintf("field %s has no type", f.Name)}
		}

		descr := f.Description
		if f.IsDeprecated {
			descr = joinDescr(descr, deprecated(f.DeprecationReason))
		}
		rows = append(rows, []string{f.Name, code(f.Type.String()), printArgs(f.Args), descr})
	}

	g.WriteByte('\n')
	g.P("*Fields*:")
	g.WriteByte('\n')
	writeTable(g, []string{"Field", "Type", "Arguments", "Description"}, rows)
	return nil
}

func (g *Generator) generateInputFields(def *schema.TypeDefinition) error {
	if len(def.InputFields) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(def.InputFields))
	for _, a := range def.InputFields {
		if a.Type == nil {
			return RenderError{Type: def.Name, Msg: fmt.Sprintf("input field %s has no type", a.Name)}
		}

		var dv string
		if a.DefaultValue != nil {
			dv = code(*a.DefaultValue)
		}
		rows = append(rows, []string{a.Name, code(a.Type.String()), dv, a.Description})
	}

	g.WriteByte('\n')
	g.P("*Fields*:")
	g.WriteByte('\n')
	writeTable(g, []string{"Field", "Type", "Default", "Description"}, rows)
	return nil
}

func (g *Generator) generateEnumValues(def *schema.TypeDefinition) error {
	if len(def.EnumValues) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(def.EnumValues))
	for _, v := range def.EnumValues {
		descr := v.Description
		if v.IsDeprecated {
			descr = joinDescr(descr, deprecated(v.DeprecationReason))
		}
		rows = append(rows, []string{code(v.Name), descr})
	}

	g.WriteByte('\n')
	g.P("*Values*:")
	g.WriteByte('\n')
	writeTable(g, []string{"Value", "Description"}, rows)
	return nil
}

// writeNames writes a labelled, comma separated list of type names.
func (g *Generator) writeNames(label string, names []string) {
	if len(names) == 0 {
		return
	}

	g.WriteByte('\n')
	g.P("*", label, "*: ", strings.Join(names, ", "))
}

func (g *Generator) writeDescr(descr string) {
	descr = strings.TrimSpace(descr)
	if descr == "" {
		return
	}

	g.WriteByte('\n')
	g.P(descr)
}

func (g *Generator) writeSectionHeader(section string) {
	g.WriteByte('#')
	g.WriteByte('#')

	g.WriteByte(' ')
	g.WriteString(section)

	g.WriteByte('\n')
}

func (g *Generator) writeTypeHeader(name string) {
	g.WriteByte('#')
	g.WriteByte('#')
	g.WriteByte('#')

	g.WriteByte(' ')
	g.WriteString(name)

	g.WriteByte('\n')
}

// P prints the arguments to the generated output at the current indentation.
func (g *Generator) P(str ...interface{}) {
	g.Write(g.indent)
	for _, s := range str {
		switch v := s.(type) {
		case string:
			g.WriteString(v)
		case fmt.Stringer:
			g.WriteString(v.String())
		default:
			fmt.Fprint(g, v)
		}
	}
	g.WriteByte('\n')
}

// In increases the indentation level.
func (g *Generator) In() {
	g.indent = append(g.indent, '\t')
}

// Out decreases the indentation level.
func (g *Generator) Out() {
	if len(g.indent) > 0 {
		g.indent = g.indent[:len(g.indent)-1]
	}
}

// printArgs prints field arguments as `name: Type = default`.
func printArgs(args []*schema.Argument) string {
	if len(args) == 0 {
		return ""
	}

	var b, arg strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}

		arg.Reset()
		arg.WriteString(a.Name)
		arg.WriteString(": ")
		if a.Type != nil {
			arg.WriteString(a.Type.String())
		}
		if a.DefaultValue != nil {
			arg.WriteString(" = ")
			arg.WriteString(*a.DefaultValue)
		}
		b.WriteString(code(arg.String()))
	}
	return b.String()
}

func deprecated(reason string) string {
	if reason == "" {
		return "**Deprecated**"
	}
	return "**Deprecated**: " + reason
}

func joinDescr(descr, marker string) string {
	descr = strings.TrimSpace(descr)
	if descr == "" {
		return marker
	}
	return descr + " " + marker
}

// code wraps s in a code span whose fence is longer than any
// backtick run within s.
//
func code(s string) string {
	var n, run int
	for i := 0; i < len(s); i++ {
		if s[i] != '`' {
			run = 0
			continue
		}
		run++
		if run > n {
			n = run
		}
	}

	fence := strings.Repeat("`", n+1)
	if n == 0 {
		return fence + s + fence
	}
	return fence + " " + s + " " + fence
}
