// sdl.go converts between Documents and the GraphQL SDL.

package schema

import (
	"io"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// defaultDeprecationReason is the reason the @deprecated directive defaults to.
const defaultDeprecationReason = "No longer supported"

// LoadSDL parses and validates GraphQL SDL source into a Document.
//
// Types are ordered as they appear in the source. Built-in scalars are
// appended after them when referenced, mirroring what an introspection
// query would report.
//
func LoadSDL(name, src string) (*Document, error) {
	s, gerr := gqlparser.LoadSchema(&ast.Source{Name: name, Input: src})
	if gerr != nil {
		return nil, DecodeError{Msg: gerr.Error()}
	}
	if s.Query == nil {
		return nil, DecodeError{Msg: "schema does not define a query root type"}
	}

	roots := Roots{Query: s.Query.Name}
	if s.Mutation != nil {
		roots.Mutation = s.Mutation.Name
	}
	if s.Subscription != nil {
		roots.Subscription = s.Subscription.Name
	}

	var user, builtin []*ast.Definition
	meta := make(map[string]bool)
	for name, def := range s.Types {
		switch {
		case strings.HasPrefix(name, "__"):
			meta[name] = true
		case def.BuiltIn:
			builtin = append(builtin, def)
		default:
			user = append(user, def)
		}
	}
	sort.Slice(user, func(i, j int) bool { return defOffset(user[i]) < defOffset(user[j]) })
	sort.Slice(builtin, func(i, j int) bool { return builtin[i].Name < builtin[j].Name })

	defs := make([]*TypeDefinition, 0, len(user)+len(builtin))
	refs := make(map[string]bool)
	for _, def := range user {
		t := fromDefinition(s, def)
		defs = append(defs, t)
		collectRefs(t, refs)
	}
	for _, def := range builtin {
		if refs[def.Name] {
			defs = append(defs, fromDefinition(s, def))
		}
	}

	doc, err := newDocument(roots, defs)
	if err != nil {
		return nil, err
	}
	if err = validate(doc, meta); err != nil {
		return nil, err
	}
	return doc, nil
}

func defOffset(def *ast.Definition) int {
	if def.Position == nil {
		return 0
	}
	return def.Position.Start
}

func collectRefs(t *TypeDefinition, refs map[string]bool) {
	for _, f := range t.Fields {
		refs[NamedType(f.Type)] = true
		for _, a := range f.Args {
			refs[NamedType(a.Type)] = true
		}
	}
	for _, a := range t.InputFields {
		refs[NamedType(a.Type)] = true
	}
}

func fromDefinition(s *ast.Schema, def *ast.Definition) *TypeDefinition {
	t := &TypeDefinition{
		Name:        def.Name,
		Kind:        Kind(def.Kind),
		Description: def.Description,
	}

	switch def.Kind {
	case ast.Object, ast.Interface:
		for _, f := range def.Fields {
			// The validator adds __schema and __type to the query type.
			if strings.HasPrefix(f.Name, "__") {
				continue
			}

			fd := &Field{
				Name:        f.Name,
				Description: f.Description,
				Type:        fromASTType(f.Type),
				Args:        make([]*Argument, 0, len(f.Arguments)),
			}
			fd.IsDeprecated, fd.DeprecationReason = deprecation(f.Directives)
			for _, a := range f.Arguments {
				fd.Args = append(fd.Args, &Argument{
					Name:         a.Name,
					Description:  a.Description,
					Type:         fromASTType(a.Type),
					DefaultValue: rawValue(a.DefaultValue),
				})
			}
			t.Fields = append(t.Fields, fd)
		}
		t.Interfaces = append(t.Interfaces, def.Interfaces...)

		if def.Kind == ast.Interface {
			impls := append([]*ast.Definition(nil), s.GetPossibleTypes(def)...)
			sort.SliceStable(impls, func(i, j int) bool { return defOffset(impls[i]) < defOffset(impls[j]) })

			for _, pt := range impls {
				if pt.Kind == ast.Object {
					t.PossibleTypes = append(t.PossibleTypes, pt.Name)
				}
			}
		}
	case ast.Union:
		t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	case ast.Enum:
		for _, v := range def.EnumValues {
			ev := &EnumValue{Name: v.Name, Description: v.Description}
			ev.IsDeprecated, ev.DeprecationReason = deprecation(v.Directives)
			t.EnumValues = append(t.EnumValues, ev)
		}
	case ast.InputObject:
		for _, f := range def.Fields {
			t.InputFields = append(t.InputFields, &Argument{
				Name:         f.Name,
				Description:  f.Description,
				Type:         fromASTType(f.Type),
				DefaultValue: rawValue(f.DefaultValue),
			})
		}
	}
	return t
}

func deprecation(dirs ast.DirectiveList) (bool, string) {
	d := dirs.ForName("deprecated")
	if d == nil {
		return false, ""
	}

	reason := d.Arguments.ForName("reason")
	if reason == nil || reason.Value == nil {
		return true, defaultDeprecationReason
	}
	return true, reason.Value.Raw
}

func rawValue(v *ast.Value) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func fromASTType(t *ast.Type) TypeRef {
	var ref TypeRef = Named{Name: t.NamedType}
	if t.Elem != nil {
		ref = List{OfType: fromASTType(t.Elem)}
	}

	if t.NonNull {
		return NonNull{OfType: ref}
	}
	return ref
}

func toASTType(t TypeRef) *ast.Type {
	switch v := t.(type) {
	case NonNull:
		at := toASTType(v.OfType)
		at.NonNull = true
		return at
	case List:
		return &ast.Type{Elem: toASTType(v.OfType)}
	case Named:
		return &ast.Type{NamedType: v.Name}
	}
	return nil
}

// WriteSDL writes the Document as GraphQL SDL. Built-in scalars are omitted.
func WriteSDL(w io.Writer, d *Document) {
	sd := &ast.SchemaDocument{
		Schema: ast.SchemaDefinitionList{&ast.SchemaDefinition{
			OperationTypes: rootOperations(d.Roots),
		}},
	}

	for _, t := range d.types {
		if t.Kind == Scalar && IsBuiltinScalar(t.Name) {
			continue
		}
		sd.Definitions = append(sd.Definitions, toDefinition(t))
	}

	formatter.NewFormatter(w).FormatSchemaDocument(sd)
}

func rootOperations(r Roots) ast.OperationTypeDefinitionList {
	ops := ast.OperationTypeDefinitionList{
		{Operation: ast.Query, Type: r.Query},
	}
	if r.Mutation != "" {
		ops = append(ops, &ast.OperationTypeDefinition{Operation: ast.Mutation, Type: r.Mutation})
	}
	if r.Subscription != "" {
		ops = append(ops, &ast.OperationTypeDefinition{Operation: ast.Subscription, Type: r.Subscription})
	}
	return ops
}

func toDefinition(t *TypeDefinition) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.DefinitionKind(t.Kind),
		Name:        t.Name,
		Description: t.Description,
	}

	switch t.Kind {
	case Object, Interface:
		def.Interfaces = t.Interfaces
		for _, f := range t.Fields {
			fd := &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Type:        toASTType(f.Type),
			}
			for _, a := range f.Args {
				fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{
					Name:         a.Name,
					Description:  a.Description,
					Type:         toASTType(a.Type),
					DefaultValue: literal(a.DefaultValue),
				})
			}
			if f.IsDeprecated {
				fd.Directives = deprecatedDirective(f.DeprecationReason)
			}
			def.Fields = append(def.Fields, fd)
		}
	case Union:
		def.Types = t.PossibleTypes
	case Enum:
		for _, v := range t.EnumValues {
			ev := &ast.EnumValueDefinition{Name: v.Name, Description: v.Description}
			if v.IsDeprecated {
				ev.Directives = deprecatedDirective(v.DeprecationReason)
			}
			def.EnumValues = append(def.EnumValues, ev)
		}
	case InputObject:
		for _, a := range t.InputFields {
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:         a.Name,
				Description:  a.Description,
				Type:         toASTType(a.Type),
				DefaultValue: literal(a.DefaultValue),
			})
		}
	}
	return def
}

// literal wraps an introspection default value, which is already
// GraphQL literal text. EnumValue kinds are printed verbatim.
//
func literal(raw *string) *ast.Value {
	if raw == nil {
		return nil
	}
	return &ast.Value{Kind: ast.EnumValue, Raw: *raw}
}

func deprecatedDirective(reason string) ast.DirectiveList {
	d := &ast.Directive{Name: "deprecated"}
	if reason != "" {
		d.Arguments = ast.ArgumentList{
			{Name: "reason", Value: &ast.Value{Kind: ast.StringValue, Raw: reason}},
		}
	}
	return ast.DirectiveList{d}
}
