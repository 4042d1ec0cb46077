// Package schema contains a typed model of a GraphQL schema, as described
// by an introspection result, along with decoders for introspection JSON
// and GraphQL SDL.
package schema

import "fmt"

// Kind is the introspection kind of a named type.
type Kind string

// Named type kinds. LIST and NON_NULL only ever appear as type modifiers.
const (
	Scalar      Kind = "SCALAR"
	Object      Kind = "OBJECT"
	Interface   Kind = "INTERFACE"
	Union       Kind = "UNION"
	Enum        Kind = "ENUM"
	InputObject Kind = "INPUT_OBJECT"

	listKind    = "LIST"
	nonNullKind = "NON_NULL"
)

func (k Kind) valid() bool {
	switch k {
	case Scalar, Object, Interface, Union, Enum, InputObject:
		return true
	}
	return false
}

// Argument is a field argument or an input object field.
type Argument struct {
	Name        string
	Description string
	Type        TypeRef

	// DefaultValue is the raw GraphQL literal, nil when absent.
	DefaultValue *string
}

// Field is an output field of an object or interface.
type Field struct {
	Name              string
	Description       string
	Args              []*Argument
	Type              TypeRef
	IsDeprecated      bool
	DeprecationReason string
}

// EnumValue is a single value of an enum type.
type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// TypeDefinition describes a named type.
type TypeDefinition struct {
	Name        string
	Kind        Kind
	Description string

	// Fields is set for OBJECT and INTERFACE.
	Fields []*Field

	// InputFields is set for INPUT_OBJECT.
	InputFields []*Argument

	// EnumValues is set for ENUM.
	EnumValues []*EnumValue

	// PossibleTypes is set for UNION and INTERFACE.
	PossibleTypes []string

	// Interfaces is set for OBJECT.
	Interfaces []string
}

// Roots holds the root operation type names. Mutation and
// Subscription are empty when the schema does not define them.
//
type Roots struct {
	Query        string
	Mutation     string
	Subscription string
}

// Document is a decoded schema. It is immutable once returned
// by one of the decoders.
//
type Document struct {
	Roots Roots

	types []*TypeDefinition
	index map[string]*TypeDefinition
}

// Types returns every type definition in emission order.
func (d *Document) Types() []*TypeDefinition { return d.types }

// Lookup returns the type definition with the given name.
func (d *Document) Lookup(name string) (*TypeDefinition, bool) {
	t, ok := d.index[name]
	return t, ok
}

// Len returns the number of type definitions.
func (d *Document) Len() int { return len(d.types) }

func newDocument(roots Roots, types []*TypeDefinition) (*Document, error) {
	d := &Document{
		Roots: roots,
		types: types,
		index: make(map[string]*TypeDefinition, len(types)),
	}
	for _, t := range types {
		if _, exists := d.index[t.Name]; exists {
			return nil, DecodeError{Type: t.Name, Msg: "duplicate type name"}
		}
		d.index[t.Name] = t
	}
	return d, nil
}

// DecodeError represents a malformed or incomplete schema description.
type DecodeError struct {
	// Type is the type being decoded, if any.
	Type string

	// Field is the field, argument or value being decoded, if any.
	Field string

	// Msg describes what was expected and what was found.
	Msg string
}

func (e DecodeError) Error() string {
	switch {
	case e.Type == "":
		return fmt.Sprintf("schema: decode error: %s", e.Msg)
	case e.Field == "":
		return fmt.Sprintf("schema: decode error in %s: %s", e.Type, e.Msg)
	}
	return fmt.Sprintf("schema: decode error in %s.%s: %s", e.Type, e.Field, e.Msg)
}

// IsBuiltinScalar reports whether name is one of the scalars every
// GraphQL schema provides.
//
func IsBuiltinScalar(name string) bool {
	return name == "ID" || name == "Int" || name == "Float" || name == "String" || name == "Boolean"
}
