package schema

import "strings"

// TypeRef is an occurrence of a type at a field, argument or input
// field position. It is one of Named, List or NonNull.
//
type TypeRef interface {
	// String returns the SDL signature, e.g. [String!]!
	String() string

	typeRef()
}

// Named references a named type.
type Named struct {
	Name string
}

// List wraps a type in a list.
type List struct {
	OfType TypeRef
}

// NonNull marks the wrapped type as non-nullable.
type NonNull struct {
	OfType TypeRef
}

func (Named) typeRef()   {}
func (List) typeRef()    {}
func (NonNull) typeRef() {}

func (t Named) String() string { return t.Name }

func (t List) String() string {
	var b strings.Builder
	writeTypSig(&b, t)
	return b.String()
}

func (t NonNull) String() string {
	var b strings.Builder
	writeTypSig(&b, t)
	return b.String()
}

func writeTypSig(b *strings.Builder, t TypeRef) {
	switch v := t.(type) {
	case NonNull:
		writeTypSig(b, v.OfType)
		b.WriteByte('!')
	case List:
		b.WriteByte('[')
		writeTypSig(b, v.OfType)
		b.WriteByte(']')
	case Named:
		b.WriteString(v.Name)
	}
}

// NamedType returns the name of the innermost named type.
func NamedType(t TypeRef) string {
	for {
		switch v := t.(type) {
		case NonNull:
			t = v.OfType
		case List:
			t = v.OfType
		case Named:
			return v.Name
		default:
			return ""
		}
	}
}

// resolveTypeRef converts the recursive kind/ofType encoding into a TypeRef.
// The returned DecodeError only carries Msg; callers fill in the position.
//
func resolveTypeRef(t *typ) (TypeRef, error) {
	if t == nil {
		return nil, DecodeError{Msg: "missing type reference"}
	}

	switch t.Kind {
	case nonNullKind:
		if t.OfType == nil {
			return nil, DecodeError{Msg: "NON_NULL type reference has no ofType"}
		}
		if t.OfType.Kind == nonNullKind {
			return nil, DecodeError{Msg: "NON_NULL type reference wraps another NON_NULL"}
		}

		inner, err := resolveTypeRef(t.OfType)
		if err != nil {
			return nil, err
		}
		return NonNull{OfType: inner}, nil
	case listKind:
		if t.OfType == nil {
			return nil, DecodeError{Msg: "LIST type reference has no ofType"}
		}

		inner, err := resolveTypeRef(t.OfType)
		if err != nil {
			return nil, err
		}
		return List{OfType: inner}, nil
	case "":
		return nil, DecodeError{Msg: "type reference has no kind"}
	}

	if !Kind(t.Kind).valid() {
		return nil, DecodeError{Msg: "unexpected kind for a type reference: " + t.Kind}
	}

	if t.Name == "" {
		return nil, DecodeError{Msg: "expected a name for " + t.Kind + " type reference, but got none"}
	}
	return Named{Name: t.Name}, nil
}
