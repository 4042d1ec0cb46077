// decode.go contains a decoder for JSON introspection results.

package schema

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type inputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultValue *string `json:"defaultValue"`
	Type         *typ    `json:"type"`
}

type field struct {
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Args              []*inputValue `json:"args"`
	Type              *typ          `json:"type"`
	IsDeprecated      bool          `json:"isDeprecated"`
	DeprecationReason string        `json:"deprecationReason"`
}

type enum struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

type typ struct {
	Kind          string        `json:"kind"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	OfType        *typ          `json:"ofType"`
	Fields        []*field      `json:"fields"`
	Interfaces    []*typ        `json:"interfaces"`
	PossibleTypes []*typ        `json:"possibleTypes"`
	EnumValues    []*enum       `json:"enumValues"`
	InputFields   []*inputValue `json:"inputFields"`
}

type rootRef struct {
	Name string `json:"name"`
}

type introSchema struct {
	QueryType        *rootRef            `json:"queryType"`
	MutationType     *rootRef            `json:"mutationType"`
	SubscriptionType *rootRef            `json:"subscriptionType"`
	Types            jsoniter.RawMessage `json:"types"`
}

// envelope accepts both {"data": {"__schema": ...}} and {"__schema": ...}.
type envelope struct {
	Data *struct {
		Schema jsoniter.RawMessage `json:"__schema"`
	} `json:"data"`
	Schema jsoniter.RawMessage `json:"__schema"`
}

func isNull(raw jsoniter.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// DecodeReader reads an introspection result from r and decodes it.
func DecodeReader(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

// Decode decodes a JSON introspection result into a Document.
// Any returned error is, or wraps, one or more DecodeErrors.
//
func Decode(data []byte) (*Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, DecodeError{Msg: fmt.Sprintf("invalid introspection result: %s", err)}
	}

	raw := env.Schema
	if isNull(raw) && env.Data != nil {
		raw = env.Data.Schema
	}
	if isNull(raw) {
		return nil, DecodeError{Msg: `expected field: "__schema", but got none`}
	}

	var s introSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, DecodeError{Msg: fmt.Sprintf("invalid __schema: %s", err)}
	}

	if s.QueryType == nil || s.QueryType.Name == "" {
		return nil, DecodeError{Msg: `expected field: "queryType.name", but got none`}
	}
	roots := Roots{Query: s.QueryType.Name}
	if s.MutationType != nil {
		roots.Mutation = s.MutationType.Name
	}
	if s.SubscriptionType != nil {
		roots.Subscription = s.SubscriptionType.Name
	}

	if isNull(s.Types) {
		return nil, DecodeError{Msg: `expected field: "types", but got none`}
	}
	var ts []*typ
	if err := json.Unmarshal(s.Types, &ts); err != nil {
		return nil, DecodeError{Msg: fmt.Sprintf(`expected "types" to be a list: %s`, err)}
	}

	meta := make(map[string]bool)
	defs := make([]*TypeDefinition, 0, len(ts))
	for i, t := range ts {
		if t == nil {
			return nil, DecodeError{Type: fmt.Sprintf("types[%d]", i), Msg: "type is null"}
		}
		if t.Name == "" {
			return nil, DecodeError{Type: fmt.Sprintf("types[%d]", i), Msg: "type has no name"}
		}

		// Skip introspection types
		if strings.HasPrefix(t.Name, "__") {
			meta[t.Name] = true
			continue
		}

		def, err := convertType(t)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
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

func convertType(t *typ) (*TypeDefinition, error) {
	if t.Kind == "" {
		return nil, DecodeError{Type: t.Name, Msg: "type has no kind"}
	}

	def := &TypeDefinition{
		Name:        t.Name,
		Kind:        Kind(t.Kind),
		Description: t.Description,
	}
	if !def.Kind.valid() {
		return nil, DecodeError{Type: t.Name, Msg: fmt.Sprintf("unexpected kind for a named type: %s", t.Kind)}
	}

	var err error
	switch def.Kind {
	case Object:
		if def.Fields, err = convertFields(t); err != nil {
			return nil, err
		}
		if def.Interfaces, err = convertNames(t.Name, "interfaces", t.Interfaces); err != nil {
			return nil, err
		}
	case Interface:
		if def.Fields, err = convertFields(t); err != nil {
			return nil, err
		}
		if def.Interfaces, err = convertNames(t.Name, "interfaces", t.Interfaces); err != nil {
			return nil, err
		}
		if def.PossibleTypes, err = convertNames(t.Name, "possibleTypes", t.PossibleTypes); err != nil {
			return nil, err
		}
	case Union:
		if def.PossibleTypes, err = convertNames(t.Name, "possibleTypes", t.PossibleTypes); err != nil {
			return nil, err
		}
	case Enum:
		def.EnumValues = make([]*EnumValue, 0, len(t.EnumValues))
		for i, v := range t.EnumValues {
			if v == nil || v.Name == "" {
				return nil, DecodeError{Type: t.Name, Field: fmt.Sprintf("enumValues[%d]", i), Msg: "enum value has no name"}
			}

			ev := &EnumValue{
				Name:         v.Name,
				Description:  v.Description,
				IsDeprecated: v.IsDeprecated,
			}
			if v.IsDeprecated {
				ev.DeprecationReason = v.DeprecationReason
			}
			def.EnumValues = append(def.EnumValues, ev)
		}
	case InputObject:
		if def.InputFields, err = convertInputValues(t.Name, "", t.InputFields); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func convertFields(t *typ) ([]*Field, error) {
	fields := make([]*Field, 0, len(t.Fields))
	for i, f := range t.Fields {
		if f == nil || f.Name == "" {
			return nil, DecodeError{Type: t.Name, Field: fmt.Sprintf("fields[%d]", i), Msg: "field has no name"}
		}

		ref, err := resolveTypeRef(f.Type)
		if err != nil {
			return nil, at(err, t.Name, f.Name)
		}

		args, err := convertInputValues(t.Name, f.Name, f.Args)
		if err != nil {
			return nil, err
		}

		fd := &Field{
			Name:         f.Name,
			Description:  f.Description,
			Args:         args,
			Type:         ref,
			IsDeprecated: f.IsDeprecated,
		}
		if f.IsDeprecated {
			fd.DeprecationReason = f.DeprecationReason
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

// convertInputValues converts arguments of fieldName, or the input
// fields of typeName when fieldName is empty.
//
func convertInputValues(typeName, fieldName string, vals []*inputValue) ([]*Argument, error) {
	pos, list := "", "inputFields"
	if fieldName != "" {
		pos, list = fieldName+".", fieldName+".args"
	}

	args := make([]*Argument, 0, len(vals))
	for i, v := range vals {
		if v == nil || v.Name == "" {
			return nil, DecodeError{Type: typeName, Field: fmt.Sprintf("%s[%d]", list, i), Msg: "input value has no name"}
		}

		ref, err := resolveTypeRef(v.Type)
		if err != nil {
			return nil, at(err, typeName, pos+v.Name)
		}

		args = append(args, &Argument{
			Name:         v.Name,
			Description:  v.Description,
			Type:         ref,
			DefaultValue: v.DefaultValue,
		})
	}
	return args, nil
}

func convertNames(typeName, fieldName string, refs []*typ) ([]string, error) {
	var names []string
	for i, r := range refs {
		if r == nil || r.Name == "" {
			return nil, DecodeError{Type: typeName, Field: fmt.Sprintf("%s[%d]", fieldName, i), Msg: "expected a type name, but got none"}
		}
		names = append(names, r.Name)
	}
	return names, nil
}

// at attaches a position to a DecodeError returned by resolveTypeRef.
func at(err error, typeName, fieldName string) error {
	derr, ok := err.(DecodeError)
	if !ok {
		return err
	}
	derr.Type, derr.Field = typeName, fieldName
	return derr
}
