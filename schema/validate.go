package schema

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// validate checks the root operation types and that every
// type reference resolves. Introspection types are valid targets
// even though they are not part of the Document.
//
func validate(d *Document, meta map[string]bool) error {
	var errs *multierror.Error

	checkRoot := func(op, name string) {
		if name == "" {
			return
		}

		t, ok := d.index[name]
		switch {
		case !ok:
			errs = multierror.Append(errs, DecodeError{Msg: fmt.Sprintf("%s root type %s is not defined", op, name)})
		case t.Kind != Object:
			errs = multierror.Append(errs, DecodeError{Type: name, Msg: fmt.Sprintf("expected %s root type to be OBJECT, but got: %s", op, t.Kind)})
		}
	}
	checkRoot("query", d.Roots.Query)
	checkRoot("mutation", d.Roots.Mutation)
	checkRoot("subscription", d.Roots.Subscription)

	checkRef := func(typeName, fieldName, ref string) {
		if _, ok := d.index[ref]; ok || meta[ref] {
			return
		}
		errs = multierror.Append(errs, DecodeError{Type: typeName, Field: fieldName, Msg: fmt.Sprintf("reference to undefined type: %s", ref)})
	}

	for _, t := range d.types {
		for _, f := range t.Fields {
			checkRef(t.Name, f.Name, NamedType(f.Type))

			for _, a := range f.Args {
				checkRef(t.Name, f.Name+"."+a.Name, NamedType(a.Type))
			}
		}

		for _, a := range t.InputFields {
			checkRef(t.Name, a.Name, NamedType(a.Type))
		}

		for _, name := range t.Interfaces {
			checkRef(t.Name, "interfaces", name)
		}

		for _, name := range t.PossibleTypes {
			checkRef(t.Name, "possibleTypes", name)
		}
	}

	if errs == nil {
		return nil
	}
	if len(errs.Errors) == 1 {
		return errs.Errors[0]
	}
	return errs
}
