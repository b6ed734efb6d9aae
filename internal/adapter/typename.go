package adapter

import "reflect"

// TypeNameFor returns the stable entity-class identifier for E, e.g.
// "store.Record". The identifier keys the ledger, so it must be identical
// across calls for the same type; reflect's type string satisfies that.
func TypeNameFor[E any]() string {
	return typeName(reflect.TypeFor[E]())
}

// TypeName returns the entity-class identifier for a value's dynamic type.
// Pointers are unwrapped so *store.Record and store.Record share an entry.
func TypeName(v any) string {
	return typeName(reflect.TypeOf(v))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
