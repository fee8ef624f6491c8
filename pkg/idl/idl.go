// Package idl implements the fieldmapper IDL schema registry and the
// wire codec that translates between positional classed arrays and
// named-field objects.
//
// A Registry is built once from an IDL XML document and is read-only
// afterward, so it is safe to share between any number of goroutines.
package idl

import "sort"

// DataType is the declared reporter datatype of an IDL field.
type DataType string

// Known field datatypes. Unrecognized datatype strings parse as
// DataTypeText, matching the permissive handling of legacy IDL files.
const (
	DataTypeInt       DataType = "int"
	DataTypeFloat     DataType = "float"
	DataTypeText      DataType = "text"
	DataTypeBool      DataType = "bool"
	DataTypeLink      DataType = "link"
	DataTypeTimestamp DataType = "timestamp"
)

// dataTypeFromString maps a datatype attribute to a DataType,
// defaulting to text.
func dataTypeFromString(s string) DataType {
	switch DataType(s) {
	case DataTypeInt, DataTypeFloat, DataTypeText, DataTypeBool,
		DataTypeLink, DataTypeTimestamp:
		return DataType(s)
	default:
		return DataTypeText
	}
}

// IsNumeric reports whether the datatype holds numbers.
func (d DataType) IsNumeric() bool {
	return d == DataTypeInt || d == DataTypeFloat
}

// RelType is the relation kind of an IDL link.
type RelType string

// Known relation kinds.
const (
	RelTypeHasA      RelType = "has_a"
	RelTypeHasMany   RelType = "has_many"
	RelTypeMightHave RelType = "might_have"
	RelTypeUnset     RelType = "unset"
)

func relTypeFromString(s string) RelType {
	switch RelType(s) {
	case RelTypeHasA, RelTypeHasMany, RelTypeMightHave:
		return RelType(s)
	default:
		return RelTypeUnset
	}
}

// Field is one field of an IDL class. Position is the index the field's
// value occupies in the positional wire encoding: the k-th field declared
// in the IDL receives position k, and the three bookkeeping fields always
// follow the declared fields.
type Field struct {
	Name     string
	Label    string
	Datatype DataType
	I18N     bool
	Virtual  bool
	Position int
}

// Link is a relation from one IDL class to another.
type Link struct {
	Field   string
	RelType RelType
	Key     string
	Map     string
	Class   string
}

// Class is one IDL class: its fields, links, and persistence metadata.
// A Class with an empty Table is not queryable.
type Class struct {
	Name         string
	Label        string
	Table        string
	Pkey         string
	PkeySequence string
	Fields       map[string]*Field
	Links        map[string]*Link
}

// FieldsByPosition returns every field, virtual ones included, ordered
// by wire array position.
func (c *Class) FieldsByPosition() []*Field {
	fields := make([]*Field, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Position < fields[j].Position
	})
	return fields
}

// RealFields returns the non-virtual fields sorted by name. This is the
// single column order shared by the query compiler's select list and the
// row mapper; the two must never diverge.
func (c *Class) RealFields() []*Field {
	fields := make([]*Field, 0, len(c.Fields))
	for _, f := range c.Fields {
		if !f.Virtual {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

// Registry holds every parsed IDL class, keyed by class name.
type Registry struct {
	classes map[string]*Class
}

// Classes returns the class map. The map and everything it references
// belong to the Registry; callers must not modify them.
func (r *Registry) Classes() map[string]*Class {
	return r.classes
}

// Class returns the named class, or nil if the registry has no such class.
func (r *Registry) Class(name string) *Class {
	return r.classes[name]
}
