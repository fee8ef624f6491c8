package idl

import (
	"fmt"

	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// Wire keys. A classed wire value is an object holding the class name
// under ClassKey and a positional field array under PayloadKey. Unpacked
// objects instead carry the class name under ClassnameKey.
const (
	ClassKey     = "__c"
	PayloadKey   = "__p"
	ClassnameKey = "_classname"
)

// declassify extracts the class name and payload from a classed wire
// container. Returns ok == false when v is not a classed container.
func declassify(v map[string]any) (class string, payload any, ok bool) {
	name, hasClass := v[ClassKey].(string)
	payload, hasPayload := v[PayloadKey]
	if !hasClass || !hasPayload {
		return "", nil, false
	}
	return name, payload, true
}

// classify wraps a positional payload array in a classed wire container.
func classify(class string, payload []any) map[string]any {
	return map[string]any{
		ClassKey:   class,
		PayloadKey: payload,
	}
}

// Unpack returns a copy of value with every classed positional array
// replaced by a named-field object tagged with ClassnameKey. A classed
// array naming an unknown class fails with ErrClassNotFound rather than
// passing through unexpanded. Scalars are returned unchanged.
func (r *Registry) Unpack(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if name, payload, ok := declassify(v); ok {
			class := r.Class(name)
			if class == nil {
				return nil, fmt.Errorf("%w: %q", types.ErrClassNotFound, name)
			}
			arr, ok := payload.([]any)
			if !ok {
				return nil, fmt.Errorf(
					"%w: payload for class %q is not an array", types.ErrClassNotFound, name)
			}
			return r.arrayToHash(class, arr)
		}
		hash := make(map[string]any, len(v))
		for key, val := range v {
			unpacked, err := r.Unpack(val)
			if err != nil {
				return nil, err
			}
			hash[key] = unpacked
		}
		return hash, nil
	case []any:
		arr := make([]any, len(v))
		for i, child := range v {
			unpacked, err := r.Unpack(child)
			if err != nil {
				return nil, err
			}
			arr[i] = unpacked
		}
		return arr, nil
	default:
		return value, nil
	}
}

// Pack returns a copy of value with every object tagged with ClassnameKey
// replaced by a classed positional array. Scalars are returned unchanged.
func (r *Registry) Pack(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if name, ok := v[ClassnameKey].(string); ok {
			class := r.Class(name)
			if class == nil {
				return nil, fmt.Errorf("%w: %q", types.ErrClassNotFound, name)
			}
			return r.hashToArray(class, v)
		}
		hash := make(map[string]any, len(v))
		for key, val := range v {
			packed, err := r.Pack(val)
			if err != nil {
				return nil, err
			}
			hash[key] = packed
		}
		return hash, nil
	case []any:
		arr := make([]any, len(v))
		for i, child := range v {
			packed, err := r.Pack(child)
			if err != nil {
				return nil, err
			}
			arr[i] = packed
		}
		return arr, nil
	default:
		return value, nil
	}
}

// arrayToHash expands a positional payload into a named-field object
// using the class's field positions, recursing into each value.
func (r *Registry) arrayToHash(class *Class, payload []any) (map[string]any, error) {
	hash := make(map[string]any, len(class.Fields)+1)
	hash[ClassnameKey] = class.Name

	for _, field := range class.Fields {
		var raw any
		if field.Position < len(payload) {
			raw = payload[field.Position]
		}
		val, err := r.Unpack(raw)
		if err != nil {
			return nil, err
		}
		hash[field.Name] = val
	}
	return hash, nil
}

// hashToArray flattens a named-field object into a classed positional
// array, recursing into each value. Missing fields become null.
func (r *Registry) hashToArray(class *Class, hash map[string]any) (map[string]any, error) {
	fields := class.FieldsByPosition()
	arr := make([]any, len(fields))
	for i, field := range fields {
		val, err := r.Pack(hash[field.Name])
		if err != nil {
			return nil, err
		}
		arr[i] = val
	}
	return classify(class.Name, arr), nil
}
