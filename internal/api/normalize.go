package api

import (
	"encoding/json"
)

// Shape identifies which envelope a collection response used
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeBare          // [ ... ]
	ShapeData          // {"data": [ ... ]}
	ShapeKeyed         // {"tasks": [ ... ]}, {"projects": [ ... ]}, ...
)

func (s Shape) String() string {
	switch s {
	case ShapeBare:
		return "bare"
	case ShapeData:
		return "data"
	case ShapeKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// Validator is implemented by entities that can be partially populated by
// the server and should be dropped when incomplete.
type Validator interface {
	Valid() bool
}

// Collection is the result of normalising a response
type Collection[T any] struct {
	Shape Shape
	Items []T
}

// Normalize extracts the entity sequence from raw. It tries a bare array,
// then a "data" field, then the field named key, and returns the first
// match. Elements that do not decode into T, or that fail Valid, are
// dropped; order is preserved. ok is false when no envelope matched.
func Normalize[T any](raw []byte, key string) (Collection[T], bool) {
	elems, shape := envelope(raw, key)
	if shape == ShapeUnknown {
		return Collection[T]{Shape: ShapeUnknown}, false
	}

	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		if string(elem) == "null" {
			continue
		}
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		if v, isValidator := any(item).(Validator); isValidator && !v.Valid() {
			continue
		}
		items = append(items, item)
	}
	return Collection[T]{Shape: shape, Items: items}, true
}

func envelope(raw []byte, key string) ([]json.RawMessage, Shape) {
	if elems, isArray := asArray(raw); isArray {
		return elems, ShapeBare
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ShapeUnknown
	}
	if elems, isArray := asArray(obj["data"]); isArray {
		return elems, ShapeData
	}
	if key != "" {
		if elems, isArray := asArray(obj[key]); isArray {
			return elems, ShapeKeyed
		}
	}
	return nil, ShapeUnknown
}

// asArray decodes raw as a JSON array. null is not an array.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, false
	}
	return elems, true
}
