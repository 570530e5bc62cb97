package entity

import (
	"bytes"
	"encoding/json"
)

// Optional carries a field of a partial update: absent, explicitly null, or a value.
// Only keys present in the JSON body flip Set to true.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Arg returns the value to bind for the column: nil for an explicit null.
func (o Optional[T]) Arg() any {
	if o.Null {
		return nil
	}
	return o.Value
}
