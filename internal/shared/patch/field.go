package patch

import (
	"bytes"
	"encoding/json"
)

// Field is one member of a partial update: either unset or set to a value.
// A JSON key that is present (including an explicit null) decodes to set.
type Field[T any] struct {
	value T
	set   bool
}

func Set[T any](value T) Field[T] {
	return Field[T]{value: value, set: true}
}

func (f Field[T]) IsSet() bool {
	return f.set
}

// Get returns the value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// Apply copies the value into dst when the field is set.
func (f Field[T]) Apply(dst *T) {
	if f.set && dst != nil {
		*dst = f.value
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var value T
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
	}
	f.value = value
	f.set = true
	return nil
}
