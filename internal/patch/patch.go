// Package patch implements the partial-update representation shared by
// project and task updates. Every patch field is tri-state: absent from the
// request body, explicitly null, or carrying a value. An empty JSON string is
// coerced to null before the value is typed, so a blank input behaves exactly
// like an omitted field. Null never clears a stored value; it leaves the
// existing one in place.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a single merge-patch field. The zero value is "absent".
type Field[T any] struct {
	set   bool
	valid bool
	value T
}

// Set returns a field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, valid: true, value: v}
}

// Null returns a field that was explicitly supplied as null.
func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// IsSet reports whether the field was present in the patch at all.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Get returns the field's value. The second return is false when the field
// is absent or null.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && f.valid
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		f.valid = false
		var zero T
		f.value = zero
		return nil
	}
	if err := json.Unmarshal(trimmed, &f.value); err != nil {
		return err
	}
	f.valid = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Apply overwrites dst when f carries a value. Absent and null fields leave
// dst unchanged. Applying the same field twice is a no-op after the first.
func Apply[T any](dst *T, f Field[T]) {
	if v, ok := f.Get(); ok {
		*dst = v
	}
}

// ApplyPtr is Apply for nullable columns modeled as pointers. A null field
// does not clear the pointer.
func ApplyPtr[T any](dst **T, f Field[T]) {
	if v, ok := f.Get(); ok {
		*dst = &v
	}
}
