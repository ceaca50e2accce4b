package dto

import "encoding/json"

// Patch is a tri-state JSON field: absent (no-op), explicit null (remove the
// relation) or an object (upsert it). The zero value means absent.
type Patch[T any] struct {
	present bool
	value   *T
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.present = true
	if string(data) == "null" {
		p.value = nil
		return nil
	}
	p.value = new(T)
	return json.Unmarshal(data, p.value)
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if p.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

// IsUnset reports the field was not part of the payload at all.
func (p Patch[T]) IsUnset() bool {
	return !p.present
}

// IsRemove reports the field was an explicit null.
func (p Patch[T]) IsRemove() bool {
	return p.present && p.value == nil
}

// Get returns the supplied value, valid only when the field was an object.
func (p Patch[T]) Get() (*T, bool) {
	if !p.present || p.value == nil {
		return nil, false
	}
	return p.value, true
}

// PatchOf builds a set Patch, used by callers constructing payloads in code.
func PatchOf[T any](v T) Patch[T] {
	return Patch[T]{present: true, value: &v}
}

// PatchRemove builds an explicit-null Patch.
func PatchRemove[T any]() Patch[T] {
	return Patch[T]{present: true}
}
