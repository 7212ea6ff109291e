package model

import (
	"encoding/json"
	"errors"
)

// FromRaw decodes an arbitrary raw JSON object into a resource of type T
// and validates it. Unknown fields are ignored; a missing required field
// or a type mismatch surfaces as *ValidationError naming the field.
func FromRaw[T any, PT interface {
	*T
	Resource
}](raw []byte) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		var uterr *json.UnmarshalTypeError
		if errors.As(err, &uterr) {
			return nil, invalidField(uterr.Struct, uterr.Field, "unexpected "+uterr.Value)
		}
		return nil, &ValidationError{Resource: "payload", Field: "", Reason: err.Error()}
	}
	if err := PT(v).Validate(); err != nil {
		return nil, err
	}
	return v, nil
}
