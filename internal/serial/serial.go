// Package serial converts resources to and from their JSON persistence
// form. Serialized output always carries wire-convention (camelCase) field
// names; SerializeInternal produces the snake_case rendition used for
// local inspection. Deserialization accepts either convention and always
// re-validates, so a cached snapshot can never hand back a malformed
// resource.
package serial

import (
	"bytes"
	"encoding/json"
	"fmt"

	"taskra/internal/model"
)

// SerializationError reports a value that could not be made JSON-safe, or
// a payload that could not be reconstructed into its declared type.
type SerializationError struct {
	Op  string // "serialize" or "deserialize"
	Tag string // type tag when known
	Err error
}

func (e *SerializationError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Serialize renders a resource, a slice of resources or any primitive into
// wire-convention JSON. Nested resources and timestamps are handled by the
// model types themselves.
func Serialize(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Op: "serialize", Err: err}
	}
	return b, nil
}

// SerializeInternal is Serialize with every object key rewritten to the
// internal (snake_case) convention through the model alias table.
func SerializeInternal(v any) ([]byte, error) {
	b, err := Serialize(v)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeAny(b)
	if err != nil {
		return nil, &SerializationError{Op: "serialize", Err: err}
	}
	out, err := json.Marshal(model.ToInternalKeys(decoded))
	if err != nil {
		return nil, &SerializationError{Op: "serialize", Err: err}
	}
	return out, nil
}

// Deserialize reconstructs a single resource of type T from a payload in
// either key convention, validating the result.
func Deserialize[T any, PT interface {
	*T
	model.Resource
}](payload []byte) (*T, error) {
	normalized, err := toWirePayload(payload)
	if err != nil {
		return nil, &SerializationError{Op: "deserialize", Err: err}
	}
	v := new(T)
	if err := json.Unmarshal(normalized, v); err != nil {
		return nil, &SerializationError{Op: "deserialize", Err: err}
	}
	if err := PT(v).Validate(); err != nil {
		return nil, &SerializationError{Op: "deserialize", Err: err}
	}
	return v, nil
}

// DeserializeList reconstructs an ordered slice of resources of type T.
func DeserializeList[T any, PT interface {
	*T
	model.Resource
}](payload []byte) ([]*T, error) {
	normalized, err := toWirePayload(payload)
	if err != nil {
		return nil, &SerializationError{Op: "deserialize", Err: err}
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(normalized, &raws); err != nil {
		return nil, &SerializationError{Op: "deserialize", Err: err}
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		v := new(T)
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, &SerializationError{Op: "deserialize", Err: err}
		}
		if err := PT(v).Validate(); err != nil {
			return nil, &SerializationError{Op: "deserialize", Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

// toWirePayload rewrites internal-convention keys back to the wire
// convention. Wire-keyed payloads pass through unchanged apart from key
// order. json.Number keeps large integers exact across the rewrite.
func toWirePayload(payload []byte) ([]byte, error) {
	decoded, err := decodeAny(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(model.ToWireKeys(decoded))
}

func decodeAny(payload []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}
