package serial

import (
	"fmt"

	"taskra/internal/model"
)

// Type tags identify which resource type a persisted payload deserializes
// into. They are written into every cache entry alongside the payload.
const (
	TagProject     = "project"
	TagProjects    = "projects"
	TagIssue       = "issue"
	TagIssues      = "issues"
	TagWorklogs    = "worklogs"
	TagComments    = "comments"
	TagUser        = "user"
	TagPermissions = "permissions"
)

// DecodeFunc reconstructs a typed value from a serialized payload.
type DecodeFunc func(payload []byte) (any, error)

var registry = map[string]DecodeFunc{
	TagProject:     decodeOne[model.Project],
	TagProjects:    decodeList[model.ProjectSummary],
	TagIssue:       decodeOne[model.Issue],
	TagIssues:      decodeList[model.Issue],
	TagWorklogs:    decodeList[model.Worklog],
	TagComments:    decodeList[model.Comment],
	TagUser:        decodeOne[model.User],
	TagPermissions: decodeList[model.Permission],
}

// DecodeTagged dispatches a payload to the decoder registered for its type
// tag. Unknown tags fail with a SerializationError.
func DecodeTagged(tag string, payload []byte) (any, error) {
	decode, ok := registry[tag]
	if !ok {
		return nil, &SerializationError{Op: "deserialize", Tag: tag, Err: fmt.Errorf("unknown type tag")}
	}
	v, err := decode(payload)
	if err != nil {
		if serr, isSerial := err.(*SerializationError); isSerial {
			serr.Tag = tag
		}
		return nil, err
	}
	return v, nil
}

func decodeOne[T any, PT interface {
	*T
	model.Resource
}](payload []byte) (any, error) {
	return Deserialize[T, PT](payload)
}

func decodeList[T any, PT interface {
	*T
	model.Resource
}](payload []byte) (any, error) {
	return DeserializeList[T, PT](payload)
}
