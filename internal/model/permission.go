package model

// Permission is one entry of the authenticated user's permission set, as
// returned keyed by permission name under "permissions".
type Permission struct {
	ID             string `json:"id,omitempty"`
	Key            string `json:"key"`
	Name           string `json:"name,omitempty"`
	Type           string `json:"type,omitempty"`
	Description    string `json:"description,omitempty"`
	HavePermission bool   `json:"havePermission"`
}

// ResourceID returns the permission key, its wire identity.
func (p *Permission) ResourceID() string { return p.Key }

func (p *Permission) Validate() error {
	if p.Key == "" {
		return missingField("permission", "key")
	}
	return nil
}
