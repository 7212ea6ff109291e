package service

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"taskra/internal/cache"
	"taskra/internal/model"
	"taskra/internal/serial"
)

// DefaultPermissions is the permission set the client's read and write
// paths depend on.
var DefaultPermissions = []string{
	"BROWSE_PROJECTS",
	"CREATE_ISSUES",
	"EDIT_ISSUES",
	"WORK_ON_ISSUES",
	"ADD_COMMENTS",
}

// Users retrieves user resources.
type Users struct {
	*Core
}

// NewUsers creates the user service on the shared core.
func NewUsers(c *Core) *Users {
	return &Users{Core: c}
}

// Me returns the authenticated user.
func (u *Users) Me(ctx context.Context) (*model.User, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "user"},
		cache.Part{Name: "who", Value: "me"},
	)
	if v, ok := u.cached(key, serial.TagUser); ok {
		return v.(*model.User), nil
	}

	raw, err := u.client.Get(ctx, "myself", nil)
	if err != nil {
		return nil, err
	}
	me, err := model.FromRaw[model.User](raw)
	if err != nil {
		return nil, err
	}
	u.remember(key, serial.TagUser, me)
	return me, nil
}

// Permissions returns the account's grant status for each requested
// permission key, in request order. Empty keys means DefaultPermissions.
// Keys the server does not report come back as not granted.
func (u *Users) Permissions(ctx context.Context, keys []string) ([]*model.Permission, error) {
	if len(keys) == 0 {
		keys = DefaultPermissions
	}
	cacheKey := cache.Key(
		cache.Part{Name: "entity", Value: "permissions"},
		cache.Part{Name: "keys", Value: strings.Join(keys, ",")},
	)
	if v, ok := u.cached(cacheKey, serial.TagPermissions); ok {
		return v.([]*model.Permission), nil
	}

	params := url.Values{}
	params.Set("permissions", strings.Join(keys, ","))
	raw, err := u.client.Get(ctx, "mypermissions", params)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Permissions map[string]json.RawMessage `json:"permissions"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &model.ValidationError{Resource: "permission", Reason: err.Error()}
	}

	out := make([]*model.Permission, 0, len(keys))
	for _, key := range keys {
		entry, ok := envelope.Permissions[key]
		if !ok {
			out = append(out, &model.Permission{Key: key})
			continue
		}
		perm, err := model.FromRaw[model.Permission](entry)
		if err != nil {
			return nil, err
		}
		out = append(out, perm)
	}
	u.remember(cacheKey, serial.TagPermissions, out)
	return out, nil
}

// MissingPermissions returns the requested permission keys the account
// does not hold.
func (u *Users) MissingPermissions(ctx context.Context, keys []string) ([]string, error) {
	perms, err := u.Permissions(ctx, keys)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, p := range perms {
		if !p.HavePermission {
			missing = append(missing, p.Key)
		}
	}
	return missing, nil
}
