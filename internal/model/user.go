package model

import "strings"

// AvatarURLs carries the same avatar in the four sizes the server provides.
// The wire names ("16x16" ...) are not usable identifiers, so the fields
// use size names; the alias table keeps the mapping.
type AvatarURLs struct {
	Small  string `json:"16x16"`
	Medium string `json:"24x24"`
	Large  string `json:"32x32"`
	XLarge string `json:"48x48"`
}

func (a *AvatarURLs) Validate() error {
	for field, u := range map[string]string{
		"16x16": a.Small,
		"24x24": a.Medium,
		"32x32": a.Large,
		"48x48": a.XLarge,
	} {
		if u == "" {
			return missingField("avatarUrls", field)
		}
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return invalidField("avatarUrls", field, "must start with http:// or https://")
		}
	}
	return nil
}

// User represents a tracker user, either standalone (the authenticated
// user) or nested as an author, assignee or reporter.
type User struct {
	SelfURL      string      `json:"self,omitempty"`
	AccountID    string      `json:"accountId"`
	DisplayName  string      `json:"displayName"`
	EmailAddress string      `json:"emailAddress,omitempty"`
	Active       *bool       `json:"active,omitempty"`
	TimeZone     string      `json:"timeZone,omitempty"`
	AccountType  string      `json:"accountType,omitempty"`
	AvatarURLs   *AvatarURLs `json:"avatarUrls,omitempty"`
}

// Self returns the resource URL under its wire spelling. The field itself
// is stored as SelfURL because "self" is reserved in consumer languages.
func (u *User) Self() string { return u.SelfURL }

// ResourceID returns the account ID, the wire identity of a user.
func (u *User) ResourceID() string { return u.AccountID }

func (u *User) Validate() error {
	if u.AccountID == "" {
		return missingField("user", "accountId")
	}
	if u.DisplayName == "" {
		return missingField("user", "displayName")
	}
	if u.AvatarURLs != nil {
		return u.AvatarURLs.Validate()
	}
	return nil
}
