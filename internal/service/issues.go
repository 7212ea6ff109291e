package service

import (
	"context"
	"encoding/json"
	"net/url"

	"taskra/internal/cache"
	"taskra/internal/model"
	"taskra/internal/paging"
	"taskra/internal/serial"
)

// searchFields is the field set requested on every issue search.
var searchFields = "summary,description,status,assignee,reporter,created,updated,issuetype,priority,labels"

// Issues retrieves issue resources.
type Issues struct {
	*Core
}

// NewIssues creates the issue service on the shared core.
func NewIssues(c *Core) *Issues {
	return &Issues{Core: c}
}

// Search returns every issue matching the JQL query, in server order,
// walking the paginated search to exhaustion.
func (i *Issues) Search(ctx context.Context, jql string) ([]*model.Issue, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "issues"},
		cache.Part{Name: "jql", Value: jql},
	)
	if v, ok := i.cached(key, serial.TagIssues); ok {
		return v.([]*model.Issue), nil
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", searchFields)
	issues, err := paging.Collect[model.Issue](ctx, i.pageSource("search", "issues", params), i.pageSize)
	if err != nil {
		return nil, err
	}
	i.remember(key, serial.TagIssues, issues)
	return issues, nil
}

// Get returns the detail record for one issue key.
func (i *Issues) Get(ctx context.Context, issueKey string) (*model.Issue, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "issue"},
		cache.Part{Name: "key", Value: issueKey},
	)
	if v, ok := i.cached(key, serial.TagIssue); ok {
		return v.(*model.Issue), nil
	}

	params := url.Values{}
	params.Set("fields", searchFields)
	raw, err := i.client.Get(ctx, "issue/"+url.PathEscape(issueKey), params)
	if err != nil {
		return nil, err
	}
	issue, err := model.FromRaw[model.Issue](raw)
	if err != nil {
		return nil, err
	}
	i.remember(key, serial.TagIssue, issue)
	return issue, nil
}

// Create files a new issue and returns its created summary (id, key, self).
func (i *Issues) Create(ctx context.Context, create *model.IssueCreate) (*model.Issue, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	raw, err := i.client.Post(ctx, "issue", create)
	if err != nil {
		return nil, err
	}
	// The create response carries only id, key and self; fetch the full
	// record so the caller gets a complete resource.
	var created struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || created.Key == "" {
		return nil, &model.ValidationError{Resource: "issue", Field: "key", Reason: "create response carried no key"}
	}
	return i.Get(ctx, created.Key)
}
