package service

import (
	"context"
	"net/url"

	"taskra/internal/cache"
	"taskra/internal/model"
	"taskra/internal/paging"
	"taskra/internal/serial"
)

// Comments retrieves and adds issue comments.
type Comments struct {
	*Core
}

// NewComments creates the comment service on the shared core.
func NewComments(c *Core) *Comments {
	return &Comments{Core: c}
}

// List returns every comment on an issue in server order. Like worklogs,
// the comment listing carries no isLast flag.
func (c *Comments) List(ctx context.Context, issueKey string) ([]*model.Comment, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "comments"},
		cache.Part{Name: "issue", Value: issueKey},
	)
	if v, ok := c.cached(key, serial.TagComments); ok {
		return v.([]*model.Comment), nil
	}

	path := "issue/" + url.PathEscape(issueKey) + "/comment"
	comments, err := paging.Collect[model.Comment](ctx, c.pageSource(path, "comments", nil), c.pageSize)
	if err != nil {
		return nil, err
	}
	c.remember(key, serial.TagComments, comments)
	return comments, nil
}

// Add posts a new comment to an issue.
func (c *Comments) Add(ctx context.Context, issueKey, body string) (*model.Comment, error) {
	create := &model.CommentCreate{Body: body}
	if err := create.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.client.Post(ctx, "issue/"+url.PathEscape(issueKey)+"/comment", create)
	if err != nil {
		return nil, err
	}
	return model.FromRaw[model.Comment](raw)
}
