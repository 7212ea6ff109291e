package service

import (
	"context"
	"net/url"

	"taskra/internal/cache"
	"taskra/internal/model"
	"taskra/internal/paging"
	"taskra/internal/serial"
)

// Worklogs retrieves and records time entries on issues.
type Worklogs struct {
	*Core
}

// NewWorklogs creates the worklog service on the shared core.
func NewWorklogs(c *Core) *Worklogs {
	return &Worklogs{Core: c}
}

// List returns every worklog on an issue in server order. The worklog
// listing carries no isLast flag, so the paginator infers the last page
// arithmetically.
func (w *Worklogs) List(ctx context.Context, issueKey string) ([]*model.Worklog, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "worklogs"},
		cache.Part{Name: "issue", Value: issueKey},
	)
	if v, ok := w.cached(key, serial.TagWorklogs); ok {
		return v.([]*model.Worklog), nil
	}

	path := "issue/" + url.PathEscape(issueKey) + "/worklog"
	worklogs, err := paging.Collect[model.Worklog](ctx, w.pageSource(path, "worklogs", nil), w.pageSize)
	if err != nil {
		return nil, err
	}
	w.remember(key, serial.TagWorklogs, worklogs)
	return worklogs, nil
}

// Add records new work against an issue. timeSpent is the short human
// form ("2h 30m"); started defaults to the server's now when nil.
func (w *Worklogs) Add(ctx context.Context, issueKey, timeSpent, comment string, started *model.Time) (*model.Worklog, error) {
	create, err := model.NewWorklogCreate(timeSpent, comment, started)
	if err != nil {
		return nil, err
	}
	raw, err := w.client.Post(ctx, "issue/"+url.PathEscape(issueKey)+"/worklog", create)
	if err != nil {
		return nil, err
	}
	return model.FromRaw[model.Worklog](raw)
}
