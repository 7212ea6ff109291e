package service

import (
	"context"
	"net/url"

	"taskra/internal/cache"
	"taskra/internal/model"
	"taskra/internal/paging"
	"taskra/internal/serial"
)

// Projects retrieves project resources.
type Projects struct {
	*Core
}

// NewProjects creates the project service on the shared core.
func NewProjects(c *Core) *Projects {
	return &Projects{Core: c}
}

// List returns every project visible to the account, walking the paginated
// listing to exhaustion.
func (p *Projects) List(ctx context.Context) ([]*model.ProjectSummary, error) {
	key := cache.Key(cache.Part{Name: "entity", Value: "projects"})
	if v, ok := p.cached(key, serial.TagProjects); ok {
		return v.([]*model.ProjectSummary), nil
	}

	projects, err := paging.Collect[model.ProjectSummary](ctx, p.pageSource("project/search", "values", nil), p.pageSize)
	if err != nil {
		return nil, err
	}
	p.remember(key, serial.TagProjects, projects)
	return projects, nil
}

// Get returns the detail record for one project key.
func (p *Projects) Get(ctx context.Context, projectKey string) (*model.Project, error) {
	key := cache.Key(
		cache.Part{Name: "entity", Value: "project"},
		cache.Part{Name: "key", Value: projectKey},
	)
	if v, ok := p.cached(key, serial.TagProject); ok {
		return v.(*model.Project), nil
	}

	raw, err := p.client.Get(ctx, "project/"+url.PathEscape(projectKey), nil)
	if err != nil {
		return nil, err
	}
	project, err := model.FromRaw[model.Project](raw)
	if err != nil {
		return nil, err
	}
	p.remember(key, serial.TagProject, project)
	return project, nil
}
