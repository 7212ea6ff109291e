// Package report aggregates per-project retrievals into one cross-project
// report. Failure to resolve one project is recorded on that project's
// entry and never aborts the rest of the batch.
package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskra/internal/model"
	"taskra/internal/service"
)

// EntryError marks a report entry whose project could not be resolved or
// whose issues could not be fetched.
type EntryError struct {
	Key string
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("report entry %q: %v", e.Key, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Entry is the per-project slot of a report. Exactly one of Err or the
// resource fields is populated.
type Entry struct {
	Project *model.Project
	Issues  []*model.Issue
	Err     *EntryError
}

// Report holds one entry per requested project key. Keys preserves the
// caller-supplied request order; issue order within an entry is server
// return order.
type Report struct {
	Keys    []string
	Entries map[string]*Entry
}

// Entry returns the entry for a project key, or nil if it was not part of
// the request.
func (r *Report) Entry(key string) *Entry {
	return r.Entries[key]
}

// Builder assembles reports from the project and issue services.
type Builder struct {
	projects *service.Projects
	issues   *service.Issues
	log      *zap.Logger
}

// NewBuilder creates a report builder.
func NewBuilder(projects *service.Projects, issues *service.Issues, log *zap.Logger) *Builder {
	return &Builder{projects: projects, issues: issues, log: log}
}

// Build fetches, for each project key in the given order, the project
// detail record and its filtered issues. Per-key failures become error
// markers on their entries; only context cancellation aborts the batch.
func (b *Builder) Build(ctx context.Context, projectKeys []string, filters Filters) (*Report, error) {
	r := &Report{Entries: make(map[string]*Entry, len(projectKeys))}
	for _, key := range projectKeys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, dup := r.Entries[key]; dup {
			continue
		}
		r.Keys = append(r.Keys, key)
		r.Entries[key] = b.buildEntry(ctx, key, filters)
	}
	return r, nil
}

func (b *Builder) buildEntry(ctx context.Context, key string, filters Filters) *Entry {
	project, err := b.projects.Get(ctx, key)
	if err != nil {
		b.log.Warn("report entry failed", zap.String("project", key), zap.Error(err))
		return &Entry{Err: &EntryError{Key: key, Err: err}}
	}
	issues, err := b.issues.Search(ctx, filters.JQL(key))
	if err != nil {
		b.log.Warn("report entry failed", zap.String("project", key), zap.Error(err))
		return &Entry{Err: &EntryError{Key: key, Err: err}}
	}
	return &Entry{Project: project, Issues: issues}
}
