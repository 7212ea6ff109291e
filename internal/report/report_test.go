package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskra/internal/service"
	"taskra/internal/transport"
)

// fakeClient serves project detail and issue search responses for a fixed
// set of known project keys.
type fakeClient struct {
	known map[string]bool
}

func (f *fakeClient) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if key, ok := strings.CutPrefix(path, "project/"); ok {
		if !f.known[key] {
			return nil, &transport.Error{Status: 404, Body: "project not found"}
		}
		return json.RawMessage(fmt.Sprintf(
			`{"id": "1", "key": %q, "name": "Project %s"}`, key, key)), nil
	}
	if path == "search" {
		issue := `{"id": "20001", "key": "X-1", "fields": {"summary": "Something"}}`
		return json.RawMessage(fmt.Sprintf(
			`{"startAt": 0, "maxResults": 50, "total": 1, "isLast": true, "issues": [%s]}`, issue)), nil
	}
	return nil, fmt.Errorf("unexpected path %q", path)
}

func (f *fakeClient) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return nil, fmt.Errorf("unexpected post to %q", path)
}

func newBuilder(known ...string) *Builder {
	client := &fakeClient{known: make(map[string]bool)}
	for _, k := range known {
		client.known[k] = true
	}
	core := service.NewCore(client, nil, 50, zap.NewNop())
	return NewBuilder(service.NewProjects(core), service.NewIssues(core), zap.NewNop())
}

func TestBuild_IsolatesFailures(t *testing.T) {
	b := newBuilder("VALID")

	r, err := b.Build(context.Background(), []string{"VALID", "MISSING"}, Filters{})
	require.NoError(t, err, "one bad key must not abort the batch")
	assert.Equal(t, []string{"VALID", "MISSING"}, r.Keys)

	valid := r.Entry("VALID")
	require.NotNil(t, valid)
	require.Nil(t, valid.Err)
	assert.Equal(t, "Project VALID", valid.Project.Name)
	assert.Len(t, valid.Issues, 1)

	missing := r.Entry("MISSING")
	require.NotNil(t, missing)
	require.NotNil(t, missing.Err)
	assert.Equal(t, "MISSING", missing.Err.Key)
	var terr *transport.Error
	assert.ErrorAs(t, missing.Err, &terr)
	assert.Nil(t, missing.Project)
}

func TestBuild_PreservesRequestOrder(t *testing.T) {
	b := newBuilder("A", "B", "C")

	r, err := b.Build(context.Background(), []string{"C", "A", "B"}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, r.Keys)
}

func TestBuild_SkipsDuplicateKeys(t *testing.T) {
	b := newBuilder("A")

	r, err := b.Build(context.Background(), []string{"A", "A"}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, r.Keys)
	assert.Len(t, r.Entries, 1)
}

func TestBuild_CancelledContextAborts(t *testing.T) {
	b := newBuilder("A")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, []string{"A"}, Filters{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_EntryForUnknownKey(t *testing.T) {
	r := &Report{Entries: map[string]*Entry{}}
	assert.Nil(t, r.Entry("NOPE"))
}

func TestFilters_JQL(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{
			name:    "bare project",
			filters: Filters{},
			want:    `project = "DEV" ORDER BY created DESC`,
		},
		{
			name:    "status list",
			filters: Filters{Status: []string{"In Progress", "Done"}},
			want:    `project = "DEV" AND status in ("In Progress", "Done") ORDER BY created DESC`,
		},
		{
			name: "all clauses",
			filters: Filters{
				Status:        []string{"Done"},
				Assignee:      "dev@example.com",
				Reporter:      "lead@example.com",
				CreatedAfter:  "2025-01-01",
				CreatedBefore: "2025-03-01",
				SortBy:        "updated",
				SortOrder:     "asc",
			},
			want: `project = "DEV" AND status in ("Done") AND assignee = "dev@example.com"` +
				` AND reporter = "lead@example.com" AND created >= "2025-01-01"` +
				` AND created <= "2025-03-01" ORDER BY updated ASC`,
		},
		{
			name:    "embedded quotes are escaped",
			filters: Filters{Status: []string{`Weird "Status"`}},
			want:    `project = "DEV" AND status in ("Weird \"Status\"") ORDER BY created DESC`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.JQL("DEV"))
		})
	}
}
