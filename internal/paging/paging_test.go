package paging

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskra/internal/model"
)

func projectItem(i int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"id": "%d", "key": "P%d", "name": "Project %d"}`, 10000+i, i, i))
}

// fixedSource serves total items in pages of at most pageSize, recording
// every requested offset.
func fixedSource(total int, isLast bool, requested *[]int) Source {
	return func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		*requested = append(*requested, startAt)
		var items []json.RawMessage
		for i := startAt; i < total && i < startAt+maxResults; i++ {
			items = append(items, projectItem(i))
		}
		page := &Page{
			StartAt:    startAt,
			MaxResults: maxResults,
			Total:      total,
			Items:      items,
		}
		if isLast {
			last := startAt+len(items) >= total
			page.IsLast = &last
		}
		return page, nil
	}
}

func TestParsePage(t *testing.T) {
	raw := json.RawMessage(`{
		"startAt": 50,
		"maxResults": 50,
		"total": 125,
		"isLast": false,
		"values": [{"id": "1"}, {"id": "2"}]
	}`)
	page, err := ParsePage(raw, "values")
	require.NoError(t, err)
	assert.Equal(t, 50, page.StartAt)
	assert.Equal(t, 125, page.Total)
	require.NotNil(t, page.IsLast)
	assert.False(t, *page.IsLast)
	assert.Len(t, page.Items, 2)
}

func TestParsePage_NoIsLastFlag(t *testing.T) {
	raw := json.RawMessage(`{
		"startAt": 0,
		"maxResults": 50,
		"total": 2,
		"worklogs": [{"id": "1"}, {"id": "2"}]
	}`)
	page, err := ParsePage(raw, "worklogs")
	require.NoError(t, err)
	assert.Nil(t, page.IsLast)
	assert.True(t, page.Last(), "startAt+len >= total infers the last page")
}

func TestParsePage_MissingItemsField(t *testing.T) {
	_, err := ParsePage(json.RawMessage(`{"startAt": 0, "total": 0}`), "values")
	assert.Error(t, err)
}

func TestCollect_WalksAllPages(t *testing.T) {
	var requested []int
	got, err := Collect[model.ProjectSummary](context.Background(), fixedSource(125, true, &requested), 50)
	require.NoError(t, err)
	assert.Len(t, got, 125)
	assert.Equal(t, []int{0, 50, 100}, requested)
	assert.Equal(t, "P0", got[0].Key)
	assert.Equal(t, "P124", got[124].Key)
}

func TestCollect_ExactMultipleStopsWithoutExtraRequest(t *testing.T) {
	var requested []int
	got, err := Collect[model.ProjectSummary](context.Background(), fixedSource(100, true, &requested), 50)
	require.NoError(t, err)
	assert.Len(t, got, 100)
	assert.Equal(t, []int{0, 50}, requested, "isLast on the second page ends the walk")
}

func TestCollect_ArithmeticTermination(t *testing.T) {
	// Worklog-style source: no isLast flag at all.
	var requested []int
	got, err := Collect[model.ProjectSummary](context.Background(), fixedSource(75, false, &requested), 50)
	require.NoError(t, err)
	assert.Len(t, got, 75)
	assert.Equal(t, []int{0, 50}, requested)
}

func TestCollect_EmptyFirstPage(t *testing.T) {
	var requested []int
	got, err := Collect[model.ProjectSummary](context.Background(), fixedSource(0, false, &requested), 50)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []int{0}, requested)
}

func TestCollect_ZeroProgressFails(t *testing.T) {
	// A server that claims more results but hands back empty non-last pages
	// would loop forever; Collect must bail instead.
	src := func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		return &Page{StartAt: startAt, MaxResults: maxResults, Total: 10}, nil
	}
	_, err := Collect[model.ProjectSummary](context.Background(), src, 50)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.StartAt)
}

func TestCollect_ServerCappedPageSize(t *testing.T) {
	// The server honors at most 20 per page regardless of the request.
	var requested []int
	src := func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		capped := fixedSource(50, false, &requested)
		if maxResults > 20 {
			maxResults = 20
		}
		return capped(ctx, startAt, maxResults)
	}
	got, err := Collect[model.ProjectSummary](context.Background(), src, 50)
	require.NoError(t, err)
	assert.Len(t, got, 50)
	assert.Equal(t, []int{0, 20, 40}, requested, "offsets advance by actual, not requested, page size")
}

func TestCollect_DeduplicatesAcrossPages(t *testing.T) {
	// Item 2 shifts between pages and shows up twice.
	src := func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		last := startAt > 0
		items := []json.RawMessage{projectItem(1), projectItem(2)}
		if startAt > 0 {
			items = []json.RawMessage{projectItem(2), projectItem(3)}
		}
		return &Page{StartAt: startAt, Total: 4, IsLast: &last, Items: items}, nil
	}
	got, err := Collect[model.ProjectSummary](context.Background(), src, 2)
	require.NoError(t, err)
	require.Len(t, got, 3, "the repeated item is dropped")
	assert.Equal(t, "P1", got[0].Key)
	assert.Equal(t, "P2", got[1].Key)
	assert.Equal(t, "P3", got[2].Key)
}

func TestCollect_InvalidItemFailsWhole(t *testing.T) {
	src := func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		last := true
		items := []json.RawMessage{projectItem(1), json.RawMessage(`{"key": "BAD"}`)}
		return &Page{StartAt: 0, Total: 2, IsLast: &last, Items: items}, nil
	}
	_, err := Collect[model.ProjectSummary](context.Background(), src, 50)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}

func TestCollect_SourceErrorPropagates(t *testing.T) {
	boom := fmt.Errorf("connection reset")
	src := func(ctx context.Context, startAt, maxResults int) (*Page, error) {
		return nil, boom
	}
	_, err := Collect[model.ProjectSummary](context.Background(), src, 50)
	assert.ErrorIs(t, err, boom)
}
