// Package paging walks paginated list endpoints until exhaustion,
// validating every raw item into its resource type and de-duplicating by
// resource identity across pages.
//
// Project and issue listings carry an explicit isLast flag; worklog and
// comment listings do not, and the last page is inferred from
// startAt + len(items) >= total. That asymmetry is the server's contract,
// not an accident, and Page.Last handles both.
package paging

import (
	"context"
	"encoding/json"
	"fmt"

	"taskra/internal/model"
)

// DefaultPageSize is the page size requested unless configured otherwise.
// The server may silently cap it; termination never assumes the requested
// size was honored.
const DefaultPageSize = 50

// Error is a violation of the server's pagination contract.
type Error struct {
	StartAt int
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pagination violation at startAt=%d: %s", e.StartAt, e.Reason)
}

// Page is one bounded slice of a list endpoint's results.
type Page struct {
	StartAt    int
	MaxResults int
	Total      int
	IsLast     *bool // nil when the endpoint carries no isLast flag
	Items      []json.RawMessage
}

// ParsePage decodes a list-endpoint response whose items live under
// itemsField ("values", "issues", "worklogs" or "comments").
func ParsePage(raw json.RawMessage, itemsField string) (*Page, error) {
	var envelope struct {
		StartAt    int   `json:"startAt"`
		MaxResults int   `json:"maxResults"`
		Total      int   `json:"total"`
		IsLast     *bool `json:"isLast"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("malformed page envelope: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("malformed page envelope: %w", err)
	}
	page := &Page{
		StartAt:    envelope.StartAt,
		MaxResults: envelope.MaxResults,
		Total:      envelope.Total,
		IsLast:     envelope.IsLast,
	}
	itemsRaw, ok := fields[itemsField]
	if !ok {
		return nil, fmt.Errorf("page envelope has no %q array", itemsField)
	}
	if err := json.Unmarshal(itemsRaw, &page.Items); err != nil {
		return nil, fmt.Errorf("malformed %q array: %w", itemsField, err)
	}
	return page, nil
}

// Last reports whether this is the final page, preferring the server's
// explicit flag and falling back to the arithmetic condition.
func (p *Page) Last() bool {
	if p.IsLast != nil {
		return *p.IsLast
	}
	return p.StartAt+len(p.Items) >= p.Total
}

// Source fetches one page of raw results starting at the given offset.
type Source func(ctx context.Context, startAt, maxResults int) (*Page, error)

// Collect drives src from offset zero until the last page, validating
// every item into *T and de-duplicating by resource identity. Any page
// failure or invalid item fails the whole collection; no partial result is
// returned. A non-last page with zero items is a protocol violation.
func Collect[T any, PT interface {
	*T
	model.Resource
}](ctx context.Context, src Source, pageSize int) ([]*T, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var out []*T
	seen := make(map[string]struct{})
	startAt := 0
	for {
		page, err := src(ctx, startAt, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page.Items) == 0 && !page.Last() {
			return nil, &Error{StartAt: startAt, Reason: "non-last page returned zero items"}
		}
		for _, raw := range page.Items {
			v, err := model.FromRaw[T, PT](raw)
			if err != nil {
				return nil, err
			}
			if id, ok := any(PT(v)).(model.Identifiable); ok {
				if _, dup := seen[id.ResourceID()]; dup {
					continue
				}
				seen[id.ResourceID()] = struct{}{}
			}
			out = append(out, v)
		}
		if page.Last() {
			return out, nil
		}
		startAt += len(page.Items)
	}
}
