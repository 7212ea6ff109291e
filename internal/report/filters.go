package report

import (
	"fmt"
	"strings"
)

// Filters are the recognized issue filters for a report. Zero values mean
// "not filtered".
type Filters struct {
	Status        []string
	Assignee      string
	Reporter      string
	CreatedAfter  string // YYYY-MM-DD
	CreatedBefore string // YYYY-MM-DD
	SortBy        string // default "created"
	SortOrder     string // default "DESC"
}

// JQL compiles the filters into one query string scoped to a project.
// Compilation happens here and nowhere else.
func (f Filters) JQL(projectKey string) string {
	clauses := []string{fmt.Sprintf("project = %s", quote(projectKey))}

	if len(f.Status) > 0 {
		quoted := make([]string, len(f.Status))
		for i, s := range f.Status {
			quoted[i] = quote(s)
		}
		clauses = append(clauses, fmt.Sprintf("status in (%s)", strings.Join(quoted, ", ")))
	}
	if f.Assignee != "" {
		clauses = append(clauses, fmt.Sprintf("assignee = %s", quote(f.Assignee)))
	}
	if f.Reporter != "" {
		clauses = append(clauses, fmt.Sprintf("reporter = %s", quote(f.Reporter)))
	}
	if f.CreatedAfter != "" {
		clauses = append(clauses, fmt.Sprintf("created >= %s", quote(f.CreatedAfter)))
	}
	if f.CreatedBefore != "" {
		clauses = append(clauses, fmt.Sprintf("created <= %s", quote(f.CreatedBefore)))
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "created"
	}
	sortOrder := strings.ToUpper(f.SortOrder)
	if sortOrder != "ASC" {
		sortOrder = "DESC"
	}

	return strings.Join(clauses, " AND ") + fmt.Sprintf(" ORDER BY %s %s", sortBy, sortOrder)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
