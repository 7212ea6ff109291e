package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"taskra/internal/model"
	"taskra/internal/serial"
)

// Table is the row-shaped view the text renderer consumes. The xxxTable
// functions below are the single adapter layer between typed resources and
// row-shaped presentation; nothing else in the CLI reaches into resource
// fields for display.
type Table struct {
	Header []string
	Rows   [][]string
}

// output renders v according to the selected --format: a table, wire-form
// JSON, or internal-form (snake_case) JSON.
func (a *App) output(v any, t Table) error {
	switch a.format {
	case "table":
		return renderTable(os.Stdout, t)
	case "json":
		b, err := serial.Serialize(v)
		if err != nil {
			return err
		}
		return printIndented(os.Stdout, b)
	case "internal":
		b, err := serial.SerializeInternal(v)
		if err != nil {
			return err
		}
		return printIndented(os.Stdout, b)
	default:
		return fmt.Errorf("unknown format %q: use table, json or internal", a.format)
	}
}

func renderTable(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printIndented(w io.Writer, b []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}

func projectsTable(projects []*model.ProjectSummary) Table {
	t := Table{Header: []string{"KEY", "NAME", "TYPE", "ID"}}
	for _, p := range projects {
		t.Rows = append(t.Rows, []string{p.Key, p.Name, p.ProjectTypeKey, p.ID})
	}
	return t
}

func projectTable(p *model.Project) Table {
	lead := ""
	if p.Lead != nil {
		lead = p.Lead.DisplayName
	}
	return Table{
		Header: []string{"KEY", "NAME", "TYPE", "LEAD", "DESCRIPTION"},
		Rows:   [][]string{{p.Key, p.Name, p.ProjectTypeKey, lead, p.Description}},
	}
}

func issuesTable(issues []*model.Issue) Table {
	t := Table{Header: []string{"KEY", "SUMMARY", "STATUS", "ASSIGNEE", "UPDATED"}}
	for _, i := range issues {
		t.Rows = append(t.Rows, []string{
			i.Key,
			i.Fields.Summary,
			statusName(i.Fields.Status),
			userName(i.Fields.Assignee),
			dateOnly(i.Fields.Updated),
		})
	}
	return t
}

func worklogsTable(worklogs []*model.Worklog) Table {
	t := Table{Header: []string{"ID", "AUTHOR", "SPENT", "STARTED", "COMMENT"}}
	for _, w := range worklogs {
		t.Rows = append(t.Rows, []string{
			w.ID,
			userName(w.Author),
			w.TimeSpent(),
			dateOnly(&w.Started),
			string(w.Comment),
		})
	}
	return t
}

func commentsTable(comments []*model.Comment) Table {
	t := Table{Header: []string{"ID", "AUTHOR", "CREATED", "BODY"}}
	for _, c := range comments {
		t.Rows = append(t.Rows, []string{
			c.ID,
			userName(c.Author),
			dateOnly(&c.Created),
			string(c.Body),
		})
	}
	return t
}

func userTable(u *model.User) Table {
	active := ""
	if u.Active != nil {
		active = fmt.Sprintf("%t", *u.Active)
	}
	return Table{
		Header: []string{"ACCOUNT ID", "NAME", "EMAIL", "ACTIVE", "TIME ZONE"},
		Rows:   [][]string{{u.AccountID, u.DisplayName, u.EmailAddress, active, u.TimeZone}},
	}
}

func permissionsTable(perms []*model.Permission) Table {
	t := Table{Header: []string{"KEY", "GRANTED"}}
	for _, p := range perms {
		t.Rows = append(t.Rows, []string{p.Key, fmt.Sprintf("%t", p.HavePermission)})
	}
	return t
}

func statusName(s *model.Status) string {
	if s == nil {
		return "Unknown"
	}
	return s.Name
}

func userName(u *model.User) string {
	if u == nil {
		return "Unassigned"
	}
	return u.DisplayName
}

func dateOnly(t *model.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
