package model

// StatusCategory buckets statuses into todo / in-progress / done.
type StatusCategory struct {
	ID        int    `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	ColorName string `json:"colorName,omitempty"`
}

func (c *StatusCategory) Validate() error {
	if c.Key == "" {
		return missingField("statusCategory", "key")
	}
	if c.Name == "" {
		return missingField("statusCategory", "name")
	}
	return nil
}

// Status is an issue workflow status.
type Status struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    *StatusCategory `json:"statusCategory,omitempty"`
}

func (s *Status) Validate() error {
	if s.ID == "" {
		return missingField("status", "id")
	}
	if s.Name == "" {
		return missingField("status", "name")
	}
	if s.Category != nil {
		return s.Category.Validate()
	}
	return nil
}

// IssueType classifies an issue (bug, task, story, ...).
type IssueType struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
}

func (t *IssueType) Validate() error {
	if t.ID == "" {
		return missingField("issuetype", "id")
	}
	return nil
}

// Priority is an issue priority reference.
type Priority struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// IssueFields is the nested field block of an issue. Only summary is
// guaranteed by the server; everything else depends on the field set the
// query asked for.
type IssueFields struct {
	Summary     string     `json:"summary"`
	Description Text       `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Assignee    *User      `json:"assignee,omitempty"`
	Reporter    *User      `json:"reporter,omitempty"`
	Created     *Time      `json:"created,omitempty"`
	Updated     *Time      `json:"updated,omitempty"`
	IssueType   *IssueType `json:"issuetype,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
}

// Issue is one tracker issue as returned by the detail and search
// endpoints.
type Issue struct {
	ID      string      `json:"id"`
	Key     string      `json:"key"`
	SelfURL string      `json:"self,omitempty"`
	Fields  IssueFields `json:"fields"`
}

// Self returns the resource URL under its wire spelling.
func (i *Issue) Self() string { return i.SelfURL }

// ResourceID returns the issue's wire identity.
func (i *Issue) ResourceID() string { return i.ID }

func (i *Issue) Validate() error {
	if i.ID == "" {
		return missingField("issue", "id")
	}
	if i.Key == "" {
		return missingField("issue", "key")
	}
	if i.Fields.Summary == "" {
		return missingField("issue", "summary")
	}
	if i.Fields.Status != nil {
		if err := i.Fields.Status.Validate(); err != nil {
			return err
		}
	}
	if i.Fields.Assignee != nil {
		if err := i.Fields.Assignee.Validate(); err != nil {
			return err
		}
	}
	if i.Fields.Reporter != nil {
		if err := i.Fields.Reporter.Validate(); err != nil {
			return err
		}
	}
	if i.Fields.IssueType != nil {
		if err := i.Fields.IssueType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IssueCreate is the payload for creating a new issue.
type IssueCreate struct {
	Fields IssueCreateFields `json:"fields"`
}

// IssueCreateFields is the minimal field set for issue creation.
type IssueCreateFields struct {
	Project     ProjectRef   `json:"project"`
	Summary     string       `json:"summary"`
	Description string       `json:"description,omitempty"`
	IssueType   IssueTypeRef `json:"issuetype"`
}

// ProjectRef references a project by key in write payloads.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef references an issue type by name in write payloads.
type IssueTypeRef struct {
	Name string `json:"name"`
}

func (c *IssueCreate) Validate() error {
	if c.Fields.Project.Key == "" {
		return missingField("issueCreate", "project")
	}
	if c.Fields.Summary == "" {
		return missingField("issueCreate", "summary")
	}
	if c.Fields.IssueType.Name == "" {
		return missingField("issueCreate", "issuetype")
	}
	return nil
}
