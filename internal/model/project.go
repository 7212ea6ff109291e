package model

// ProjectCategory groups projects on the server side.
type ProjectCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *ProjectCategory) Validate() error {
	if c.ID == "" {
		return missingField("projectCategory", "id")
	}
	if c.Name == "" {
		return missingField("projectCategory", "name")
	}
	return nil
}

// ProjectInsight is optional activity metadata on project listings.
type ProjectInsight struct {
	TotalIssueCount     int   `json:"totalIssueCount"`
	LastIssueUpdateTime *Time `json:"lastIssueUpdateTime,omitempty"`
}

// ProjectSummary is the shape returned by the project listing endpoint.
type ProjectSummary struct {
	SelfURL        string          `json:"self,omitempty"`
	ID             string          `json:"id"`
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	ProjectTypeKey string          `json:"projectTypeKey,omitempty"`
	AvatarURLs     *AvatarURLs     `json:"avatarUrls,omitempty"`
	Insight        *ProjectInsight `json:"insight,omitempty"`
}

// Self returns the resource URL under its wire spelling.
func (p *ProjectSummary) Self() string { return p.SelfURL }

// ResourceID returns the project's wire identity.
func (p *ProjectSummary) ResourceID() string { return p.ID }

func (p *ProjectSummary) Validate() error {
	if p.ID == "" {
		return missingField("project", "id")
	}
	if p.Key == "" {
		return missingField("project", "key")
	}
	if p.Name == "" {
		return missingField("project", "name")
	}
	if p.AvatarURLs != nil {
		return p.AvatarURLs.Validate()
	}
	return nil
}

// Project is the full shape returned by the project detail endpoint.
type Project struct {
	ProjectSummary
	Description string           `json:"description,omitempty"`
	Lead        *User            `json:"lead,omitempty"`
	URL         string           `json:"url,omitempty"`
	Category    *ProjectCategory `json:"projectCategory,omitempty"`
	Simplified  *bool            `json:"simplified,omitempty"`
	Style       string           `json:"style,omitempty"`
	IsPrivate   *bool            `json:"isPrivate,omitempty"`
}

func (p *Project) Validate() error {
	if err := p.ProjectSummary.Validate(); err != nil {
		return err
	}
	if p.Lead != nil {
		if err := p.Lead.Validate(); err != nil {
			return err
		}
	}
	if p.Category != nil {
		return p.Category.Validate()
	}
	return nil
}
