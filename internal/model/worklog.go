package model

import "encoding/json"

// Worklog is one time entry logged against an issue. The author is owned
// by the worklog; it is never shared between instances.
//
// Time spent arrives on the wire either as timeSpentSeconds or as a short
// human string ("2h 30m") in timeSpent. Decoding normalizes both to
// TimeSpentSeconds and the string form is not retained.
type Worklog struct {
	ID               string `json:"id"`
	SelfURL          string `json:"self,omitempty"`
	IssueID          string `json:"issueId,omitempty"`
	Author           *User  `json:"author"`
	Comment          Text   `json:"comment,omitempty"`
	Started          Time   `json:"started"`
	Created          Time   `json:"created"`
	Updated          Time   `json:"updated"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// Self returns the resource URL under its wire spelling.
func (w *Worklog) Self() string { return w.SelfURL }

// ResourceID returns the worklog's wire identity.
func (w *Worklog) ResourceID() string { return w.ID }

func (w *Worklog) UnmarshalJSON(b []byte) error {
	type alias Worklog
	aux := struct {
		*alias
		TimeSpent string `json:"timeSpent"`
	}{alias: (*alias)(w)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if w.TimeSpentSeconds == 0 && aux.TimeSpent != "" {
		seconds, err := ParseDuration(aux.TimeSpent)
		if err != nil {
			return invalidField("worklog", "timeSpent", err.Error())
		}
		w.TimeSpentSeconds = seconds
	}
	return nil
}

func (w *Worklog) Validate() error {
	if w.ID == "" {
		return missingField("worklog", "id")
	}
	if w.Author == nil {
		return missingField("worklog", "author")
	}
	if err := w.Author.Validate(); err != nil {
		return err
	}
	if w.Started.IsZero() {
		return missingField("worklog", "started")
	}
	if w.TimeSpentSeconds <= 0 {
		return invalidField("worklog", "timeSpentSeconds", "must be positive")
	}
	return nil
}

// TimeSpent renders the normalized second count back into the short human
// form for display.
func (w *Worklog) TimeSpent() string {
	return FormatSeconds(w.TimeSpentSeconds)
}

// WorklogCreate is the payload for logging new work against an issue.
type WorklogCreate struct {
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Started          *Time  `json:"started,omitempty"`
	Comment          string `json:"comment,omitempty"`
}

// NewWorklogCreate builds a create payload from the short human duration
// form, normalizing it to seconds immediately.
func NewWorklogCreate(timeSpent, comment string, started *Time) (*WorklogCreate, error) {
	seconds, err := ParseDuration(timeSpent)
	if err != nil {
		return nil, invalidField("worklogCreate", "timeSpent", err.Error())
	}
	return &WorklogCreate{
		TimeSpentSeconds: seconds,
		Started:          started,
		Comment:          comment,
	}, nil
}

func (c *WorklogCreate) Validate() error {
	if c.TimeSpentSeconds <= 0 {
		return invalidField("worklogCreate", "timeSpentSeconds", "must be positive")
	}
	return nil
}
