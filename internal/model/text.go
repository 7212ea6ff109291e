package model

import (
	"encoding/json"
	"strings"
)

// Text is a rich-text field (issue description, comment body, worklog
// comment). The API returns either a plain string or an Atlassian Document
// Format object; both normalize to plain text on decode and only the plain
// text is retained. Marshaling emits the plain string.
type Text string

func (t Text) String() string { return string(t) }

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var doc docNode
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*t = Text(strings.TrimSpace(doc.text()))
	return nil
}

// docNode is one node of an Atlassian Document Format tree.
type docNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []docNode `json:"content"`
}

func (n docNode) text() string {
	if n.Type == "text" {
		return n.Text
	}
	parts := make([]string, 0, len(n.Content))
	for _, child := range n.Content {
		if s := child.text(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
