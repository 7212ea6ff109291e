package model

// CommentVisibility restricts who can see a comment.
type CommentVisibility struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Comment is one issue comment. The body arrives as plain text or as a
// document tree and normalizes to plain text (see Text).
type Comment struct {
	ID           string             `json:"id"`
	SelfURL      string             `json:"self,omitempty"`
	Author       *User              `json:"author"`
	Body         Text               `json:"body"`
	UpdateAuthor *User              `json:"updateAuthor,omitempty"`
	Created      Time               `json:"created"`
	Updated      Time               `json:"updated"`
	Visibility   *CommentVisibility `json:"visibility,omitempty"`
}

// Self returns the resource URL under its wire spelling.
func (c *Comment) Self() string { return c.SelfURL }

// ResourceID returns the comment's wire identity.
func (c *Comment) ResourceID() string { return c.ID }

func (c *Comment) Validate() error {
	if c.ID == "" {
		return missingField("comment", "id")
	}
	if c.Author == nil {
		return missingField("comment", "author")
	}
	if err := c.Author.Validate(); err != nil {
		return err
	}
	if c.Body == "" {
		return missingField("comment", "body")
	}
	if c.UpdateAuthor != nil {
		return c.UpdateAuthor.Validate()
	}
	return nil
}

// CommentCreate is the payload for adding a comment to an issue.
type CommentCreate struct {
	Body string `json:"body"`
}

func (c *CommentCreate) Validate() error {
	if c.Body == "" {
		return missingField("commentCreate", "body")
	}
	return nil
}
