package model

// Comment is a comment on an issue in the target import format.
type Comment struct {
	ID        int    `json:"id"`
	IssueID   int    `json:"issue"`
	User      string `json:"user"`
	Content   string `json:"content"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
