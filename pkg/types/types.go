// Package types holds the fix-proposal wire format shared between the
// advisor that produces proposals and the applicator that consumes them.
package types

// Action kinds a FixAction may carry.
const (
	ActionCreate = "create"
	ActionModify = "modify"
	ActionDelete = "delete"
)

// FixAction is one file-level edit instruction proposed by the model.
// File is relative to the project root. Content is required for create
// and modify and ignored for delete.
type FixAction struct {
	File    string `json:"file"`
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

// FixProposal is the model's explanation plus the ordered list of file
// actions for one repair iteration.
type FixProposal struct {
	Explanation string      `json:"explanation"`
	Fixes       []FixAction `json:"fixes"`
}
