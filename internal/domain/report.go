// Package domain contains the core data structures for the application.
package domain

// Repository holds the subset of repository metadata the summary prints.
type Repository struct {
	ID       int64  `json:"id"`
	NodeID   string `json:"node_id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Language string `json:"language"`
	Private  bool   `json:"private"`
}

// Report is the end result of one run: the repository metadata (nil when it
// could not be retrieved) and the size of each fetched collection.
type Report struct {
	Repository   *Repository `json:"repository,omitempty"`
	Contributors int         `json:"contributors"`
	OpenIssues   int         `json:"open_issues"`
	ClosedIssues int         `json:"closed_issues"`
	Commits      int         `json:"commits"`
}
