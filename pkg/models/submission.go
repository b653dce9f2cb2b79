package models

import "time"

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission is a supplier listing awaiting admin review. Approval creates a
// Supplier from the submitted fields.
type Submission struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Website     string     `json:"website,omitempty"`
	Region      string     `json:"region,omitempty"`
	Categories  []string   `json:"categories"`
	LotSizes    []string   `json:"lot_sizes"`
	Description string     `json:"description,omitempty"`
	Contact     string     `json:"contact,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}
