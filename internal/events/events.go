package events

import "time"

const (
	TypeReviewCreated      = "review.created"
	TypeSubmissionReceived = "submission.received"
	TypeSubmissionDecided  = "submission.decided"
	TypePageUpdated        = "page.updated"
	TypeSupplierChanged    = "supplier.changed"
)

// CatalogEvent is pushed to connected operator dashboards whenever catalog
// state changes outside the read path.
type CatalogEvent struct {
	Type         string    `json:"type"`
	SupplierID   int64     `json:"supplier_id,omitempty"`
	SupplierSlug string    `json:"supplier_slug,omitempty"`
	PageSlug     string    `json:"page_slug,omitempty"`
	SubmissionID string    `json:"submission_id,omitempty"`
	Detail       string    `json:"detail,omitempty"`
	At           time.Time `json:"at"`
}
