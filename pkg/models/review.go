package models

import "time"

type Review struct {
	ID            int64     `json:"id"`
	SupplierID    int64     `json:"supplier_id"`
	UserID        string    `json:"user_id"`
	Rating        int       `json:"rating"`
	Accuracy      *int      `json:"accuracy,omitempty"`
	Logistics     *int      `json:"logistics,omitempty"`
	Value         *int      `json:"value,omitempty"`
	Communication *int      `json:"communication,omitempty"`
	Text          string    `json:"text,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReviewSummary is the derived aggregate for one supplier's reviews.
// It is recomputed on every read and never persisted.
type ReviewSummary struct {
	Count        int            `json:"count"`
	Average      *float64       `json:"average"`
	Distribution map[int]int    `json:"distribution"`
	Aspects      AspectAverages `json:"aspects"`
}

// AspectAverages holds per-aspect means over the reviews that scored the
// aspect. A nil field means no review supplied a value for it.
type AspectAverages struct {
	Accuracy      *float64 `json:"accuracy"`
	Logistics     *float64 `json:"logistics"`
	Value         *float64 `json:"value"`
	Communication *float64 `json:"communication"`
}
