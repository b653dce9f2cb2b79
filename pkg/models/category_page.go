package models

// CategoryPage is a curated landing page for a brand or product topic.
//
// SupplierIDs is an ordered list of supplier ID strings. When non-empty it is
// a hand-picked, order-significant selection; when empty the page falls back
// to the house recommended set at resolution time.
type CategoryPage struct {
	Slug          string   `json:"slug"`
	TopicCategory string   `json:"topic_category"`
	SupplierIDs   []string `json:"supplier_ids"`
	Title         string   `json:"title,omitempty"`
	Intro         string   `json:"intro,omitempty"`
}
