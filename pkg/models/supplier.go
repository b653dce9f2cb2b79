package models

type Supplier struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Region      string   `json:"region,omitempty"`
	Categories  []string `json:"categories"`
	LotSizes    []string `json:"lot_sizes"`
	TrustScore  int      `json:"trust_score"`
	HomeRank    int      `json:"home_rank"`
	IsVerified  bool     `json:"is_verified"`
	IsScam      bool     `json:"is_scam"`
	Website     string   `json:"website,omitempty"`
	Badge       string   `json:"badge,omitempty"`
	Keywords    string   `json:"keywords,omitempty"`
	Description string   `json:"description,omitempty"`
}
