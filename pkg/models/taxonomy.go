package models

type Region struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type LotSize struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}
