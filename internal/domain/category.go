package domain

// Category is a catalog filter facet derived from visible products.
type Category struct {
	Name     string `json:"name"`
	Products int    `json:"products"`
}
