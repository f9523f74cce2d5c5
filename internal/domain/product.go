package domain

import "time"

// Product is the read model of a catalog row. Price is nil when the product
// has no published price; every computation treats that as zero.
type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku,omitempty"`
	Barcode       string    `json:"barcode,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Store         string    `json:"store,omitempty"`
	Category      string    `json:"category,omitempty"`
	Price         *int64    `json:"price"`
	OriginalPrice *int64    `json:"originalPrice,omitempty"`
	Stock         int       `json:"stock"`
	ImagePath     string    `json:"imagePath,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Visible       bool      `json:"visible"`
	Variants      []Variant `json:"variants,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Variant is a specific attribute combination of a product with its own stock.
type Variant struct {
	ID          string            `json:"id"`
	ProductID   string            `json:"productId"`
	SKU         string            `json:"sku,omitempty"`
	Barcode     string            `json:"barcode,omitempty"`
	Attributes  map[string]string `json:"attributes"`
	Stock       int               `json:"stock"`
	IsAvailable bool              `json:"isAvailable"`
	Images      []string          `json:"images,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// PriceOrZero returns the product price, or 0 when unset.
func (p Product) PriceOrZero() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
