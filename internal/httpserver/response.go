package httpserver

import (
	"strings"
	"time"

	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/money"
	"catalog-storefront/internal/variant"
)

type productResponse struct {
	ID                 string            `json:"id"`
	SKU                string            `json:"sku,omitempty"`
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	Brand              string            `json:"brand,omitempty"`
	Category           string            `json:"category,omitempty"`
	Price              *int64            `json:"price"`
	PriceLabel         string            `json:"priceLabel"`
	OriginalPrice      *int64            `json:"originalPrice,omitempty"`
	OriginalPriceLabel string            `json:"originalPriceLabel,omitempty"`
	Stock              int               `json:"stock"`
	Images             []imageResponse   `json:"images"`
	HasVariants        bool              `json:"hasVariants"`
	Variants           []variantResponse `json:"variants"`
	Options            *variant.Options  `json:"options,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type variantResponse struct {
	ID          string            `json:"id"`
	SKU         string            `json:"sku,omitempty"`
	Attributes  domain.Attributes `json:"attributes"`
	Label       string            `json:"label"`
	Stock       int               `json:"stock"`
	IsAvailable bool              `json:"isAvailable"`
	Images      []imageResponse   `json:"images"`
}

type imageResponse struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

type productListResponse struct {
	Count   int               `json:"count"`
	Results []productResponse `json:"results"`
}

// searchHit is the compact row returned to the scan tool.
type searchHit struct {
	ID         string `json:"id"`
	SKU        string `json:"sku,omitempty"`
	Barcode    string `json:"barcode,omitempty"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	PriceLabel string `json:"priceLabel"`
}

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		PriceLabel:  priceLabel(p.Price),
		Stock:       p.Stock,
		Images:      images(p.Name, p.ImageURL),
		HasVariants: len(p.Variants) > 0,
		Variants:    make([]variantResponse, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
	}
	if p.OriginalPrice != nil && p.Price != nil && *p.OriginalPrice > *p.Price {
		resp.OriginalPrice = p.OriginalPrice
		resp.OriginalPriceLabel = priceLabel(p.OriginalPrice)
	}
	if len(p.Variants) == 0 {
		return resp
	}

	resp.Stock = variant.TotalStock(p.Variants)
	opts := variant.ExtractUnique(p.Variants)
	resp.Options = &opts
	for _, v := range p.Variants {
		attrs := variant.ToAttributes(v.Attributes)
		vr := variantResponse{
			ID:          v.ID,
			SKU:         v.SKU,
			Attributes:  attrs,
			Label:       attrs.Label(),
			Stock:       v.Stock,
			IsAvailable: v.IsAvailable && v.Stock > 0,
			Images:      []imageResponse{},
		}
		for _, u := range v.Images {
			if strings.TrimSpace(u) == "" {
				continue
			}
			vr.Images = append(vr.Images, imageResponse{URL: u, Label: vr.Label})
		}
		resp.Variants = append(resp.Variants, vr)
	}
	return resp
}

func toProductList(products []domain.Product) productListResponse {
	results := make([]productResponse, 0, len(products))
	for _, p := range products {
		results = append(results, toProductResponse(p))
	}
	return productListResponse{Count: len(results), Results: results}
}

func toSearchHits(products []domain.Product) []searchHit {
	hits := make([]searchHit, 0, len(products))
	for _, p := range products {
		hits = append(hits, searchHit{
			ID:         p.ID,
			SKU:        p.SKU,
			Barcode:    p.Barcode,
			Name:       p.Name,
			Stock:      p.Stock,
			PriceLabel: priceLabel(p.Price),
		})
	}
	return hits
}

func images(label, url string) []imageResponse {
	if strings.TrimSpace(url) == "" {
		return []imageResponse{}
	}
	return []imageResponse{{URL: url, Label: label}}
}

func priceLabel(price *int64) string {
	if price == nil {
		return "$" + money.Format(0)
	}
	return "$" + money.Format(*price)
}
