package domain

import "time"

// MoveType is the direction of a stock adjustment.
type MoveType string

const (
	MoveIn  MoveType = "IN"
	MoveOut MoveType = "OUT"
)

// StockTarget identifies the row a scanned code resolved to. VariantID is
// empty when the code belongs to the product itself.
type StockTarget struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
}

// StockMove is an applied stock adjustment.
type StockMove struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	VariantID  string    `json:"variantId,omitempty"`
	MoveType   MoveType  `json:"moveType"`
	Qty        int       `json:"qty"`
	Source     string    `json:"source"`
	UserLabel  *string   `json:"userLabel,omitempty"`
	StockAfter int       `json:"stockAfter"`
	CreatedAt  time.Time `json:"createdAt"`
}
