package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock indicates a quantity exceeds the stock on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)
