package domain

import "time"

// CartItem is one orderable line. Only AddedByUserID may change or remove it.
type CartItem struct {
	ID            string    `json:"id"`
	MenuItemID    string    `json:"menuItemId"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	Size          string    `json:"size,omitempty"`
	AddedBy       string    `json:"addedBy"`
	AddedByUserID UserID    `json:"addedByUserId"`
	AddedAt       time.Time `json:"addedAt"`
}

// Subtotal is price times quantity.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
