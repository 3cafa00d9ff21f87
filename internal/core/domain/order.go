package domain

import "time"

// Order is the snapshot taken when a payment is confirmed. It exists only
// long enough to print a receipt; no sales history is persisted.
type Order struct {
	ID        string
	Items     []CartItem
	Total     int
	Cash      int
	Change    int
	CreatedAt time.Time
}
