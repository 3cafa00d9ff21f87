package domain

// CartItem snapshots the product fields at add-time, so a later admin edit
// does not change what the customer is already buying.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) LineTotal() int {
	return i.Price * i.Quantity
}
